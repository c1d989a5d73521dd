package fs

import (
	"fmt"
	"maps"

	"github.com/viant/mcp-connconfig/connection"
)

// descriptor is the on-disk layout of a connection config. Unrecognised
// top-level scalar keys are merged into properties; an explicit properties
// entry takes precedence.
type descriptor struct {
	Name        string            `yaml:"name,omitempty"`
	URL         string            `yaml:"url,omitempty"`
	Username    string            `yaml:"username,omitempty"`
	Password    string            `yaml:"password,omitempty"`
	ServiceType string            `yaml:"serviceType,omitempty"`
	Properties  map[string]string `yaml:"properties,omitempty"`
	Secrets     *secretRef        `yaml:"secrets,omitempty"`
	Extra       map[string]any    `yaml:",inline"`
}

// secretRef points to a scy resource holding basic credentials.
type secretRef struct {
	URL string `yaml:"url"`
	Key string `yaml:"key,omitempty"`
}

func (d *descriptor) isEmpty() bool {
	return d.Name == "" && d.URL == "" && d.Username == "" && d.Password == "" && d.ServiceType == "" &&
		len(d.Properties) == 0 && d.Secrets == nil && len(d.Extra) == 0
}

func (d *descriptor) config() *connection.ConnectionConfig {
	ret := &connection.ConnectionConfig{
		URL:         d.URL,
		Username:    d.Username,
		Password:    d.Password,
		ServiceType: d.ServiceType,
	}
	if d.Properties != nil {
		ret.Properties = maps.Clone(d.Properties)
	}
	for key, value := range d.Extra {
		switch value.(type) {
		case string, bool, int, int64, uint64, float64:
		default:
			continue
		}
		if ret.Properties == nil {
			ret.Properties = map[string]string{}
		}
		if _, ok := ret.Properties[key]; !ok {
			ret.Properties[key] = fmt.Sprint(value)
		}
	}
	return ret
}
