package connection

import "maps"

// ConnectionConfig is a named bundle of connectivity settings for an external
// service. Values returned by a backend are snapshots; mutate a Clone.
type ConnectionConfig struct {
	Name        string            `json:"name" yaml:"name,omitempty"`
	URL         string            `json:"url" yaml:"url"`
	Username    string            `json:"username" yaml:"username"`
	Password    string            `json:"password" yaml:"password"`
	ServiceType string            `json:"serviceType" yaml:"serviceType"`
	Properties  map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Clone returns a deep copy.
func (c *ConnectionConfig) Clone() *ConnectionConfig {
	if c == nil {
		return nil
	}
	ret := *c
	if c.Properties != nil {
		ret.Properties = maps.Clone(c.Properties)
	}
	return &ret
}

// Validate checks fields required by every backend.
func (c *ConnectionConfig) Validate() error {
	if c == nil {
		return invalidConfigError("connection config cannot be nil")
	}
	if c.Name == "" {
		return invalidConfigError("connection name cannot be empty")
	}
	return nil
}
