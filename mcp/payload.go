package mcp

import "github.com/viant/mcp-connconfig/connection"

// NameInput identifies a connection config.
type NameInput struct {
	Name string `json:"name" description:"Connection name"`
}

// ListInput filters listed connection configs by a name substring.
type ListInput struct {
	Pattern string `json:"pattern,omitempty" description:"Optional name substring filter"`
}

// ConfigInput carries a full connection config for add/edit.
type ConfigInput struct {
	Name        string            `json:"name" description:"Connection name"`
	URL         string            `json:"url,omitempty" description:"Service URL"`
	Username    string            `json:"username,omitempty" description:"Username"`
	Password    string            `json:"password,omitempty" description:"Password"`
	ServiceType string            `json:"serviceType,omitempty" description:"Service type"`
	Properties  map[string]string `json:"properties,omitempty" description:"Extra properties"`
}

func (i *ConfigInput) config() *connection.ConnectionConfig {
	return &connection.ConnectionConfig{
		Name:        i.Name,
		URL:         i.URL,
		Username:    i.Username,
		Password:    i.Password,
		ServiceType: i.ServiceType,
		Properties:  i.Properties,
	}
}

// Output is the envelope returned by every connection tool.
type Output struct {
	Data   []*connection.ConnectionConfig `json:"data,omitempty"`
	Status string                         `json:"status"`
	Error  string                         `json:"error,omitempty"`
}
