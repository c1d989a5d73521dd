package mcp

import (
	"github.com/viant/mcp-connconfig/connection"
)

type Config struct {
	Connection *connection.Config `json:"connection,omitempty"`

	// Sidecar, when set, serves an in-memory config store at /config on the
	// HTTP listener so a Lenient resolver can point at this process.
	Sidecar bool `json:"sidecar,omitempty"`

	// UseData instructs the toolbox to put tool results in the `data` field of
	// CallToolResultContentElem. When false (default) the result JSON is
	// carried in the `text` field.
	UseData bool `json:"useData,omitempty"`

	// ExposePasswords returns passwords in tool results instead of a mask.
	ExposePasswords bool `json:"exposePasswords,omitempty"`
}

func (c *Config) Init() {
	if c.Connection == nil {
		c.Connection = &connection.Config{}
	}
	c.Connection.Init()
}
