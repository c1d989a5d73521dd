package connection

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultRootDirectory is where per-connection descriptor directories are mounted.
	DefaultRootDirectory = "/etc/entando/secrets"
	// DefaultDescriptorName is the descriptor file name inside each connection directory.
	DefaultDescriptorName = "config.yaml"
	// DefaultSidecarPort is the local port the sidecar listens on.
	DefaultSidecarPort = 8084
	// DefaultTimeout applies to sidecar HTTP calls.
	DefaultTimeout = 30 * time.Second
)

// Config holds resolver settings.
type Config struct {
	RootDirectory  string `json:"rootDirectory,omitempty" yaml:"rootDirectory,omitempty"`
	DescriptorName string `json:"descriptorName,omitempty" yaml:"descriptorName,omitempty"`
	SecurityLevel  string `json:"securityLevel,omitempty" yaml:"securityLevel,omitempty"`

	// SidecarURL overrides the base URL derived from SidecarPort.
	SidecarURL  string        `json:"sidecarURL,omitempty" yaml:"sidecarURL,omitempty"`
	SidecarPort int           `json:"sidecarPort,omitempty" yaml:"sidecarPort,omitempty"`
	Timeout     time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Init assigns defaults to unset fields.
func (c *Config) Init() {
	if c.RootDirectory == "" {
		c.RootDirectory = DefaultRootDirectory
	}
	if c.DescriptorName == "" {
		c.DescriptorName = DefaultDescriptorName
	}
	if c.SecurityLevel == "" {
		c.SecurityLevel = string(Strict)
	}
	if c.SidecarPort == 0 {
		c.SidecarPort = DefaultSidecarPort
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// BaseURL returns the sidecar root, e.g. http://localhost:8084
func (c *Config) BaseURL() string {
	if c.SidecarURL != "" {
		return strings.TrimRight(c.SidecarURL, "/")
	}
	port := c.SidecarPort
	if port == 0 {
		port = DefaultSidecarPort
	}
	return fmt.Sprintf("http://localhost:%d", port)
}
