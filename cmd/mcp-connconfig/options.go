package main

// Options defines CLI flags for the mcp-connconfig server. Connection flags
// override values from the configuration file.
type Options struct {
	HTTPAddr   string `short:"a" long:"addr"  description:"HTTP listen address (empty disables HTTP)"`
	Stdio      bool   `short:"s" long:"stdio" description:"Enable stdio transport"`
	ConfigPath string `short:"c" long:"config" description:"Path to JSON configuration file"`

	RootDirectory string `short:"r" long:"root" env:"SECRET_ROOT_DIRECTORY" description:"Root directory of per-connection descriptor directories"`
	SecurityLevel string `short:"l" long:"level" env:"ENTANDO_PLUGIN_SECURITY_LEVEL" description:"Security level: STRICT (filesystem, read-only) or LENIENT (sidecar, full CRUD)"`
	SidecarPort   int    `short:"p" long:"sidecar-port" env:"PLUGIN_SIDECAR_PORT" description:"Local sidecar port"`
	SidecarURL    string `long:"sidecar-url" description:"Sidecar base URL (overrides --sidecar-port; defaults to --addr when --sidecar is set)"`
	Sidecar       bool   `long:"sidecar" description:"Serve an in-memory config store at /config on the HTTP listener"`

	UseData bool `short:"d" long:"data" description:"Return tool results using the 'data' field of CallToolResultContentElem (default uses 'text')"`
	Verbose bool `short:"v" long:"verbose" description:"Enable debug logging"`
}
