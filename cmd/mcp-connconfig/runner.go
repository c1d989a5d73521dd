package main

// This file contains application bootstrap logic for the mcp-connconfig
// command, split into focused helpers.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/stacklok/toolhive-core/logging"
	"github.com/viant/mcp-connconfig/connection"
	"github.com/viant/mcp-connconfig/mcp"
	"github.com/viant/mcp-protocol/schema"
	mcpsrv "github.com/viant/mcp/server"
)

// run is invoked by main and orchestrates CLI parsing, configuration loading,
// server construction and graceful shutdown.
func run(argv []string) error {
	// 1. Parse CLI flags ----------------------------------------------------
	opts, err := parseFlags(argv)
	if err != nil || opts == nil {
		return err
	}
	logger := newLogger(opts)

	// 2. Load configuration (file or defaults) -----------------------------
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// 3. Create toolbox service & server -----------------------------------
	service, err := mcp.NewService(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build service: %w", err)
	}
	srv, err := mcpsrv.New(serverOptions(service)...)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	// 4. Start transports ---------------------------------------------------
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := startHTTP(ctx, logger, srv, opts.HTTPAddr)
	stdioCh := startStdio(ctx, logger, srv, opts.Stdio)

	// 5. Wait for termination ----------------------------------------------
	if err := waitForShutdown(ctx, logger, stdioCh); err != nil {
		return err
	}
	return gracefulShutdown(httpSrv)
}

// -------------------------------------------------------------------------
// Helpers

func parseFlags(args []string) (*Options, error) {
	opts := &Options{}
	_, err := flags.ParseArgs(opts, args)
	if err == nil {
		return opts, nil
	}
	// flags returns *flags.Error for help – treat as non error.
	var fe *flags.Error
	if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
		return nil, nil
	}
	return nil, err
}

// newLogger writes to stderr so the stdio transport keeps stdout.
func newLogger(opts *Options) *slog.Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return logging.New(logging.WithOutput(os.Stderr), logging.WithLevel(level))
}

// loadConfig reads the JSON config (when provided) and applies CLI overrides.
func loadConfig(opts *Options) (*mcp.Config, error) {
	cfg := &mcp.Config{}
	if opts == nil {
		return cfg, nil
	}
	if opts.ConfigPath != "" {
		data, err := os.ReadFile(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode %v: %w", opts.ConfigPath, err)
		}
	}
	if cfg.Connection == nil {
		cfg.Connection = &connection.Config{}
	}
	if opts.RootDirectory != "" {
		cfg.Connection.RootDirectory = opts.RootDirectory
	}
	if opts.SecurityLevel != "" {
		cfg.Connection.SecurityLevel = opts.SecurityLevel
	}
	if opts.SidecarPort != 0 {
		cfg.Connection.SidecarPort = opts.SidecarPort
	}
	if opts.SidecarURL != "" {
		cfg.Connection.SidecarURL = opts.SidecarURL
	}
	if opts.Sidecar {
		cfg.Sidecar = true
	}
	// the in-process sidecar lives on the HTTP listener
	if cfg.Sidecar && cfg.Connection.SidecarURL == "" && opts.HTTPAddr != "" {
		cfg.Connection.SidecarURL = listenerURL(opts.HTTPAddr)
	}
	if opts.UseData {
		cfg.UseData = true // CLI override
	}
	cfg.Init()
	return cfg, nil
}

// listenerURL converts a listen address into a loopback base URL.
func listenerURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// serverOptions returns the MCP server options, adding the sidecar endpoint
// when enabled.
func serverOptions(service *mcp.Service) []mcpsrv.Option {
	ret := []mcpsrv.Option{
		mcpsrv.WithNewHandler(mcp.NewHandler(service)),
		mcpsrv.WithImplementation(schema.Implementation{Name: "mcp-connconfig", Version: "1.0"}),
	}
	if handler := service.Sidecar(); handler != nil {
		ret = append(ret,
			mcpsrv.WithCustomHTTPHandler("/config", handler.Handle),
			mcpsrv.WithCustomHTTPHandler("/config/", handler.Handle),
		)
	}
	return ret
}

// startHTTP boots the HTTP transport when addr is non-empty.
func startHTTP(ctx context.Context, logger *slog.Logger, srv *mcpsrv.Server, addr string) *http.Server {
	if addr == "" {
		return nil
	}
	httpSrv := srv.HTTP(ctx, addr)
	go func() {
		logger.Info("mcp-connconfig listening on HTTP", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
		}
	}()
	return httpSrv
}

// startStdio boots the stdio transport if enabled.
func startStdio(ctx context.Context, logger *slog.Logger, srv *mcpsrv.Server, enabled bool) <-chan error {
	if !enabled {
		return nil
	}
	ch := make(chan error, 1)
	go func() {
		logger.Info("mcp-connconfig listening on stdio")
		ch <- srv.Stdio(ctx).ListenAndServe()
	}()
	return ch
}

// waitForShutdown blocks until CTRL-C or stdio transport terminates.
func waitForShutdown(ctx context.Context, logger *slog.Logger, stdio <-chan error) error {
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case err := <-stdio:
		if err != nil {
			return fmt.Errorf("stdio server terminated: %w", err)
		}
	}
	return nil
}

// gracefulShutdown attempts to close HTTP server within 5s.
func gracefulShutdown(srv *http.Server) error {
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
