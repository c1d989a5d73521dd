package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/viant/mcp-connconfig/connection"
	"github.com/viant/mcp-connconfig/connection/fs"
	"github.com/viant/mcp-connconfig/connection/memory"
	"github.com/viant/mcp-connconfig/connection/remote"
	"github.com/viant/mcp-connconfig/connection/sidecar"
)

const passwordMask = "******"

type Service struct {
	connections *connection.Service
	sidecar     *sidecar.Handler
	logger      *slog.Logger

	// useText determines which field (`text` vs `data`) the toolbox will
	// populate when returning CallToolResultContentElem.
	useText         bool
	exposePasswords bool
}

// Connections returns the underlying resolver.
func (s *Service) Connections() *connection.Service {
	return s.connections
}

// Sidecar returns the in-process sidecar handler or nil when disabled.
func (s *Service) Sidecar() *sidecar.Handler {
	return s.sidecar
}

// UseTextField indicates whether tool results populate the `text` field
// (true – default) or the `data` field (false).
func (s *Service) UseTextField() bool {
	return s.useText
}

// Get returns a single connection config.
func (s *Service) Get(ctx context.Context, input *NameInput) *Output {
	if input == nil || input.Name == "" {
		return s.errorOutput("get", fmt.Errorf("name cannot be empty"))
	}
	config, err := s.connections.Get(ctx, input.Name)
	if err != nil {
		return s.errorOutput("get", err)
	}
	return s.output(config)
}

// List returns connection configs, optionally filtered by name substring.
func (s *Service) List(ctx context.Context, input *ListInput) *Output {
	configs, err := s.connections.List(ctx)
	if err != nil {
		return s.errorOutput("list", err)
	}
	// Be tolerant to nil input (MCP may send null params).
	pattern := ""
	if input != nil {
		pattern = input.Pattern
	}
	var filtered []*connection.ConnectionConfig
	for _, config := range configs {
		if pattern == "" || strings.Contains(config.Name, pattern) {
			filtered = append(filtered, config)
		}
	}
	return s.output(filtered...)
}

// Add creates a connection config.
func (s *Service) Add(ctx context.Context, input *ConfigInput) *Output {
	if input == nil {
		return s.errorOutput("add", fmt.Errorf("connection config cannot be nil"))
	}
	config, err := s.connections.Add(ctx, input.config())
	if err != nil {
		return s.errorOutput("add", err)
	}
	return s.output(config)
}

// Edit replaces a connection config.
func (s *Service) Edit(ctx context.Context, input *ConfigInput) *Output {
	if input == nil {
		return s.errorOutput("edit", fmt.Errorf("connection config cannot be nil"))
	}
	config, err := s.connections.Edit(ctx, input.config())
	if err != nil {
		return s.errorOutput("edit", err)
	}
	return s.output(config)
}

// Delete removes a connection config.
func (s *Service) Delete(ctx context.Context, input *NameInput) *Output {
	if input == nil || input.Name == "" {
		return s.errorOutput("delete", fmt.Errorf("name cannot be empty"))
	}
	if err := s.connections.Delete(ctx, input.Name); err != nil {
		return s.errorOutput("delete", err)
	}
	return &Output{Status: "ok"}
}

func (s *Service) output(configs ...*connection.ConnectionConfig) *Output {
	ret := &Output{Status: "ok"}
	for _, config := range configs {
		if config == nil {
			continue
		}
		if !s.exposePasswords && config.Password != "" {
			config = config.Clone()
			config.Password = passwordMask
		}
		ret.Data = append(ret.Data, config)
	}
	return ret
}

func (s *Service) errorOutput(op string, err error) *Output {
	s.logger.Debug("connection tool failed", "op", op, "error", err)
	return &Output{Status: "error", Error: err.Error()}
}

// NewService wires the filesystem reader, the sidecar client and, when
// enabled, the in-process sidecar behind a resolver.
func NewService(config *Config, logger *slog.Logger) (*Service, error) {
	if config == nil {
		config = &Config{}
	}
	config.Init()
	if logger == nil {
		logger = slog.Default()
	}
	cfg := config.Connection

	level, err := connection.ParseSecurityLevel(cfg.SecurityLevel)
	if err != nil {
		return nil, err
	}
	reader := fs.New(cfg.RootDirectory,
		fs.WithDescriptorName(cfg.DescriptorName),
		fs.WithLogger(logger))
	store := remote.New(cfg.BaseURL(),
		remote.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		remote.WithLogger(logger))

	connections, err := connection.New(level, reader, store, connection.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	ret := &Service{
		connections:     connections,
		logger:          logger,
		useText:         !config.UseData,
		exposePasswords: config.ExposePasswords,
	}
	if config.Sidecar {
		ret.sidecar = sidecar.New(memory.New(), logger)
	}
	logger.Info("connection config resolver ready", "level", level.String(), "root", cfg.RootDirectory, "sidecar", cfg.BaseURL())
	return ret, nil
}
