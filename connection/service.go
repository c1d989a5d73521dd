package connection

import (
	"context"
	"fmt"
	"log/slog"
)

// Service resolves connection configs from the backend selected by its
// security level. Strict reads the mounted filesystem and refuses mutations;
// Lenient delegates everything to the sidecar store.
type Service struct {
	level  SecurityLevel
	reader Reader
	store  Store
	logger *slog.Logger
}

// Option customises a Service.
type Option func(s *Service)

// WithLogger sets the logger used for rejected operations.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds a Service. reader backs Strict mode and store backs Lenient
// mode; only the backend for the selected level is required.
func New(level SecurityLevel, reader Reader, store Store, opts ...Option) (*Service, error) {
	ret := &Service{level: level, logger: slog.Default()}
	switch level {
	case Strict:
		if reader == nil {
			return nil, fmt.Errorf("%v security level requires a filesystem reader", level)
		}
		ret.reader = reader
	case Lenient:
		if store == nil {
			return nil, fmt.Errorf("%v security level requires a sidecar store", level)
		}
		ret.reader = store
		ret.store = store
	default:
		return nil, fmt.Errorf("unsupported security level: %q", level)
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret, nil
}

// Level returns the security level fixed at construction.
func (s *Service) Level() SecurityLevel {
	return s.level
}

// Get returns the named config.
func (s *Service) Get(ctx context.Context, name string) (*ConnectionConfig, error) {
	return s.reader.Get(ctx, name)
}

// List returns all configs visible to the active backend.
func (s *Service) List(ctx context.Context) ([]*ConnectionConfig, error) {
	return s.reader.List(ctx)
}

// Add creates a config through the sidecar.
func (s *Service) Add(ctx context.Context, config *ConnectionConfig) (*ConnectionConfig, error) {
	if err := s.mutable("add", nameOf(config)); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return s.store.Add(ctx, config)
}

// Edit replaces a config through the sidecar.
func (s *Service) Edit(ctx context.Context, config *ConnectionConfig) (*ConnectionConfig, error) {
	if err := s.mutable("edit", nameOf(config)); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return s.store.Edit(ctx, config)
}

// Delete removes a config through the sidecar.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.mutable("delete", name); err != nil {
		return err
	}
	return s.store.Delete(ctx, name)
}

func (s *Service) mutable(op, name string) error {
	if s.store != nil {
		return nil
	}
	s.logger.Warn("rejected connection config mutation", "op", op, "name", name, "level", s.level.String())
	return ErrInvalidStrictOperation
}

func nameOf(config *ConnectionConfig) string {
	if config == nil {
		return ""
	}
	return config.Name
}
