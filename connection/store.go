package connection

import "context"

// Reader resolves connection configs by name.
type Reader interface {
	// Get returns the named config or an error wrapping ErrNotFound.
	Get(ctx context.Context, name string) (*ConnectionConfig, error)
	// List returns every visible config.
	List(ctx context.Context) ([]*ConnectionConfig, error)
}

// Store is a Reader that also supports mutations.
type Store interface {
	Reader
	// Add creates a config; a duplicate name yields ErrAlreadyExists.
	Add(ctx context.Context, config *ConnectionConfig) (*ConnectionConfig, error)
	// Edit replaces an existing config; a missing name yields ErrNotFound.
	Edit(ctx context.Context, config *ConnectionConfig) (*ConnectionConfig, error)
	// Delete removes a config; a missing name yields ErrNotFound.
	Delete(ctx context.Context, name string) error
}
