// Package memory provides a concurrency-safe in-process connection.Store used
// for embedding and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/mcp-connconfig/connection"
	"github.com/viant/mcp-protocol/syncmap"
)

// Store keeps configs in a concurrent map. Reads go straight to the map;
// mutations are serialised so existence checks and writes are atomic.
type Store struct {
	configs *syncmap.Map[string, *connection.ConnectionConfig]
	mux     sync.Mutex
}

// New creates a Store seeded with configs; later duplicates replace earlier ones.
func New(configs ...*connection.ConnectionConfig) *Store {
	ret := &Store{configs: syncmap.NewMap[string, *connection.ConnectionConfig]()}
	for _, config := range configs {
		if config == nil || config.Name == "" {
			continue
		}
		ret.configs.Put(config.Name, config.Clone())
	}
	return ret
}

// Get returns a copy of the named config.
func (s *Store) Get(_ context.Context, name string) (*connection.ConnectionConfig, error) {
	config, ok := s.configs.Get(name)
	if !ok {
		return nil, connection.NotFoundError(name)
	}
	return config.Clone(), nil
}

// List returns copies of all configs ordered by name.
func (s *Store) List(_ context.Context) ([]*connection.ConnectionConfig, error) {
	values := s.configs.Values()
	ret := make([]*connection.ConnectionConfig, 0, len(values))
	for _, config := range values {
		ret = append(ret, config.Clone())
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret, nil
}

// Add stores a new config.
func (s *Store) Add(_ context.Context, config *connection.ConnectionConfig) (*connection.ConnectionConfig, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.configs.Get(config.Name); ok {
		return nil, connection.AlreadyExistsError(config.Name)
	}
	s.configs.Put(config.Name, config.Clone())
	return config.Clone(), nil
}

// Edit replaces an existing config.
func (s *Store) Edit(_ context.Context, config *connection.ConnectionConfig) (*connection.ConnectionConfig, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.configs.Get(config.Name); !ok {
		return nil, connection.NotFoundError(config.Name)
	}
	s.configs.Put(config.Name, config.Clone())
	return config.Clone(), nil
}

// Delete removes a config.
func (s *Store) Delete(_ context.Context, name string) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.configs.Get(name); !ok {
		return connection.NotFoundError(name)
	}
	s.configs.Delete(name)
	return nil
}
