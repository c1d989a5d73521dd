// Package fs resolves connection configs from a directory tree in which each
// immediate subdirectory of the root holds one connection descriptor:
//
//	<root>/<name>/config.yaml
//
// The directory name is authoritative for the connection name. The store is
// read-only; any afs URL (plain path, file://, mem://) can serve as the root.
package fs

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/mcp-connconfig/connection"
	"github.com/viant/scy"
	"github.com/viant/scy/cred"
	"gopkg.in/yaml.v3"
)

// SecretLoader loads scy secrets referenced by descriptors.
type SecretLoader interface {
	Load(ctx context.Context, resource *scy.Resource) (*scy.Secret, error)
}

// Store is a read-only filesystem connection.Reader.
type Store struct {
	root           string
	descriptorName string
	fs             afs.Service
	secrets        SecretLoader
	logger         *slog.Logger
}

// Option customises a Store.
type Option func(s *Store)

// WithDescriptorName overrides the descriptor file name (config.yaml).
func WithDescriptorName(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.descriptorName = name
		}
	}
}

// WithSecrets sets the loader used for descriptor secrets resources.
func WithSecrets(secrets SecretLoader) Option {
	return func(s *Store) {
		s.secrets = secrets
	}
}

// WithLogger sets the logger used to report unreadable descriptors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithService overrides the afs service.
func WithService(fs afs.Service) Option {
	return func(s *Store) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// New creates a Store rooted at root.
func New(root string, opts ...Option) *Store {
	ret := &Store{
		root:           root,
		descriptorName: connection.DefaultDescriptorName,
		fs:             afs.New(),
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.secrets == nil {
		ret.secrets = scy.New()
	}
	return ret
}

// Get reads <root>/<name>/<descriptor>. A missing, empty or unparsable descriptor is
// reported as connection.ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) (*connection.ConnectionConfig, error) {
	ret, err := s.load(ctx, name)
	if err != nil {
		s.logger.Debug("error retrieving connection config", "name", name, "error", err)
		return nil, fmt.Errorf("%w: %v", connection.NotFoundError(name), err)
	}
	return ret, nil
}

// List loads every immediate subdirectory of the root, skipping those whose
// descriptor cannot be read. An unreadable root yields an empty result.
func (s *Store) List(ctx context.Context) ([]*connection.ConnectionConfig, error) {
	objects, err := s.fs.List(ctx, s.root)
	if err != nil {
		s.logger.Debug("error retrieving connection configs", "root", s.root, "error", err)
		return []*connection.ConnectionConfig{}, nil
	}
	rootPath := cleanPath(url.Path(s.root))
	var names []string
	for _, object := range objects {
		if !object.IsDir() || cleanPath(url.Path(object.URL())) == rootPath {
			continue
		}
		names = append(names, object.Name())
	}
	sort.Strings(names)

	ret := make([]*connection.ConnectionConfig, 0, len(names))
	for _, name := range names {
		config, err := s.load(ctx, name)
		if err != nil {
			s.logger.Debug("skipping connection config", "name", name, "error", err)
			continue
		}
		ret = append(ret, config)
	}
	return ret, nil
}

func (s *Store) load(ctx context.Context, name string) (*connection.ConnectionConfig, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("invalid connection name %q", name)
	}
	URL := url.Join(s.root, name, s.descriptorName)
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, err
	}
	desc := &descriptor{}
	if err := yaml.Unmarshal(data, desc); err != nil {
		return nil, fmt.Errorf("failed to decode %v: %w", URL, err)
	}
	if desc.isEmpty() {
		return nil, fmt.Errorf("empty descriptor %v", URL)
	}
	ret := desc.config()
	ret.Name = name
	if desc.Secrets != nil && ret.Username == "" && ret.Password == "" {
		if err := s.loadCredentials(ctx, desc.Secrets, ret); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func (s *Store) loadCredentials(ctx context.Context, ref *secretRef, config *connection.ConnectionConfig) error {
	if ref.URL == "" {
		return fmt.Errorf("secrets url cannot be empty")
	}
	resource := scy.NewResource(reflect.TypeOf(&cred.Basic{}), ref.URL, ref.Key)
	secret, err := s.secrets.Load(ctx, resource)
	if err != nil {
		return fmt.Errorf("failed to load secrets %v: %w", ref.URL, err)
	}
	basic, ok := secret.Target.(*cred.Basic)
	if !ok || basic == nil {
		return fmt.Errorf("unsupported secret type %T at %v", secret.Target, ref.URL)
	}
	config.Username = basic.Username
	config.Password = basic.Password
	return nil
}

func cleanPath(p string) string {
	if p == "/" {
		return p
	}
	return strings.TrimRight(p, "/")
}
