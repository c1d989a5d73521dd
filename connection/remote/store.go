// Package remote proxies connection config CRUD to a sidecar over HTTP.
//
//	GET    /config/{name}
//	GET    /config
//	POST   /config
//	PUT    /config
//	DELETE /config/{name}
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/viant/mcp-connconfig/connection"
)

// ConfigPath is the sidecar resource path.
const ConfigPath = "/config"

// RequestIDHeader correlates a call with sidecar logs.
const RequestIDHeader = "X-Request-Id"

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 1024

// Store is a connection.Store backed by the sidecar config endpoint. Calls are
// synchronous and never retried.
type Store struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customises a Store.
type Option func(s *Store)

// WithHTTPClient sets the client used for sidecar calls.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Store) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Store for a sidecar rooted at baseURL, e.g. http://localhost:8084
func New(baseURL string, opts ...Option) *Store {
	ret := &Store{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: connection.DefaultTimeout},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Get fetches a config by name; 404 maps to connection.ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) (*connection.ConnectionConfig, error) {
	resp, err := s.do(ctx, http.MethodGet, s.namedURL(name), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get connection config %v: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, connection.NotFoundError(name)
	case !isSuccess(resp.StatusCode):
		return nil, upstreamError("get", name, resp)
	}
	ret := &connection.ConnectionConfig{}
	if err := decode(resp.Body, ret); err != nil {
		return nil, fmt.Errorf("failed to decode connection config %v: %w", name, err)
	}
	if ret.Name == "" {
		ret.Name = name
	}
	return ret, nil
}

// List fetches all configs. Any failure, including an unreachable sidecar,
// yields an empty result.
func (s *Store) List(ctx context.Context) ([]*connection.ConnectionConfig, error) {
	ret := []*connection.ConnectionConfig{}
	resp, err := s.do(ctx, http.MethodGet, s.baseURL+ConfigPath, nil)
	if err != nil {
		s.logger.Debug("error retrieving connection configs", "error", err)
		return ret, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		s.logger.Debug("error retrieving connection configs", "status", resp.StatusCode)
		return ret, nil
	}
	var configs []*connection.ConnectionConfig
	if err := decode(resp.Body, &configs); err != nil {
		s.logger.Debug("error decoding connection configs", "error", err)
		return ret, nil
	}
	for _, config := range configs {
		if config != nil {
			ret = append(ret, config)
		}
	}
	return ret, nil
}

// Add creates a config; 409 maps to connection.ErrAlreadyExists.
func (s *Store) Add(ctx context.Context, config *connection.ConnectionConfig) (*connection.ConnectionConfig, error) {
	return s.write(ctx, "add", http.MethodPost, config)
}

// Edit replaces a config; 404 maps to connection.ErrNotFound.
func (s *Store) Edit(ctx context.Context, config *connection.ConnectionConfig) (*connection.ConnectionConfig, error) {
	return s.write(ctx, "edit", http.MethodPut, config)
}

// Delete removes a config; 404 maps to connection.ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	resp, err := s.do(ctx, http.MethodDelete, s.namedURL(name), nil)
	if err != nil {
		return fmt.Errorf("failed to delete connection config %v: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return connection.NotFoundError(name)
	case !isSuccess(resp.StatusCode):
		return upstreamError("delete", name, resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (s *Store) write(ctx context.Context, op, method string, config *connection.ConnectionConfig) (*connection.ConnectionConfig, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: connection config cannot be nil", connection.ErrInvalidConfig)
	}
	body, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("failed to encode connection config %v: %w", config.Name, err)
	}
	resp, err := s.do(ctx, method, s.baseURL+ConfigPath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to %s connection config %v: %w", op, config.Name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case method == http.MethodPost && resp.StatusCode == http.StatusConflict:
		return nil, connection.AlreadyExistsError(config.Name)
	case method == http.MethodPut && resp.StatusCode == http.StatusNotFound:
		return nil, connection.NotFoundError(config.Name)
	case !isSuccess(resp.StatusCode):
		return nil, upstreamError(op, config.Name, resp)
	}
	ret := &connection.ConnectionConfig{}
	if err := decode(resp.Body, ret); err != nil {
		return nil, fmt.Errorf("failed to decode connection config %v: %w", config.Name, err)
	}
	if ret.Name == "" {
		ret.Name = config.Name
	}
	return ret, nil
}

func (s *Store) do(ctx context.Context, method, URL string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, URL, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	s.logger.Debug("sidecar request", "method", method, "url", URL, "requestId", requestID)
	return s.httpClient.Do(req)
}

func (s *Store) namedURL(name string) string {
	return s.baseURL + ConfigPath + "/" + url.PathEscape(name)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

// decode reads JSON into target; an absent body leaves target untouched.
func decode(body io.Reader, target any) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, target)
}

func upstreamError(op, name string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &connection.UpstreamError{
		Op:         op,
		Name:       name,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(data)),
	}
}
