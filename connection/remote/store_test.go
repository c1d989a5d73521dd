package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/mcp-connconfig/connection"
)

type expectation struct {
	method string
	path   string
	status int
	body   string
}

// newSidecar returns a server replying per expectation and recording request bodies.
func newSidecar(t *testing.T, exp expectation, received *[]byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, exp.method, r.Method)
		assert.Equal(t, exp.path, r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		if received != nil {
			*received, _ = io.ReadAll(r.Body)
		}
		if exp.body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(exp.status)
		_, _ = w.Write([]byte(exp.body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func sampleConfig() *connection.ConnectionConfig {
	return &connection.ConnectionConfig{
		Name:        "foo",
		URL:         "https://foo.example.com",
		Username:    "user",
		Password:    "secret",
		ServiceType: "rest",
		Properties:  map[string]string{"a": "1", "b": "2"},
	}
}

func encode(t *testing.T, v any) string {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestStore_Get(t *testing.T) {
	ctx := context.Background()
	config := sampleConfig()

	testCases := []struct {
		name        string
		status      int
		body        string
		expect      *connection.ConnectionConfig
		expectError error
		upstream    bool
	}{
		{name: "ok", status: http.StatusOK, body: encode(t, config), expect: config},
		{name: "not found", status: http.StatusNotFound, expectError: connection.ErrNotFound},
		{name: "bad request", status: http.StatusBadRequest, upstream: true},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", upstream: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newSidecar(t, expectation{method: http.MethodGet, path: "/config/foo", status: tc.status, body: tc.body}, nil)
			got, err := New(srv.URL).Get(ctx, "foo")
			switch {
			case tc.expectError != nil:
				assert.ErrorIs(t, err, tc.expectError)
			case tc.upstream:
				require.Error(t, err)
				var upstream *connection.UpstreamError
				require.ErrorAs(t, err, &upstream)
				assert.Equal(t, tc.status, upstream.StatusCode)
				assert.Equal(t, "foo", upstream.Name)
				assert.Contains(t, err.Error(), "foo")
				assert.NotErrorIs(t, err, connection.ErrNotFound)
			default:
				require.NoError(t, err)
				assert.Equal(t, tc.expect, got)
			}
		})
	}
}

func TestStore_List(t *testing.T) {
	ctx := context.Background()
	foo := sampleConfig()
	bar := sampleConfig()
	bar.Name = "bar"
	baz := sampleConfig()
	baz.Name = "baz"

	testCases := []struct {
		name   string
		status int
		body   string
		expect []*connection.ConnectionConfig
	}{
		{name: "ok", status: http.StatusOK, body: encode(t, []*connection.ConnectionConfig{foo, bar, baz}), expect: []*connection.ConnectionConfig{foo, bar, baz}},
		{name: "absent body", status: http.StatusOK, expect: []*connection.ConnectionConfig{}},
		{name: "not found", status: http.StatusNotFound, expect: []*connection.ConnectionConfig{}},
		{name: "server error", status: http.StatusInternalServerError, expect: []*connection.ConnectionConfig{}},
		{name: "malformed", status: http.StatusOK, body: "{", expect: []*connection.ConnectionConfig{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newSidecar(t, expectation{method: http.MethodGet, path: "/config", status: tc.status, body: tc.body}, nil)
			got, err := New(srv.URL).List(ctx)
			require.NoError(t, err)
			assert.ElementsMatch(t, tc.expect, got)
			assert.NotNil(t, got)
		})
	}
}

func TestStore_ListUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	URL := srv.URL
	srv.Close()

	got, err := New(URL).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_Add(t *testing.T) {
	ctx := context.Background()
	config := sampleConfig()

	testCases := []struct {
		name        string
		status      int
		body        string
		expectError error
		upstream    bool
	}{
		{name: "created", status: http.StatusCreated, body: encode(t, config)},
		{name: "ok", status: http.StatusOK, body: encode(t, config)},
		{name: "created without body", status: http.StatusCreated},
		{name: "conflict", status: http.StatusConflict, expectError: connection.ErrAlreadyExists},
		{name: "server error", status: http.StatusInternalServerError, upstream: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var received []byte
			srv := newSidecar(t, expectation{method: http.MethodPost, path: "/config", status: tc.status, body: tc.body}, &received)
			got, err := New(srv.URL).Add(ctx, config)
			assert.JSONEq(t, encode(t, config), string(received))
			switch {
			case tc.expectError != nil:
				assert.ErrorIs(t, err, tc.expectError)
				assert.Contains(t, err.Error(), "foo")
			case tc.upstream:
				assert.True(t, connection.IsUpstream(err))
			case tc.body == "":
				require.NoError(t, err)
				assert.Equal(t, &connection.ConnectionConfig{Name: config.Name}, got)
			default:
				require.NoError(t, err)
				assert.Equal(t, config, got)
			}
		})
	}
}

func TestStore_Edit(t *testing.T) {
	ctx := context.Background()
	config := sampleConfig()

	testCases := []struct {
		name        string
		status      int
		body        string
		expectError error
		upstream    bool
	}{
		{name: "ok", status: http.StatusOK, body: encode(t, config)},
		{name: "ok without body", status: http.StatusOK},
		{name: "not found", status: http.StatusNotFound, expectError: connection.ErrNotFound},
		{name: "conflict is upstream", status: http.StatusConflict, upstream: true},
		{name: "server error", status: http.StatusInternalServerError, upstream: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var received []byte
			srv := newSidecar(t, expectation{method: http.MethodPut, path: "/config", status: tc.status, body: tc.body}, &received)
			got, err := New(srv.URL).Edit(ctx, config)
			assert.JSONEq(t, encode(t, config), string(received))
			switch {
			case tc.expectError != nil:
				assert.ErrorIs(t, err, tc.expectError)
			case tc.upstream:
				assert.True(t, connection.IsUpstream(err))
			case tc.body == "":
				require.NoError(t, err)
				assert.Equal(t, &connection.ConnectionConfig{Name: config.Name}, got)
			default:
				require.NoError(t, err)
				assert.Equal(t, config, got)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		status      int
		expectError error
		upstream    bool
	}{
		{name: "ok", status: http.StatusOK},
		{name: "no content", status: http.StatusNoContent},
		{name: "not found", status: http.StatusNotFound, expectError: connection.ErrNotFound},
		{name: "server error", status: http.StatusInternalServerError, upstream: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newSidecar(t, expectation{method: http.MethodDelete, path: "/config/foo", status: tc.status}, nil)
			err := New(srv.URL).Delete(ctx, "foo")
			switch {
			case tc.expectError != nil:
				assert.ErrorIs(t, err, tc.expectError)
			case tc.upstream:
				assert.True(t, connection.IsUpstream(err))
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestStore_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	URL := srv.URL
	srv.Close()

	store := New(URL)
	_, err := store.Get(context.Background(), "foo")
	require.Error(t, err)
	assert.NotErrorIs(t, err, connection.ErrNotFound)
	assert.False(t, connection.IsUpstream(err))
}
