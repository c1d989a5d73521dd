package sidecar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/mcp-connconfig/connection"
	"github.com/viant/mcp-connconfig/connection/memory"
	"github.com/viant/mcp-connconfig/connection/remote"
)

// TestRoundTrip drives a Lenient resolver through the remote client against
// the handler backed by an in-memory store.
func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(New(memory.New(), nil))
	defer srv.Close()

	resolver, err := connection.New(connection.Lenient, nil, remote.New(srv.URL))
	require.NoError(t, err)

	list, err := resolver.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	foo := &connection.ConnectionConfig{Name: "foo", URL: "http://foo", ServiceType: "rest", Properties: map[string]string{"key1": "value1"}}
	created, err := resolver.Add(ctx, foo)
	require.NoError(t, err)
	assert.Equal(t, foo, created)

	_, err = resolver.Add(ctx, foo)
	assert.ErrorIs(t, err, connection.ErrAlreadyExists)

	got, err := resolver.Get(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, foo, got)

	edited := foo.Clone()
	edited.Password = "rotated"
	updated, err := resolver.Edit(ctx, edited)
	require.NoError(t, err)
	assert.Equal(t, edited, updated)

	_, err = resolver.Edit(ctx, &connection.ConnectionConfig{Name: "bar"})
	assert.ErrorIs(t, err, connection.ErrNotFound)

	list, err = resolver.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []*connection.ConnectionConfig{edited}, list)

	require.NoError(t, resolver.Delete(ctx, "foo"))
	assert.ErrorIs(t, resolver.Delete(ctx, "foo"), connection.ErrNotFound)
	_, err = resolver.Get(ctx, "foo")
	assert.ErrorIs(t, err, connection.ErrNotFound)
}

func TestRoundTrip_EscapedNames(t *testing.T) {
	ctx := context.Background()
	srv := httptest.NewServer(New(memory.New(), nil))
	defer srv.Close()
	store := remote.New(srv.URL)

	for _, name := range []string{"a/b", "a b", "a?b", "a%2Fb", "x/y z"} {
		t.Run(name, func(t *testing.T) {
			config := &connection.ConnectionConfig{Name: name, URL: "http://" + strings.ReplaceAll(name, "/", "-")}
			_, err := store.Add(ctx, config)
			require.NoError(t, err)

			got, err := store.Get(ctx, name)
			require.NoError(t, err)
			assert.Equal(t, config, got)

			require.NoError(t, store.Delete(ctx, name))
			_, err = store.Get(ctx, name)
			assert.ErrorIs(t, err, connection.ErrNotFound)
		})
	}
}

func TestHandler_Status(t *testing.T) {
	handler := New(memory.New(&connection.ConnectionConfig{Name: "foo"}), nil)

	testCases := []struct {
		name   string
		method string
		path   string
		body   string
		expect int
	}{
		{name: "get", method: http.MethodGet, path: "/config/foo", expect: http.StatusOK},
		{name: "get missing", method: http.MethodGet, path: "/config/bar", expect: http.StatusNotFound},
		{name: "list", method: http.MethodGet, path: "/config", expect: http.StatusOK},
		{name: "add", method: http.MethodPost, path: "/config", body: `{"name":"bar"}`, expect: http.StatusCreated},
		{name: "add duplicate", method: http.MethodPost, path: "/config", body: `{"name":"foo"}`, expect: http.StatusConflict},
		{name: "add malformed", method: http.MethodPost, path: "/config", body: `{`, expect: http.StatusBadRequest},
		{name: "add nameless", method: http.MethodPost, path: "/config", body: `{"url":"x"}`, expect: http.StatusBadRequest},
		{name: "edit missing", method: http.MethodPut, path: "/config", body: `{"name":"baz"}`, expect: http.StatusNotFound},
		{name: "delete missing", method: http.MethodDelete, path: "/config/baz", expect: http.StatusNotFound},
		{name: "delete", method: http.MethodDelete, path: "/config/foo", expect: http.StatusOK},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tc.expect, rec.Code, rec.Body.String())
		})
	}
}
