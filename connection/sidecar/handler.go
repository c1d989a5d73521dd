// Package sidecar serves the connection config HTTP contract over any
// connection.Store. It is the server counterpart of package remote.
package sidecar

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/viant/mcp-connconfig/connection"
)

// Handler routes /config requests to a store.
type Handler struct {
	store  connection.Store
	router chi.Router
	logger *slog.Logger
}

// New creates a Handler for store. A nil logger falls back to slog.Default.
func New(store connection.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	ret := &Handler{store: store, logger: logger}
	r := chi.NewRouter()
	r.Get("/config", ret.list)
	r.Post("/config", ret.add)
	r.Put("/config", ret.edit)
	r.Get("/config/{name}", ret.get)
	r.Delete("/config/{name}", ret.delete)
	ret.router = r
	return ret
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Handle is ServeHTTP as a plain function, for muxes taking http.HandlerFunc.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	config, err := h.store.Get(r.Context(), name)
	if err != nil {
		h.writeError(w, "get", name, err)
		return
	}
	h.writeJSON(w, http.StatusOK, config)
}

// nameParam returns the decoded {name} segment. chi matches on RawPath when
// the client escaped a reserved character such as '/', leaving it encoded.
func nameParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name
	}
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	configs, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, "list", "", err)
		return
	}
	if configs == nil {
		configs = []*connection.ConnectionConfig{}
	}
	h.writeJSON(w, http.StatusOK, configs)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	config, ok := h.readConfig(w, r)
	if !ok {
		return
	}
	created, err := h.store.Add(r.Context(), config)
	if err != nil {
		h.writeError(w, "add", config.Name, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	config, ok := h.readConfig(w, r)
	if !ok {
		return
	}
	updated, err := h.store.Edit(r.Context(), config)
	if err != nil {
		h.writeError(w, "edit", config.Name, err)
		return
	}
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	name := nameParam(r)
	if err := h.store.Delete(r.Context(), name); err != nil {
		h.writeError(w, "delete", name, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) readConfig(w http.ResponseWriter, r *http.Request) (*connection.ConnectionConfig, bool) {
	config := &connection.ConnectionConfig{}
	if err := json.NewDecoder(r.Body).Decode(config); err != nil {
		http.Error(w, "Invalid connection config: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return config, true
}

func (h *Handler) writeError(w http.ResponseWriter, op, name string, err error) {
	switch {
	case errors.Is(err, connection.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, connection.ErrAlreadyExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, connection.ErrInvalidConfig):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, connection.ErrInvalidStrictOperation):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		h.logger.Error("connection config operation failed", "op", op, "name", name, "error", err)
		http.Error(w, "Failed to "+op+" connection config", http.StatusInternalServerError)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
