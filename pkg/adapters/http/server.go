// Package http exposes a tree over HTTP: serialized action calls are
// applied with POST /actions, the recorded log and the current snapshot are
// readable, and Prometheus metrics are served when a registry is attached.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/action"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server applies serialized action calls to a hosted tree.
//
// memtree trees are single-threaded, so the server serializes all applies
// behind a mutex; reads of the snapshot take the same lock.
type Server struct {
	mu     sync.Mutex
	root   ports.Node
	store  ports.ActionStore
	logger *slog.Logger
	reg    *prometheus.Registry
}

// Option configures the Server.
type Option func(*Server)

// WithStore exposes the recorded action log at GET /actions.
func WithStore(store ports.ActionStore) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsRegistry exposes the registry at GET /metrics.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.reg = reg
	}
}

// NewHandler creates the HTTP handler hosting the tree rooted at root.
func NewHandler(root ports.Node, opts ...Option) http.Handler {
	s := &Server{
		root:   root,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/actions", s.applyAction)
	r.Get("/actions", s.listActions)
	r.Get("/tree", s.getTree)
	r.Get("/health", s.getHealth)
	if s.reg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) applyAction(w http.ResponseWriter, r *http.Request) {
	var call domain.SerializedActionCall
	if err := json.NewDecoder(r.Body).Decode(&call); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("apply: invalid request body", "err", err)
		return
	}
	if call.Name == "" {
		http.Error(w, "Action name is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	result, err := action.Apply(s.root, call)
	s.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		s.logger.Warn("apply failed", "action", call.Name, "path", call.Path, "err", err)
		return
	}

	s.logger.Info("action applied", "action", call.Name, "path", call.Path)
	writeJSON(w, s.logger, map[string]any{"result": result})
}

func (s *Server) listActions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "No action store configured", http.StatusNotFound)
		return
	}
	calls, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.logger.Error("list actions failed", "err", err)
		return
	}
	writeJSON(w, s.logger, calls)
}

func (s *Server) getTree(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snapshot, err := json.Marshal(s.root.StoredValue())
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.logger.Error("snapshot failed", "err", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(snapshot)
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

// statusFor maps dispatch failures onto HTTP status codes.
func statusFor(err error) int {
	var invalidPath *domain.InvalidPathError
	var unknownAction *domain.UnknownActionError
	var deadNode *domain.DeadNodeError
	var invalidArg *domain.InvalidArgumentError
	var crossTree *domain.CrossTreeReferenceError
	var notSerializable *domain.NotSerializableError

	switch {
	case errors.As(err, &invalidPath), errors.As(err, &unknownAction):
		return http.StatusNotFound
	case errors.As(err, &deadNode):
		return http.StatusGone
	case errors.As(err, &invalidArg), errors.As(err, &crossTree), errors.As(err, &notSerializable):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
