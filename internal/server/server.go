// Package server exposes the converter over HTTP.
//
// Routes:
//
//	POST   /v1/elements              graph → elements
//	POST   /v1/graph?id=             elements → graph
//	GET    /v1/graphs                list stored graphs
//	PUT    /v1/graphs/{id}           store a graph
//	GET    /v1/graphs/{id}           fetch a stored graph
//	GET    /v1/graphs/{id}/elements  fetch a stored graph as elements
//	DELETE /v1/graphs/{id}           delete a stored graph
//	GET    /healthz                  liveness and build info
//	GET    /metrics                  Prometheus metrics (when configured)
//
// Request and response bodies are JSON; request bodies may also be YAML when
// sent with a YAML content type. Errors are returned as {"code", "error"}.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/orbifold/cytoconv/pkg/pipeline"
	"github.com/orbifold/cytoconv/pkg/store"
)

// Default limits.
const (
	DefaultMaxBodyBytes    = 10 << 20
	DefaultShutdownTimeout = 5 * time.Second
	DefaultReadTimeout     = 30 * time.Second
)

// Options configure a Server. Zero values select defaults.
type Options struct {
	Runner          *pipeline.Runner
	Store           store.Store
	Logger          *log.Logger
	Metrics         http.Handler
	MaxBodyBytes    int64
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Server serves conversions and stored graphs.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	metrics http.Handler

	maxBody         int64
	readTimeout     time.Duration
	shutdownTimeout time.Duration

	router chi.Router
}

// New creates a server. A nil Store uses a fresh MemoryStore and a nil Runner
// converts without caching.
func New(opts Options) *Server {
	s := &Server{
		runner:          opts.Runner,
		store:           opts.Store,
		logger:          opts.Logger,
		metrics:         opts.Metrics,
		maxBody:         opts.MaxBodyBytes,
		readTimeout:     opts.ReadTimeout,
		shutdownTimeout: opts.ShutdownTimeout,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.store == nil {
		s.store = store.NewMemoryStore()
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	if s.readTimeout <= 0 {
		s.readTimeout = DefaultReadTimeout
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = DefaultShutdownTimeout
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealthz)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/elements", s.handleElements)
		r.Post("/graph", s.handleGraph)

		r.Route("/graphs", func(r chi.Router) {
			r.Get("/", s.handleListGraphs)
			r.Route("/{id}", func(r chi.Router) {
				r.Put("/", s.handlePutGraph)
				r.Get("/", s.handleGetGraph)
				r.Delete("/", s.handleDeleteGraph)
				r.Get("/elements", s.handleGraphElements)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: s.readTimeout,
		ReadTimeout:       s.readTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- fmt.Errorf("http server: %w", err)
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return <-errc
}
