// Package server exposes the layout pipeline and the gallery store over HTTP.
//
// Routes:
//
//	GET    /healthz
//	POST   /v1/layout                      document in, lineup out
//	POST   /v1/render?format=svg|png|json  document in, artifact out
//	POST   /v1/galleries
//	GET    /v1/galleries?limit=N
//	GET    /v1/galleries/{id}
//	DELETE /v1/galleries/{id}
//	GET    /v1/galleries/{id}/layout?width=N
//	GET    /v1/galleries/{id}/render?width=N&format=...
//
// Errors are JSON objects {"code": ..., "message": ...}.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/justify/pkg/pipeline"
	"github.com/matzehuels/justify/pkg/store"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 8 << 20

// Config configures a Server.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Defaults applied to requests that do not carry their own.
	Defaults pipeline.Options
}

// Server serves the HTTP API.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. The runner and store are owned by the caller.
func New(cfg Config, runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, runner: runner, store: st, logger: logger}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)

		r.Route("/galleries", func(r chi.Router) {
			r.Post("/", s.handleCreateGallery)
			r.Get("/", s.handleListGalleries)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetGallery)
				r.Delete("/", s.handleDeleteGallery)
				r.Get("/layout", s.handleGalleryLayout)
				r.Get("/render", s.handleGalleryRender)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: "METHOD_NOT_ALLOWED", Message: r.Method + " not allowed"})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
