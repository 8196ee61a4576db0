// Package api serves stored dock layouts over HTTP.
//
// Routes:
//
//	GET    /health
//	GET    /api/layouts/{name}        snapshot JSON
//	PUT    /api/layouts/{name}        validate and store a snapshot
//	DELETE /api/layouts/{name}
//	GET    /api/layouts/{name}/dot    dock tree as Graphviz DOT
//	GET    /api/layouts/{name}/svg    ?view=tree (default) or ?view=wireframe
//
// Errors are JSON objects {"code", "error"} whose status follows the code.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/dockpane/pkg/dock"
	"github.com/matzehuels/dockpane/pkg/persist"
)

// maxBody limits the size of an uploaded snapshot.
const maxBody = 1 << 20

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithFrame sets the splitter width and caption height used when layouts
// are rebuilt for validation and rendering.
func WithFrame(splitterWidth, captionHeight int) Option {
	return func(s *Server) { s.splitterWidth, s.captionHeight = splitterWidth, captionHeight }
}

// Server is the HTTP API. It is an http.Handler.
type Server struct {
	router  chi.Router
	layouts *persist.Adapter
	logger  *log.Logger

	splitterWidth int
	captionHeight int
}

// NewServer creates the server over a layout adapter.
func NewServer(layouts *persist.Adapter, opts ...Option) *Server {
	s := &Server{
		layouts:       layouts,
		logger:        log.Default(),
		splitterWidth: dock.DefaultSplitterWidth,
		captionHeight: 20,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))

	r.Get("/health", s.handleHealth)

	r.Route("/api/layouts/{name}", func(r chi.Router) {
		r.Get("/", s.handleGetLayout)
		r.Put("/", s.handlePutLayout)
		r.Delete("/", s.handleDeleteLayout)
		r.Get("/dot", s.handleDOT)
		r.Get("/svg", s.handleSVG)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// Serve runs h on addr until ctx is cancelled, then shuts down gracefully
// within timeout.
func Serve(ctx context.Context, addr string, h http.Handler, timeout time.Duration, logger *log.Logger) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
