// Package statusapi serves process status, stop requests and Prometheus
// metrics over HTTP.
package statusapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ibeckermayer/xbot/internal/app"
	"github.com/ibeckermayer/xbot/internal/metrics"
)

// Backend is the part of the app the API exposes.
type Backend interface {
	Status() app.Status
	Stop(name string) error
	Ping(ctx context.Context) error
}

// Server is the status HTTP server.
type Server struct {
	backend    Backend
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New builds the router. m may be nil, in which case /metrics is not
// served.
func New(addr string, backend Backend, m *metrics.Metrics, logger zerolog.Logger) *Server {
	s := &Server{
		backend: backend,
		metrics: m,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
	}

	r.Get("/healthz", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Post("/processes/{name}/stop", s.handleStop)
	if m != nil {
		r.Method(http.MethodGet, "/metrics", m.Handler())
	}
	s.router = r

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("status server listening")
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info().Msg("status server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.backend.Status())
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.backend.Stop(name); err != nil {
		if errors.Is(err, app.ErrNoProcess) {
			writeError(w, http.StatusNotFound, "not_running")
			return
		}
		writeError(w, http.StatusInternalServerError, "stop_failed")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"stopping": name})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
