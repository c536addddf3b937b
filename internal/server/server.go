// Package server exposes the conversion pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz      liveness and build information
//	POST /v1/convert   convert an HTML deck
//
// A convert request is either raw HTML (any non-JSON content type) with
// ?format= and ?title= query parameters, answered with the artifact itself,
// or a JSON [ConvertRequest], answered with a [ConvertResponse] carrying
// every requested artifact base64-encoded.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ramparte/amplifier-stories/pkg/observability"
	"github.com/ramparte/amplifier-stories/pkg/pipeline"
)

// Defaults for Config.
const (
	DefaultAddr    = ":8080"
	DefaultMaxBody = 8 << 20
	DefaultTimeout = 60 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr    string
	MaxBody int64
	Timeout time.Duration
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.MaxBody <= 0 {
		c.MaxBody = DefaultMaxBody
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Server serves conversions through a shared pipeline runner.
type Server struct {
	runner   *pipeline.Runner
	cfg      Config
	defaults pipeline.Options
	logger   *log.Logger
}

// New creates a server. defaults supplies the options a request does not
// set: workers, theme and PNG scale.
func New(runner *pipeline.Runner, cfg Config, defaults pipeline.Options, logger *log.Logger) *Server {
	cfg.setDefaults()
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{
		runner:   runner,
		cfg:      cfg,
		defaults: defaults,
		logger:   logger.WithPrefix("http"),
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.Timeout))
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/convert", s.handleConvert)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errc
	return nil
}

// requestID takes X-Request-ID from the request or generates a UUID, and
// stores it where middleware.GetReqID finds it.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// observe reports every request to the HTTP hooks and the log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", d)
	})
}
