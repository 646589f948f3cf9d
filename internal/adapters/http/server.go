package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/commit-coordinator/internal/platform/config"
)

const defaultShutdownTimeout = 10 * time.Second

// drainHook is work that must finish once no request can reach the
// service any more, such as commits scheduled by the last requests.
type drainHook struct {
	name string
	fn   func(context.Context) error
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithDrainHook registers fn to run during Shutdown after in-flight
// requests have completed. Hooks run in registration order, and a failing
// hook does not stop the ones after it.
func WithDrainHook(name string, fn func(context.Context) error) ServerOption {
	return func(s *Server) {
		s.hooks = append(s.hooks, drainHook{name: name, fn: fn})
	}
}

// Server wraps http.Server with graceful shutdown support.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
	hooks  []drainHook
}

// NewServer creates a new HTTP server from the given config and handler.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger, opts ...ServerOption) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		srv: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins listening and serving HTTP requests.
// It blocks until the server stops. Returns nil on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", slog.String("addr", s.srv.Addr))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight requests, then
// runs the drain hooks, all within the ctx deadline. If ctx has no
// deadline, a default 10-second timeout is applied. It is safe to call on
// a server whose Start has already failed.
func (s *Server) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultShutdownTimeout)
		defer cancel()
	}

	s.logger.Info("shutting down HTTP server")
	var errs []error
	if err := s.srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	for _, h := range s.hooks {
		start := time.Now()
		if err := h.fn(ctx); err != nil {
			s.logger.Error("drain hook failed",
				slog.String("hook", h.name),
				slog.Any("error", err),
			)
			errs = append(errs, fmt.Errorf("drain hook %s: %w", h.name, err))
			continue
		}
		s.logger.Info("drain hook completed",
			slog.String("hook", h.name),
			slog.Duration("duration", time.Since(start)),
		)
	}
	return errors.Join(errs...)
}

// Addr returns the server's configured listen address string.
func (s *Server) Addr() string {
	return s.srv.Addr
}
