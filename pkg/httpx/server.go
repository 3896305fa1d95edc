// Package httpx provides shared HTTP server plumbing: a hardened http.Server
// wrapper with graceful shutdown, JSON response helpers, health check handlers,
// and logging/recovery middleware.
package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Server wraps http.Server with hardened timeouts and graceful shutdown.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a Server listening on addr with the given handler.
// A nil logger falls back to slog.Default().
func NewServer(addr string, handler http.Handler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger,
	}
}

// Start begins serving and blocks until the server is stopped.
// Returns nil when the server was shut down via Stop.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.server.Addr)

	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts the server down, waiting up to timeout for in-flight
// requests to complete before forcing the listener closed.
func (s *Server) Stop(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("http server stopping")
	return s.server.Shutdown(ctx)
}
