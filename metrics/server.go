package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves the Prometheus exposition endpoint.
type Server struct {
	addr     string
	logger   *slog.Logger
	listener net.Listener
	server   *http.Server
}

// NewServer creates an exposition server for the given listen address.
func NewServer(addr string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		addr:   addr,
		logger: logger,
	}
}

// Start listens on the configured address and serves /metrics. The listen
// happens synchronously so a bad address fails here rather than in the serve
// goroutine.
func (s *Server) Start(_ context.Context) error {
	if s.addr == "" {
		return nil
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.listener = listener

	register()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Metrics server error", slog.String("error", err.Error()))
		}
	}()

	s.logger.Info("Metrics server started", slog.String("addr", s.Addr()))
	return nil
}

// Addr returns the bound listen address, useful when the configured address
// picked an ephemeral port. Empty until Start succeeds.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop shuts the exposition server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown metrics server: %w", err)
	}
	s.server = nil
	s.listener = nil
	return nil
}
