package introspect

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/c360studio/semreg/instance"
	"github.com/nats-io/nats.go"
)

// Service answers snapshot requests over NATS. Each request on the snapshot
// subject gets the module's current Report as JSON.
type Service struct {
	nc     *nats.Conn
	module *instance.Module
	prefix string
	logger *slog.Logger
	sub    *nats.Subscription
}

// NewService creates a snapshot service for one module.
func NewService(nc *nats.Conn, m *instance.Module, prefix string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		nc:     nc,
		module: m,
		prefix: prefix,
		logger: logger,
	}
}

// Start subscribes to the snapshot subject. It returns once the subscription
// is flushed to the server.
func (s *Service) Start(ctx context.Context) error {
	if s.nc == nil {
		return nil // Skip serving if no NATS connection (graceful degradation)
	}

	subject := SnapshotSubject(s.prefix)
	sub, err := s.nc.Subscribe(subject, s.handleSnapshot)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	s.sub = sub

	if err := s.nc.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("flush subscription: %w", err)
	}

	s.logger.Info("Introspection service started", slog.String("subject", subject))
	return nil
}

// Stop drops the snapshot subscription. In-flight requests finish on their
// own; there is nothing to drain.
func (s *Service) Stop() error {
	if s.sub == nil {
		return nil
	}
	if err := s.sub.Unsubscribe(); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	s.sub = nil
	return nil
}

func (s *Service) handleSnapshot(msg *nats.Msg) {
	report := Snapshot(s.module)

	data, err := json.Marshal(report)
	if err != nil {
		s.logger.Error("Failed to marshal snapshot", slog.String("error", err.Error()))
		return
	}

	if err := msg.Respond(data); err != nil {
		s.logger.Warn("Failed to answer snapshot request", slog.String("error", err.Error()))
	}
}
