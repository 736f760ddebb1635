package introspect

import (
	"encoding/json"
	"log/slog"

	"github.com/c360studio/semreg/instance"
	"github.com/nats-io/nats.go"
)

// Publisher mirrors instance lifecycle events onto NATS subjects. It
// implements instance.Observer; install it with SetObserver, or fan it in
// alongside other observers through MultiObserver.
type Publisher struct {
	nc     *nats.Conn
	prefix string
	logger *slog.Logger
}

// NewPublisher creates a publisher for the given subject prefix. A nil
// connection yields a publisher that drops every event.
func NewPublisher(nc *nats.Conn, prefix string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		nc:     nc,
		prefix: prefix,
		logger: logger,
	}
}

// ObserveInstance publishes one lifecycle event. Failures are logged and
// dropped; lifecycle notification is advisory and never blocks the module.
func (p *Publisher) ObserveInstance(m *instance.Module, e instance.Event) {
	if p.nc == nil {
		return // Skip publishing if no NATS connection (graceful degradation)
	}

	ev := newEvent(m, e)
	data, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("Failed to marshal lifecycle event",
			slog.String("kind", ev.Kind),
			slog.String("error", err.Error()))
		return
	}

	if err := p.nc.Publish(EventSubject(p.prefix, e.Kind), data); err != nil {
		p.logger.Warn("Failed to publish lifecycle event",
			slog.String("kind", ev.Kind),
			slog.String("error", err.Error()))
	}
}
