package metrics

import "github.com/c360studio/semreg/instance"

// Collector feeds instance lifecycle events into the Prometheus counters.
// It implements instance.Observer; install it with SetObserver, or fan it in
// alongside other observers through MultiObserver.
type Collector struct{}

// NewCollector registers the collectors on first call and returns an
// observer that updates them.
func NewCollector() *Collector {
	register()
	return &Collector{}
}

// ObserveInstance updates the counters for one lifecycle event. Counts
// aggregate across modules when the collector observes more than one.
func (c *Collector) ObserveInstance(_ *instance.Module, e instance.Event) {
	switch e.Kind {
	case instance.EventConstructed:
		constructedTotal.Inc()
	case instance.EventFinalized:
		finalizedTotal.Inc()
	case instance.EventGateLocked:
		gateLocked.Set(1)
	case instance.EventGateUnlocked:
		gateLocked.Set(0)
	case instance.EventViolation:
		violationsTotal.Inc()
	case instance.EventShutdown:
		shutdownsTotal.Inc()
	}
}
