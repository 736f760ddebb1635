// Package metrics exposes registry lifecycle counters through Prometheus.
// A Collector translates instance events into counter updates, and a Server
// serves the exposition endpoint. Collectors land in the default Prometheus
// registry so one scrape covers everything in the process.
package metrics

import (
	"sync"

	"github.com/c360studio/semreg/instance"
	"github.com/c360studio/semreg/typeinfo"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	constructedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "semreg",
		Subsystem: "instance",
		Name:      "constructed_total",
		Help:      "Instances constructed across all observed modules.",
	})

	finalizedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "semreg",
		Subsystem: "instance",
		Name:      "finalized_total",
		Help:      "Instances finalized during module shutdown.",
	})

	gateLocked = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "semreg",
		Subsystem: "gate",
		Name:      "locked",
		Help:      "Whether the observed module's gate is locked (1) or open (0).",
	})

	violationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "semreg",
		Subsystem: "gate",
		Name:      "violations_total",
		Help:      "Gate and lifecycle violations, counted under both enforcement modes.",
	})

	shutdownsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "semreg",
		Subsystem: "module",
		Name:      "shutdowns_total",
		Help:      "Module shutdowns observed.",
	})

	registeredTypes = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "semreg",
		Subsystem: "types",
		Name:      "registered",
		Help:      "Export keys currently registered in the process-wide type table.",
	}, func() float64 {
		// Scrapes can land after the default module shuts down; report zero
		// rather than touching a dead table.
		if instance.Default().Down() {
			return 0
		}
		return float64(len(typeinfo.Keys()))
	})
)

// register installs the collectors into the default Prometheus registry on
// first use.
func register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			constructedTotal,
			finalizedTotal,
			gateLocked,
			violationsTotal,
			shutdownsTotal,
			registeredTypes,
		)
	})
}
