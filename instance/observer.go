package instance

import "reflect"

// EventKind names an instance lifecycle event.
type EventKind string

const (
	// EventConstructed fires once per instance, right after construction.
	EventConstructed EventKind = "instance.constructed"

	// EventFinalized fires during shutdown as each instance is torn down.
	EventFinalized EventKind = "instance.finalized"

	// EventGateLocked and EventGateUnlocked fire on actual gate transitions;
	// idempotent re-locks do not repeat them.
	EventGateLocked   EventKind = "gate.locked"
	EventGateUnlocked EventKind = "gate.unlocked"

	// EventShutdown fires once, after all finalizers have run.
	EventShutdown EventKind = "module.shutdown"

	// EventViolation fires on every rule breach, under both enforcement
	// modes. Detail carries the reason.
	EventViolation EventKind = "gate.violation"
)

// Event is one instance lifecycle notification.
type Event struct {
	Kind EventKind

	// Type is the instance type involved, nil for gate and module events.
	Type reflect.Type

	// Detail carries violation context.
	Detail string
}

// Observer receives module lifecycle events. Implementations must be safe
// for concurrent use and must not call back into accessors for the type
// named in a construction event; the instance is still being built.
type Observer interface {
	ObserveInstance(m *Module, e Event)
}

// MultiObserver fans events out to several observers in order. Nil entries
// are skipped.
func MultiObserver(observers ...Observer) Observer {
	kept := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			kept = append(kept, o)
		}
	}
	return kept
}

type multi []Observer

func (mo multi) ObserveInstance(m *Module, e Event) {
	for _, o := range mo {
		o.ObserveInstance(m, e)
	}
}
