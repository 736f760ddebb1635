package instance

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Module is one process-unique instance table: at most one instance per Go
// type, a lock gate shared by all of them, and per-type destruction flags.
// Create modules with NewModule; a Module must not be copied after first use.
type Module struct {
	handle string

	mu      sync.RWMutex
	entries map[reflect.Type]*entry
	order   []*entry
	obs     Observer

	locked atomic.Bool
	down   atomic.Bool
	mode   atomic.Int32
}

// entry tracks one wrapped instance through its lifecycle.
type entry struct {
	typ         reflect.Type
	once        sync.Once
	value       any
	constructed atomic.Bool
	destroyed   atomic.Bool
	finalize    func()
}

// NewModule creates an empty module with an unlocked gate and Checked
// enforcement.
func NewModule() *Module {
	return &Module{
		handle:  uuid.New().String(),
		entries: make(map[reflect.Type]*entry),
	}
}

// Handle returns the module's unique identifier.
func (m *Module) Handle() string {
	return m.handle
}

// Lock closes the gate. Mutable access is a violation while the gate is
// locked. Locking an already locked module has no effect.
func (m *Module) Lock() {
	if m.locked.CompareAndSwap(false, true) {
		m.emit(Event{Kind: EventGateLocked})
	}
}

// Unlock opens the gate, allowing mutable access again. Unlocking an already
// unlocked module has no effect.
func (m *Module) Unlock() {
	if m.locked.CompareAndSwap(true, false) {
		m.emit(Event{Kind: EventGateUnlocked})
	}
}

// Locked reports whether the gate is closed.
func (m *Module) Locked() bool {
	return m.locked.Load()
}

// Down reports whether the module has been shut down.
func (m *Module) Down() bool {
	return m.down.Load()
}

// SetEnforcement switches between Checked and Unchecked violation handling.
// Safe to call at any time; config reloads use this to flip mode at runtime.
func (m *Module) SetEnforcement(mode Enforcement) {
	m.mode.Store(int32(mode))
}

// Enforcement returns the module's current violation handling mode.
func (m *Module) Enforcement() Enforcement {
	return Enforcement(m.mode.Load())
}

// SetObserver installs the observer notified of instance lifecycle events.
// Pass nil to remove it. Use MultiObserver to install more than one.
func (m *Module) SetObserver(o Observer) {
	m.mu.Lock()
	m.obs = o
	m.mu.Unlock()
}

// Shutdown tears the module down. Finalizers run in reverse construction
// order, each instance is marked destroyed, and subsequent accessor calls
// become violations. Destroyed reporting remains available. Shutdown is
// idempotent; only the first call does any work.
//
// Shutdown does not synchronize with accessors still running in other
// goroutines. Callers must quiesce instance users before tearing down, the
// same way they would before process exit.
func (m *Module) Shutdown() {
	if !m.down.CompareAndSwap(false, true) {
		return
	}

	m.mu.Lock()
	order := make([]*entry, len(m.order))
	copy(order, m.order)
	m.mu.Unlock()

	for i := len(order) - 1; i >= 0; i-- {
		e := order[i]
		if e.finalize != nil {
			e.finalize()
		}
		e.destroyed.Store(true)
		m.emit(Event{Kind: EventFinalized, Type: e.typ})
	}

	m.emit(Event{Kind: EventShutdown})
}

// Len reports how many instances the module has constructed.
func (m *Module) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// Types returns the constructed instance types in construction order.
func (m *Module) Types() []reflect.Type {
	m.mu.RLock()
	defer m.mu.RUnlock()

	types := make([]reflect.Type, 0, len(m.order))
	for _, e := range m.order {
		types = append(types, e.typ)
	}
	return types
}

// State describes one instance's position in the lifecycle.
type State struct {
	Type        reflect.Type
	Constructed bool
	Destroyed   bool
}

// Phase names the lifecycle position: instances move one way from
// unconstructed through constructed to destroyed.
func (s State) Phase() string {
	switch {
	case s.Destroyed:
		return "destroyed"
	case s.Constructed:
		return "constructed"
	default:
		return "unconstructed"
	}
}

// States returns a snapshot of every constructed instance in construction
// order. Callable at any point in the module lifecycle, including after
// shutdown.
func (m *Module) States() []State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	states := make([]State, 0, len(m.order))
	for _, e := range m.order {
		states = append(states, State{
			Type:        e.typ,
			Constructed: e.constructed.Load(),
			Destroyed:   e.destroyed.Load(),
		})
	}
	return states
}

// check enforces the gate and lifecycle rules before an access proceeds.
func (m *Module) check(t reflect.Type, mutable bool) {
	if m.down.Load() {
		m.violation(t, "instance access after module shutdown")
		return
	}
	if mutable && m.locked.Load() {
		m.violation(t, "mutable instance access while gate is locked")
	}
}

// violation reports a rule breach. Checked enforcement panics; Unchecked
// lets the caller proceed. The observer hears about it either way.
func (m *Module) violation(t reflect.Type, reason string) {
	m.emit(Event{Kind: EventViolation, Type: t, Detail: reason})
	if m.Enforcement() == Checked {
		panic(&Violation{Handle: m.handle, Type: t, Reason: reason})
	}
}

// ensureEntry returns the entry for t, creating it if needed.
func (m *Module) ensureEntry(t reflect.Type) *entry {
	m.mu.RLock()
	e, ok := m.entries[t]
	m.mu.RUnlock()
	if ok {
		return e
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.entries[t]; ok {
		return e
	}
	if m.entries == nil {
		m.entries = make(map[reflect.Type]*entry)
	}
	e = &entry{typ: t}
	m.entries[t] = e
	return e
}

// lookupEntry returns the entry for t without creating one.
func (m *Module) lookupEntry(t reflect.Type) (*entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[t]
	return e, ok
}

// appendOrder records a completed construction for teardown ordering.
func (m *Module) appendOrder(e *entry) {
	m.mu.Lock()
	m.order = append(m.order, e)
	m.mu.Unlock()
}

// emit delivers an event to the observer, if one is installed. Called
// without holding the module lock.
func (m *Module) emit(e Event) {
	m.mu.RLock()
	o := m.obs
	m.mu.RUnlock()

	if o != nil {
		o.ObserveInstance(m, e)
	}
}
