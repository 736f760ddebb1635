package instance

import (
	"sync"
	"sync/atomic"
)

// Lazy is a standalone double-checked lazy instance of T, for globals that
// need thread-safe one-time construction without a module's gate or
// destruction tracking. The zero value is ready to use. A Lazy must not be
// copied after first use.
//
//	var parsers instance.Lazy[ParserTable]
//
//	func lookup(name string) *Parser {
//	    return parsers.Get().Find(name)
//	}
type Lazy[T any] struct {
	// New optionally constructs the instance. When nil, Get allocates a zero
	// value and runs the Initializer hook if T implements it. Set New before
	// the first Get; it is read without synchronization afterwards.
	New func() *T

	done  atomic.Bool
	mu    sync.Mutex
	value *T
}

// Get returns the instance, constructing it on the first call. The fast
// path is a single atomic load; the slow path takes the lock and re-checks
// so exactly one caller constructs.
func (l *Lazy[T]) Get() *T {
	if l.done.Load() {
		return l.value
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.done.Load() {
		if l.New != nil {
			l.value = l.New()
		} else {
			v := new(T)
			if init, ok := any(v).(Initializer); ok {
				init.InitInstance()
			}
			l.value = v
		}
		l.done.Store(true)
	}
	return l.value
}

// Initialized reports whether the instance has been constructed, without
// constructing it.
func (l *Lazy[T]) Initialized() bool {
	return l.done.Load()
}
