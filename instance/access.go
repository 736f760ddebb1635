package instance

import "reflect"

// typeOf returns the reflect.Type of T without allocating a value.
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// getInstance returns T's instance in m, constructing it exactly once.
// Construction allocates a zero value, runs the Initializer hook if T
// implements it, and captures the Finalizer hook for shutdown.
func getInstance[T any](m *Module) *T {
	e := m.ensureEntry(typeOf[T]())
	e.once.Do(func() {
		v := new(T)
		if init, ok := any(v).(Initializer); ok {
			init.InitInstance()
		}
		if fin, ok := any(v).(Finalizer); ok {
			e.finalize = fin.FinalizeInstance
		}
		e.value = v
		e.constructed.Store(true)
		m.appendOrder(e)
		m.emit(Event{Kind: EventConstructed, Type: e.typ})
	})
	return e.value.(*T)
}

// MutableIn returns the writable instance of T in module m, constructing it
// on first use. Calling it while m's gate is locked, or after m has shut
// down, is a violation: Checked enforcement panics with a *Violation,
// Unchecked proceeds anyway.
func MutableIn[T any](m *Module) *T {
	m.check(typeOf[T](), true)
	return getInstance[T](m)
}

// Mutable returns the writable instance of T in the default module.
func Mutable[T any]() *T {
	return MutableIn[T](Default())
}

// SharedIn returns the read-only instance of T in module m, constructing it
// on first use. The gate does not apply to shared access; callers must not
// mutate the result. Calling it after shutdown is a violation.
func SharedIn[T any](m *Module) *T {
	m.check(typeOf[T](), false)
	return getInstance[T](m)
}

// Shared returns the read-only instance of T in the default module.
func Shared[T any]() *T {
	return SharedIn[T](Default())
}

// TouchIn ensures T's instance in module m is constructed. Call it from an
// init function to move construction ahead of main, before any goroutines
// compete for first access.
func TouchIn[T any](m *Module) {
	m.check(typeOf[T](), false)
	getInstance[T](m)
}

// Touch ensures T's instance in the default module is constructed.
func Touch[T any]() {
	TouchIn[T](Default())
}

// DestroyedIn reports whether T's instance in module m was constructed and
// has since been torn down. The flag is monotonic: it never resets. Types
// that were never constructed report false, even after shutdown.
func DestroyedIn[T any](m *Module) bool {
	e, ok := m.lookupEntry(typeOf[T]())
	if !ok {
		return false
	}
	return e.destroyed.Load()
}

// Destroyed reports the destruction flag for T in the default module.
func Destroyed[T any]() bool {
	return DestroyedIn[T](Default())
}
