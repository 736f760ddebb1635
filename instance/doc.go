// Package instance provides lazy, process-unique instance management with a
// global lock gate and destruction tracking.
//
// A Module owns at most one instance of any Go type. Instances are
// constructed on first access, concurrent-safe, and identical across every
// accessor for the lifetime of the module:
//
//	table := instance.Mutable[typeinfo.Registry]() // construct on first use
//	same := instance.Shared[typeinfo.Registry]()   // same pointer, read-only
//
// # Gate Discipline
//
// The module carries a single lock gate shared by every instance it owns.
// The intended lifecycle is: register and mutate instances while the process
// initializes (usually from init functions via Touch), then lock the gate
// once startup completes:
//
//	instance.Lock()
//
// After locking, Mutable access is a violation; Shared access continues to
// work. The gate is a debugging aid for catching late mutation, not a mutex:
// it does not serialize concurrent writers while unlocked.
//
// # Enforcement
//
// Under Checked enforcement (the default) a violation panics with a
// *Violation. Unchecked enforcement skips the panic and lets the access
// proceed; violations are still reported to the module observer so they can
// be counted or published.
//
// # Shutdown
//
// Shutdown tears the module down: finalizers run in reverse construction
// order and every constructed instance is marked destroyed. Destroyed[T]
// reports the flag and stays callable forever; accessors called after
// shutdown are violations. Shutdown is idempotent.
//
// # Default Module
//
// Package-level accessors operate on a process-wide default module,
// initialized lazily or explicitly via InitDefault. The XxxIn variants take
// an explicit *Module for libraries and tests that need isolated tables.
package instance
