// Package typeinfo maintains the process-wide table mapping stable export
// keys to Go types. Components register their wire-visible types in init()
// under a key that never changes, then resolve keys back to types (and
// construct fresh values) when decoding. The table lives in the default
// instance module: registration is mutable access and therefore subject to
// the gate, lookups are shared access and keep working after the gate locks.
package typeinfo

import (
	"reflect"

	"github.com/c360studio/semreg/instance"
)

func init() {
	// Construct the table ahead of main so init-time registrations from
	// other packages land before the gate locks.
	instance.Touch[Registry]()
}

// Register adds T to the process-wide table under key.
func Register[T any](key string, opts ...Option) error {
	return instance.Mutable[Registry]().RegisterType(key, reflect.TypeOf((*T)(nil)).Elem(), opts...)
}

// MustRegister is Register that panics on conflict. Intended for init-time
// registration where a duplicate key is a build mistake, not a runtime
// condition.
func MustRegister[T any](key string, opts ...Option) {
	if err := Register[T](key, opts...); err != nil {
		panic("typeinfo: register " + key + ": " + err.Error())
	}
}

// KeyFor returns the export key T was registered under.
func KeyFor[T any]() (string, bool) {
	info, ok := instance.Shared[Registry]().LookupType(reflect.TypeOf((*T)(nil)).Elem())
	if !ok {
		return "", false
	}
	return info.Key, true
}

// Lookup resolves an export key in the process-wide table.
func Lookup(key string) (*Info, bool) {
	return instance.Shared[Registry]().Lookup(key)
}

// LookupType resolves a type in the process-wide table.
func LookupType(t reflect.Type) (*Info, bool) {
	return instance.Shared[Registry]().LookupType(t)
}

// New constructs a fresh value of the type registered under key.
func New(key string) (any, error) {
	return instance.Shared[Registry]().New(key)
}

// Keys returns all registered export keys, sorted.
func Keys() []string {
	return instance.Shared[Registry]().Keys()
}

// Match returns entries whose export keys match a doublestar glob pattern.
func Match(pattern string) ([]*Info, error) {
	return instance.Shared[Registry]().Match(pattern)
}

// Snapshot returns a sorted copy of the process-wide table.
func Snapshot() []Info {
	return instance.Shared[Registry]().Snapshot()
}
