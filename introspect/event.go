// Package introspect exposes a module's lifecycle over NATS. A Publisher
// mirrors instance events onto per-kind subjects, and a Service answers
// snapshot requests with the module's full state. Both degrade to no-ops
// without a NATS connection, so local tooling shares wiring with connected
// deployments.
package introspect

import (
	"reflect"
	"time"

	"github.com/c360studio/semreg/instance"
	"github.com/c360studio/semreg/typeinfo"
	"github.com/google/uuid"
)

// Event is the wire form of an instance lifecycle event.
type Event struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Module    string    `json:"module"`
	Type      string    `json:"type,omitempty"`
	Key       string    `json:"key,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// newEvent converts an instance event into its wire form.
func newEvent(m *instance.Module, e instance.Event) Event {
	ev := Event{
		ID:        uuid.New().String(),
		Kind:      string(e.Kind),
		Module:    m.Handle(),
		Detail:    e.Detail,
		Timestamp: time.Now(),
	}
	if e.Type != nil {
		ev.Type = e.Type.String()
		ev.Key = exportKey(e.Type)
	}
	return ev
}

// EventSubject returns the subject lifecycle events of one kind publish on.
func EventSubject(prefix string, kind instance.EventKind) string {
	return prefix + ".event." + string(kind)
}

// SnapshotSubject returns the subject the snapshot service answers on.
func SnapshotSubject(prefix string) string {
	return prefix + ".snapshot"
}

// registryType guards against resolving the type table through itself while
// it is still being constructed.
var registryType = reflect.TypeOf(typeinfo.Registry{})

// exportKey resolves a type's export key, best effort. Keys live in the
// default module's type table, so resolution stops once that module has
// shut down.
func exportKey(t reflect.Type) string {
	if t == nil || t == registryType || instance.Default().Down() {
		return ""
	}
	if info, ok := typeinfo.LookupType(t); ok {
		return info.Key
	}
	return ""
}
