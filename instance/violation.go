package instance

import (
	"fmt"
	"reflect"
)

// Violation describes a fatal misuse of a module: mutable access while the
// gate is locked, or instance access after shutdown. Modules under Checked
// enforcement panic with a *Violation; these are programming errors, not
// conditions to retry.
type Violation struct {
	// Handle identifies the module the breach happened in.
	Handle string

	// Type is the instance type involved, nil for module-level breaches.
	Type reflect.Type

	// Reason is a short human-readable description.
	Reason string
}

// Error implements the error interface so recovered panics read cleanly.
func (v *Violation) Error() string {
	if v.Type != nil {
		return fmt.Sprintf("instance: %s (type %s, module %s)", v.Reason, v.Type, v.Handle)
	}
	return fmt.Sprintf("instance: %s (module %s)", v.Reason, v.Handle)
}
