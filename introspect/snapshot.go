package introspect

import (
	"time"

	"github.com/c360studio/semreg/codec"
	"github.com/c360studio/semreg/instance"
	"github.com/c360studio/semreg/typeinfo"
)

// Report captures a module's full state at one point in time.
type Report struct {
	// Module is the handle of the module the report describes.
	Module string `json:"module"`

	// Locked reports whether the gate is closed.
	Locked bool `json:"locked"`

	// Enforcement is the module's violation handling mode.
	Enforcement string `json:"enforcement"`

	// Down reports whether the module has been shut down.
	Down bool `json:"down"`

	// Types lists every constructed instance in construction order.
	Types []TypeStatus `json:"types,omitempty"`

	// Codecs lists the registered codec names.
	Codecs []string `json:"codecs,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// TypeStatus describes one instance's lifecycle position.
type TypeStatus struct {
	Type        string `json:"type"`
	Key         string `json:"key,omitempty"`
	Phase       string `json:"phase"`
	Constructed bool   `json:"constructed"`
	Destroyed   bool   `json:"destroyed"`
}

// Snapshot reports a module's current state. Export keys and codec names
// resolve from the process-wide tables in the default module; they are left
// blank once that module has shut down.
func Snapshot(m *instance.Module) *Report {
	report := &Report{
		Module:      m.Handle(),
		Locked:      m.Locked(),
		Enforcement: m.Enforcement().String(),
		Down:        m.Down(),
		GeneratedAt: time.Now(),
	}

	resolve := !instance.Default().Down()

	for _, st := range m.States() {
		ts := TypeStatus{
			Type:        st.Type.String(),
			Phase:       st.Phase(),
			Constructed: st.Constructed,
			Destroyed:   st.Destroyed,
		}
		if resolve {
			if info, ok := typeinfo.LookupType(st.Type); ok {
				ts.Key = info.Key
			}
		}
		report.Types = append(report.Types, ts)
	}

	if resolve {
		report.Codecs = codec.Names()
	}

	return report
}
