package instance

import (
	"fmt"
	"strings"
)

// Enforcement selects how a module reacts to gate and lifecycle violations.
type Enforcement int32

const (
	// Checked panics with a *Violation when a rule is breached. This is the
	// default and the right mode everywhere except hot paths that have been
	// audited.
	Checked Enforcement = iota

	// Unchecked skips the panic and lets the access proceed. Violations are
	// still delivered to the module observer. Instances constructed after
	// shutdown under Unchecked are never finalized.
	Unchecked
)

// String returns the configuration name for the mode.
func (e Enforcement) String() string {
	if e == Unchecked {
		return "unchecked"
	}
	return "checked"
}

// ParseEnforcement converts a configuration value into an Enforcement mode.
// The empty string parses as Checked.
func ParseEnforcement(s string) (Enforcement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "checked":
		return Checked, nil
	case "unchecked":
		return Unchecked, nil
	default:
		return Checked, fmt.Errorf("unknown enforcement mode: %q", s)
	}
}
