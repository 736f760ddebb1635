// Package codec maintains the process-wide table of serialization codecs.
// Codecs register by name in init(), usually by blank-importing
// codec/builtin, and callers encode and decode through the table without
// caring which wire format is active. The table lives in the default
// instance module: registration is gated mutable access, lookups are shared.
package codec

import (
	"fmt"

	"github.com/c360studio/semreg/instance"
)

func init() {
	// Construct the table ahead of main so codec registrations from other
	// init functions land before the gate locks.
	instance.Touch[Registry]()
}

// Codec serializes values to and from one wire format.
type Codec interface {
	// Name is the registry key, e.g. "json".
	Name() string

	// ContentType is the MIME type of the encoded form.
	ContentType() string

	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// Register adds a codec to the process-wide table.
func Register(c Codec) error {
	return instance.Mutable[Registry]().Register(c)
}

// MustRegister is Register that panics on conflict. Intended for init-time
// registration.
func MustRegister(c Codec) {
	if err := Register(c); err != nil {
		panic("codec: register: " + err.Error())
	}
}

// Lookup returns the codec registered under name.
func Lookup(name string) (Codec, bool) {
	return instance.Shared[Registry]().Lookup(name)
}

// Names returns all registered codec names, sorted.
func Names() []string {
	return instance.Shared[Registry]().Names()
}

// Encode marshals v with the named codec.
func Encode(name string, v any) ([]byte, error) {
	c, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCodec, name)
	}
	return c.Marshal(v)
}

// Decode unmarshals data into v with the named codec.
func Decode(name string, data []byte, v any) error {
	c, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCodec, name)
	}
	return c.Unmarshal(data, v)
}
