package typeinfo

import "errors"

// Common registry errors.
var (
	// ErrEmptyKey is returned when a registration omits the export key.
	ErrEmptyKey = errors.New("export key is empty")

	// ErrDuplicateKey is returned when an export key is already taken.
	ErrDuplicateKey = errors.New("export key already registered")

	// ErrDuplicateType is returned when a type already has an export key.
	ErrDuplicateType = errors.New("type already registered")

	// ErrUnknownKey is returned when no type is registered under a key.
	ErrUnknownKey = errors.New("unknown export key")
)
