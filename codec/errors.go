package codec

import "errors"

// Common codec errors.
var (
	// ErrNilCodec is returned when a nil codec is registered.
	ErrNilCodec = errors.New("nil codec")

	// ErrEmptyName is returned when a codec reports an empty name.
	ErrEmptyName = errors.New("codec name is empty")

	// ErrDuplicateCodec is returned when a codec name is already taken.
	ErrDuplicateCodec = errors.New("codec already registered")

	// ErrUnknownCodec is returned when no codec is registered under a name.
	ErrUnknownCodec = errors.New("unknown codec")
)
