package keymap

import "errors"

var (
	// ErrInvalidBinding is returned for bindings that cannot be installed.
	ErrInvalidBinding = errors.New("invalid binding")

	// ErrUnknownTag is returned for an unrecognized mode name.
	ErrUnknownTag = errors.New("unknown mode")
)
