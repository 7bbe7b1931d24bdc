package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrOffsetOutOfRange indicates an offset outside [0, Len].
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates a range whose end precedes its start.
	ErrRangeInvalid = errors.New("invalid range")

	// ErrSplitsRune indicates an offset that falls inside a multi-byte rune.
	ErrSplitsRune = errors.New("offset splits a rune")

	// ErrInvalidUTF8 indicates inserted text that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("text is not valid UTF-8")
)
