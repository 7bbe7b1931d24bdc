package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when execution times out.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrInstructionLimit is returned when the instruction budget is spent.
	ErrInstructionLimit = errors.New("lua instruction limit exceeded")

	// ErrUnknownHandle is returned when no handler has the requested name.
	ErrUnknownHandle = errors.New("unknown script handle")
)
