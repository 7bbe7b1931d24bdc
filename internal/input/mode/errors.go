package mode

import (
	"errors"
	"fmt"

	"github.com/dshills/six/internal/input/micro"
)

// ErrorKind classifies why an op failed.
type ErrorKind uint8

const (
	// InapplicableInState means the op has no meaning in the current state.
	InapplicableInState ErrorKind = iota
	// OutOfBounds means a position or range lies outside the buffer.
	OutOfBounds
	// InvalidRegister means the register id is unknown or not writable.
	InvalidRegister
	// ScriptFailure means the scripting runtime failed or nested too deep.
	ScriptFailure
	// ContinuationConflict means a multi-step op was started while another
	// was pending.
	ContinuationConflict
	// NotFound means a find or replace target does not exist.
	NotFound
)

// Sentinel errors, one per kind. *Error unwraps to the one matching its Kind.
var (
	ErrInapplicable = errors.New("operation inapplicable in current state")
	ErrOutOfBounds  = errors.New("position out of bounds")
	ErrInvalidReg   = errors.New("invalid register")
	ErrScript       = errors.New("script failure")
	ErrConflict     = errors.New("another operation is pending")
	ErrNotFound     = errors.New("target not found")
)

// ErrNestingLimit is the cause when scripts or replays nest too deeply.
var ErrNestingLimit = errors.New("nesting limit exceeded")

var kindSentinels = [...]error{
	InapplicableInState:  ErrInapplicable,
	OutOfBounds:          ErrOutOfBounds,
	InvalidRegister:      ErrInvalidReg,
	ScriptFailure:        ErrScript,
	ContinuationConflict: ErrConflict,
	NotFound:             ErrNotFound,
}

var kindNames = [...]string{
	InapplicableInState:  "InapplicableInState",
	OutOfBounds:          "OutOfBounds",
	InvalidRegister:      "InvalidRegister",
	ScriptFailure:        "ScriptFailure",
	ContinuationConflict: "ContinuationConflict",
	NotFound:             "NotFound",
}

// String returns the kind name.
func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// ParseErrorKind returns the kind with the given name, "ScriptFailure".
func ParseErrorKind(name string) (ErrorKind, bool) {
	for i, n := range kindNames {
		if n == name {
			return ErrorKind(i), true
		}
	}
	return 0, false
}

// Sentinel returns the sentinel error for the kind.
func (k ErrorKind) Sentinel() error {
	if int(k) < len(kindSentinels) {
		return kindSentinels[k]
	}
	return ErrInapplicable
}

// Error reports a failed op with enough context to display it.
type Error struct {
	Kind ErrorKind
	Op   micro.Op
	Tag  micro.Tag // tag the op was applied in
	Err  error     // underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s in %s: %v", e.Kind, e.Op, e.Tag, e.Err)
	}
	return fmt.Sprintf("%s: %s in %s", e.Kind, e.Op, e.Tag)
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind.Sentinel(), e.Err}
	}
	return []error{e.Kind.Sentinel()}
}
