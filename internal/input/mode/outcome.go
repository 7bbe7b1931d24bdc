package mode

import "fmt"

// Status is the coarse result of applying an op.
type Status uint8

const (
	// StatusContinue means proceed to the next op.
	StatusContinue Status = iota
	// StatusHalt means stop the current batch.
	StatusHalt
	// StatusError means the op failed.
	StatusError
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "Continue"
	case StatusHalt:
		return "Halt"
	case StatusError:
		return "Error"
	}
	return "Unknown"
}

// HaltReason says why a batch stopped.
type HaltReason uint8

const (
	// HaltExplicitAbort is an Escape that cancelled something.
	HaltExplicitAbort HaltReason = iota
	// HaltSessionEnd is an insert session ending.
	HaltSessionEnd
	// HaltBoundary is a relative motion that could not move at all.
	HaltBoundary
	// HaltScript is a halt requested by a script.
	HaltScript
)

// String returns the reason name.
func (r HaltReason) String() string {
	switch r {
	case HaltExplicitAbort:
		return "ExplicitAbort"
	case HaltSessionEnd:
		return "SessionEnd"
	case HaltBoundary:
		return "Boundary"
	case HaltScript:
		return "ScriptHalt"
	}
	return "Unknown"
}

// Outcome is the result of Apply.
type Outcome struct {
	Status Status
	Reason HaltReason // set when Status is StatusHalt
	Err    *Error     // set when Status is StatusError
}

// Continue is the outcome of an op that completed normally.
func Continue() Outcome { return Outcome{Status: StatusContinue} }

// Halt is the outcome of an op that ends the batch.
func Halt(r HaltReason) Outcome { return Outcome{Status: StatusHalt, Reason: r} }

// IsContinue reports whether the outcome is Continue.
func (o Outcome) IsContinue() bool { return o.Status == StatusContinue }

// IsHalt reports whether the outcome is a Halt.
func (o Outcome) IsHalt() bool { return o.Status == StatusHalt }

// IsError reports whether the outcome is an Error.
func (o Outcome) IsError() bool { return o.Status == StatusError }

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o.Status {
	case StatusHalt:
		return fmt.Sprintf("Halt(%s)", o.Reason)
	case StatusError:
		if o.Err != nil {
			return fmt.Sprintf("Error(%s)", o.Err.Kind)
		}
		return "Error"
	}
	return o.Status.String()
}

// BatchResult is the result of Run.
type BatchResult struct {
	// Consumed counts ops applied, including a halting op but not a fatal one.
	Consumed int
	// Outcome is the terminal outcome of the batch.
	Outcome Outcome
	// Errors collects the recoverable errors seen along the way.
	Errors []*Error
}
