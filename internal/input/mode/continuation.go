package mode

import (
	"fmt"

	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/input/micro"
)

// ContinuationKind says what a pending operation waits for.
type ContinuationKind uint8

const (
	// FindTarget waits for the character of f, F, t or T.
	FindTarget ContinuationKind = iota
	// ReplaceTarget waits for the character of r.
	ReplaceTarget
	// MotionTarget waits for the motion of an operator.
	MotionTarget
	// Query collects text until it is submitted.
	Query
)

// String returns the kind name.
func (k ContinuationKind) String() string {
	switch k {
	case FindTarget:
		return "FindTarget"
	case ReplaceTarget:
		return "ReplaceTarget"
	case MotionTarget:
		return "MotionTarget"
	case Query:
		return "Query"
	}
	return "Unknown"
}

// QueryPurpose says what a submitted query does.
type QueryPurpose uint8

const (
	// QueryEval evaluates the text as a script.
	QueryEval QueryPurpose = iota
	// QuerySurround wraps Span with the text.
	QuerySurround
)

// Continuation is the single pending multi-step operation. It carries only
// the data needed to resume.
type Continuation struct {
	Kind ContinuationKind

	// Prior is the tag restored when the operation completes.
	Prior micro.Tag

	// Count is the count typed before the trigger, 0 when none.
	Count int

	// FindTarget
	Forward bool
	Till    bool

	// MotionTarget, or FindTarget chained from an operator.
	Operator    micro.OperatorKind
	HasOperator bool
	// MotionCount is the count typed after the operator.
	MotionCount countState

	// Query
	Purpose QueryPurpose
	Text    string
	Limit   int // zero means unlimited
	Span    buffer.Range

	// Register is the register selected before the trigger, 0 when none.
	Register rune
}

// String describes the continuation for logs.
func (c *Continuation) String() string {
	switch c.Kind {
	case FindTarget:
		return fmt.Sprintf("FindTarget(forward=%t, till=%t)", c.Forward, c.Till)
	case MotionTarget:
		return fmt.Sprintf("MotionTarget(%s)", c.Operator)
	case Query:
		return fmt.Sprintf("Query(%q)", c.Text)
	}
	return c.Kind.String()
}

// count returns the effective count for the operation, combining the
// counts typed before and after an operator.
func (c *Continuation) count() int {
	return combineCounts(c.Count, c.MotionCount.value)
}
