// Package mode implements the modal state machine that interprets
// micro-operations.
//
// A Mode holds the current tag (Normal, Insert, Visual or Pending), a count
// prefix, a selected register and at most one Continuation. Run applies a
// batch of ops left to right through a Context, stopping at the first Halt
// or fatal error. Apply handles a single op.
//
// Dispatch is a table keyed by (tag, op kind). While a continuation is
// pending every op is routed to it first; it completes the multi-step
// operation, cancels it, or rejects a competing trigger with
// ContinuationConflict.
//
// Every error except ContinuationConflict returns the machine to Normal
// with nothing pending. Handlers validate positions before their first
// mutation, so an op that fails leaves the buffer and cursor unchanged.
//
// Mode owns no buffer. Everything it reads or writes goes through Context,
// which the editor implements.
package mode
