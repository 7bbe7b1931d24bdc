// Package motion computes cursor targets over a buffer snapshot.
//
// Motions are pure: Apply takes a snapshot, a starting offset and a count
// and returns where the cursor would land. Nothing here mutates state.
// Relative motions (Left, Forward, WordHead, ...) report Blocked when they
// could not take a single step, which callers use to abort key sequences at
// a boundary. Absolute motions (LineStart, DocumentEnd, ...) never block.
//
// All results lie on grapheme cluster boundaries in [0, Len].
package motion
