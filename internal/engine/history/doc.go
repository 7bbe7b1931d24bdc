// Package history records buffer edits for linear undo and redo.
//
// Each entry holds one or more Operations. Edits recorded between
// BeginGroup and EndGroup form a single entry, so an insert session or a
// change operator undoes in one step. Groups nest; only the outermost
// EndGroup closes the entry.
//
// History never touches a buffer on its own. Undo and Redo replay inverse
// or original edits through a Target, which is usually engine.State.
package history
