// Package cursor provides the editing cursor: a primary position, an
// optional anchor that spans a selection with it, and the display column
// vertical motions try to keep.
//
// Cursor is an immutable value. Every mutator returns a new Cursor, so a
// caller can hold the pre-edit cursor for undo while installing the new one.
//
// Positions are buffer.ByteOffset values. After any buffer mutation the
// owner calls Transform with the edit result and then Clamp with the new
// length; together they guarantee the cursor never points outside
// [0, Len].
package cursor
