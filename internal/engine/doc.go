// Package engine provides State, the buffer and cursor pair that the modal
// core edits.
//
// State is the only component that mutates a Buffer on behalf of the
// editor. Every mutation is validated before it is applied, the cursor is
// transformed across the edit and clamped to the new length before the
// method returns, and the edit is recorded in the undo history when one is
// attached.
//
//	st := engine.NewState("hello", 5, engine.WithHistory(0))
//	st.Insert(5, " world")
//	st.Cursor().Primary() // 11
//	st.Undo()
//	st.Text()             // "hello"
package engine
