package buffer

// Edit describes a single replacement: the bytes in Range become NewText.
// An empty Range is a pure insertion, an empty NewText a pure deletion.
type Edit struct {
	Range   Range
	NewText string
}

// EditResult reports what a mutation did.
type EditResult struct {
	OldRange Range      // range that was replaced, in pre-edit offsets
	NewRange Range      // range now holding the new text, in post-edit offsets
	OldText  string     // text that was removed
	NewText  string     // text that was inserted
	Revision Revision   // buffer revision after the edit
	Delta    ByteOffset // change in buffer length
}

// Inverse returns the edit that undoes the result.
func (r EditResult) Inverse() Edit {
	return Edit{Range: r.NewRange, NewText: r.OldText}
}
