package cursor

import (
	"fmt"

	"github.com/dshills/six/internal/engine/buffer"
)

// Selection is the span between an anchor and a head.
// Anchor is where the selection started; Head follows the cursor.
type Selection struct {
	Anchor ByteOffset
	Head   ByteOffset
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// IsForward reports whether the head is at or after the anchor.
func (s Selection) IsForward() bool {
	return s.Anchor <= s.Head
}

// Start returns the lower bound of the selection.
func (s Selection) Start() ByteOffset {
	return min(s.Anchor, s.Head)
}

// End returns the upper bound of the selection.
func (s Selection) End() ByteOffset {
	return max(s.Anchor, s.Head)
}

// Range returns the selection as a half-open range [Start, End).
func (s Selection) Range() buffer.Range {
	return buffer.Range{Start: s.Start(), End: s.End()}
}

// Extend returns a selection with the same anchor and a new head.
func (s Selection) Extend(head ByteOffset) Selection {
	return Selection{Anchor: s.Anchor, Head: head}
}

// Flip swaps the anchor and the head.
func (s Selection) Flip() Selection {
	return Selection{Anchor: s.Head, Head: s.Anchor}
}

// String returns a human-readable representation of the selection.
func (s Selection) String() string {
	return fmt.Sprintf("Selection(%d->%d)", s.Anchor, s.Head)
}
