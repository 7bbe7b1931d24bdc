package cursor

import (
	"fmt"

	"github.com/dshills/six/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset.
type ByteOffset = buffer.ByteOffset

const noColumn = -1

// Cursor is a primary position with an optional selection anchor.
type Cursor struct {
	primary   ByteOffset
	anchor    ByteOffset
	hasAnchor bool
	column    int
	revision  buffer.Revision
}

// New creates a cursor at offset with no anchor. Negative offsets become 0.
func New(offset ByteOffset) Cursor {
	if offset < 0 {
		offset = 0
	}
	return Cursor{primary: offset, column: noColumn}
}

// Primary returns the cursor position.
func (c Cursor) Primary() ByteOffset {
	return c.primary
}

// Anchor returns the anchor and whether one is set.
func (c Cursor) Anchor() (ByteOffset, bool) {
	return c.anchor, c.hasAnchor
}

// HasAnchor reports whether a selection anchor is set.
func (c Cursor) HasAnchor() bool {
	return c.hasAnchor
}

// Revision returns the buffer revision the cursor was last validated against.
func (c Cursor) Revision() buffer.Revision {
	return c.revision
}

// PreferredColumn returns the display column kept across vertical motions.
func (c Cursor) PreferredColumn() (int, bool) {
	return c.column, c.column != noColumn
}

// MoveTo returns the cursor at offset. The anchor is kept and the preferred
// column is forgotten.
func (c Cursor) MoveTo(offset ByteOffset) Cursor {
	if offset < 0 {
		offset = 0
	}
	c.primary = offset
	c.column = noColumn
	return c
}

// WithAnchor returns the cursor with the anchor set to offset.
func (c Cursor) WithAnchor(offset ByteOffset) Cursor {
	if offset < 0 {
		offset = 0
	}
	c.anchor = offset
	c.hasAnchor = true
	return c
}

// WithoutAnchor returns the cursor with the anchor removed.
func (c Cursor) WithoutAnchor() Cursor {
	c.anchor = 0
	c.hasAnchor = false
	return c
}

// WithPreferredColumn returns the cursor remembering col. A negative col
// clears it.
func (c Cursor) WithPreferredColumn(col int) Cursor {
	if col < 0 {
		col = noColumn
	}
	c.column = col
	return c
}

// Selection returns the selection spanned by anchor and primary.
func (c Cursor) Selection() (Selection, bool) {
	if !c.hasAnchor {
		return Selection{Anchor: c.primary, Head: c.primary}, false
	}
	return Selection{Anchor: c.anchor, Head: c.primary}, true
}

// Clamp pins both positions into [0, maxOffset].
func (c Cursor) Clamp(maxOffset ByteOffset) Cursor {
	c.primary = clamp(c.primary, maxOffset)
	if c.hasAnchor {
		c.anchor = clamp(c.anchor, maxOffset)
	}
	return c
}

// Validate clamps the cursor against snap and records the snapshot revision.
func (c Cursor) Validate(snap *buffer.Snapshot) Cursor {
	c = c.Clamp(snap.Len())
	c.revision = snap.Revision()
	return c
}

// InBounds reports whether both positions lie within [0, maxOffset].
func (c Cursor) InBounds(maxOffset ByteOffset) bool {
	if c.primary < 0 || c.primary > maxOffset {
		return false
	}
	return !c.hasAnchor || (c.anchor >= 0 && c.anchor <= maxOffset)
}

// String returns a human-readable representation of the cursor.
func (c Cursor) String() string {
	if c.hasAnchor {
		return fmt.Sprintf("Cursor(%d, anchor %d)", c.primary, c.anchor)
	}
	return fmt.Sprintf("Cursor(%d)", c.primary)
}

func clamp(offset, maxOffset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > maxOffset {
		return maxOffset
	}
	return offset
}
