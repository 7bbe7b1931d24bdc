package cursor

import "github.com/dshills/six/internal/engine/buffer"

// TransformOffset maps offset across an applied edit.
//
//   - insertion at or before offset: shift right by the inserted length
//   - edit entirely before offset: shift by the length delta
//   - offset strictly inside the removed range: collapse to its start
//   - edit starting at or after offset: unchanged
func TransformOffset(offset ByteOffset, res buffer.EditResult) ByteOffset {
	old := res.OldRange
	if old.IsEmpty() {
		if offset >= old.Start {
			return offset + res.Delta
		}
		return offset
	}
	switch {
	case offset >= old.End:
		return offset + res.Delta
	case offset > old.Start:
		return old.Start
	default:
		return offset
	}
}

// Transform maps the cursor across an applied edit and clamps it to the
// post-edit length. The preferred column survives only if the primary
// position did not move.
func (c Cursor) Transform(res buffer.EditResult, newLen ByteOffset) Cursor {
	out := c
	out.primary = TransformOffset(c.primary, res)
	if c.hasAnchor {
		out.anchor = TransformOffset(c.anchor, res)
	}
	if out.primary != c.primary {
		out.column = noColumn
	}
	out.revision = res.Revision
	return out.Clamp(newLen)
}
