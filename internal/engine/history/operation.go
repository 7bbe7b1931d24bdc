package history

import (
	"time"

	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/engine/cursor"
)

// Operation is a single recorded edit.
type Operation struct {
	Range   buffer.Range // range replaced, in pre-edit offsets
	OldText string
	NewText string

	CursorBefore cursor.Cursor
	CursorAfter  cursor.Cursor

	Timestamp time.Time
}

// FromResult builds an operation from an applied edit.
func FromResult(res buffer.EditResult, before, after cursor.Cursor) Operation {
	return Operation{
		Range:        res.OldRange,
		OldText:      res.OldText,
		NewText:      res.NewText,
		CursorBefore: before,
		CursorAfter:  after,
		Timestamp:    time.Now(),
	}
}

// NewRange returns the range holding NewText after the edit.
func (op Operation) NewRange() buffer.Range {
	return buffer.Range{Start: op.Range.Start, End: op.Range.Start + buffer.ByteOffset(len(op.NewText))}
}

// IsNoop reports whether the operation changed nothing.
func (op Operation) IsNoop() bool {
	return op.OldText == "" && op.NewText == ""
}

// Invert returns the operation that undoes op.
func (op Operation) Invert() Operation {
	return Operation{
		Range:        op.NewRange(),
		OldText:      op.NewText,
		NewText:      op.OldText,
		CursorBefore: op.CursorAfter,
		CursorAfter:  op.CursorBefore,
		Timestamp:    time.Now(),
	}
}

// Edit returns the buffer edit that performs op.
func (op Operation) Edit() buffer.Edit {
	return buffer.Edit{Range: op.Range, NewText: op.NewText}
}
