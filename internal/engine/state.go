package engine

import (
	"fmt"

	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/engine/cursor"
	"github.com/dshills/six/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// EditResult contains information about a completed edit.
	EditResult = buffer.EditResult

	// Snapshot is a read-only view of the buffer.
	Snapshot = buffer.Snapshot

	// Cursor is the editing cursor.
	Cursor = cursor.Cursor
)

// State owns one buffer and its cursor.
// It is not safe for concurrent mutation; the editor serializes writers.
type State struct {
	buf     *buffer.Buffer
	cur     cursor.Cursor
	history *history.History
	bufOpts []buffer.Option
}

// NewState creates a state holding text with the cursor at pos.
// pos is clamped into the content.
func NewState(text string, pos ByteOffset, opts ...Option) *State {
	s := &State{}
	for _, opt := range opts {
		opt(s)
	}
	s.buf = buffer.NewBufferFromString(text, s.bufOpts...)
	snap := s.buf.Snapshot()
	s.cur = cursor.New(snap.GraphemeStart(snap.Clamp(pos))).Validate(snap)
	return s
}

// Buffer returns the underlying buffer for read access.
func (s *State) Buffer() *buffer.Buffer { return s.buf }

// History returns the attached history, or nil.
func (s *State) History() *history.History { return s.history }

// Snapshot returns a read-only view of the current content.
func (s *State) Snapshot() *Snapshot { return s.buf.Snapshot() }

// Text returns the full content.
func (s *State) Text() string { return s.buf.Text() }

// Len returns the content length in bytes.
func (s *State) Len() ByteOffset { return s.buf.Len() }

// Cursor returns the current cursor.
func (s *State) Cursor() Cursor { return s.cur }

// SetCursor moves the primary position to pos, keeping any anchor.
func (s *State) SetCursor(pos ByteOffset) error {
	if err := s.check(pos); err != nil {
		return fmt.Errorf("set cursor %d: %w", pos, err)
	}
	s.cur = s.cur.MoveTo(pos)
	return nil
}

// SetAnchor starts or moves the selection anchor.
func (s *State) SetAnchor(pos ByteOffset) error {
	if err := s.check(pos); err != nil {
		return fmt.Errorf("set anchor %d: %w", pos, err)
	}
	s.cur = s.cur.WithAnchor(pos)
	return nil
}

// ClearAnchor drops the selection anchor.
func (s *State) ClearAnchor() {
	s.cur = s.cur.WithoutAnchor()
}

// SetPreferredColumn records the display column kept by vertical motions.
// A negative column clears it.
func (s *State) SetPreferredColumn(col int) {
	s.cur = s.cur.WithPreferredColumn(col)
}

// RestoreCursor installs c wholesale, clamped to the content.
func (s *State) RestoreCursor(c Cursor) {
	s.cur = c.Validate(s.buf.Snapshot())
}

func (s *State) check(pos ByteOffset) error {
	snap := s.buf.Snapshot()
	if pos < 0 || pos > snap.Len() {
		return ErrOffsetOutOfRange
	}
	if !snap.Valid(pos) {
		return ErrSplitsRune
	}
	return nil
}

// Insert inserts text at pos.
func (s *State) Insert(pos ByteOffset, text string) (EditResult, error) {
	return s.edit(buffer.Edit{Range: Range{Start: pos, End: pos}, NewText: text})
}

// Delete removes [start, end).
func (s *State) Delete(start, end ByteOffset) (EditResult, error) {
	return s.edit(buffer.Edit{Range: Range{Start: start, End: end}})
}

// Replace replaces [start, end) with text.
func (s *State) Replace(start, end ByteOffset, text string) (EditResult, error) {
	return s.edit(buffer.Edit{Range: Range{Start: start, End: end}, NewText: text})
}

func (s *State) edit(e buffer.Edit) (EditResult, error) {
	before := s.cur
	res, err := s.Apply(e)
	if err != nil {
		return res, err
	}
	if s.history != nil {
		s.history.Record(history.FromResult(res, before, s.cur))
	}
	return res, nil
}

// Apply performs e and transforms the cursor without recording history.
// Undo and redo replay through it.
func (s *State) Apply(e buffer.Edit) (EditResult, error) {
	res, err := s.buf.Apply(e)
	if err != nil {
		return res, err
	}
	s.cur = s.cur.Transform(res, s.buf.Len())
	return res, nil
}

// BeginGroup opens an undo group. It is a no-op without history.
func (s *State) BeginGroup(name string) {
	if s.history != nil {
		s.history.BeginGroup(name)
	}
}

// EndGroup closes an undo group.
func (s *State) EndGroup() {
	if s.history != nil {
		s.history.EndGroup()
	}
}

// Undo reverts the last undo unit.
func (s *State) Undo() error {
	if s.history == nil {
		return ErrNothingToUndo
	}
	return s.history.Undo(s)
}

// Redo reapplies the last undone unit.
func (s *State) Redo() error {
	if s.history == nil {
		return ErrNothingToRedo
	}
	return s.history.Redo(s)
}
