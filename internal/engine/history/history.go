package history

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// Target receives replayed edits and the restored cursor.
type Target interface {
	Apply(e buffer.Edit) (buffer.EditResult, error)
	RestoreCursor(c cursor.Cursor)
}

// Entry is one undo unit.
type Entry struct {
	Name       string
	Operations []Operation
}

// History is a linear undo/redo stack.
type History struct {
	mu sync.Mutex

	undo []Entry
	redo []Entry

	depth     int
	groupName string
	group     []Operation

	maxEntries int
}

// New creates a history holding at most maxEntries undo units.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Record adds an operation. Inside a group it joins the open entry;
// otherwise it becomes an entry of its own. Recording clears redo.
func (h *History) Record(op Operation) {
	if op.IsNoop() {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth > 0 {
		h.group = append(h.group, op)
		return
	}
	h.pushLocked(Entry{Name: "edit", Operations: []Operation{op}})
}

func (h *History) pushLocked(e Entry) {
	h.undo = append(h.undo, e)
	h.redo = nil
	if excess := len(h.undo) - h.maxEntries; excess > 0 {
		h.undo = h.undo[excess:]
	}
}

// BeginGroup opens a group. Nested calls only deepen the current group.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.depth == 0 {
		h.groupName = name
		h.group = nil
	}
	h.depth++
}

// EndGroup closes one level of grouping. Closing the outermost level
// pushes the collected operations as one entry.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.endGroupLocked()
}

func (h *History) endGroupLocked() {
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 {
		return
	}
	if len(h.group) > 0 {
		h.pushLocked(Entry{Name: h.groupName, Operations: h.group})
	}
	h.group = nil
}

// CancelGroup drops the open group. Edits already applied stay applied.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.depth = 0
	h.group = nil
}

// IsGrouping reports whether a group is open.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.depth > 0
}

// Undo reverts the most recent entry. An open group is closed first.
func (h *History) Undo(t Target) error {
	h.mu.Lock()
	for h.depth > 0 {
		h.endGroupLocked()
	}
	if len(h.undo) == 0 {
		h.mu.Unlock()
		return ErrNothingToUndo
	}
	entry := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.mu.Unlock()

	ops := entry.Operations
	for i := len(ops) - 1; i >= 0; i-- {
		if _, err := t.Apply(ops[i].Invert().Edit()); err != nil {
			h.mu.Lock()
			h.undo = append(h.undo, entry)
			h.mu.Unlock()
			return fmt.Errorf("undo %s: %w", entry.Name, err)
		}
	}
	t.RestoreCursor(ops[0].CursorBefore)

	h.mu.Lock()
	h.redo = append(h.redo, entry)
	h.mu.Unlock()
	return nil
}

// Redo reapplies the most recently undone entry.
func (h *History) Redo(t Target) error {
	h.mu.Lock()
	if len(h.redo) == 0 {
		h.mu.Unlock()
		return ErrNothingToRedo
	}
	entry := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.mu.Unlock()

	ops := entry.Operations
	for _, op := range ops {
		if _, err := t.Apply(op.Edit()); err != nil {
			h.mu.Lock()
			h.redo = append(h.redo, entry)
			h.mu.Unlock()
			return fmt.Errorf("redo %s: %w", entry.Name, err)
		}
	}
	t.RestoreCursor(ops[len(ops)-1].CursorAfter)

	h.mu.Lock()
	h.undo = append(h.undo, entry)
	h.mu.Unlock()
	return nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}

// UndoCount returns the number of undo entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// RedoCount returns the number of redo entries.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo)
}

// Clear drops all history, including an open group.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undo, h.redo = nil, nil
	h.depth = 0
	h.group = nil
}
