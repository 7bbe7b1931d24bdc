package engine

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestNewStateClampsCursor(t *testing.T) {
	st := NewState("abc", 99)
	if st.Cursor().Primary() != 3 {
		t.Errorf("expected cursor clamped to 3, got %d", st.Cursor().Primary())
	}
	if st.Cursor().Revision() != 0 {
		t.Errorf("expected revision 0, got %d", st.Cursor().Revision())
	}
}

func TestStateInsertMovesCursor(t *testing.T) {
	st := NewState("hello", 5)
	if _, err := st.Insert(5, " world"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if st.Text() != "hello world" {
		t.Errorf("expected 'hello world', got %q", st.Text())
	}
	if st.Cursor().Primary() != 11 {
		t.Errorf("expected cursor 11, got %d", st.Cursor().Primary())
	}
	if st.Cursor().Revision() != 1 {
		t.Errorf("expected cursor validated at revision 1, got %d", st.Cursor().Revision())
	}
}

func TestStateDeleteClampsCursor(t *testing.T) {
	st := NewState("hello world", 11)
	if err := st.SetAnchor(8); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Delete(5, 11); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	c := st.Cursor()
	if c.Primary() != 5 {
		t.Errorf("expected cursor 5, got %d", c.Primary())
	}
	if a, _ := c.Anchor(); a != 5 {
		t.Errorf("expected anchor collapsed to 5, got %d", a)
	}
}

func TestStateRejectsInvalidPositions(t *testing.T) {
	st := NewState("h\u00e9", 0)
	tests := []struct {
		name string
		fn   func() error
		want error
	}{
		{"cursor past end", func() error { return st.SetCursor(10) }, ErrOffsetOutOfRange},
		{"cursor negative", func() error { return st.SetCursor(-1) }, ErrOffsetOutOfRange},
		{"cursor splits rune", func() error { return st.SetCursor(2) }, ErrSplitsRune},
		{"anchor past end", func() error { return st.SetAnchor(4) }, ErrOffsetOutOfRange},
		{"insert past end", func() error { _, err := st.Insert(9, "x"); return err }, ErrOffsetOutOfRange},
		{"reversed delete", func() error { _, err := st.Delete(2, 1); return err }, ErrRangeInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if st.Text() != "h\u00e9" {
				t.Errorf("text changed: %q", st.Text())
			}
		})
	}
}

func TestStateUndoRedo(t *testing.T) {
	st := NewState("abc", 3, WithHistory(0))

	st.BeginGroup("insert")
	if _, err := st.Insert(3, "d"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Insert(4, "e"); err != nil {
		t.Fatal(err)
	}
	st.EndGroup()

	if err := st.Undo(); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if st.Text() != "abc" || st.Cursor().Primary() != 3 {
		t.Errorf("expected 'abc' at 3, got %q at %d", st.Text(), st.Cursor().Primary())
	}
	if err := st.Redo(); err != nil {
		t.Fatalf("redo failed: %v", err)
	}
	if st.Text() != "abcde" || st.Cursor().Primary() != 5 {
		t.Errorf("expected 'abcde' at 5, got %q at %d", st.Text(), st.Cursor().Primary())
	}
	if st.History().UndoCount() != 1 {
		t.Errorf("replay must not record, got %d entries", st.History().UndoCount())
	}
}

func TestStateWithoutHistory(t *testing.T) {
	st := NewState("abc", 0)
	if err := st.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
	if err := st.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

// The cursor never leaves [0, Len] whatever sequence of edits is applied.
func TestCursorStaysInBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringMatching(`[a-z \n]{0,40}`).Draw(rt, "text")
		st := NewState(text, ByteOffset(rapid.IntRange(0, len(text)).Draw(rt, "pos")))

		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			n := int(st.Len())
			start := rapid.IntRange(0, n).Draw(rt, "start")
			end := rapid.IntRange(start, n).Draw(rt, "end")
			if rapid.Bool().Draw(rt, "anchor") {
				_ = st.SetAnchor(ByteOffset(rapid.IntRange(0, n).Draw(rt, "anchorPos")))
			}
			switch rapid.IntRange(0, 2).Draw(rt, "op") {
			case 0:
				_, _ = st.Insert(ByteOffset(start), rapid.StringMatching(`[a-z]{0,5}`).Draw(rt, "ins"))
			case 1:
				_, _ = st.Delete(ByteOffset(start), ByteOffset(end))
			case 2:
				_, _ = st.Replace(ByteOffset(start), ByteOffset(end), rapid.StringMatching(`[a-z]{0,3}`).Draw(rt, "rep"))
			}
			if c := st.Cursor(); !c.InBounds(st.Len()) {
				rt.Fatalf("cursor %s outside [0, %d]", c, st.Len())
			}
			if c := st.Cursor(); c.Revision() != st.Buffer().Revision() {
				rt.Fatalf("cursor revision %d lags buffer revision %d", c.Revision(), st.Buffer().Revision())
			}
		}
	})
}
