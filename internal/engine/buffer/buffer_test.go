package buffer

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}
	if b.Revision() != 0 {
		t.Errorf("expected revision 0, got %d", b.Revision())
	}
	if b.ID() == uuid.Nil {
		t.Error("expected a non-nil buffer ID")
	}
}

func TestNewBufferWithID(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	b := NewBuffer(WithID(id))
	if b.ID() != id {
		t.Errorf("expected %s, got %s", id, b.ID())
	}
	if b.Snapshot().BufferID() != id {
		t.Error("snapshot should carry the buffer ID")
	}
}

func TestNewBufferNormalizesLineEndings(t *testing.T) {
	b := NewBufferFromString("a\r\nb\rc")
	if b.Text() != "a\nb\nc" {
		t.Errorf("expected LF endings, got %q", b.Text())
	}
	if b.LineCount() != 3 {
		t.Errorf("expected 3 lines, got %d", b.LineCount())
	}
}

func TestBufferInsert(t *testing.T) {
	b := NewBufferFromString("Hello World")

	res, err := b.Insert(5, ",")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if b.Text() != "Hello, World" {
		t.Errorf("expected 'Hello, World', got %q", b.Text())
	}
	if res.NewRange != (Range{Start: 5, End: 6}) {
		t.Errorf("expected new range [5:6), got %s", res.NewRange)
	}
	if res.Delta != 1 {
		t.Errorf("expected delta 1, got %d", res.Delta)
	}
	if res.Revision != 1 || b.Revision() != 1 {
		t.Errorf("expected revision 1, got %d/%d", res.Revision, b.Revision())
	}
}

func TestBufferDelete(t *testing.T) {
	b := NewBufferFromString("Hello, World")

	res, err := b.Delete(5, 7)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if b.Text() != "HelloWorld" {
		t.Errorf("expected 'HelloWorld', got %q", b.Text())
	}
	if res.OldText != ", " {
		t.Errorf("expected old text ', ', got %q", res.OldText)
	}
	if res.NewRange != (Range{Start: 5, End: 5}) {
		t.Errorf("expected empty new range at 5, got %s", res.NewRange)
	}
}

func TestBufferReplace(t *testing.T) {
	b := NewBufferFromString("one two three")

	res, err := b.Replace(4, 7, "2")
	if err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	if b.Text() != "one 2 three" {
		t.Errorf("expected 'one 2 three', got %q", b.Text())
	}
	if res.Delta != -2 {
		t.Errorf("expected delta -2, got %d", res.Delta)
	}

	inv := res.Inverse()
	if _, err := b.Apply(inv); err != nil {
		t.Fatalf("inverse failed: %v", err)
	}
	if b.Text() != "one two three" {
		t.Errorf("inverse should restore text, got %q", b.Text())
	}
	if b.Revision() != 2 {
		t.Errorf("expected revision 2, got %d", b.Revision())
	}
}

func TestBufferRejectsInvalidEdits(t *testing.T) {
	tests := []struct {
		name       string
		start, end ByteOffset
		want       error
	}{
		{"negative start", -1, 2, ErrOffsetOutOfRange},
		{"past end", 0, 99, ErrOffsetOutOfRange},
		{"reversed", 3, 1, ErrRangeInvalid},
		{"splits rune", 1, 2, ErrSplitsRune},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBufferFromString("h\u00e9llo")
			_, err := b.Replace(tt.start, tt.end, "x")
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if b.Text() != "h\u00e9llo" {
				t.Errorf("buffer changed on failed edit: %q", b.Text())
			}
			if b.Revision() != 0 {
				t.Errorf("revision bumped on failed edit: %d", b.Revision())
			}
		})
	}
}

func TestBufferRejectsInvalidUTF8(t *testing.T) {
	tests := []string{"\x80", "a\xffb", "\xe9", "ok\xc3"}
	for _, text := range tests {
		b := NewBufferFromString("ab")
		_, err := b.Insert(1, text)
		if !errors.Is(err, ErrInvalidUTF8) {
			t.Errorf("Insert(%q): expected ErrInvalidUTF8, got %v", text, err)
		}
		if b.Text() != "ab" || b.Revision() != 0 {
			t.Errorf("Insert(%q) changed the buffer: %q rev %d", text, b.Text(), b.Revision())
		}
	}
}

func TestNewBufferSanitizesUTF8(t *testing.T) {
	b := NewBufferFromString("a\x80b")
	if b.Text() != "a\uFFFDb" {
		t.Errorf("expected replacement character, got %q", b.Text())
	}
	if !b.Snapshot().Valid(1) || !b.Snapshot().Valid(4) {
		t.Error("expected offsets around the replacement to be valid")
	}
}

func TestBufferEmptyEditKeepsRevision(t *testing.T) {
	b := NewBufferFromString("abc")
	if _, err := b.Insert(1, ""); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if b.Revision() != 0 {
		t.Errorf("expected revision 0, got %d", b.Revision())
	}
}

func TestBufferSlice(t *testing.T) {
	b := NewBufferFromString("hello world")
	s, err := b.Slice(6, 11)
	if err != nil {
		t.Fatalf("slice failed: %v", err)
	}
	if s != "world" {
		t.Errorf("expected 'world', got %q", s)
	}
	if _, err := b.Slice(6, 12); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	b := NewBufferFromString("abc")
	snap := b.Snapshot()
	if _, err := b.Insert(3, "def"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if snap.Text() != "abc" {
		t.Errorf("snapshot changed after edit: %q", snap.Text())
	}
	if snap.Revision() != 0 {
		t.Errorf("expected snapshot revision 0, got %d", snap.Revision())
	}
	if b.Snapshot().Text() != "abcdef" {
		t.Errorf("expected new snapshot 'abcdef', got %q", b.Snapshot().Text())
	}
}

func TestSnapshotLines(t *testing.T) {
	s := NewSnapshot("one\ntwo\n\nfour")

	if s.LineCount() != 4 {
		t.Fatalf("expected 4 lines, got %d", s.LineCount())
	}
	tests := []struct {
		line       uint32
		start, end ByteOffset
		text       string
	}{
		{0, 0, 3, "one"},
		{1, 4, 7, "two"},
		{2, 8, 8, ""},
		{3, 9, 13, "four"},
		{9, 9, 13, "four"},
	}
	for _, tt := range tests {
		if got := s.LineStart(tt.line); got != tt.start {
			t.Errorf("line %d: expected start %d, got %d", tt.line, tt.start, got)
		}
		if got := s.LineEnd(tt.line); got != tt.end {
			t.Errorf("line %d: expected end %d, got %d", tt.line, tt.end, got)
		}
		if got := s.LineText(tt.line); got != tt.text {
			t.Errorf("line %d: expected %q, got %q", tt.line, tt.text, got)
		}
	}
	if r := s.LineRange(1); r != (Range{Start: 4, End: 8}) {
		t.Errorf("expected line range [4:8), got %s", r)
	}
	if r := s.LineRange(3); r != (Range{Start: 9, End: 13}) {
		t.Errorf("expected last line range [9:13), got %s", r)
	}
}

func TestSnapshotPointConversion(t *testing.T) {
	s := NewSnapshot("ab\ncde\nf")
	tests := []struct {
		offset ByteOffset
		point  Point
	}{
		{0, Point{0, 0}},
		{2, Point{0, 2}},
		{3, Point{1, 0}},
		{5, Point{1, 2}},
		{7, Point{2, 0}},
		{8, Point{2, 1}},
	}
	for _, tt := range tests {
		if got := s.OffsetToPoint(tt.offset); got != tt.point {
			t.Errorf("offset %d: expected %s, got %s", tt.offset, tt.point, got)
		}
		if got := s.PointToOffset(tt.point); got != tt.offset {
			t.Errorf("point %s: expected %d, got %d", tt.point, tt.offset, got)
		}
	}
	if got := s.PointToOffset(Point{Line: 0, Column: 50}); got != 2 {
		t.Errorf("expected column clamp to 2, got %d", got)
	}
}

func TestBufferConcurrentReads(t *testing.T) {
	b := NewBufferFromString("hello")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = b.Snapshot().Text()
				_ = b.Len()
			}
		}()
	}
	for j := 0; j < 50; j++ {
		if _, err := b.Insert(0, "x"); err != nil {
			t.Errorf("insert failed: %v", err)
		}
	}
	wg.Wait()
	if b.Len() != 55 {
		t.Errorf("expected length 55, got %d", b.Len())
	}
}
