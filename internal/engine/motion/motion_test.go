package motion

import (
	"testing"

	"github.com/dshills/six/internal/engine/buffer"
)

func TestApply(t *testing.T) {
	const text = "foo bar.baz\n  qux\n\nlast"
	tests := []struct {
		name    string
		from    buffer.ByteOffset
		kind    Kind
		count   int
		want    buffer.ByteOffset
		blocked bool
	}{
		{"left", 2, Left, 1, 1, false},
		{"left stops at line start", 13, Left, 5, 12, false},
		{"left blocked", 12, Left, 1, 12, true},
		{"right", 0, Right, 2, 2, false},
		{"right reaches line end", 9, Right, 5, 11, false},
		{"right blocked at newline", 11, Right, 1, 11, true},
		{"forward crosses lines", 11, Forward, 1, 12, false},
		{"backward crosses lines", 12, Backward, 1, 11, false},
		{"backward blocked", 0, Backward, 1, 0, true},
		{"forward blocked", 23, Forward, 1, 23, true},
		{"line start", 6, LineStart, 1, 0, false},
		{"line start at start still succeeds", 0, LineStart, 1, 0, false},
		{"line end", 2, LineEnd, 1, 11, false},
		{"line end with count", 2, LineEnd, 2, 17, false},
		{"first non blank", 17, FirstNonBlank, 1, 14, false},
		{"word head", 0, WordHead, 1, 4, false},
		{"word head stops at punctuation", 4, WordHead, 1, 7, false},
		{"word head count", 0, WordHead, 3, 8, false},
		{"word head crosses lines", 8, WordHead, 1, 14, false},
		{"word head back", 8, WordHeadBack, 1, 7, false},
		{"word head back from middle", 6, WordHeadBack, 1, 4, false},
		{"word head back blocked", 0, WordHeadBack, 1, 0, true},
		{"word tail", 0, WordTail, 1, 2, false},
		{"word tail from tail", 2, WordTail, 1, 6, false},
		{"word tail back", 5, WordTailBack, 1, 2, false},
		{"paragraph forward", 0, ParagraphForward, 1, 18, false},
		{"paragraph forward to end", 18, ParagraphForward, 1, 23, false},
		{"paragraph back", 20, ParagraphBack, 1, 18, false},
		{"document start", 20, DocumentStart, 1, 0, false},
		{"document end", 1, DocumentEnd, 1, 19, false},
	}

	s := buffer.NewSnapshot(text)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(s, tt.from, tt.kind, tt.count, -1)
			if got.Offset != tt.want {
				t.Errorf("expected offset %d, got %d", tt.want, got.Offset)
			}
			if got.Blocked != tt.blocked {
				t.Errorf("expected blocked=%v, got %v", tt.blocked, got.Blocked)
			}
		})
	}
}

func TestVerticalKeepsColumn(t *testing.T) {
	s := buffer.NewSnapshot("abcdef\nab\nabcdef")

	down := Apply(s, 4, Down, 1, -1)
	if down.Offset != 9 {
		t.Errorf("expected clamp to end of short line (9), got %d", down.Offset)
	}
	if down.Column != 4 {
		t.Errorf("expected preferred column 4, got %d", down.Column)
	}

	again := Apply(s, down.Offset, Down, 1, down.Column)
	if again.Offset != 14 {
		t.Errorf("expected column 4 restored on long line (14), got %d", again.Offset)
	}

	up := Apply(s, 2, Up, 1, -1)
	if !up.Blocked {
		t.Error("expected Up on first line to be blocked")
	}

	far := Apply(s, 0, Down, 10, -1)
	if far.Steps != 2 || far.Offset != 10 {
		t.Errorf("expected partial move of 2 lines to 10, got %d steps to %d", far.Steps, far.Offset)
	}
}

func TestMotionGraphemes(t *testing.T) {
	s := buffer.NewSnapshot("ae\u0301b")
	if got := Apply(s, 1, Right, 1, -1); got.Offset != 4 {
		t.Errorf("expected Right to skip combining cluster, got %d", got.Offset)
	}
	if got := Apply(s, 4, Left, 1, -1); got.Offset != 1 {
		t.Errorf("expected Left to land on cluster start, got %d", got.Offset)
	}
	if got := Apply(s, 2, Forward, 1, -1); got.Offset != 4 {
		t.Errorf("expected start inside cluster to snap first, got %d", got.Offset)
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("sideways"); ok {
		t.Error("expected unknown motion to fail")
	}
	if !Down.Linewise() || Left.Linewise() {
		t.Error("unexpected linewise classification")
	}
	if !WordTail.Inclusive() || WordHead.Inclusive() {
		t.Error("unexpected inclusive classification")
	}
}

func TestFindChar(t *testing.T) {
	s := buffer.NewSnapshot("a,b,c,d\nx,y")
	tests := []struct {
		name    string
		from    buffer.ByteOffset
		target  string
		forward bool
		till    bool
		count   int
		want    buffer.ByteOffset
		found   bool
	}{
		{"forward", 0, ",", true, false, 1, 1, true},
		{"forward count", 0, ",", true, false, 2, 3, true},
		{"till forward", 0, "c", true, true, 1, 3, true},
		{"backward", 6, "b", false, false, 1, 2, true},
		{"till backward", 6, "b", false, true, 1, 3, true},
		{"stays on line", 4, "x", true, false, 1, 4, false},
		{"not enough matches", 0, ",", true, false, 9, 0, false},
		{"skips current", 1, ",", true, false, 1, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindChar(s, tt.from, tt.target, tt.forward, tt.till, tt.count)
			if ok != tt.found || got != tt.want {
				t.Errorf("expected (%d, %v), got (%d, %v)", tt.want, tt.found, got, ok)
			}
		})
	}
}

func TestWordEnd(t *testing.T) {
	s := buffer.NewSnapshot("foo bar.baz")
	tests := []struct {
		from buffer.ByteOffset
		want buffer.ByteOffset
	}{
		{0, 3},
		{2, 3},
		{3, 3},
		{4, 7},
		{7, 8},
		{9, 11},
	}
	for _, tt := range tests {
		if got := WordEnd(s, tt.from); got != tt.want {
			t.Errorf("WordEnd(%d): expected %d, got %d", tt.from, tt.want, got)
		}
	}
}
