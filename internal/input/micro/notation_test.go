package micro

import (
	"errors"
	"testing"

	"github.com/dshills/six/internal/engine/motion"
	"pgregory.net/rapid"
)

func TestOpString(t *testing.T) {
	tests := []struct {
		op   Op
		want string
	}{
		{Move(motion.Left, 1), "move(left)"},
		{Move(motion.WordHead, 3), "move(word-head, 3)"},
		{InsertText("a b"), `insert("a b")`},
		{InsertText("line\n\"q\""), `insert("line\n\"q\"")`},
		{DeleteRange(), "delete"},
		{DeleteSpan(3, 7), "delete(3, 7)"},
		{Erase(true, 1), "erase(backward)"},
		{Erase(false, 2), "erase(forward, 2)"},
		{EnterMode(Insert), "enter(insert)"},
		{Escape(), "escape"},
		{SetRegister('a'), "register(a)"},
		{SetRegister('"'), `register('"')`},
		{Character(','), `char(',')`},
		{Put(true), "put(before)"},
		{Put(false), "put(after)"},
		{RunScript("wrap"), "run(wrap)"},
		{RunScript("two words"), `run("two words")`},
		{Digit(0), "digit(0)"},
		{FindChar(true, false), "find(forward)"},
		{FindChar(false, true), "find(backward, till)"},
		{Operator(OpSurround), "operator(surround)"},
		{Replay('q'), "replay(q)"},
		{ReplaceChar(), "replace"},
		{Halt(), "halt"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.op.String(); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
			back, err := Parse(tt.want)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if back != tt.op {
				t.Errorf("round trip mismatch: %+v != %+v", back, tt.op)
			}
		})
	}
}

func TestParseBatch(t *testing.T) {
	ops, err := ParseBatch(`enter(insert) insert(" world");escape`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := []Op{EnterMode(Insert), InsertText(" world"), Escape()}
	if len(ops) != len(want) {
		t.Fatalf("expected %d ops, got %d", len(want), len(ops))
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("op %d: expected %s, got %s", i, want[i], ops[i])
		}
	}
	if FormatBatch(ops) != `enter(insert) insert(" world") escape` {
		t.Errorf("unexpected format %q", FormatBatch(ops))
	}

	empty, err := ParseBatch("  ;  ")
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty batch, got %v, %v", empty, err)
	}
}

func TestParseDefaults(t *testing.T) {
	if op, err := Parse("put"); err != nil || op != Put(false) {
		t.Errorf("expected put(after), got %v, %v", op, err)
	}
	if op, err := Parse("move( down , 2 )"); err != nil || op != Move(motion.Down, 2) {
		t.Errorf("expected spaced args to parse, got %v, %v", op, err)
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"bogus",
		"move",
		"move(sideways)",
		"move(left, x)",
		"insert(unquoted",
		`insert("open`,
		"enter(pending-ish)",
		"digit(12)",
		"register(ab)",
		"find(up)",
		"find(forward, later)",
		"escape(now)",
		"delete(3)",
		"MOVE(left)",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if _, err := Parse(in); !errors.Is(err, ErrSyntax) {
				t.Errorf("expected ErrSyntax for %q, got %v", in, err)
			}
		})
	}
}

func genOp() *rapid.Generator[Op] {
	return rapid.Custom(func(t *rapid.T) Op {
		switch rapid.IntRange(0, 13).Draw(t, "kind") {
		case 0:
			m := rapid.SampledFrom(motion.Kinds()).Draw(t, "motion")
			return Move(m, rapid.IntRange(1, 50).Draw(t, "count"))
		case 1:
			return InsertText(rapid.String().Draw(t, "text"))
		case 2:
			return DeleteSpan(int64(rapid.IntRange(0, 100).Draw(t, "s")), int64(rapid.IntRange(0, 100).Draw(t, "e")))
		case 3:
			return Erase(rapid.Bool().Draw(t, "back"), rapid.IntRange(1, 9).Draw(t, "n"))
		case 4:
			return EnterMode(rapid.SampledFrom(Tags()).Draw(t, "tag"))
		case 5:
			return SetRegister(rapid.Rune().Draw(t, "reg"))
		case 6:
			return Character(rapid.Rune().Draw(t, "char"))
		case 7:
			return Replay(rapid.Rune().Draw(t, "replay"))
		case 8:
			return RunScript(rapid.StringMatching(`[a-z ]{0,8}`).Draw(t, "handle"))
		case 9:
			return Digit(rapid.IntRange(0, 9).Draw(t, "digit"))
		case 10:
			return FindChar(rapid.Bool().Draw(t, "fwd"), rapid.Bool().Draw(t, "till"))
		case 11:
			return Operator(OperatorKind(rapid.IntRange(0, 3).Draw(t, "operator")))
		case 12:
			return Put(rapid.Bool().Draw(t, "before"))
		}
		return rapid.SampledFrom([]Op{Escape(), Undo(), Redo(), Eval(), ReplaceChar(), Halt(), DeleteRange()}).Draw(t, "simple")
	})
}

func TestNotationRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ops := rapid.SliceOfN(genOp(), 0, 8).Draw(t, "ops")
		back, err := ParseBatch(FormatBatch(ops))
		if err != nil {
			t.Fatalf("parse %q: %v", FormatBatch(ops), err)
		}
		if len(back) != len(ops) {
			t.Fatalf("expected %d ops, got %d", len(ops), len(back))
		}
		for i := range ops {
			if back[i] != ops[i] {
				t.Fatalf("op %d: %+v != %+v", i, back[i], ops[i])
			}
		}
	})
}
