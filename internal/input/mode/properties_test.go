package mode

import (
	"testing"
	"unicode/utf8"

	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/engine/motion"
	"github.com/dshills/six/internal/input/micro"
	"pgregory.net/rapid"
)

func genText() *rapid.Generator[string] {
	return rapid.StringOfN(rapid.RuneFrom([]rune("ab \n.\u00e9")), 0, 24, -1)
}

func genOp(t *rapid.T) micro.Op {
	kinds := motion.Kinds()
	switch rapid.IntRange(0, 17).Draw(t, "kind") {
	case 0:
		return micro.Move(rapid.SampledFrom(kinds).Draw(t, "motion"), rapid.IntRange(1, 3).Draw(t, "count"))
	case 1:
		return micro.InsertText(genText().Draw(t, "text"))
	case 2:
		return micro.DeleteRange()
	case 3:
		return micro.DeleteSpan(
			buffer.ByteOffset(rapid.IntRange(-2, 30).Draw(t, "start")),
			buffer.ByteOffset(rapid.IntRange(-2, 30).Draw(t, "end")))
	case 4:
		return micro.Erase(rapid.Bool().Draw(t, "back"), rapid.IntRange(1, 3).Draw(t, "count"))
	case 5:
		return micro.EnterMode(rapid.SampledFrom(micro.Tags()).Draw(t, "tag"))
	case 6:
		return micro.Escape()
	case 7:
		return micro.Undo()
	case 8:
		return micro.Redo()
	case 9:
		return micro.SetRegister(rapid.SampledFrom([]rune(`"a0-_#!`)).Draw(t, "reg"))
	case 10:
		return micro.Put(rapid.Bool().Draw(t, "before"))
	case 11:
		return micro.Character(rapid.SampledFrom([]rune("ab .\n()")).Draw(t, "char"))
	case 12:
		return micro.Digit(rapid.IntRange(0, 3).Draw(t, "digit"))
	case 13:
		return micro.FindChar(rapid.Bool().Draw(t, "fwd"), rapid.Bool().Draw(t, "till"))
	case 14:
		return micro.ReplaceChar()
	case 15:
		return micro.Operator(micro.OperatorKind(rapid.IntRange(0, 3).Draw(t, "operator")))
	case 16:
		return micro.Eval()
	default:
		return micro.Halt()
	}
}

func genBatch(t *rapid.T) []micro.Op {
	n := rapid.IntRange(0, 12).Draw(t, "len")
	ops := make([]micro.Op, n)
	for i := range ops {
		ops[i] = genOp(t)
	}
	return ops
}

func genFake(t *rapid.T) *fakeContext {
	text := genText().Draw(t, "initial")
	pos := rapid.IntRange(0, len(text)).Draw(t, "pos")
	ctx := newFake(text, buffer.ByteOffset(pos))
	ctx.scripts = &fakeScripts{calls: map[string][]micro.Op{}}
	return ctx
}

func checkInvariants(t *rapid.T, m *Mode, ctx *fakeContext) {
	c := ctx.Cursor()
	if !c.InBounds(ctx.Len()) {
		t.Fatalf("cursor %s outside [0, %d]", c, ctx.Len())
	}
	if !ctx.Snapshot().Valid(c.Primary()) {
		t.Fatalf("cursor %d splits a rune in %q", c.Primary(), ctx.Text())
	}
	if _, pending := m.Pending(); pending != (m.Tag() == micro.Pending) {
		t.Fatalf("continuation present=%v with tag %s", pending, m.Tag())
	}
	if c.HasAnchor() && m.Tag() != micro.Visual && m.Tag() != micro.Pending {
		t.Fatalf("anchor left set in %s", m.Tag())
	}
}

func TestPropertyConsumedCount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := genFake(t)
		m := New(WithFatal(rapid.SliceOfDistinct(rapid.SampledFrom([]ErrorKind{
			InapplicableInState, OutOfBounds, NotFound,
		}), func(k ErrorKind) ErrorKind { return k }).Draw(t, "fatal")...))
		ops := genBatch(t)

		res := m.Run(ops, ctx)
		if res.Consumed > len(ops) {
			t.Fatalf("consumed %d of %d", res.Consumed, len(ops))
		}
		full := res.Consumed == len(ops)
		endsClean := res.Outcome.IsContinue() || (res.Outcome.IsHalt() && full)
		if full != endsClean {
			t.Fatalf("consumed %d of %d with outcome %s", res.Consumed, len(ops), res.Outcome)
		}
		checkInvariants(t, m, ctx)
	})
}

func TestPropertyInvariantsPerOp(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := genFake(t)
		m := New()
		for _, op := range genBatch(t) {
			m.Apply(op, ctx)
			checkInvariants(t, m, ctx)
		}
	})
}

func TestPropertyEscapeIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := genFake(t)
		m := New()
		m.Run(genBatch(t), ctx)

		m.Apply(micro.Escape(), ctx)
		if !m.Idle() {
			t.Fatalf("expected idle Normal after escape, got %s", m.Tag())
		}
		text, cur := ctx.Text(), ctx.Cursor()
		if out := m.Apply(micro.Escape(), ctx); !out.IsContinue() {
			t.Fatalf("expected Continue, got %s", out)
		}
		if !m.Idle() || ctx.Text() != text || ctx.Cursor() != cur {
			t.Fatal("second escape changed state")
		}
	})
}

func TestPropertyContinuationExclusive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := genFake(t)
		m := New()
		m.Run(genBatch(t), ctx)
		before, ok := m.Pending()
		if !ok {
			return
		}
		trigger := rapid.SampledFrom([]micro.Op{
			micro.FindChar(true, false),
			micro.ReplaceChar(),
			micro.Operator(micro.OpDelete),
			micro.Operator(micro.OpSurround),
			micro.Eval(),
		}).Draw(t, "trigger")
		if before.Kind == MotionTarget &&
			(trigger.Kind == micro.KindFindChar || (trigger.Kind == micro.KindOperator && trigger.Operator == before.Operator)) {
			return
		}

		out := m.Apply(trigger, ctx)
		if !out.IsError() || out.Err.Kind != ContinuationConflict {
			t.Fatalf("expected ContinuationConflict for %s over %s, got %s", trigger, before.Kind, out)
		}
		after, ok := m.Pending()
		if !ok || after.Kind != before.Kind || after.Text != before.Text {
			t.Fatalf("pending %s replaced by %v", before.Kind, after.Kind)
		}
	})
}

func TestPropertyInsertDeleteRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := genFake(t)
		m := New()
		text, pos := ctx.Text(), ctx.Cursor().Primary()
		s := rapid.OneOf(
			rapid.String(),
			rapid.Map(rapid.SliceOf(rapid.Byte()), func(b []byte) string { return string(b) }),
		).Draw(t, "s")

		out := m.Apply(micro.InsertText(s), ctx)
		if !utf8.ValidString(s) {
			if !out.IsError() || out.Err.Kind != OutOfBounds {
				t.Fatalf("expected OutOfBounds for %q, got %s", s, out)
			}
		} else {
			m.Apply(micro.DeleteSpan(pos, pos+buffer.ByteOffset(len(s))), ctx)
		}

		if ctx.Text() != text {
			t.Fatalf("expected %q restored, got %q", text, ctx.Text())
		}
		if ctx.Cursor().Primary() != pos {
			t.Fatalf("expected cursor %d restored, got %d", pos, ctx.Cursor().Primary())
		}
	})
}

func TestPropertyDeleteClampsCursor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := genFake(t)
		m := New()
		n := int(ctx.Len())
		start := rapid.IntRange(0, n).Draw(t, "start")
		end := rapid.IntRange(start, n).Draw(t, "end")

		m.Apply(micro.DeleteSpan(buffer.ByteOffset(start), buffer.ByteOffset(end)), ctx)
		if p := ctx.Cursor().Primary(); p < 0 || p > ctx.Len() {
			t.Fatalf("cursor %d outside [0, %d]", p, ctx.Len())
		}
	})
}
