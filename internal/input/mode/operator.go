package mode

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/engine/motion"
	"github.com/dshills/six/internal/input/micro"
	"github.com/dshills/six/internal/input/register"
)

// span is the text an operator acts on.
type span struct {
	r        buffer.Range
	linewise bool
	// first and last line of a linewise span
	first, last uint32
}

// lines builds a linewise span over lines a..b in either order.
func lines(snap *buffer.Snapshot, a, b uint32) span {
	if b < a {
		a, b = b, a
	}
	b = min(b, snap.LineCount()-1)
	return span{
		r:        buffer.Range{Start: snap.LineStart(a), End: snap.LineRange(b).End},
		linewise: true,
		first:    a,
		last:     b,
	}
}

// operator starts an operator. In Visual it acts on the selection at once;
// in Normal it waits for a motion.
func (m *Mode) operator(op micro.Op, ctx Context) Outcome {
	if m.tag == micro.Visual {
		return m.visualOperator(op, ctx, op.Operator)
	}
	if op.Operator != micro.OpSurround && m.register != 0 && !register.IsWritable(m.register) {
		return m.fail(InvalidRegister, op, register.ErrReadOnly)
	}
	m.install(&Continuation{Kind: MotionTarget, Operator: op.Operator, HasOperator: true})
	return Continue()
}

func (m *Mode) visualOperator(op micro.Op, ctx Context, kind micro.OperatorKind) Outcome {
	r, ok := selection(ctx)
	if !ok {
		return m.inapplicable(op)
	}
	reg, fail := m.takeRegister(op)
	if fail != nil && kind != micro.OpSurround {
		return *fail
	}
	m.count.reset()
	return m.runOperator(op, ctx, kind, span{r: r}, reg)
}

// operatorMotion completes a MotionTarget with a motion.
func (m *Mode) operatorMotion(op micro.Op, ctx Context, mv micro.Op) Outcome {
	c := m.cont
	n := combineCounts(c.count(), mv.Count)
	if c.Count > 0 || c.MotionCount.active {
		m.noteCount(ctx, n)
	}
	snap := ctx.Snapshot()
	pos := ctx.Cursor().Primary()

	var sp span
	switch {
	case c.Operator == micro.OpChange && mv.Motion == motion.WordHead && !onSpace(snap, pos):
		// cw changes to the end of the word, like ce, without the
		// trailing blanks.
		end := motion.WordEnd(snap, pos)
		if n > 1 {
			t := motion.Apply(snap, snap.PrevGrapheme(end), motion.WordTail, n-1, -1)
			end = snap.NextGrapheme(t.Offset)
		}
		sp = span{r: buffer.Range{Start: pos, End: end}}
	default:
		col := -1
		if mv.Motion.Vertical() {
			if pc, ok := ctx.Cursor().PreferredColumn(); ok {
				col = pc
			}
		}
		t := motion.Apply(snap, pos, mv.Motion, n, col)
		if t.Blocked {
			m.reset(ctx)
			return Halt(HaltBoundary)
		}
		switch {
		case mv.Motion.Linewise():
			sp = lines(snap, snap.LineOf(pos), snap.LineOf(t.Offset))
		case mv.Motion.Inclusive():
			r := buffer.NewRange(pos, t.Offset)
			r.End = snap.NextGrapheme(r.End)
			sp = span{r: r}
		default:
			sp = span{r: buffer.NewRange(pos, t.Offset)}
		}
	}
	return m.runOperator(op, ctx, c.Operator, sp, c.Register)
}

// operatorLines completes a doubled operator (dd, cc, yy, ss) over count
// lines starting at the cursor line.
func (m *Mode) operatorLines(op micro.Op, ctx Context) Outcome {
	c := m.cont
	n := c.count()
	if c.Count > 0 || c.MotionCount.active {
		m.noteCount(ctx, n)
	}
	snap := ctx.Snapshot()
	line := snap.LineOf(ctx.Cursor().Primary())
	last := uint32(min(int64(line)+int64(n)-1, int64(snap.LineCount())-1))
	return m.runOperator(op, ctx, c.Operator, lines(snap, line, last), c.Register)
}

// operatorFind completes a find chained from an operator. Forward finds
// include the target.
func (m *Mode) operatorFind(op micro.Op, ctx Context, from, to buffer.ByteOffset) Outcome {
	snap := ctx.Snapshot()
	r := buffer.NewRange(from, to)
	if to > from {
		r.End = snap.NextGrapheme(to)
	}
	return m.runOperator(op, ctx, m.cont.Operator, span{r: r}, m.cont.Register)
}

func onSpace(snap *buffer.Snapshot, pos buffer.ByteOffset) bool {
	r, _ := utf8.DecodeRuneInString(snap.GraphemeAt(pos))
	return r == utf8.RuneError || unicode.IsSpace(r)
}

// runOperator applies kind to sp and leaves the machine in the state that
// follows the operator: Normal after delete and yank, Insert after change,
// Pending after surround.
func (m *Mode) runOperator(op micro.Op, ctx Context, kind micro.OperatorKind, sp span, reg rune) Outcome {
	snap := ctx.Snapshot()
	if err := snap.CheckRange(sp.r); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	text := snap.Slice(sp.r.Start, sp.r.End)
	if sp.linewise && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	value := register.Value{Text: text, Linewise: sp.linewise}
	small := !sp.linewise && !strings.Contains(text, "\n")

	switch kind {
	case micro.OpYank:
		m.finishOperator(ctx)
		m.store(ctx, reg, true, false, value)
		if err := ctx.SetCursor(sp.r.Start); err != nil {
			return m.fail(OutOfBounds, op, err)
		}
		return Continue()

	case micro.OpDelete:
		r := sp.r
		if sp.linewise && r.End == snap.Len() && snap.LineEnd(sp.last) == snap.Len() && r.Start > 0 {
			// Deleting the last lines also takes the newline before them.
			r.Start--
		}
		if _, err := ctx.Delete(r.Start, r.End); err != nil {
			return m.fail(OutOfBounds, op, err)
		}
		m.finishOperator(ctx)
		m.store(ctx, reg, false, small, value)
		pos := r.Start
		if sp.linewise {
			pos = motion.Apply(ctx.Snapshot(), r.Start, motion.FirstNonBlank, 1, -1).Offset
		}
		if err := ctx.SetCursor(pos); err != nil {
			return m.fail(OutOfBounds, op, err)
		}
		return Continue()

	case micro.OpChange:
		r := sp.r
		if sp.linewise {
			// Keep an empty line to type into.
			r.End = snap.LineEnd(sp.last)
		}
		m.finishOperator(ctx)
		m.beginInsert(ctx, "change")
		if _, err := ctx.Delete(r.Start, r.End); err != nil {
			return m.fail(OutOfBounds, op, err)
		}
		m.store(ctx, reg, false, small, value)
		if err := ctx.SetCursor(r.Start); err != nil {
			return m.fail(OutOfBounds, op, err)
		}
		return Continue()

	case micro.OpSurround:
		r := sp.r
		if sp.linewise {
			r.End = snap.LineEnd(sp.last)
		}
		m.finishOperator(ctx)
		m.install(&Continuation{Kind: Query, Purpose: QuerySurround, Limit: 2, Span: r})
		return Continue()
	}
	return m.inapplicable(op)
}

// finishOperator drops the operator continuation and the selection.
func (m *Mode) finishOperator(ctx Context) {
	m.cont = nil
	m.count.reset()
	m.tag = micro.Normal
	if ctx.Cursor().HasAnchor() {
		ctx.ClearAnchor()
	}
}
