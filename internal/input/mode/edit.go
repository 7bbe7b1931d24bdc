package mode

import (
	"strings"

	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/engine/motion"
	"github.com/dshills/six/internal/input/micro"
	"github.com/dshills/six/internal/input/register"
)

// maxRepeat caps how many copies a count may produce of inserted text.
const maxRepeat = 1 << 16

func repeatText(s string, n int) string {
	if n <= 1 {
		return s
	}
	return strings.Repeat(s, min(n, maxRepeat))
}

func (m *Mode) insertText(op micro.Op, ctx Context) Outcome {
	if m.tag == micro.Visual {
		return m.replaceSelection(op, ctx, op.Text)
	}
	text := repeatText(op.Text, m.takeCount(ctx))
	m.register = 0
	return m.insertAt(op, ctx, ctx.Cursor().Primary(), text)
}

func (m *Mode) insertChar(op micro.Op, ctx Context) Outcome {
	return m.insertAt(op, ctx, ctx.Cursor().Primary(), string(op.Rune))
}

// insertAt inserts text at pos and leaves the cursor after it.
func (m *Mode) insertAt(op micro.Op, ctx Context, pos buffer.ByteOffset, text string) Outcome {
	if text == "" {
		return Continue()
	}
	res, err := ctx.Insert(pos, text)
	if err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	if err := ctx.SetCursor(res.NewRange.End); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	return Continue()
}

// replaceSelection overwrites the Visual selection with text and returns
// to Normal with the cursor after the new text.
func (m *Mode) replaceSelection(op micro.Op, ctx Context, text string) Outcome {
	r, ok := selection(ctx)
	if !ok {
		return m.inapplicable(op)
	}
	m.count.reset()
	m.register = 0
	res, err := ctx.Replace(r.Start, r.End, text)
	if err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	ctx.ClearAnchor()
	m.tag = micro.Normal
	if err := ctx.SetCursor(res.NewRange.End); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	return Continue()
}

func (m *Mode) deleteRange(op micro.Op, ctx Context) Outcome {
	if op.HasSpan {
		r := buffer.Range{Start: op.Start, End: op.End}
		if err := ctx.Snapshot().CheckRange(r); err != nil {
			return m.fail(OutOfBounds, op, err)
		}
		m.count.reset()
		m.register = 0
		if _, err := ctx.Delete(r.Start, r.End); err != nil {
			return m.fail(OutOfBounds, op, err)
		}
		return Continue()
	}
	if m.tag == micro.Visual {
		return m.visualOperator(op, ctx, micro.OpDelete)
	}
	return m.inapplicable(op)
}

// erase deletes graphemes next to the cursor. Normal mode stays on the
// line and keeps the text in a register; Insert crosses lines and does
// not.
func (m *Mode) erase(op micro.Op, ctx Context) Outcome {
	if m.tag == micro.Visual {
		return m.visualOperator(op, ctx, micro.OpDelete)
	}
	normal := m.tag == micro.Normal
	var reg rune
	if normal {
		r, fail := m.takeRegister(op)
		if fail != nil {
			return *fail
		}
		reg = r
	}

	n := combineCounts(m.takeCount(ctx), op.Count)
	snap := ctx.Snapshot()
	pos := ctx.Cursor().Primary()

	var k motion.Kind
	switch {
	case normal && op.Backward:
		k = motion.Left
	case normal:
		k = motion.Right
	case op.Backward:
		k = motion.Backward
	default:
		k = motion.Forward
	}
	t := motion.Apply(snap, pos, k, n, -1)
	if t.Blocked {
		return Halt(HaltBoundary)
	}
	r := buffer.NewRange(pos, t.Offset)
	text := snap.Slice(r.Start, r.End)

	if _, err := ctx.Delete(r.Start, r.End); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	if err := ctx.SetCursor(r.Start); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	if normal {
		m.store(ctx, reg, false, true, register.Value{Text: text})
	}
	return Continue()
}

// put pastes the selected register, the unnamed one by default.
func (m *Mode) put(op micro.Op, ctx Context) Outcome {
	reg := m.register
	if reg == 0 {
		reg = '"'
	}
	m.register = 0
	v, err := ctx.Register(reg)
	if err != nil {
		return m.fail(InvalidRegister, op, err)
	}
	n := m.takeCount(ctx)
	if v.Text == "" {
		return Continue()
	}

	if m.tag == micro.Visual {
		return m.replaceSelection(op, ctx, repeatText(v.Text, n))
	}

	snap := ctx.Snapshot()
	pos := ctx.Cursor().Primary()
	if !v.Linewise {
		at := pos
		if !op.Before && pos < snap.LineEnd(snap.LineOf(pos)) {
			at = snap.NextGrapheme(pos)
		}
		text := repeatText(v.Text, n)
		res, err := ctx.Insert(at, text)
		if err != nil {
			return m.fail(OutOfBounds, op, err)
		}
		last := ctx.Snapshot().PrevGrapheme(res.NewRange.End)
		if err := ctx.SetCursor(last); err != nil {
			return m.fail(OutOfBounds, op, err)
		}
		return Continue()
	}

	text := v.Text
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	text = repeatText(text, n)
	line := snap.LineOf(pos)
	at := snap.LineStart(line)
	first := at
	if !op.Before {
		at = snap.LineRange(line).End
		first = at
		if at == snap.LineEnd(line) {
			// Last line without a newline: open one before the pasted text.
			text = "\n" + strings.TrimSuffix(text, "\n")
			first = at + 1
		}
	}
	if _, err := ctx.Insert(at, text); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	after := ctx.Snapshot()
	t := motion.Apply(after, first, motion.FirstNonBlank, 1, -1)
	if err := ctx.SetCursor(t.Offset); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	return Continue()
}
