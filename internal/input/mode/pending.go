package mode

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/engine/motion"
	"github.com/dshills/six/internal/input/micro"
)

// resume routes op to the pending continuation.
func (m *Mode) resume(op micro.Op, ctx Context) Outcome {
	switch op.Kind {
	case micro.KindEscape:
		m.reset(ctx)
		return Halt(HaltExplicitAbort)
	case micro.KindHalt:
		return Halt(HaltScript)
	}

	switch m.cont.Kind {
	case FindTarget:
		return m.resumeFind(op, ctx)
	case ReplaceTarget:
		return m.resumeReplace(op, ctx)
	case MotionTarget:
		return m.resumeMotion(op, ctx)
	case Query:
		return m.resumeQuery(op, ctx)
	}
	return m.inapplicable(op)
}

// reject answers an op the continuation cannot use.
func (m *Mode) reject(op micro.Op) Outcome {
	if startsContinuation(op) {
		return m.fail(ContinuationConflict, op, nil)
	}
	return m.inapplicable(op)
}

func (m *Mode) resumeFind(op micro.Op, ctx Context) Outcome {
	if op.Kind != micro.KindCharacter {
		return m.reject(op)
	}
	c := m.cont
	pos := ctx.Cursor().Primary()
	to, ok := motion.FindChar(ctx.Snapshot(), pos, string(op.Rune), c.Forward, c.Till, c.count())
	if !ok {
		return m.fail(NotFound, op, nil)
	}
	if c.HasOperator {
		return m.operatorFind(op, ctx, pos, to)
	}
	if err := ctx.SetCursor(to); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	m.complete()
	return Continue()
}

// resumeReplace overwrites count graphemes at the cursor, or every
// grapheme of the selection when started from Visual.
func (m *Mode) resumeReplace(op micro.Op, ctx Context) Outcome {
	if op.Kind != micro.KindCharacter {
		return m.reject(op)
	}
	c := m.cont
	snap := ctx.Snapshot()
	ch := string(op.Rune)

	if c.Prior == micro.Visual {
		r, ok := selection(ctx)
		if !ok {
			return m.inapplicable(op)
		}
		var b strings.Builder
		for pos := r.Start; pos < r.End; pos = snap.NextGrapheme(pos) {
			if g := snap.GraphemeAt(pos); g == "\n" {
				b.WriteString(g)
			} else {
				b.WriteString(ch)
			}
		}
		if _, err := ctx.Replace(r.Start, r.End, b.String()); err != nil {
			return m.fail(OutOfBounds, op, err)
		}
		m.finishOperator(ctx)
		if err := ctx.SetCursor(r.Start); err != nil {
			return m.fail(OutOfBounds, op, err)
		}
		return Continue()
	}

	pos := ctx.Cursor().Primary()
	lineEnd := snap.LineEnd(snap.LineOf(pos))
	n := c.count()
	end := pos
	for range n {
		if end >= lineEnd {
			return m.fail(NotFound, op, nil)
		}
		end = snap.NextGrapheme(end)
	}
	res, err := ctx.Replace(pos, end, repeatText(ch, n))
	if err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	m.complete()
	last := res.NewRange.End - int64(len(ch))
	if err := ctx.SetCursor(last); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	return Continue()
}

func (m *Mode) resumeMotion(op micro.Op, ctx Context) Outcome {
	c := m.cont
	switch op.Kind {
	case micro.KindDigit:
		if op.Digit < 0 || op.Digit > 9 {
			return m.inapplicable(op)
		}
		if !c.MotionCount.accumulate(op.Digit) {
			return m.operatorMotion(op, ctx, micro.Move(motion.LineStart, 1))
		}
		return Continue()
	case micro.KindMove:
		return m.operatorMotion(op, ctx, op)
	case micro.KindOperator:
		if op.Operator == c.Operator {
			return m.operatorLines(op, ctx)
		}
	case micro.KindFindChar:
		c.Count = c.count()
		c.MotionCount.reset()
		c.Kind = FindTarget
		c.Forward, c.Till = op.Forward, op.Till
		return Continue()
	}
	return m.reject(op)
}

func (m *Mode) resumeQuery(op micro.Op, ctx Context) Outcome {
	c := m.cont
	switch op.Kind {
	case micro.KindCharacter:
		return m.queryAppend(op, ctx, string(op.Rune))
	case micro.KindInsertText:
		return m.queryAppend(op, ctx, op.Text)
	case micro.KindErase:
		if !op.Backward {
			return m.inapplicable(op)
		}
		if c.Text == "" {
			m.reset(ctx)
			return Halt(HaltExplicitAbort)
		}
		for i := 0; i < op.Count && c.Text != ""; i++ {
			_, size := utf8.DecodeLastRuneInString(c.Text)
			c.Text = c.Text[:len(c.Text)-size]
		}
		return Continue()
	}
	return m.reject(op)
}

// queryAppend adds text to the query. A newline or reaching the limit
// submits it; anything after that is dropped. Invalid UTF-8 is rejected
// before any of it is taken.
func (m *Mode) queryAppend(op micro.Op, ctx Context, text string) Outcome {
	if !utf8.ValidString(text) {
		return m.fail(OutOfBounds, op, buffer.ErrInvalidUTF8)
	}
	c := m.cont
	for _, r := range text {
		if r == '\n' {
			return m.submit(op, ctx)
		}
		c.Text += string(r)
		if c.Limit > 0 && utf8.RuneCountInString(c.Text) >= c.Limit {
			return m.submit(op, ctx)
		}
	}
	return Continue()
}

func (m *Mode) submit(op micro.Op, ctx Context) Outcome {
	switch m.cont.Purpose {
	case QuerySurround:
		return m.submitSurround(op, ctx)
	default:
		return m.submitEval(op, ctx)
	}
}

// submitSurround wraps the span with the query text. One character is used
// on both sides, two give the prefix and the suffix.
func (m *Mode) submitSurround(op micro.Op, ctx Context) Outcome {
	c := m.cont
	if c.Text == "" {
		m.complete()
		return Continue()
	}
	prefix, size := utf8.DecodeRuneInString(c.Text)
	suffix := prefix
	if rest := c.Text[size:]; rest != "" {
		suffix, _ = utf8.DecodeRuneInString(rest)
	}
	r := c.Span
	if err := ctx.Snapshot().CheckRange(r); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	ctx.BeginGroup("surround")
	defer ctx.EndGroup()
	if _, err := ctx.Insert(r.End, string(suffix)); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	if _, err := ctx.Insert(r.Start, string(prefix)); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	m.complete()
	if err := ctx.SetCursor(r.Start); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	return Continue()
}
