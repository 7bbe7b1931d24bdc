package mode

import (
	"errors"
	"strconv"

	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/engine/history"
	"github.com/dshills/six/internal/engine/motion"
	"github.com/dshills/six/internal/input/micro"
	"github.com/dshills/six/internal/input/register"
)

// takeCount consumes the count prefix. A typed count is recorded in the
// count register.
func (m *Mode) takeCount(ctx Context) int {
	n, typed := m.count.take()
	if typed {
		m.noteCount(ctx, n)
	}
	return n
}

func (m *Mode) noteCount(ctx Context, n int) {
	if err := ctx.SetRegister('#', register.Value{Text: strconv.Itoa(n)}); err != nil {
		m.logger.Debug("mode: count register: %v", err)
	}
}

// selection returns the inclusive Visual selection, covering the grapheme
// under the later end.
func selection(ctx Context) (buffer.Range, bool) {
	sel, ok := ctx.Cursor().Selection()
	if !ok {
		return buffer.Range{}, false
	}
	snap := ctx.Snapshot()
	return buffer.Range{Start: sel.Start(), End: snap.NextGrapheme(sel.End())}, true
}

func (m *Mode) move(op micro.Op, ctx Context) Outcome {
	n := combineCounts(m.takeCount(ctx), op.Count)
	cur := ctx.Cursor()
	col := -1
	if op.Motion.Vertical() {
		if c, ok := cur.PreferredColumn(); ok {
			col = c
		}
	}
	t := motion.Apply(ctx.Snapshot(), cur.Primary(), op.Motion, n, col)
	if t.Blocked {
		return Halt(HaltBoundary)
	}
	if err := ctx.SetCursor(t.Offset); err != nil {
		return m.fail(OutOfBounds, op, err)
	}
	if op.Motion.Vertical() {
		ctx.SetPreferredColumn(t.Column)
	}
	return Continue()
}

func (m *Mode) digit(op micro.Op, ctx Context) Outcome {
	if op.Digit < 0 || op.Digit > 9 {
		return m.inapplicable(op)
	}
	if !m.count.accumulate(op.Digit) {
		return m.move(micro.Move(motion.LineStart, 1), ctx)
	}
	return Continue()
}

func (m *Mode) setRegister(op micro.Op, ctx Context) Outcome {
	if !register.IsValid(op.Rune) {
		return m.fail(InvalidRegister, op, register.ErrInvalidRegister)
	}
	m.register = op.Rune
	return Continue()
}

// takeRegister consumes the selected register and checks that a delete
// or yank may write it.
func (m *Mode) takeRegister(op micro.Op) (rune, *Outcome) {
	reg := m.register
	m.register = 0
	if reg != 0 && !register.IsWritable(reg) {
		out := m.fail(InvalidRegister, op, register.ErrReadOnly)
		return 0, &out
	}
	return reg, nil
}

// store writes deleted or yanked text. An explicit register gets the text
// with the unnamed register; otherwise yanks go to 0, small deletes to -
// and the rest to 1.
func (m *Mode) store(ctx Context, reg rune, yank, small bool, v register.Value) {
	var target rune
	switch {
	case reg == '_':
		return
	case reg != 0:
		target = reg
	case yank:
		target = '0'
	case small:
		target = '-'
	default:
		target = '1'
	}
	for _, id := range []rune{target, '"'} {
		if err := ctx.SetRegister(id, v); err != nil {
			m.logger.Warn("mode: register %q: %v", id, err)
		}
	}
}

func (m *Mode) enterMode(op micro.Op, ctx Context) Outcome {
	if op.Tag == m.tag {
		return Continue()
	}
	switch op.Tag {
	case micro.Insert:
		m.count.reset()
		m.register = 0
		if m.tag == micro.Visual {
			ctx.ClearAnchor()
		}
		m.beginInsert(ctx, "insert")
		return Continue()
	case micro.Normal:
		was := m.tag
		m.reset(ctx)
		if was == micro.Insert {
			return Halt(HaltSessionEnd)
		}
		return Continue()
	case micro.Visual:
		if err := ctx.SetAnchor(ctx.Cursor().Primary()); err != nil {
			return m.fail(OutOfBounds, op, err)
		}
		m.endInsert(ctx)
		m.count.reset()
		m.tag = micro.Visual
		return Continue()
	}
	return m.inapplicable(op)
}

func (m *Mode) escape(_ micro.Op, ctx Context) Outcome {
	if m.Idle() && !ctx.Cursor().HasAnchor() {
		return Continue()
	}
	m.reset(ctx)
	return Halt(HaltExplicitAbort)
}

func (m *Mode) halt(micro.Op, Context) Outcome {
	return Halt(HaltScript)
}

func (m *Mode) undo(op micro.Op, ctx Context) Outcome {
	return m.walkHistory(op, ctx, ctx.Undo, history.ErrNothingToUndo)
}

func (m *Mode) redo(op micro.Op, ctx Context) Outcome {
	return m.walkHistory(op, ctx, ctx.Redo, history.ErrNothingToRedo)
}

// walkHistory steps undo or redo count times. Running out of history is
// not an error.
func (m *Mode) walkHistory(op micro.Op, ctx Context, step func() error, empty error) Outcome {
	n := m.takeCount(ctx)
	m.register = 0
	if m.tag == micro.Visual {
		ctx.ClearAnchor()
		m.tag = micro.Normal
	}
	for range n {
		if err := step(); err != nil {
			if errors.Is(err, empty) {
				break
			}
			return m.fail(OutOfBounds, op, err)
		}
	}
	// Restored cursors may carry the anchor of a past selection.
	if ctx.Cursor().HasAnchor() {
		ctx.ClearAnchor()
	}
	return Continue()
}

func (m *Mode) findChar(op micro.Op, _ Context) Outcome {
	m.install(&Continuation{Kind: FindTarget, Forward: op.Forward, Till: op.Till})
	return Continue()
}

func (m *Mode) replaceChar(micro.Op, Context) Outcome {
	m.install(&Continuation{Kind: ReplaceTarget})
	return Continue()
}

func (m *Mode) eval(micro.Op, Context) Outcome {
	m.install(&Continuation{Kind: Query, Purpose: QueryEval})
	return Continue()
}

// install makes c the pending continuation, moving the count prefix and
// selected register into it.
func (m *Mode) install(c *Continuation) {
	c.Prior = m.tag
	if n, typed := m.count.take(); typed {
		c.Count = n
	}
	if c.Register == 0 {
		c.Register = m.register
	}
	m.register = 0
	m.cont = c
	m.tag = micro.Pending
}

// complete clears the continuation and restores its prior tag.
func (m *Mode) complete() {
	if m.cont != nil {
		m.tag = m.cont.Prior
		m.cont = nil
	}
}

func (m *Mode) view(ctx Context) ScriptView {
	snap := ctx.Snapshot()
	v := ScriptView{
		Buffer: snap.BufferID(),
		Text:   snap.Text(),
		Cursor: ctx.Cursor().Primary(),
		Tag:    m.tag,
		Count:  m.Count(),
	}
	if r, ok := selection(ctx); ok {
		v.Selection, v.Selecting = r, true
	}
	return v
}
