package mode

import (
	"errors"

	"github.com/dshills/six/internal/input/micro"
	"github.com/dshills/six/internal/input/register"
)

// ErrNoScripting is the cause when a script op runs without a runtime.
var ErrNoScripting = errors.New("no scripting runtime")

func (m *Mode) runScript(op micro.Op, ctx Context) Outcome {
	s := ctx.Scripting()
	if s == nil {
		return m.fail(ScriptFailure, op, ErrNoScripting)
	}
	view := m.view(ctx)
	m.count.reset()
	ops, err := s.Call(op.Text, view)
	if err != nil {
		return m.fail(ScriptFailure, op, err)
	}
	return m.nested(ops, ctx, op)
}

// submitEval runs the query text as a script. The text is kept in the
// query register.
func (m *Mode) submitEval(op micro.Op, ctx Context) Outcome {
	c := m.cont
	s := ctx.Scripting()
	if s == nil {
		return m.fail(ScriptFailure, op, ErrNoScripting)
	}
	src := c.Text
	if err := ctx.SetRegister('=', register.Value{Text: src}); err != nil {
		m.logger.Debug("mode: query register: %v", err)
	}
	m.complete()
	view := m.view(ctx)
	view.Count = c.Count
	ops, err := s.Eval(src, view)
	if err != nil {
		return m.fail(ScriptFailure, op, err)
	}
	return m.nested(ops, ctx, op)
}

// replay feeds a register through the key map as if it were typed. Each
// translated batch runs whole; a batch that ends the session or aborts
// moves on to the next keys, while errors, boundaries and script halts
// stop the replay.
func (m *Mode) replay(op micro.Op, ctx Context) Outcome {
	km := ctx.KeyMap()
	if km == nil {
		return m.inapplicable(op)
	}
	v, err := ctx.Register(op.Rune)
	if err != nil {
		return m.fail(InvalidRegister, op, err)
	}
	n := m.takeCount(ctx)
	m.register = 0
	if m.depth >= m.maxDepth {
		return m.fail(ScriptFailure, op, ErrNestingLimit)
	}
	m.depth++
	defer func() { m.depth-- }()

	return m.atomically(ctx, op.Kind.String(), func() Outcome {
		for range n {
			keys := v.Text
			for keys != "" {
				ops, consumed, match := km.Translate(m.InputTag(), keys)
				if match == Prefix || consumed <= 0 || consumed > len(keys) {
					break
				}
				keys = keys[consumed:]
				if match != Matched {
					continue
				}
				if out := m.replayBatch(ops, ctx); !out.IsContinue() {
					return out
				}
			}
		}
		return Continue()
	})
}

func (m *Mode) replayBatch(ops []micro.Op, ctx Context) Outcome {
	for _, op := range ops {
		out := m.Apply(op, ctx)
		switch {
		case out.IsError():
			return out
		case out.IsHalt():
			if out.Reason == HaltBoundary || out.Reason == HaltScript {
				return out
			}
			return Continue()
		}
	}
	return Continue()
}
