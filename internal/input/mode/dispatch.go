package mode

import "github.com/dshills/six/internal/input/micro"

type handler func(m *Mode, op micro.Op, ctx Context) Outcome

type dispatchKey struct {
	tag  micro.Tag
	kind micro.Kind
}

// dispatchTable routes (tag, kind) to a handler. Pending has no entries:
// with a continuation installed every op goes to resume instead.
var dispatchTable map[dispatchKey]handler

func init() {
	dispatchTable = make(map[dispatchKey]handler)
	on := func(h handler, kind micro.Kind, tags ...micro.Tag) {
		for _, t := range tags {
			dispatchTable[dispatchKey{t, kind}] = h
		}
	}
	const (
		n = micro.Normal
		i = micro.Insert
		v = micro.Visual
	)

	on((*Mode).move, micro.KindMove, n, i, v)
	on((*Mode).insertText, micro.KindInsertText, n, i, v)
	on((*Mode).insertChar, micro.KindCharacter, i)
	on((*Mode).deleteRange, micro.KindDeleteRange, n, i, v)
	on((*Mode).erase, micro.KindErase, n, i, v)
	on((*Mode).enterMode, micro.KindEnterMode, n, i, v)
	on((*Mode).escape, micro.KindEscape, n, i, v)
	on((*Mode).undo, micro.KindUndo, n, v)
	on((*Mode).redo, micro.KindRedo, n, v)
	on((*Mode).setRegister, micro.KindSetRegister, n, v)
	on((*Mode).put, micro.KindPut, n, v)
	on((*Mode).runScript, micro.KindRunScript, n, i, v)
	on((*Mode).eval, micro.KindEval, n, v)
	on((*Mode).digit, micro.KindDigit, n, v)
	on((*Mode).findChar, micro.KindFindChar, n, v)
	on((*Mode).replaceChar, micro.KindReplaceChar, n, v)
	on((*Mode).operator, micro.KindOperator, n, v)
	on((*Mode).replay, micro.KindReplay, n, v)
	on((*Mode).halt, micro.KindHalt, n, i, v)
}

func (m *Mode) dispatch(op micro.Op, ctx Context) Outcome {
	h, ok := dispatchTable[dispatchKey{m.tag, op.Kind}]
	if !ok {
		return m.inapplicable(op)
	}
	return h(m, op, ctx)
}

// startsContinuation reports whether op would install a continuation.
func startsContinuation(op micro.Op) bool {
	switch op.Kind {
	case micro.KindFindChar, micro.KindReplaceChar, micro.KindOperator, micro.KindEval:
		return true
	}
	return false
}
