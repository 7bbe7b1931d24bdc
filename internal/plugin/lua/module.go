package lua

import (
	"strings"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/six/internal/engine/motion"
	"github.com/dshills/six/internal/input/micro"
)

// moduleName is the global table scripts use.
const moduleName = "editor"

func (r *Runtime) installModule() {
	L := r.state.L
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"handler": r.luaHandler,

		"text":      r.luaText,
		"cursor":    r.luaCursor,
		"mode":      r.luaMode,
		"count":     r.luaCount,
		"line":      r.luaLine,
		"selection": r.luaSelection,

		"move":     r.luaMove,
		"insert":   r.luaInsert,
		"delete":   r.luaDelete,
		"erase":    r.luaErase,
		"escape":   r.simple(micro.Escape()),
		"enter":    r.luaEnter,
		"undo":     r.simple(micro.Undo()),
		"redo":     r.simple(micro.Redo()),
		"put":      r.luaPut,
		"register": r.luaRegister,
		"call":     r.luaCall,
		"halt":     r.simple(micro.Halt()),
		"op":       r.luaOp,
	})
	L.SetGlobal(moduleName, mod)
	L.SetGlobal("print", L.NewFunction(r.luaPrint))
}

// emit appends op to the active call, charging the instruction budget.
func (r *Runtime) emit(L *lua.LState, ops ...micro.Op) {
	r.charge(L)
	if r.active == nil {
		L.RaiseError("%s: ops can only be emitted from a handler or eval", moduleName)
		return
	}
	r.active.ops = append(r.active.ops, ops...)
}

func (r *Runtime) charge(L *lua.LState) {
	if r.state.sandbox.IncrementInstructions(1) {
		r.limitHit = true
		L.RaiseError("%s", ErrInstructionLimit.Error())
	}
}

func (r *Runtime) simple(op micro.Op) lua.LGFunction {
	return func(L *lua.LState) int {
		r.emit(L, op)
		return 0
	}
}

func (r *Runtime) luaHandler(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	r.handlers[name] = fn
	return 0
}

func (r *Runtime) luaPrint(L *lua.LState) int {
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	r.logger.Info("lua: %s", strings.Join(parts, "\t"))
	return 0
}

func (r *Runtime) luaText(L *lua.LState) int {
	r.charge(L)
	if r.active == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(r.active.view.Text))
	return 1
}

func (r *Runtime) luaCursor(L *lua.LState) int {
	r.charge(L)
	if r.active == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(r.active.view.Cursor))
	return 1
}

func (r *Runtime) luaMode(L *lua.LState) int {
	r.charge(L)
	if r.active == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(r.active.view.Tag.String()))
	return 1
}

func (r *Runtime) luaCount(L *lua.LState) int {
	r.charge(L)
	if r.active == nil {
		L.Push(lua.LNumber(0))
		return 1
	}
	L.Push(lua.LNumber(r.active.view.Count))
	return 1
}

// luaLine returns the text of the cursor line without its newline.
func (r *Runtime) luaLine(L *lua.LState) int {
	r.charge(L)
	if r.active == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(lineAt(r.active.view.Text, int(r.active.view.Cursor))))
	return 1
}

func lineAt(text string, pos int) string {
	pos = max(0, min(pos, len(text)))
	start := strings.LastIndexByte(text[:pos], '\n') + 1
	end := strings.IndexByte(text[pos:], '\n')
	if end < 0 {
		return text[start:]
	}
	return text[start : pos+end]
}

func (r *Runtime) luaSelection(L *lua.LState) int {
	r.charge(L)
	if r.active == nil || !r.active.view.Selecting {
		L.Push(lua.LNil)
		return 1
	}
	sel := r.active.view.Selection
	L.Push(lua.LNumber(sel.Start))
	L.Push(lua.LNumber(sel.End))
	return 2
}

func (r *Runtime) luaMove(L *lua.LState) int {
	name := L.CheckString(1)
	k, ok := motion.ParseKind(name)
	if !ok {
		L.ArgError(1, "unknown motion "+name)
		return 0
	}
	r.emit(L, micro.Move(k, L.OptInt(2, 1)))
	return 0
}

func (r *Runtime) luaInsert(L *lua.LState) int {
	r.emit(L, micro.InsertText(L.CheckString(1)))
	return 0
}

func (r *Runtime) luaDelete(L *lua.LState) int {
	if L.GetTop() == 0 {
		r.emit(L, micro.DeleteRange())
		return 0
	}
	start, end := L.CheckInt64(1), L.CheckInt64(2)
	r.emit(L, micro.DeleteSpan(start, end))
	return 0
}

func (r *Runtime) luaErase(L *lua.LState) int {
	dir := L.OptString(1, "forward")
	if dir != "forward" && dir != "backward" {
		L.ArgError(1, "expected forward or backward")
		return 0
	}
	r.emit(L, micro.Erase(dir == "backward", L.OptInt(2, 1)))
	return 0
}

func (r *Runtime) luaEnter(L *lua.LState) int {
	name := L.CheckString(1)
	tag, ok := micro.ParseTag(name)
	if !ok || tag == micro.Pending {
		L.ArgError(1, "unknown mode "+name)
		return 0
	}
	r.emit(L, micro.EnterMode(tag))
	return 0
}

func (r *Runtime) luaPut(L *lua.LState) int {
	r.emit(L, micro.Put(L.OptBool(1, false)))
	return 0
}

func (r *Runtime) luaRegister(L *lua.LState) int {
	id := L.CheckString(1)
	ch, n := utf8.DecodeRuneInString(id)
	if n == 0 || n != len(id) {
		L.ArgError(1, "register must be one character")
		return 0
	}
	r.emit(L, micro.SetRegister(ch))
	return 0
}

func (r *Runtime) luaCall(L *lua.LState) int {
	r.emit(L, micro.RunScript(L.CheckString(1)))
	return 0
}

// luaOp emits ops written in op notation.
func (r *Runtime) luaOp(L *lua.LState) int {
	ops, err := micro.ParseBatch(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	r.emit(L, ops...)
	return 0
}
