package lua

import (
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts Lua execution to safe operations.
type Sandbox struct {
	L *lua.LState

	instructionLimit int64
	instructionCount int64
}

// NewSandbox creates a new sandbox for the Lua state.
func NewSandbox(L *lua.LState, instructionLimit int64) *Sandbox {
	return &Sandbox{
		L:                L,
		instructionLimit: instructionLimit,
	}
}

// Install opens the safe libraries and removes functions that load code
// from outside the runtime.
func (s *Sandbox) Install() {
	lua.OpenBase(s.L)
	lua.OpenTable(s.L)
	lua.OpenString(s.L)
	lua.OpenMath(s.L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		s.L.SetGlobal(name, lua.LNil)
	}
}

// ResetInstructionCount resets the instruction counter.
func (s *Sandbox) ResetInstructionCount() {
	atomic.StoreInt64(&s.instructionCount, 0)
}

// InstructionCount returns the current instruction count.
func (s *Sandbox) InstructionCount() int64 {
	return atomic.LoadInt64(&s.instructionCount)
}

// IncrementInstructions adds to the instruction count and returns true if
// the limit is exceeded. A limit of zero or less disables counting.
func (s *Sandbox) IncrementInstructions(n int64) bool {
	if s.instructionLimit <= 0 {
		return false
	}
	return atomic.AddInt64(&s.instructionCount, n) > s.instructionLimit
}
