package lua

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Default limits for a Lua state.
const (
	DefaultExecutionTimeout = time.Second
	DefaultInstructionLimit = 100_000
)

// State wraps gopher-lua with a sandbox and execution limits.
//
// gopher-lua's LState is not goroutine-safe; the mutex serializes every
// entry point.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	instructionLimit int64

	sandbox *Sandbox
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the timeout of each execution.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// WithInstructionLimit sets the instruction budget of each execution.
func WithInstructionLimit(limit int64) StateOption {
	return func(s *State) {
		s.instructionLimit = limit
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{
		executionTimeout: DefaultExecutionTimeout,
		instructionLimit: DefaultInstructionLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	s.sandbox = NewSandbox(s.L, s.instructionLimit)
	s.sandbox.Install()
	return s
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	return s.run(func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

// DoString executes a Lua string.
func (s *State) DoString(code string) error {
	return s.run(func(L *lua.LState) error {
		return L.DoString(code)
	})
}

// run executes fn under the lock with the timeout, a fresh instruction
// budget and panic recovery.
func (s *State) run(fn func(L *lua.LState) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStateClosed
	}
	return s.runLocked(fn)
}

func (s *State) runLocked(fn func(L *lua.LState) error) (err error) {
	s.sandbox.ResetInstructionCount()

	ctx := context.Background()
	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
		if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", ErrExecutionTimeout, err)
		}
	}()
	return fn(s.L)
}

// Sandbox returns the sandbox of the state.
func (s *State) Sandbox() *Sandbox {
	return s.sandbox
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
