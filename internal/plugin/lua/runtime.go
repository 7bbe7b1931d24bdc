package lua

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/six/internal/input/micro"
	"github.com/dshills/six/internal/input/mode"
)

// Logger receives script output and load diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTimeout sets the timeout of each call.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) { r.stateOpts = append(r.stateOpts, WithExecutionTimeout(d)) }
}

// WithLimit sets the instruction budget of each call.
func WithLimit(n int64) Option {
	return func(r *Runtime) { r.stateOpts = append(r.stateOpts, WithInstructionLimit(n)) }
}

// WithLogger sets the logger that receives print output.
func WithLogger(l Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.logger = l
		}
	}
}

// emission collects the ops of one call.
type emission struct {
	view mode.ScriptView
	ops  []micro.Op
}

// Runtime is the scripting runtime used by the editor.
type Runtime struct {
	state     *State
	stateOpts []StateOption
	logger    Logger

	handlers map[string]*lua.LFunction
	active   *emission
	limitHit bool
}

// New creates a runtime with the editor module installed.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		logger:   nopLogger{},
		handlers: make(map[string]*lua.LFunction),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.state = NewState(r.stateOpts...)
	r.installModule()
	return r
}

// LoadFile runs a script file so it can register handlers.
func (r *Runtime) LoadFile(path string) error {
	if err := r.state.DoFile(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	r.logger.Debug("lua: loaded %s", path)
	return nil
}

// LoadString runs source as a script named name.
func (r *Runtime) LoadString(name, source string) error {
	if err := r.state.DoString(source); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

// LoadDir loads every .lua file in dir in name order.
func (r *Runtime) LoadDir(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return err
	}
	sort.Strings(paths)
	for _, p := range paths {
		if err := r.LoadFile(p); err != nil {
			return err
		}
	}
	return nil
}

// Handles returns the registered handler names, sorted.
func (r *Runtime) Handles() []string {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	out := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Close releases the Lua state.
func (r *Runtime) Close() error {
	return r.state.Close()
}

// Call runs the handler registered as handle, or a global function of
// that name, and returns the ops it emitted.
func (r *Runtime) Call(handle string, view mode.ScriptView) ([]micro.Op, error) {
	var ops []micro.Op
	err := r.state.run(func(L *lua.LState) error {
		fn, ok := r.handlers[handle]
		if !ok {
			if g, isFn := L.GetGlobal(handle).(*lua.LFunction); isFn {
				fn, ok = g, true
			}
		}
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownHandle, handle)
		}
		var err error
		ops, err = r.invoke(L, fn, view)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("lua: %s: %w", handle, err)
	}
	return ops, nil
}

// Eval runs source as a chunk. The view is passed as the chunk's first
// vararg.
func (r *Runtime) Eval(source string, view mode.ScriptView) ([]micro.Op, error) {
	var ops []micro.Op
	err := r.state.run(func(L *lua.LState) error {
		fn, err := L.LoadString(source)
		if err != nil {
			return err
		}
		ops, err = r.invoke(L, fn, view)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("lua: eval: %w", err)
	}
	return ops, nil
}

func (r *Runtime) invoke(L *lua.LState, fn *lua.LFunction, view mode.ScriptView) ([]micro.Op, error) {
	r.active = &emission{view: view}
	r.limitHit = false
	defer func() { r.active = nil }()

	err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, viewTable(L, view))
	if err != nil {
		if r.limitHit {
			return nil, errors.Join(ErrInstructionLimit, err)
		}
		return nil, err
	}
	ret := L.Get(-1)
	L.Pop(1)
	ops := r.active.ops
	if s, ok := ret.(lua.LString); ok && s != "" {
		ops = append(ops, micro.InsertText(string(s)))
	}
	r.logger.Debug("lua: emitted %d ops using %d of the budget", len(ops), r.state.Sandbox().InstructionCount())
	return ops, nil
}

func viewTable(L *lua.LState, view mode.ScriptView) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("buffer", lua.LString(view.Buffer.String()))
	t.RawSetString("text", lua.LString(view.Text))
	t.RawSetString("cursor", lua.LNumber(view.Cursor))
	t.RawSetString("mode", lua.LString(view.Tag.String()))
	t.RawSetString("count", lua.LNumber(view.Count))
	if view.Selecting {
		t.RawSetString("start", lua.LNumber(view.Selection.Start))
		t.RawSetString("finish", lua.LNumber(view.Selection.End))
	}
	return t
}

var _ mode.Scripting = (*Runtime)(nil)
