package editor

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/six/internal/engine"
	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/input/key"
	"github.com/dshills/six/internal/input/keymap"
	"github.com/dshills/six/internal/input/micro"
	"github.com/dshills/six/internal/input/mode"
	"github.com/dshills/six/internal/input/register"
	"github.com/dshills/six/internal/plugin/lua"
)

// Logger is the logging interface the editor writes to.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}

// Option configures an Editor.
type Option func(*options)

type options struct {
	logger   Logger
	keys     *keymap.Map
	scripts  *lua.Runtime
	history  int
	cursor   engine.ByteOffset
	modeOpts []mode.Option
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithKeyMap replaces the default key map.
func WithKeyMap(km *keymap.Map) Option {
	return func(o *options) { o.keys = km }
}

// WithScripts attaches a script runtime. The editor closes it.
func WithScripts(rt *lua.Runtime) Option {
	return func(o *options) { o.scripts = rt }
}

// WithHistory bounds the undo history.
func WithHistory(n int) Option {
	return func(o *options) { o.history = n }
}

// WithCursor places the cursor at pos, clamped to the text.
func WithCursor(pos engine.ByteOffset) Option {
	return func(o *options) { o.cursor = pos }
}

// WithModeOptions passes options through to the mode machine.
func WithModeOptions(opts ...mode.Option) Option {
	return func(o *options) { o.modeOpts = append(o.modeOpts, opts...) }
}

// Editor is one editing session.
type Editor struct {
	mu sync.Mutex

	id      uuid.UUID
	logger  Logger
	mode    *mode.Mode
	ctx     *session
	keymap  *keymap.Map
	pending string
}

// Result summarizes the batches run for one Feed.
type Result struct {
	// Batches is the number of translated batches run.
	Batches int

	// Consumed counts the ops consumed across batches.
	Consumed int

	// Outcome is the outcome of the last batch.
	Outcome mode.Outcome

	// Errors are the recoverable errors of every batch.
	Errors []*mode.Error

	// Skipped are keys with no binding.
	Skipped []string

	// Pending holds keys waiting for a longer binding.
	Pending string
}

func (r *Result) add(b mode.BatchResult) {
	r.Batches++
	r.Consumed += b.Consumed
	r.Outcome = b.Outcome
	r.Errors = append(r.Errors, b.Errors...)
}

// New creates an editor holding text.
func New(text string, opts ...Option) *Editor {
	o := options{logger: nopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.keys == nil {
		o.keys = keymap.Default()
	}
	id := uuid.New()
	logger := o.logger
	modeOpts := append([]mode.Option{mode.WithLogger(logger)}, o.modeOpts...)
	e := &Editor{
		id:     id,
		logger: logger,
		mode:   mode.New(modeOpts...),
		keymap: o.keys,
		ctx: &session{
			State:   engine.NewState(text, o.cursor,
				engine.WithHistory(o.history),
				engine.WithBufferOptions(buffer.WithID(id))),
			regs:    register.NewStore(),
			scripts: o.scripts,
			keys:    o.keys,
		},
	}
	logger.Debug("editor %s: new buffer of %d bytes", id, len(text))
	return e
}

// ID returns the session id.
func (e *Editor) ID() uuid.UUID {
	return e.id
}

// HandleKey feeds one key event.
func (e *Editor) HandleKey(ev key.Event) (Result, error) {
	return e.Feed(ev.String())
}

// Feed feeds keys in notation form, "d2w" or "ihi<Esc>". A fatal error
// stops processing, drops the remaining keys and is returned.
func (e *Editor) Feed(keys string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var res Result
	e.pending += keys
	for e.pending != "" {
		ops, n, match := e.keymap.Translate(e.mode.InputTag(), e.pending)
		if n <= 0 || n > len(e.pending) {
			if match == mode.Prefix {
				break
			}
			n = len(e.pending)
		}
		if match == mode.NoMatch {
			skipped := e.pending[:n]
			e.logger.Debug("editor: no binding for %q in %s", skipped, e.mode.InputTag())
			res.Skipped = append(res.Skipped, skipped)
			e.pending = e.pending[n:]
			continue
		}
		e.pending = e.pending[n:]
		batch := e.run(ops)
		res.add(batch)
		if batch.Outcome.IsError() {
			e.pending = ""
			return res, batch.Outcome.Err
		}
	}
	res.Pending = e.pending
	return res, nil
}

// Run applies ops directly, bypassing the key map.
func (e *Editor) Run(ops []micro.Op) mode.BatchResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.run(ops)
}

// Exec parses ops written in op notation and runs them.
func (e *Editor) Exec(notation string) (mode.BatchResult, error) {
	ops, err := micro.ParseBatch(notation)
	if err != nil {
		return mode.BatchResult{}, err
	}
	return e.Run(ops), nil
}

func (e *Editor) run(ops []micro.Op) mode.BatchResult {
	res := e.mode.Run(ops, e.ctx)
	snap := e.ctx.Snapshot()
	e.logger.Debug("editor %s: batch [%s] consumed %d of %d: %s (now %s, revision %d)",
		snap.BufferID(), micro.FormatBatch(ops), res.Consumed, len(ops), res.Outcome, e.mode.Tag(), snap.Revision())
	for _, err := range res.Errors {
		e.logger.Warn("editor: %v", err)
	}
	if res.Outcome.IsError() {
		e.logger.Warn("editor: fatal: %v", res.Outcome.Err)
	}
	return res
}

// Cancel drops keys held for a longer binding and resets the mode.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pending = ""
	e.mode.Reset(e.ctx)
}

// Text returns the buffer content.
func (e *Editor) Text() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx.Text()
}

// Cursor returns the cursor.
func (e *Editor) Cursor() engine.Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx.Cursor()
}

// Mode returns the current mode tag.
func (e *Editor) Mode() micro.Tag {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode.Tag()
}

// Register returns the content of register id.
func (e *Editor) Register(id rune) (register.Value, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ctx.Register(id)
}

// Status is a snapshot of the mode state for display.
type Status struct {
	Tag      micro.Tag
	Count    int
	Register rune
	Awaiting string
	Pending  string
	Cursor   engine.ByteOffset
	Line     uint32
	Column   int
}

// String formats the status as a prompt line, "NORMAL 2 \"a [d] 1:3".
func (s Status) String() string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(s.Tag.String()))
	if s.Count > 0 {
		fmt.Fprintf(&b, " %d", s.Count)
	}
	if s.Register != 0 {
		fmt.Fprintf(&b, " \"%c", s.Register)
	}
	if s.Awaiting != "" {
		fmt.Fprintf(&b, " %s", s.Awaiting)
	}
	if s.Pending != "" {
		fmt.Fprintf(&b, " [%s]", s.Pending)
	}
	fmt.Fprintf(&b, " %d:%d", s.Line+1, s.Column+1)
	return b.String()
}

// Status returns the current status.
func (e *Editor) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := e.ctx.Snapshot()
	pos := e.ctx.Cursor().Primary()
	st := Status{
		Tag:     e.mode.Tag(),
		Count:   e.mode.Count(),
		Pending: e.pending,
		Cursor:  pos,
		Line:    snap.LineOf(pos),
		Column:  snap.DisplayColumn(pos),
	}
	if r, ok := e.mode.Register(); ok {
		st.Register = r
	}
	if c, ok := e.mode.Pending(); ok {
		st.Awaiting = c.String()
	}
	return st
}

// Close releases the script runtime.
func (e *Editor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctx.scripts == nil {
		return nil
	}
	err := e.ctx.scripts.Close()
	e.ctx.scripts = nil
	return err
}
