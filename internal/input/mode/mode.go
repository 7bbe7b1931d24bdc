package mode

import (
	"unicode/utf8"

	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/input/micro"
)

// DefaultScriptDepth bounds how deeply scripts and replays may nest.
const DefaultScriptDepth = 16

// Logger is the logging surface Mode uses. *app.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// Option configures a Mode.
type Option func(*Mode)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l Logger) Option {
	return func(m *Mode) {
		if l == nil {
			l = nopLogger{}
		}
		m.logger = l
	}
}

// WithFatal marks error kinds that stop Run instead of being collected.
func WithFatal(kinds ...ErrorKind) Option {
	return func(m *Mode) {
		for _, k := range kinds {
			m.fatal[k] = true
		}
	}
}

// WithScriptDepth sets the nesting limit for scripts and replays.
func WithScriptDepth(n int) Option {
	return func(m *Mode) {
		if n > 0 {
			m.maxDepth = n
		}
	}
}

// Mode is the modal state machine. It is not safe for concurrent use; the
// caller must not run two batches against the same Mode at once.
type Mode struct {
	tag      micro.Tag
	count    countState
	register rune
	cont     *Continuation

	// grouping is true while an insert session holds an undo group open.
	grouping bool

	logger   Logger
	fatal    map[ErrorKind]bool
	maxDepth int
	depth    int
}

// New creates a Mode in Normal.
func New(opts ...Option) *Mode {
	m := &Mode{
		tag:      micro.Normal,
		logger:   nopLogger{},
		fatal:    make(map[ErrorKind]bool),
		maxDepth: DefaultScriptDepth,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Tag returns the current tag.
func (m *Mode) Tag() micro.Tag { return m.tag }

// Count returns the count typed so far, or 0.
func (m *Mode) Count() int {
	if !m.count.active {
		return 0
	}
	return m.count.value
}

// Register returns the selected register, if any.
func (m *Mode) Register() (rune, bool) {
	return m.register, m.register != 0
}

// Pending returns a copy of the pending continuation, if any.
func (m *Mode) Pending() (Continuation, bool) {
	if m.cont == nil {
		return Continuation{}, false
	}
	return *m.cont, true
}

// Idle reports whether Mode is in Normal with nothing pending.
func (m *Mode) Idle() bool {
	return m.tag == micro.Normal && m.cont == nil && !m.count.active && m.register == 0
}

// InputTag returns the tag key translation should use. An operator
// waiting for its motion reads keys as in Normal; a continuation waiting
// for a character or text reads them as Pending.
func (m *Mode) InputTag() micro.Tag {
	if m.cont != nil && m.cont.Kind == MotionTarget {
		return micro.Normal
	}
	return m.tag
}

// IsFatal reports whether errors of kind k stop Run.
func (m *Mode) IsFatal(k ErrorKind) bool { return m.fatal[k] }

// Run applies ops in order until they are exhausted, one halts, or one
// fails with a fatal kind. A halting op is counted as consumed; a fatal
// one is not. Recoverable errors are collected and the loop continues.
func (m *Mode) Run(ops []micro.Op, ctx Context) BatchResult {
	res := BatchResult{Outcome: Continue()}
	for _, op := range ops {
		out := m.Apply(op, ctx)
		switch out.Status {
		case StatusError:
			if m.fatal[out.Err.Kind] {
				res.Outcome = out
				return res
			}
			res.Consumed++
			res.Errors = append(res.Errors, out.Err)
		case StatusHalt:
			res.Consumed++
			res.Outcome = out
			return res
		default:
			res.Consumed++
		}
	}
	return res
}

// Apply applies a single op. While a continuation is pending the op goes
// to it first; otherwise it is dispatched on the current tag. An error
// resets to Normal, except ContinuationConflict which keeps the pending
// continuation.
func (m *Mode) Apply(op micro.Op, ctx Context) Outcome {
	var out Outcome
	if m.cont != nil {
		out = m.resume(op, ctx)
	} else {
		out = m.dispatch(op, ctx)
	}
	if out.IsError() {
		m.logger.Debug("mode: %v", out.Err)
		if out.Err.Kind != ContinuationConflict {
			m.reset(ctx)
		}
	}
	return out
}

// Reset cancels anything pending and returns to Normal, as after an error.
func (m *Mode) Reset(ctx Context) {
	m.reset(ctx)
}

func (m *Mode) reset(ctx Context) {
	m.endInsert(ctx)
	if ctx.Cursor().HasAnchor() {
		ctx.ClearAnchor()
	}
	m.cont = nil
	m.count.reset()
	m.register = 0
	m.tag = micro.Normal
}

// fail builds an error outcome for op in the current tag.
func (m *Mode) fail(kind ErrorKind, op micro.Op, err error) Outcome {
	return Outcome{Status: StatusError, Err: &Error{Kind: kind, Op: op, Tag: m.tag, Err: err}}
}

func (m *Mode) inapplicable(op micro.Op) Outcome {
	return m.fail(InapplicableInState, op, nil)
}

// beginInsert enters Insert and opens the undo group of the session.
func (m *Mode) beginInsert(ctx Context, name string) {
	if !m.grouping {
		ctx.BeginGroup(name)
		m.grouping = true
	}
	m.tag = micro.Insert
}

func (m *Mode) endInsert(ctx Context) {
	if m.grouping {
		ctx.EndGroup()
		m.grouping = false
	}
}

// nested applies ops produced by a script or a replay. The first op that
// does not continue ends the sequence and its outcome is returned.
func (m *Mode) nested(ops []micro.Op, ctx Context, trigger micro.Op) Outcome {
	if m.depth >= m.maxDepth {
		return m.fail(ScriptFailure, trigger, ErrNestingLimit)
	}
	m.depth++
	defer func() { m.depth-- }()

	return m.atomically(ctx, trigger.Kind.String(), func() Outcome {
		for _, op := range ops {
			if out := m.Apply(op, ctx); !out.IsContinue() {
				return out
			}
		}
		return Continue()
	})
}

// atomically runs fn inside one undo group. When fn ends in an error the
// text and cursor are put back as they were before it started, so an op
// that expands into several fails as a whole.
func (m *Mode) atomically(ctx Context, name string, fn func() Outcome) Outcome {
	before := ctx.Snapshot()
	pos := ctx.Cursor().Primary()
	ctx.BeginGroup(name)
	defer ctx.EndGroup()

	out := fn()
	if !out.IsError() {
		return out
	}
	if ctx.Snapshot().Revision() != before.Revision() {
		if err := revert(ctx, before.Text()); err != nil {
			m.logger.Warn("mode: rollback after %v: %v", out.Err, err)
			return out
		}
	}
	if err := ctx.SetCursor(pos); err != nil {
		m.logger.Warn("mode: restore cursor %d: %v", pos, err)
	}
	return out
}

// revert replaces the part of the current text that differs from old.
func revert(ctx Context, old string) error {
	cur := ctx.Snapshot().Text()
	if cur == old {
		return nil
	}
	p := commonPrefix(old, cur)
	q := commonSuffix(old[p:], cur[p:])
	_, err := ctx.Replace(buffer.ByteOffset(p), buffer.ByteOffset(len(cur)-q), old[p:len(old)-q])
	return err
}

// commonPrefix returns the byte length of the longest shared prefix of
// whole runes.
func commonPrefix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) {
		ra, sa := utf8.DecodeRuneInString(a[n:])
		rb, sb := utf8.DecodeRuneInString(b[n:])
		if ra != rb || sa != sb {
			break
		}
		n += sa
	}
	return n
}

// commonSuffix returns the byte length of the longest shared suffix of
// whole runes.
func commonSuffix(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) {
		ra, sa := utf8.DecodeLastRuneInString(a[:len(a)-n])
		rb, sb := utf8.DecodeLastRuneInString(b[:len(b)-n])
		if ra != rb || sa != sb {
			break
		}
		n += sa
	}
	return n
}
