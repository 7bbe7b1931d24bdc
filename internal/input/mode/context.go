package mode

import (
	"github.com/google/uuid"

	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/engine/cursor"
	"github.com/dshills/six/internal/input/micro"
	"github.com/dshills/six/internal/input/register"
)

// Context is the only way Mode reaches editing state.
// Every mutation is visible to the next op in the same batch.
type Context interface {
	StateAccess
	Registers
	History

	// Scripting returns the script runtime, or nil when none is loaded.
	Scripting() Scripting

	// KeyMap returns the key map used to replay registers, or nil.
	KeyMap() KeyMap
}

// StateAccess covers the buffer and cursor. engine.State implements it.
type StateAccess interface {
	Snapshot() *buffer.Snapshot
	Cursor() cursor.Cursor

	// SetCursor and SetAnchor reject positions outside the buffer or
	// inside a rune.
	SetCursor(pos buffer.ByteOffset) error
	SetAnchor(pos buffer.ByteOffset) error
	ClearAnchor()
	SetPreferredColumn(col int)

	Insert(pos buffer.ByteOffset, text string) (buffer.EditResult, error)
	Delete(start, end buffer.ByteOffset) (buffer.EditResult, error)
	Replace(start, end buffer.ByteOffset, text string) (buffer.EditResult, error)
}

// Registers gets and sets register contents by id. SetRegister accepts
// the count (#) and query (=) registers as well.
type Registers interface {
	Register(id rune) (register.Value, error)
	SetRegister(id rune, v register.Value) error
}

// History is the undo hook set. engine.State implements it.
type History interface {
	BeginGroup(name string)
	EndGroup()
	Undo() error
	Redo() error
}

// ScriptView is the read-only state handed to a script call.
type ScriptView struct {
	Buffer    uuid.UUID
	Text      string
	Cursor    buffer.ByteOffset
	Tag       micro.Tag
	Count     int
	Selection buffer.Range
	Selecting bool
}

// Scripting calls into the embedded script runtime. Returned ops are
// applied immediately in order.
type Scripting interface {
	Call(handle string, view ScriptView) ([]micro.Op, error)
	Eval(source string, view ScriptView) ([]micro.Op, error)
}

// Match is the result of a key map lookup.
type Match uint8

const (
	// NoMatch means no binding starts with keys. Consumed covers the keys
	// to skip.
	NoMatch Match = iota
	// Matched means ops were produced for the first consumed bytes of keys.
	Matched
	// Prefix means keys is the start of a longer binding.
	Prefix
)

// String returns the match name.
func (m Match) String() string {
	switch m {
	case Matched:
		return "Matched"
	case Prefix:
		return "Prefix"
	}
	return "NoMatch"
}

// KeyMap translates key notation into ops. Mode only queries it.
type KeyMap interface {
	Translate(tag micro.Tag, keys string) (ops []micro.Op, consumed int, m Match)
}
