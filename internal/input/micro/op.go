package micro

import (
	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/engine/motion"
)

// Kind identifies a micro-operation.
type Kind uint8

const (
	KindMove Kind = iota
	KindInsertText
	KindDeleteRange
	KindErase
	KindEnterMode
	KindEscape
	KindUndo
	KindRedo
	KindSetRegister
	KindPut
	KindRunScript
	KindEval
	KindCharacter
	KindDigit
	KindFindChar
	KindReplaceChar
	KindOperator
	KindReplay
	KindHalt

	kindCount
)

var kindNames = [...]string{
	KindMove:        "move",
	KindInsertText:  "insert",
	KindDeleteRange: "delete",
	KindErase:       "erase",
	KindEnterMode:   "enter",
	KindEscape:      "escape",
	KindUndo:        "undo",
	KindRedo:        "redo",
	KindSetRegister: "register",
	KindPut:         "put",
	KindRunScript:   "run",
	KindEval:        "eval",
	KindCharacter:   "char",
	KindDigit:       "digit",
	KindFindChar:    "find",
	KindReplaceChar: "replace",
	KindOperator:    "operator",
	KindReplay:      "replay",
	KindHalt:        "halt",
}

// String returns the notation name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, kindCount)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// OperatorKind selects what an operator does with its range.
type OperatorKind uint8

const (
	OpDelete OperatorKind = iota
	OpChange
	OpYank
	OpSurround
)

var operatorNames = [...]string{
	OpDelete:   "delete",
	OpChange:   "change",
	OpYank:     "yank",
	OpSurround: "surround",
}

// String returns the operator name.
func (o OperatorKind) String() string {
	if int(o) < len(operatorNames) {
		return operatorNames[o]
	}
	return "unknown"
}

// ParseOperator returns the operator with the given name.
func ParseOperator(name string) (OperatorKind, bool) {
	for i, n := range operatorNames {
		if n == name {
			return OperatorKind(i), true
		}
	}
	return 0, false
}

// Op is one micro-operation.
type Op struct {
	Kind Kind

	Motion motion.Kind // KindMove
	Count  int         // KindMove, KindErase
	Digit  int         // KindDigit

	Text string // KindInsertText, KindRunScript
	Rune rune   // KindCharacter, KindSetRegister, KindReplay

	Start   buffer.ByteOffset // KindDeleteRange with HasSpan
	End     buffer.ByteOffset
	HasSpan bool

	Tag Tag // KindEnterMode

	Forward  bool // KindFindChar
	Till     bool // KindFindChar
	Backward bool // KindErase
	Before   bool // KindPut

	Operator OperatorKind // KindOperator
}

// Move moves the cursor by n repetitions of m. n below 1 means 1.
func Move(m motion.Kind, n int) Op {
	return Op{Kind: KindMove, Motion: m, Count: max(n, 1)}
}

// InsertText inserts s at the cursor, or over the selection in Visual.
func InsertText(s string) Op {
	return Op{Kind: KindInsertText, Text: s}
}

// DeleteRange deletes the active selection or pending range.
func DeleteRange() Op {
	return Op{Kind: KindDeleteRange}
}

// DeleteSpan deletes the explicit range [start, end).
func DeleteSpan(start, end buffer.ByteOffset) Op {
	return Op{Kind: KindDeleteRange, Start: start, End: end, HasSpan: true}
}

// Erase deletes n graphemes before (backward) or at the cursor.
func Erase(backward bool, n int) Op {
	return Op{Kind: KindErase, Backward: backward, Count: max(n, 1)}
}

// EnterMode switches to the given tag. Pending cannot be entered directly.
func EnterMode(t Tag) Op {
	return Op{Kind: KindEnterMode, Tag: t}
}

// Escape cancels whatever is pending and returns to Normal.
func Escape() Op { return Op{Kind: KindEscape} }

// Undo reverts the last undo unit.
func Undo() Op { return Op{Kind: KindUndo} }

// Redo reapplies the last undone unit.
func Redo() Op { return Op{Kind: KindRedo} }

// SetRegister selects the register for the next delete, yank or put.
func SetRegister(id rune) Op {
	return Op{Kind: KindSetRegister, Rune: id}
}

// Put pastes the selected register before or after the cursor.
func Put(before bool) Op {
	return Op{Kind: KindPut, Before: before}
}

// RunScript calls the script function registered under handle.
func RunScript(handle string) Op {
	return Op{Kind: KindRunScript, Text: handle}
}

// Eval opens a query whose text is evaluated as a script when submitted.
func Eval() Op { return Op{Kind: KindEval} }

// Character supplies one character to a pending operation.
func Character(r rune) Op {
	return Op{Kind: KindCharacter, Rune: r}
}

// Digit appends n (0-9) to the count prefix.
func Digit(n int) Op {
	return Op{Kind: KindDigit, Digit: n}
}

// FindChar waits for a character and moves to it on the current line.
func FindChar(forward, till bool) Op {
	return Op{Kind: KindFindChar, Forward: forward, Till: till}
}

// ReplaceChar waits for a character and overwrites the graphemes at the cursor.
func ReplaceChar() Op { return Op{Kind: KindReplaceChar} }

// Operator starts an operator that waits for a motion, or acts on the
// selection in Visual.
func Operator(k OperatorKind) Op {
	return Op{Kind: KindOperator, Operator: k}
}

// Replay feeds the contents of register id back through the key map.
func Replay(id rune) Op {
	return Op{Kind: KindReplay, Rune: id}
}

// Halt ends the current batch.
func Halt() Op { return Op{Kind: KindHalt} }
