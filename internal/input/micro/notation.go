package micro

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/six/internal/engine/motion"
)

// ErrSyntax is wrapped by every notation parse error.
var ErrSyntax = errors.New("invalid op notation")

// String returns the op in notation form.
func (op Op) String() string {
	switch op.Kind {
	case KindMove:
		if op.Count > 1 {
			return fmt.Sprintf("move(%s, %d)", op.Motion, op.Count)
		}
		return fmt.Sprintf("move(%s)", op.Motion)
	case KindInsertText:
		return fmt.Sprintf("insert(%s)", strconv.Quote(op.Text))
	case KindDeleteRange:
		if op.HasSpan {
			return fmt.Sprintf("delete(%d, %d)", op.Start, op.End)
		}
		return "delete"
	case KindErase:
		dir := "forward"
		if op.Backward {
			dir = "backward"
		}
		if op.Count > 1 {
			return fmt.Sprintf("erase(%s, %d)", dir, op.Count)
		}
		return fmt.Sprintf("erase(%s)", dir)
	case KindEnterMode:
		return fmt.Sprintf("enter(%s)", op.Tag)
	case KindSetRegister, KindCharacter, KindReplay:
		return fmt.Sprintf("%s(%s)", op.Kind, formatRune(op.Rune))
	case KindPut:
		if op.Before {
			return "put(before)"
		}
		return "put(after)"
	case KindRunScript:
		return fmt.Sprintf("run(%s)", formatWord(op.Text))
	case KindDigit:
		return fmt.Sprintf("digit(%d)", op.Digit)
	case KindFindChar:
		dir := "forward"
		if !op.Forward {
			dir = "backward"
		}
		if op.Till {
			return fmt.Sprintf("find(%s, till)", dir)
		}
		return fmt.Sprintf("find(%s)", dir)
	case KindOperator:
		return fmt.Sprintf("operator(%s)", op.Operator)
	}
	return op.Kind.String()
}

// FormatBatch joins ops with single spaces.
func FormatBatch(ops []Op) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}

const bareRunes = "!#$%&*+-./:<=>?@[]^_`{|}~"

func formatRune(r rune) string {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(bareRunes, r) {
		return string(r)
	}
	return strconv.QuoteRune(r)
}

func formatWord(s string) string {
	if s == "" {
		return strconv.Quote(s)
	}
	for _, r := range s {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.') {
			return strconv.Quote(s)
		}
	}
	return s
}

// Parse parses a single op.
func Parse(s string) (Op, error) {
	ops, err := ParseBatch(s)
	if err != nil {
		return Op{}, err
	}
	if len(ops) != 1 {
		return Op{}, fmt.Errorf("%w: expected one op, found %d", ErrSyntax, len(ops))
	}
	return ops[0], nil
}

// ParseBatch parses a sequence of ops separated by whitespace or ';'.
func ParseBatch(s string) ([]Op, error) {
	p := &parser{src: s}
	var ops []Op
	for {
		p.skipSeparators()
		if p.done() {
			return ops, nil
		}
		op, err := p.op()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
}

type arg struct {
	value  string
	quoted bool
}

type parser struct {
	src string
	pos int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpace() {
	for !p.done() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n') {
		p.pos++
	}
}

func (p *parser) skipSeparators() {
	for !p.done() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r', ';':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) op() (Op, error) {
	start := p.pos
	for !p.done() {
		c := p.src[p.pos]
		if (c < 'a' || c > 'z') && c != '-' {
			break
		}
		p.pos++
	}
	name := p.src[start:p.pos]
	if name == "" {
		return Op{}, p.errorf("expected op name")
	}
	var args []arg
	if !p.done() && p.src[p.pos] == '(' {
		p.pos++
		var err error
		if args, err = p.args(); err != nil {
			return Op{}, err
		}
	}
	op, err := build(name, args)
	if err != nil {
		return Op{}, fmt.Errorf("%w at %d: %s", ErrSyntax, start, err.Error())
	}
	return op, nil
}

func (p *parser) args() ([]arg, error) {
	var out []arg
	for {
		p.skipSpace()
		if p.done() {
			return nil, p.errorf("unterminated argument list")
		}
		if p.src[p.pos] == ')' && len(out) == 0 {
			p.pos++
			return out, nil
		}
		a, err := p.arg()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
		p.skipSpace()
		if p.done() {
			return nil, p.errorf("unterminated argument list")
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return out, nil
		default:
			return nil, p.errorf("unexpected %q", p.src[p.pos])
		}
	}
}

func (p *parser) arg() (arg, error) {
	if q := p.src[p.pos]; q == '"' || q == '\'' {
		start := p.pos
		p.pos++
		for !p.done() && p.src[p.pos] != q {
			if p.src[p.pos] == '\\' {
				p.pos++
			}
			p.pos++
		}
		if p.done() {
			return arg{}, p.errorf("unterminated quote")
		}
		p.pos++
		v, err := strconv.Unquote(p.src[start:p.pos])
		if err != nil {
			return arg{}, p.errorf("bad quoted argument: %v", err)
		}
		return arg{value: v, quoted: true}, nil
	}
	start := p.pos
	for !p.done() && p.src[p.pos] != ',' && p.src[p.pos] != ')' {
		p.pos++
	}
	v := strings.TrimSpace(p.src[start:p.pos])
	if v == "" {
		return arg{}, p.errorf("empty argument")
	}
	return arg{value: v}, nil
}

func build(name string, args []arg) (Op, error) {
	argc := func(lo, hi int) error {
		if len(args) < lo || len(args) > hi {
			return fmt.Errorf("%s takes %d to %d arguments, got %d", name, lo, hi, len(args))
		}
		return nil
	}
	optionalInt := func(i int) (int, error) {
		if len(args) <= i {
			return 1, nil
		}
		return parseInt(args[i])
	}

	switch name {
	case "move":
		if err := argc(1, 2); err != nil {
			return Op{}, err
		}
		m, ok := motion.ParseKind(args[0].value)
		if !ok {
			return Op{}, fmt.Errorf("unknown motion %q", args[0].value)
		}
		n, err := optionalInt(1)
		if err != nil {
			return Op{}, err
		}
		return Move(m, n), nil
	case "insert":
		if err := argc(1, 1); err != nil {
			return Op{}, err
		}
		return InsertText(args[0].value), nil
	case "delete":
		if err := argc(0, 2); err != nil {
			return Op{}, err
		}
		if len(args) == 0 {
			return DeleteRange(), nil
		}
		if len(args) != 2 {
			return Op{}, fmt.Errorf("delete takes no arguments or a start and end")
		}
		start, err := parseInt(args[0])
		if err != nil {
			return Op{}, err
		}
		end, err := parseInt(args[1])
		if err != nil {
			return Op{}, err
		}
		return DeleteSpan(int64(start), int64(end)), nil
	case "erase":
		if err := argc(1, 2); err != nil {
			return Op{}, err
		}
		backward, err := direction(args[0], "backward", "forward")
		if err != nil {
			return Op{}, err
		}
		n, err := optionalInt(1)
		if err != nil {
			return Op{}, err
		}
		return Erase(backward, n), nil
	case "enter":
		if err := argc(1, 1); err != nil {
			return Op{}, err
		}
		t, ok := ParseTag(args[0].value)
		if !ok {
			return Op{}, fmt.Errorf("unknown mode %q", args[0].value)
		}
		return EnterMode(t), nil
	case "register", "char", "replay":
		if err := argc(1, 1); err != nil {
			return Op{}, err
		}
		r, err := parseRune(args[0])
		if err != nil {
			return Op{}, err
		}
		switch name {
		case "register":
			return SetRegister(r), nil
		case "char":
			return Character(r), nil
		}
		return Replay(r), nil
	case "put":
		if err := argc(0, 1); err != nil {
			return Op{}, err
		}
		if len(args) == 0 {
			return Put(false), nil
		}
		before, err := direction(args[0], "before", "after")
		if err != nil {
			return Op{}, err
		}
		return Put(before), nil
	case "run":
		if err := argc(1, 1); err != nil {
			return Op{}, err
		}
		return RunScript(args[0].value), nil
	case "digit":
		if err := argc(1, 1); err != nil {
			return Op{}, err
		}
		n, err := parseInt(args[0])
		if err != nil {
			return Op{}, err
		}
		if n < 0 || n > 9 {
			return Op{}, fmt.Errorf("digit out of range: %d", n)
		}
		return Digit(n), nil
	case "find":
		if err := argc(1, 2); err != nil {
			return Op{}, err
		}
		backward, err := direction(args[0], "backward", "forward")
		if err != nil {
			return Op{}, err
		}
		till := false
		if len(args) == 2 {
			if args[1].value != "till" {
				return Op{}, fmt.Errorf("expected till, got %q", args[1].value)
			}
			till = true
		}
		return FindChar(!backward, till), nil
	case "operator":
		if err := argc(1, 1); err != nil {
			return Op{}, err
		}
		k, ok := ParseOperator(args[0].value)
		if !ok {
			return Op{}, fmt.Errorf("unknown operator %q", args[0].value)
		}
		return Operator(k), nil
	}

	simple := map[string]Op{
		"escape":  Escape(),
		"undo":    Undo(),
		"redo":    Redo(),
		"eval":    Eval(),
		"replace": ReplaceChar(),
		"halt":    Halt(),
	}
	op, ok := simple[name]
	if !ok {
		return Op{}, fmt.Errorf("unknown op %q", name)
	}
	if len(args) != 0 {
		return Op{}, fmt.Errorf("%s takes no arguments", name)
	}
	return op, nil
}

func parseInt(a arg) (int, error) {
	n, err := strconv.Atoi(a.value)
	if err != nil || a.quoted {
		return 0, fmt.Errorf("expected integer, got %q", a.value)
	}
	return n, nil
}

func parseRune(a arg) (rune, error) {
	r, size := utf8.DecodeRuneInString(a.value)
	if size == 0 || size != len(a.value) {
		return 0, fmt.Errorf("expected one character, got %q", a.value)
	}
	return r, nil
}

// direction reports whether a names yes; it must name yes or no.
func direction(a arg, yes, no string) (bool, error) {
	switch a.value {
	case yes:
		return true, nil
	case no:
		return false, nil
	}
	return false, fmt.Errorf("expected %s or %s, got %q", yes, no, a.value)
}
