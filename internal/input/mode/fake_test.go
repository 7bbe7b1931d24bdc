package mode

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/dshills/six/internal/engine"
	"github.com/dshills/six/internal/input/micro"
	"github.com/dshills/six/internal/input/register"
)

var (
	_ StateAccess = (*engine.State)(nil)
	_ History     = (*engine.State)(nil)
	_ Context     = (*fakeContext)(nil)
)

// fakeContext is a minimal in-memory Context.
type fakeContext struct {
	*engine.State
	regs    *register.Store
	scripts Scripting
	keys    KeyMap
}

func newFake(text string, pos engine.ByteOffset) *fakeContext {
	return &fakeContext{
		State: engine.NewState(text, pos, engine.WithHistory(0)),
		regs:  register.NewStore(),
	}
}

func (f *fakeContext) Register(id rune) (register.Value, error) { return f.regs.Get(id) }

func (f *fakeContext) SetRegister(id rune, v register.Value) error {
	if id == '#' || id == '=' {
		return f.regs.SetSpecial(id, v)
	}
	return f.regs.Set(id, v)
}

func (f *fakeContext) Scripting() Scripting { return f.scripts }
func (f *fakeContext) KeyMap() KeyMap       { return f.keys }

func (f *fakeContext) reg(id rune) string {
	v, _ := f.regs.Get(id)
	return v.Text
}

var errScript = errors.New("script exploded")

// fakeScripts answers calls from a table of handles.
type fakeScripts struct {
	calls map[string][]micro.Op
	views []ScriptView
}

func (s *fakeScripts) Call(handle string, view ScriptView) ([]micro.Op, error) {
	s.views = append(s.views, view)
	ops, ok := s.calls[handle]
	if !ok {
		return nil, errScript
	}
	return ops, nil
}

func (s *fakeScripts) Eval(src string, view ScriptView) ([]micro.Op, error) {
	return s.Call(src, view)
}

// fakeKeys maps single keys, plus <Esc>. Unmapped keys insert in Insert
// and become characters in Pending.
type fakeKeys map[micro.Tag]map[string][]micro.Op

func (k fakeKeys) Translate(tag micro.Tag, keys string) ([]micro.Op, int, Match) {
	key := keys
	if strings.HasPrefix(keys, "<Esc>") {
		key = "<Esc>"
	} else {
		_, size := utf8.DecodeRuneInString(keys)
		key = keys[:size]
	}
	if ops, ok := k[tag][key]; ok {
		return ops, len(key), Matched
	}
	r, _ := utf8.DecodeRuneInString(key)
	switch tag {
	case micro.Insert:
		return []micro.Op{micro.InsertText(key)}, len(key), Matched
	case micro.Pending:
		return []micro.Op{micro.Character(r)}, len(key), Matched
	}
	return nil, len(key), NoMatch
}

func registerValue(text string, linewise bool) register.Value {
	return register.Value{Text: text, Linewise: linewise}
}
