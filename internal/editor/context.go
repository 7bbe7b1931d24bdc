package editor

import (
	"github.com/dshills/six/internal/engine"
	"github.com/dshills/six/internal/input/mode"
	"github.com/dshills/six/internal/input/register"
	"github.com/dshills/six/internal/plugin/lua"
)

// session is the mode.Context the editor hands to Mode. It is only used
// while the editor lock is held.
type session struct {
	*engine.State
	regs    *register.Store
	scripts *lua.Runtime
	keys    mode.KeyMap
}

func (s *session) Register(id rune) (register.Value, error) {
	return s.regs.Get(id)
}

// SetRegister writes id. The count and query registers are written
// through SetSpecial; Mode is their only writer.
func (s *session) SetRegister(id rune, v register.Value) error {
	if k, ok := register.KindOf(id); ok && (k == register.KindCount || k == register.KindQuery) {
		return s.regs.SetSpecial(id, v)
	}
	return s.regs.Set(id, v)
}

func (s *session) Scripting() mode.Scripting {
	if s.scripts == nil {
		return nil
	}
	return s.scripts
}

func (s *session) KeyMap() mode.KeyMap {
	return s.keys
}

var _ mode.Context = (*session)(nil)
