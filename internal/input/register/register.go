// Package register stores yanked, deleted and scripted text by register id.
package register

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Errors returned by the store.
var (
	ErrInvalidRegister = errors.New("invalid register")
	ErrReadOnly        = errors.New("register is read-only")
)

// Kind categorizes registers by their behavior.
type Kind uint8

const (
	// KindUnnamed is the default register (").
	KindUnnamed Kind = iota

	// KindNamed is a named register (a-z, A-Z appends).
	KindNamed

	// KindYank is the last yank register (0).
	KindYank

	// KindNumbered is a numbered delete register (1-9).
	KindNumbered

	// KindSmallDelete is the small delete register (-).
	KindSmallDelete

	// KindBlackHole is the black hole register (_).
	KindBlackHole

	// KindCount holds the last count prefix (#).
	KindCount

	// KindQuery holds the last submitted query (=).
	KindQuery
)

// Value is register content.
type Value struct {
	Text     string
	Linewise bool
}

// KindOf returns the kind of register id.
func KindOf(id rune) (Kind, bool) {
	switch {
	case id == '"':
		return KindUnnamed, true
	case id >= 'a' && id <= 'z', id >= 'A' && id <= 'Z':
		return KindNamed, true
	case id == '0':
		return KindYank, true
	case id >= '1' && id <= '9':
		return KindNumbered, true
	case id == '-':
		return KindSmallDelete, true
	case id == '_':
		return KindBlackHole, true
	case id == '#':
		return KindCount, true
	case id == '=':
		return KindQuery, true
	}
	return 0, false
}

// IsValid returns true if id names a register.
func IsValid(id rune) bool {
	_, ok := KindOf(id)
	return ok
}

// IsWritable returns true if a yank or delete may target id.
func IsWritable(id rune) bool {
	k, ok := KindOf(id)
	return ok && k != KindCount && k != KindQuery
}

// Store holds register contents.
type Store struct {
	mu   sync.RWMutex
	regs map[rune]Value
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{regs: make(map[rune]Value)}
}

// Get returns the content of id. Uppercase names read their lowercase
// register. Unset registers are empty.
func (s *Store) Get(id rune) (Value, error) {
	if !IsValid(id) {
		return Value{}, ErrInvalidRegister
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.regs[unicode.ToLower(id)], nil
}

// Set stores v in id.
//
//   - an uppercase name appends to its lowercase register
//   - writing 1 shifts 1..8 into 2..9 first
//   - the black hole register discards v
//   - the count and query registers are read-only here, see SetSpecial
func (s *Store) Set(id rune, v Value) error {
	k, ok := KindOf(id)
	if !ok {
		return ErrInvalidRegister
	}
	switch k {
	case KindBlackHole:
		return nil
	case KindCount, KindQuery:
		return ErrReadOnly
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case k == KindNamed && unicode.IsUpper(id):
		id = unicode.ToLower(id)
		cur := s.regs[id]
		if cur.Linewise && cur.Text != "" && !strings.HasSuffix(cur.Text, "\n") {
			v.Text = "\n" + v.Text
		}
		s.regs[id] = Value{Text: cur.Text + v.Text, Linewise: cur.Linewise || v.Linewise}
	case id == '1':
		for r := '9'; r > '1'; r-- {
			s.regs[r] = s.regs[r-1]
		}
		s.regs[id] = v
	default:
		s.regs[id] = v
	}
	return nil
}

// SetSpecial updates the count or query register.
func (s *Store) SetSpecial(id rune, v Value) error {
	k, ok := KindOf(id)
	if !ok || (k != KindCount && k != KindQuery) {
		return ErrInvalidRegister
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs[id] = v
	return nil
}

// Names returns the ids of non-empty registers in sorted order.
func (s *Store) Names() []rune {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]rune, 0, len(s.regs))
	for id, v := range s.regs {
		if v.Text != "" {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clear empties every register.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regs = make(map[rune]Value)
}
