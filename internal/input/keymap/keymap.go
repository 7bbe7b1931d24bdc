package keymap

import (
	"fmt"
	"sync"

	"github.com/dshills/six/internal/input/key"
	"github.com/dshills/six/internal/input/micro"
	"github.com/dshills/six/internal/input/mode"
)

// Layer is a set of bindings for one mode tag.
type Layer struct {
	// Tag is the mode tag the bindings apply in.
	Tag micro.Tag

	// Source indicates where the layer was defined, "default" or "config".
	Source string

	// Bindings are the key-to-ops mappings.
	Bindings []Binding
}

// Map holds bindings for every mode tag. It is safe for concurrent use.
type Map struct {
	mu    sync.RWMutex
	trees map[micro.Tag]*node
}

// New creates an empty map.
func New() *Map {
	m := &Map{trees: make(map[micro.Tag]*node)}
	for _, t := range micro.Tags() {
		m.trees[t] = newNode()
	}
	return m
}

// Add installs b for tag, replacing any binding with the same keys.
func (m *Map) Add(tag micro.Tag, b Binding) error {
	if err := b.Validate(); err != nil {
		return err
	}
	seq, err := key.ParseSequence(b.Keys)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	root, ok := m.trees[tag]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTag, tag)
	}
	root.insert(seq, &b)
	return nil
}

// AddLayer installs every binding of l.
func (m *Map) AddLayer(l Layer) error {
	for _, b := range l.Bindings {
		if err := m.Add(l.Tag, b); err != nil {
			return fmt.Errorf("%s %s layer: %w", l.Source, l.Tag, err)
		}
	}
	return nil
}

// BindNotation binds keys in the mode named tagName to ops written in op
// notation, "move(word-head, 2) delete". An empty notation removes the
// binding.
func (m *Map) BindNotation(tagName, keys, notation string) error {
	tag, ok := micro.ParseTag(tagName)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tagName)
	}
	if notation == "" {
		m.Remove(tag, keys)
		return nil
	}
	ops, err := micro.ParseBatch(notation)
	if err != nil {
		return fmt.Errorf("binding %s %q: %w", tagName, keys, err)
	}
	return m.Add(tag, Binding{Keys: keys, Ops: ops, Description: notation})
}

// Remove deletes the binding for keys in tag. Returns false if none existed.
func (m *Map) Remove(tag micro.Tag, keys string) bool {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	root, ok := m.trees[tag]
	if !ok {
		return false
	}
	return root.remove(seq)
}

// Lookup returns the binding bound to exactly keys in tag.
func (m *Map) Lookup(tag micro.Tag, keys string) (Binding, bool) {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return Binding{}, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	cur := m.trees[tag]
	for _, ev := range seq {
		if cur == nil {
			return Binding{}, false
		}
		cur = cur.children[ev]
	}
	if cur == nil || cur.binding == nil {
		return Binding{}, false
	}
	return *cur.binding, true
}

// Len returns the number of bindings installed for tag.
func (m *Map) Len(tag micro.Tag) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if root, ok := m.trees[tag]; ok {
		return root.count()
	}
	return 0
}

// Translate matches the longest binding at the start of keys.
// consumed is a byte count into keys.
func (m *Map) Translate(tag micro.Tag, keys string) ([]micro.Op, int, mode.Match) {
	if keys == "" {
		return nil, 0, mode.NoMatch
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	root, ok := m.trees[tag]
	if !ok {
		return fallback(tag, keys)
	}

	var best *Binding
	bestEnd := 0
	cur, pos := root, 0
	for {
		if b := cur.binding; b != nil {
			if b.TakesArg {
				ev, n, ok := key.Next(keys[pos:])
				if !ok {
					return nil, 0, mode.Prefix
				}
				r, ok := argument(ev)
				if !ok {
					return nil, pos + n, mode.NoMatch
				}
				return b.expand(r), pos + n, mode.Matched
			}
			best, bestEnd = b, pos
		}
		if pos >= len(keys) {
			if len(cur.children) > 0 {
				return nil, 0, mode.Prefix
			}
			break
		}
		ev, n, _ := key.Next(keys[pos:])
		next, ok := cur.children[ev]
		if !ok {
			break
		}
		cur, pos = next, pos+n
	}
	if best != nil {
		return best.expand(0), bestEnd, mode.Matched
	}
	return fallback(tag, keys)
}

// fallback handles a first key with no binding.
func fallback(tag micro.Tag, keys string) ([]micro.Op, int, mode.Match) {
	ev, n, _ := key.Next(keys)
	if r, ok := argument(ev); ok {
		switch tag {
		case micro.Insert:
			return []micro.Op{micro.InsertText(string(r))}, n, mode.Matched
		case micro.Pending:
			return []micro.Op{micro.Character(r)}, n, mode.Matched
		}
	}
	return nil, n, mode.NoMatch
}

// argument returns the character of an unmodified character key.
func argument(ev key.Event) (rune, bool) {
	if ev.Key == key.KeyRune && ev.Mods == key.ModNone && ev.Rune != 0 {
		return ev.Rune, true
	}
	return 0, false
}

var _ mode.KeyMap = (*Map)(nil)
