package keymap

import (
	"fmt"

	"github.com/dshills/six/internal/input/key"
	"github.com/dshills/six/internal/input/micro"
)

// Binding maps a key sequence to the ops it produces.
type Binding struct {
	// Keys is the key sequence in notation form, "gg" or "<C-r>".
	Keys string

	// Ops are emitted when the binding fires.
	Ops []micro.Op

	// TakesArg marks a binding that consumes one more character key.
	// The character fills the Rune field of every register, replay and
	// character op in Ops.
	TakesArg bool

	// Description documents the binding.
	Description string
}

// Bind returns a binding for keys producing ops.
func Bind(keys string, ops ...micro.Op) Binding {
	return Binding{Keys: keys, Ops: ops}
}

// WithArg returns a copy of b that takes an argument key.
func (b Binding) WithArg() Binding {
	b.TakesArg = true
	return b
}

// WithDescription returns a copy of b with a description.
func (b Binding) WithDescription(desc string) Binding {
	b.Description = desc
	return b
}

// Validate checks that the binding can be installed.
func (b Binding) Validate() error {
	if b.Keys == "" {
		return fmt.Errorf("%w: empty keys", ErrInvalidBinding)
	}
	if len(b.Ops) == 0 {
		return fmt.Errorf("%w: %s has no ops", ErrInvalidBinding, b.Keys)
	}
	if _, err := key.ParseSequence(b.Keys); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidBinding, b.Keys, err)
	}
	return nil
}

// expand returns the ops with the argument rune applied.
func (b *Binding) expand(arg rune) []micro.Op {
	ops := make([]micro.Op, len(b.Ops))
	copy(ops, b.Ops)
	if !b.TakesArg {
		return ops
	}
	for i := range ops {
		switch ops[i].Kind {
		case micro.KindSetRegister, micro.KindReplay, micro.KindCharacter:
			ops[i].Rune = arg
		}
	}
	return ops
}

// node is one step of a per-tag prefix tree.
type node struct {
	children map[key.Event]*node
	binding  *Binding
}

func newNode() *node {
	return &node{children: make(map[key.Event]*node)}
}

func (n *node) insert(seq []key.Event, b *Binding) {
	cur := n
	for _, ev := range seq {
		next, ok := cur.children[ev]
		if !ok {
			next = newNode()
			cur.children[ev] = next
		}
		cur = next
	}
	cur.binding = b
}

// remove clears the binding at seq and prunes empty branches.
func (n *node) remove(seq []key.Event) bool {
	if len(seq) == 0 {
		if n.binding == nil {
			return false
		}
		n.binding = nil
		return true
	}
	child, ok := n.children[seq[0]]
	if !ok {
		return false
	}
	removed := child.remove(seq[1:])
	if child.binding == nil && len(child.children) == 0 {
		delete(n.children, seq[0])
	}
	return removed
}

func (n *node) count() int {
	total := 0
	if n.binding != nil {
		total++
	}
	for _, c := range n.children {
		total += c.count()
	}
	return total
}
