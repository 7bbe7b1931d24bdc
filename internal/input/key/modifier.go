package key

import "strings"

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << iota

	// ModAlt indicates the Alt key.
	ModAlt

	// ModShift indicates the Shift key. Shifted characters carry the
	// shifted rune instead.
	ModShift
)

// Has returns true if m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// prefix returns the notation prefix, "C-A-" for Ctrl+Alt.
func (m Modifier) prefix() string {
	var b strings.Builder
	if m.Has(ModCtrl) {
		b.WriteString("C-")
	}
	if m.Has(ModAlt) {
		b.WriteString("A-")
	}
	if m.Has(ModShift) {
		b.WriteString("S-")
	}
	return b.String()
}

// String returns the modifiers as "C-A-S", or "" when empty.
func (m Modifier) String() string {
	return strings.TrimSuffix(m.prefix(), "-")
}

func modifierFromLetter(s string) (Modifier, bool) {
	switch strings.ToLower(s) {
	case "c":
		return ModCtrl, true
	case "a", "m":
		return ModAlt, true
	case "s":
		return ModShift, true
	}
	return ModNone, false
}
