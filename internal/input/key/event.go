package key

import (
	"unicode"
)

// Event is one key press.
type Event struct {
	Key  Key
	Rune rune // set for KeyRune
	Mods Modifier
}

// Rune returns the event for an unmodified character.
func Rune(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// Special returns the event for a special key.
func Special(k Key, mods Modifier) Event {
	return Event{Key: k, Mods: mods}
}

// Ctrl returns the Ctrl chord of a character.
func Ctrl(r rune) Event {
	return Event{Key: KeyRune, Rune: unicode.ToLower(r), Mods: ModCtrl}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// Printable returns the character of an unmodified printable key.
func (e Event) Printable() (rune, bool) {
	if e.IsRune() && e.Mods&(ModCtrl|ModAlt) == 0 && unicode.IsPrint(e.Rune) {
		return e.Rune, true
	}
	return 0, false
}

// String returns the canonical notation, "a", "<Esc>" or "<C-r>".
// Parse(e.String()) yields e.
func (e Event) String() string {
	if e.Key != KeyRune {
		return "<" + e.Mods.prefix() + e.Key.String() + ">"
	}
	name := string(e.Rune)
	switch e.Rune {
	case '<':
		name = "lt"
	case ' ':
		name = "Space"
	case '|':
		name = "Bar"
	default:
		if e.Mods == ModNone && unicode.IsPrint(e.Rune) {
			return name
		}
	}
	return "<" + e.Mods.prefix() + name + ">"
}
