package key

import (
	"fmt"
	"strings"
)

// Key identifies a key. Character keys use KeyRune with Event.Rune set.
type Key uint8

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// KeyRune is a character key.
	KeyRune

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

// names holds the canonical notation name of each special key.
var names = map[Key]string{
	KeyEscape:    "Esc",
	KeyEnter:     "CR",
	KeyTab:       "Tab",
	KeyBackspace: "BS",
	KeyDelete:    "Del",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
}

// String returns the notation name of the key.
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyRune:
		return "Rune"
	}
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsSpecial returns true if this is a special (non-character) key.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsArrow returns true for the arrow keys.
func (k Key) IsArrow() bool {
	return k >= KeyUp && k <= KeyRight
}

// keyNames maps lowercase names and aliases to special keys.
var keyNames = map[string]Key{
	"esc":       KeyEscape,
	"escape":    KeyEscape,
	"cr":        KeyEnter,
	"enter":     KeyEnter,
	"return":    KeyEnter,
	"tab":       KeyTab,
	"bs":        KeyBackspace,
	"backspace": KeyBackspace,
	"del":       KeyDelete,
	"delete":    KeyDelete,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"home":      KeyHome,
	"end":       KeyEnd,
}

// runeNames maps bracketed names to the characters they stand for.
var runeNames = map[string]rune{
	"space":  ' ',
	"lt":     '<',
	"gt":     '>',
	"bar":    '|',
	"bslash": '\\',
}

// FromName returns the special key named name, case-insensitively.
func FromName(name string) (Key, bool) {
	k, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}
