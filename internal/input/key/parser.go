package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrEmptySpec is returned when parsing an empty key spec.
	ErrEmptySpec = errors.New("empty key spec")

	// ErrInvalidSpec is returned when a key spec cannot be parsed.
	ErrInvalidSpec = errors.New("invalid key spec")

	// ErrUnterminated is returned when a '<' has no matching '>'.
	ErrUnterminated = errors.New("unterminated key spec")
)

// Parse parses exactly one key: a single character or a bracketed name.
func Parse(spec string) (Event, error) {
	ev, n, err := parseOne(spec)
	if err != nil {
		return Event{}, err
	}
	if n != len(spec) {
		return Event{}, fmt.Errorf("%w: %q has trailing input", ErrInvalidSpec, spec)
	}
	return ev, nil
}

// MustParse is Parse that panics on error. Intended for static tables.
func MustParse(spec string) Event {
	ev, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return ev
}

// ParseSequence parses keys written back to back, "d2w" or "ihi<Esc>".
func ParseSequence(s string) ([]Event, error) {
	if s == "" {
		return nil, ErrEmptySpec
	}
	var out []Event
	for s != "" {
		ev, n, err := parseOne(s)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
		s = s[n:]
	}
	return out, nil
}

// Next splits the first key off s and returns it with its length in
// bytes. Unlike ParseSequence it never fails on non-empty input: a '<' that
// does not open a valid name is the literal character. This suits text
// read back from registers.
func Next(s string) (Event, int, bool) {
	if s == "" {
		return Event{}, 0, false
	}
	if ev, n, err := parseOne(s); err == nil {
		return ev, n, true
	}
	r, n := utf8.DecodeRuneInString(s)
	return Rune(r), n, true
}

// FormatSequence returns the canonical notation of events.
func FormatSequence(events []Event) string {
	var b strings.Builder
	for _, ev := range events {
		b.WriteString(ev.String())
	}
	return b.String()
}

func parseOne(s string) (Event, int, error) {
	if s == "" {
		return Event{}, 0, ErrEmptySpec
	}
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && n <= 1 {
		return Event{}, 0, fmt.Errorf("%w: invalid UTF-8", ErrInvalidSpec)
	}
	if r != '<' {
		return Rune(r), n, nil
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		if len(s) == 1 {
			// A lone '<' is the character.
			return Rune('<'), 1, nil
		}
		return Event{}, 0, ErrUnterminated
	}
	ev, err := parseBracketed(s[1:end])
	if err != nil {
		return Event{}, 0, err
	}
	return ev, end + 1, nil
}

// parseBracketed parses the inside of "<...>", such as "C-a" or "Esc".
func parseBracketed(inner string) (Event, error) {
	if inner == "" {
		return Event{}, fmt.Errorf("%w: empty brackets", ErrInvalidSpec)
	}
	mods := ModNone
	for len(inner) > 2 && inner[1] == '-' {
		m, ok := modifierFromLetter(inner[:1])
		if !ok {
			break
		}
		mods |= m
		inner = inner[2:]
	}

	if k, ok := FromName(inner); ok {
		return Special(k, mods), nil
	}
	if r, ok := runeNames[strings.ToLower(inner)]; ok {
		return Event{Key: KeyRune, Rune: r, Mods: mods}, nil
	}
	r, n := utf8.DecodeRuneInString(inner)
	if n != len(inner) || r == utf8.RuneError {
		return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, inner)
	}
	if mods.Has(ModCtrl) {
		r = unicode.ToLower(r)
	}
	return Event{Key: KeyRune, Rune: r, Mods: mods}, nil
}
