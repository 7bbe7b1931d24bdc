package motion

// Kind identifies a motion.
type Kind uint8

const (
	Left Kind = iota
	Right
	Up
	Down
	Backward
	Forward
	LineStart
	LineEnd
	FirstNonBlank
	WordHead
	WordHeadBack
	WordTail
	WordTailBack
	ParagraphForward
	ParagraphBack
	DocumentStart
	DocumentEnd
)

var kindNames = [...]string{
	Left:             "left",
	Right:            "right",
	Up:               "up",
	Down:             "down",
	Backward:         "backward",
	Forward:          "forward",
	LineStart:        "line-start",
	LineEnd:          "line-end",
	FirstNonBlank:    "first-non-blank",
	WordHead:         "word-head",
	WordHeadBack:     "word-head-back",
	WordTail:         "word-tail",
	WordTailBack:     "word-tail-back",
	ParagraphForward: "paragraph-forward",
	ParagraphBack:    "paragraph-back",
	DocumentStart:    "document-start",
	DocumentEnd:      "document-end",
}

// String returns the motion name used in op notation.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind returns the motion with the given name.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Kinds returns every motion in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// Linewise reports whether an operator over this motion covers whole lines.
func (k Kind) Linewise() bool {
	switch k {
	case Up, Down, DocumentStart, DocumentEnd:
		return true
	}
	return false
}

// Inclusive reports whether an operator over this motion includes the
// grapheme at the target.
func (k Kind) Inclusive() bool {
	return k == WordTail || k == WordTailBack
}

// Vertical reports whether the motion keeps the preferred display column.
func (k Kind) Vertical() bool {
	return k == Up || k == Down
}

// Absolute reports whether the motion jumps to a fixed place and so never
// blocks.
func (k Kind) Absolute() bool {
	switch k {
	case LineStart, LineEnd, FirstNonBlank, DocumentStart, DocumentEnd:
		return true
	}
	return false
}
