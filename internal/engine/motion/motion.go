package motion

import (
	"unicode"
	"unicode/utf8"

	"github.com/dshills/six/internal/engine/buffer"
)

// Target is where a motion lands.
type Target struct {
	Offset buffer.ByteOffset
	// Column is the display column a vertical motion kept, or -1.
	Column int
	// Steps is how many single steps a relative motion took.
	Steps int
	// Blocked is set when a relative motion could not move at all.
	Blocked bool
}

// Apply moves from by count repetitions of k. A count below 1 is treated
// as 1. column is the preferred display column for Up and Down; pass -1
// to use the column of from.
func Apply(s *buffer.Snapshot, from buffer.ByteOffset, k Kind, count, column int) Target {
	if count < 1 {
		count = 1
	}
	from = s.GraphemeStart(s.Clamp(from))

	switch k {
	case Up, Down:
		return vertical(s, from, k == Down, count, column)
	case LineStart:
		return absolute(s.LineStart(s.LineOf(from)))
	case LineEnd:
		line := s.LineOf(from) + uint32(count-1)
		return absolute(s.LineEnd(line))
	case FirstNonBlank:
		return absolute(firstNonBlank(s, s.LineOf(from)))
	case DocumentStart:
		return absolute(0)
	case DocumentEnd:
		return absolute(s.LineStart(s.LineCount() - 1))
	}

	var step func(*buffer.Snapshot, buffer.ByteOffset) buffer.ByteOffset
	switch k {
	case Left:
		step = left
	case Right:
		step = right
	case Backward:
		step = (*buffer.Snapshot).PrevGrapheme
	case Forward:
		step = (*buffer.Snapshot).NextGrapheme
	case WordHead:
		step = nextWordHead
	case WordHeadBack:
		step = prevWordHead
	case WordTail:
		step = nextWordTail
	case WordTailBack:
		step = prevWordTail
	case ParagraphForward:
		step = nextParagraph
	case ParagraphBack:
		step = prevParagraph
	default:
		return Target{Offset: from, Column: -1, Blocked: true}
	}
	return repeat(s, from, count, step)
}

func absolute(offset buffer.ByteOffset) Target {
	return Target{Offset: offset, Column: -1, Steps: 1}
}

func repeat(s *buffer.Snapshot, from buffer.ByteOffset, count int, step func(*buffer.Snapshot, buffer.ByteOffset) buffer.ByteOffset) Target {
	pos := from
	steps := 0
	for ; steps < count; steps++ {
		next := step(s, pos)
		if next == pos {
			break
		}
		pos = next
	}
	return Target{Offset: pos, Column: -1, Steps: steps, Blocked: steps == 0}
}

func vertical(s *buffer.Snapshot, from buffer.ByteOffset, down bool, count, column int) Target {
	if column < 0 {
		column = s.DisplayColumn(from)
	}
	line := int64(s.LineOf(from))
	target := line - int64(count)
	if down {
		target = line + int64(count)
	}
	target = max(0, min(target, int64(s.LineCount())-1))
	steps := int(target - line)
	if steps < 0 {
		steps = -steps
	}
	return Target{
		Offset:  s.OffsetAtColumn(uint32(target), column),
		Column:  column,
		Steps:   steps,
		Blocked: steps == 0,
	}
}

func left(s *buffer.Snapshot, pos buffer.ByteOffset) buffer.ByteOffset {
	if pos == s.LineStart(s.LineOf(pos)) {
		return pos
	}
	return s.PrevGrapheme(pos)
}

func right(s *buffer.Snapshot, pos buffer.ByteOffset) buffer.ByteOffset {
	if pos >= s.LineEnd(s.LineOf(pos)) {
		return pos
	}
	return s.NextGrapheme(pos)
}

func firstNonBlank(s *buffer.Snapshot, line uint32) buffer.ByteOffset {
	pos, end := s.LineStart(line), s.LineEnd(line)
	for pos < end {
		if b := s.ByteAt(pos); b != ' ' && b != '\t' {
			break
		}
		pos++
	}
	return pos
}

type class uint8

const (
	classSpace class = iota
	classWord
	classPunct
)

func classAt(s *buffer.Snapshot, pos buffer.ByteOffset) class {
	if pos >= s.Len() {
		return classSpace
	}
	r, _ := utf8.DecodeRuneInString(s.GraphemeAt(pos))
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
		return classWord
	}
	return classPunct
}

func nextWordHead(s *buffer.Snapshot, pos buffer.ByteOffset) buffer.ByteOffset {
	n := s.Len()
	if c := classAt(s, pos); c != classSpace {
		for pos < n && classAt(s, pos) == c {
			pos = s.NextGrapheme(pos)
		}
	}
	for pos < n && classAt(s, pos) == classSpace {
		pos = s.NextGrapheme(pos)
	}
	return pos
}

func prevWordHead(s *buffer.Snapshot, pos buffer.ByteOffset) buffer.ByteOffset {
	if pos == 0 {
		return 0
	}
	pos = s.PrevGrapheme(pos)
	for pos > 0 && classAt(s, pos) == classSpace {
		pos = s.PrevGrapheme(pos)
	}
	c := classAt(s, pos)
	if c == classSpace {
		return pos
	}
	for pos > 0 {
		prev := s.PrevGrapheme(pos)
		if classAt(s, prev) != c {
			break
		}
		pos = prev
	}
	return pos
}

func nextWordTail(s *buffer.Snapshot, pos buffer.ByteOffset) buffer.ByteOffset {
	n := s.Len()
	orig := pos
	pos = s.NextGrapheme(pos)
	for pos < n && classAt(s, pos) == classSpace {
		pos = s.NextGrapheme(pos)
	}
	if pos >= n {
		return orig
	}
	c := classAt(s, pos)
	for {
		next := s.NextGrapheme(pos)
		if next >= n || classAt(s, next) != c {
			return pos
		}
		pos = next
	}
}

func prevWordTail(s *buffer.Snapshot, pos buffer.ByteOffset) buffer.ByteOffset {
	if c := classAt(s, pos); c != classSpace {
		for pos > 0 && classAt(s, pos) == c {
			pos = s.PrevGrapheme(pos)
		}
	}
	for pos > 0 && classAt(s, pos) == classSpace {
		pos = s.PrevGrapheme(pos)
	}
	return pos
}

func blankLine(s *buffer.Snapshot, line uint32) bool {
	return s.LineStart(line) == s.LineEnd(line)
}

func nextParagraph(s *buffer.Snapshot, pos buffer.ByteOffset) buffer.ByteOffset {
	last := s.LineCount() - 1
	line := s.LineOf(pos)
	for line < last && blankLine(s, line) {
		line++
	}
	for line < last && !blankLine(s, line) {
		line++
	}
	if line == last && !blankLine(s, line) {
		return s.Len()
	}
	return s.LineStart(line)
}

func prevParagraph(s *buffer.Snapshot, pos buffer.ByteOffset) buffer.ByteOffset {
	line := s.LineOf(pos)
	if pos == s.LineStart(line) && line > 0 {
		line--
	}
	for line > 0 && blankLine(s, line) {
		line--
	}
	for line > 0 && !blankLine(s, line) {
		line--
	}
	return s.LineStart(line)
}

// WordEnd returns the offset just past the run of same-class graphemes that
// contains pos. On whitespace it returns pos.
func WordEnd(s *buffer.Snapshot, pos buffer.ByteOffset) buffer.ByteOffset {
	pos = s.GraphemeStart(s.Clamp(pos))
	c := classAt(s, pos)
	if c == classSpace {
		return pos
	}
	for pos < s.Len() && classAt(s, pos) == c {
		pos = s.NextGrapheme(pos)
	}
	return pos
}
