package buffer

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// content is immutable text plus the offsets at which each line starts.
// lineStarts[0] is always 0; a trailing newline opens an empty last line.
type content struct {
	text       string
	lineStarts []ByteOffset
}

func newContent(text string) content {
	starts := make([]ByteOffset, 1, strings.Count(text, "\n")+1)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, ByteOffset(i+1))
		}
	}
	return content{text: text, lineStarts: starts}
}

func (c content) length() ByteOffset {
	return ByteOffset(len(c.text))
}

func (c content) lineCount() uint32 {
	return uint32(len(c.lineStarts))
}

func (c content) clampLine(line uint32) uint32 {
	if n := c.lineCount(); line >= n {
		return n - 1
	}
	return line
}

func (c content) lineStart(line uint32) ByteOffset {
	return c.lineStarts[c.clampLine(line)]
}

// lineEnd returns the offset of the line's newline, or Len for the last line.
func (c content) lineEnd(line uint32) ByteOffset {
	line = c.clampLine(line)
	if line+1 < c.lineCount() {
		return c.lineStarts[line+1] - 1
	}
	return c.length()
}

func (c content) lineOf(offset ByteOffset) uint32 {
	offset = c.clamp(offset)
	i := sort.Search(len(c.lineStarts), func(i int) bool {
		return c.lineStarts[i] > offset
	})
	return uint32(i - 1)
}

func (c content) clamp(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if n := c.length(); offset > n {
		return n
	}
	return offset
}

func (c content) offsetToPoint(offset ByteOffset) Point {
	offset = c.clamp(offset)
	line := c.lineOf(offset)
	return Point{Line: line, Column: uint32(offset - c.lineStarts[line])}
}

func (c content) pointToOffset(p Point) ByteOffset {
	line := c.clampLine(p.Line)
	start, end := c.lineStart(line), c.lineEnd(line)
	off := start + ByteOffset(p.Column)
	if off > end {
		off = end
	}
	return off
}

// checkOffset validates that offset is inside [0, Len] on a rune boundary.
func (c content) checkOffset(offset ByteOffset) error {
	if offset < 0 || offset > c.length() {
		return ErrOffsetOutOfRange
	}
	if offset < c.length() && !utf8.RuneStart(c.text[offset]) {
		return ErrSplitsRune
	}
	return nil
}

func (c content) checkRange(r Range) error {
	if r.End < r.Start {
		return ErrRangeInvalid
	}
	if err := c.checkOffset(r.Start); err != nil {
		return err
	}
	return c.checkOffset(r.End)
}
