package buffer

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Grapheme helpers. Clusters never span a newline because content is LF
// normalized, so every scan starts at the beginning of a line.

// NextGrapheme returns the offset just past the grapheme cluster that
// contains offset. At Len it returns Len.
func (s *Snapshot) NextGrapheme(offset ByteOffset) ByteOffset {
	offset = s.Clamp(offset)
	if offset >= s.Len() {
		return s.Len()
	}
	pos := s.LineStart(s.LineOf(offset))
	rest := s.content.text[pos:]
	state := -1
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		pos += ByteOffset(len(cluster))
		if pos > offset {
			return pos
		}
		rest, state = next, newState
	}
	return s.Len()
}

// PrevGrapheme returns the start of the grapheme cluster that ends at or
// contains offset-1. At 0 it returns 0.
func (s *Snapshot) PrevGrapheme(offset ByteOffset) ByteOffset {
	offset = s.Clamp(offset)
	if offset == 0 {
		return 0
	}
	return s.GraphemeStart(offset - 1)
}

// GraphemeStart returns the start of the cluster containing offset.
func (s *Snapshot) GraphemeStart(offset ByteOffset) ByteOffset {
	offset = s.Clamp(offset)
	pos := s.LineStart(s.LineOf(offset))
	rest := s.content.text[pos:]
	state := -1
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		end := pos + ByteOffset(len(cluster))
		if end > offset {
			return pos
		}
		pos = end
		rest, state = next, newState
	}
	return pos
}

// GraphemeAt returns the cluster that starts at or contains offset,
// or "" at Len.
func (s *Snapshot) GraphemeAt(offset ByteOffset) string {
	start := s.GraphemeStart(offset)
	return s.content.text[start:s.NextGrapheme(start)]
}

// DisplayColumn returns the display width of the line text before offset.
func (s *Snapshot) DisplayColumn(offset ByteOffset) int {
	offset = s.Clamp(offset)
	start := s.LineStart(s.LineOf(offset))
	return runewidth.StringWidth(s.content.text[start:offset])
}

// OffsetAtColumn returns the offset of the cluster on line that covers the
// display column col. Columns past the end of the line yield the line end.
func (s *Snapshot) OffsetAtColumn(line uint32, col int) ByteOffset {
	pos := s.LineStart(line)
	rest := s.LineText(line)
	width := 0
	state := -1
	for len(rest) > 0 {
		cluster, next, _, newState := uniseg.StepString(rest, state)
		w := runewidth.StringWidth(cluster)
		if width+w > col {
			return pos
		}
		width += w
		pos += ByteOffset(len(cluster))
		rest, state = next, newState
	}
	return pos
}

// GraphemeCount returns the number of clusters in [start, end).
func (s *Snapshot) GraphemeCount(start, end ByteOffset) int {
	return uniseg.GraphemeClusterCount(s.Slice(start, end))
}
