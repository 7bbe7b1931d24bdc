package buffer

import "github.com/google/uuid"

// Snapshot is a read-only view of a buffer at one revision.
// Out-of-range arguments are clamped rather than rejected.
type Snapshot struct {
	id       uuid.UUID
	content  content
	revision Revision
}

// NewSnapshot builds a standalone snapshot of text, mostly for tests.
func NewSnapshot(text string) *Snapshot {
	return &Snapshot{content: newContent(normalizeLineEndings(text))}
}

// BufferID returns the ID of the buffer the snapshot was taken from.
func (s *Snapshot) BufferID() uuid.UUID { return s.id }

// Revision returns the revision the snapshot was taken at.
func (s *Snapshot) Revision() Revision { return s.revision }

// Text returns the full content.
func (s *Snapshot) Text() string { return s.content.text }

// Len returns the content length in bytes.
func (s *Snapshot) Len() ByteOffset { return s.content.length() }

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() uint32 { return s.content.lineCount() }

// Clamp pins offset to [0, Len].
func (s *Snapshot) Clamp(offset ByteOffset) ByteOffset { return s.content.clamp(offset) }

// Valid reports whether offset is inside [0, Len] on a rune boundary.
func (s *Snapshot) Valid(offset ByteOffset) bool {
	return s.content.checkOffset(offset) == nil
}

// CheckRange validates r against the snapshot's bounds.
func (s *Snapshot) CheckRange(r Range) error { return s.content.checkRange(r) }

// Slice returns the text in [start, end), clamped to the content.
func (s *Snapshot) Slice(start, end ByteOffset) string {
	start, end = s.Clamp(start), s.Clamp(end)
	if end < start {
		return ""
	}
	return s.content.text[start:end]
}

// ByteAt returns the byte at offset, or 0 when offset is out of range.
func (s *Snapshot) ByteAt(offset ByteOffset) byte {
	if offset < 0 || offset >= s.Len() {
		return 0
	}
	return s.content.text[offset]
}

// LineOf returns the line containing offset.
func (s *Snapshot) LineOf(offset ByteOffset) uint32 { return s.content.lineOf(offset) }

// LineStart returns the offset of the first byte of line.
func (s *Snapshot) LineStart(line uint32) ByteOffset { return s.content.lineStart(line) }

// LineEnd returns the offset of line's terminating newline, or Len on the last line.
func (s *Snapshot) LineEnd(line uint32) ByteOffset { return s.content.lineEnd(line) }

// LineText returns the text of line without its newline.
func (s *Snapshot) LineText(line uint32) string {
	return s.content.text[s.LineStart(line):s.LineEnd(line)]
}

// LineRange returns the range of line including its trailing newline, if any.
func (s *Snapshot) LineRange(line uint32) Range {
	end := s.LineEnd(line)
	if end < s.Len() {
		end++
	}
	return Range{Start: s.LineStart(line), End: end}
}

// OffsetToPoint converts a byte offset to a line/column point.
func (s *Snapshot) OffsetToPoint(offset ByteOffset) Point { return s.content.offsetToPoint(offset) }

// PointToOffset converts a point to a byte offset, clamping the column to the line.
func (s *Snapshot) PointToOffset(p Point) ByteOffset { return s.content.pointToOffset(p) }
