package buffer

import "fmt"

// ByteOffset is a byte position in the buffer.
type ByteOffset = int64

// Revision counts successful mutations of a buffer. A new buffer is at 0.
type Revision uint64

// Point is a 0-indexed line and byte column.
type Point struct {
	Line   uint32
	Column uint32
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Range is a half-open byte range [Start, End).
type Range struct {
	Start ByteOffset
	End   ByteOffset
}

// NewRange returns the range between a and b in either order.
func NewRange(a, b ByteOffset) Range {
	if b < a {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the number of bytes covered by the range.
func (r Range) Len() ByteOffset {
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no bytes.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}
