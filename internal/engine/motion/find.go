package motion

import "github.com/dshills/six/internal/engine/buffer"

// FindChar searches the line containing from for the count-th grapheme equal
// to target, forward or backward. With till the result stops one grapheme
// short of the match. The bool is false when there are not enough matches.
func FindChar(s *buffer.Snapshot, from buffer.ByteOffset, target string, forward, till bool, count int) (buffer.ByteOffset, bool) {
	if count < 1 {
		count = 1
	}
	from = s.GraphemeStart(s.Clamp(from))
	line := s.LineOf(from)
	start, end := s.LineStart(line), s.LineEnd(line)

	pos := from
	for {
		if forward {
			pos = s.NextGrapheme(pos)
			if pos >= end {
				return from, false
			}
		} else {
			if pos <= start {
				return from, false
			}
			pos = s.PrevGrapheme(pos)
		}
		if s.GraphemeAt(pos) != target {
			continue
		}
		if count--; count > 0 {
			continue
		}
		if !till {
			return pos, true
		}
		if forward {
			return s.PrevGrapheme(pos), true
		}
		return s.NextGrapheme(pos), true
	}
}
