package micro

// Tag names a mode state.
type Tag uint8

const (
	Normal Tag = iota
	Insert
	Visual
	Pending
)

var tagNames = [...]string{
	Normal:  "normal",
	Insert:  "insert",
	Visual:  "visual",
	Pending: "pending",
}

// String returns the tag name.
func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// ParseTag returns the tag with the given name.
func ParseTag(name string) (Tag, bool) {
	for i, n := range tagNames {
		if n == name {
			return Tag(i), true
		}
	}
	return 0, false
}

// Tags returns every tag in declaration order.
func Tags() []Tag {
	return []Tag{Normal, Insert, Visual, Pending}
}
