package buffer

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Buffer is the editable text of one document.
// All methods are safe for concurrent use; callers that need a consistent
// multi-step view should take a Snapshot.
type Buffer struct {
	mu       sync.RWMutex
	id       uuid.UUID
	content  content
	revision Revision
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithID assigns a fixed identifier instead of a random one.
func WithID(id uuid.UUID) Option {
	return func(b *Buffer) {
		b.id = id
	}
}

// NewBuffer creates an empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	return NewBufferFromString("", opts...)
}

// NewBufferFromString creates a buffer holding s.
// CRLF and lone CR line endings are normalized to LF, and invalid UTF-8
// sequences become U+FFFD.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := &Buffer{
		id:      uuid.New(),
		content: newContent(normalizeLineEndings(strings.ToValidUTF8(s, "\uFFFD"))),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// ID returns the identifier assigned at construction.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Text returns the full content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.text
}

// Len returns the content length in bytes.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.length()
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.content.lineCount()
}

// Revision returns the current revision.
func (b *Buffer) Revision() Revision {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// Slice returns the text in [start, end).
func (b *Buffer) Slice(start, end ByteOffset) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r := Range{Start: start, End: end}
	if err := b.content.checkRange(r); err != nil {
		return "", fmt.Errorf("slice %s: %w", r, err)
	}
	return b.content.text[start:end], nil
}

// Snapshot returns an immutable view of the current content.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &Snapshot{id: b.id, content: b.content, revision: b.revision}
}

// Insert inserts text at offset.
func (b *Buffer) Insert(offset ByteOffset, text string) (EditResult, error) {
	return b.Apply(Edit{Range: Range{Start: offset, End: offset}, NewText: text})
}

// Delete removes the bytes in [start, end).
func (b *Buffer) Delete(start, end ByteOffset) (EditResult, error) {
	return b.Apply(Edit{Range: Range{Start: start, End: end}})
}

// Replace replaces the bytes in [start, end) with text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (EditResult, error) {
	return b.Apply(Edit{Range: Range{Start: start, End: end}, NewText: text})
}

// Apply performs one edit. The range and the new text are validated
// before anything changes. An edit that neither removes nor inserts anything does not bump the revision.
func (b *Buffer) Apply(e Edit) (EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.content.checkRange(e.Range); err != nil {
		return EditResult{}, fmt.Errorf("edit %s: %w", e.Range, err)
	}
	if !utf8.ValidString(e.NewText) {
		return EditResult{}, fmt.Errorf("edit %s: %w", e.Range, ErrInvalidUTF8)
	}
	newText := e.NewText
	old := b.content.text[e.Range.Start:e.Range.End]

	res := EditResult{
		OldRange: e.Range,
		NewRange: Range{Start: e.Range.Start, End: e.Range.Start + ByteOffset(len(newText))},
		OldText:  old,
		NewText:  newText,
		Delta:    ByteOffset(len(newText)) - e.Range.Len(),
	}
	if old == "" && newText == "" {
		res.Revision = b.revision
		return res, nil
	}

	t := b.content.text
	b.content = newContent(t[:e.Range.Start] + newText + t[e.Range.End:])
	b.revision++
	res.Revision = b.revision
	return res, nil
}
