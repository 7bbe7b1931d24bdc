package engine

import (
	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/engine/history"
)

// Option configures a State during creation.
type Option func(*State)

// WithHistory attaches an undo history bounded to maxEntries units.
// A non-positive value uses history.DefaultMaxEntries.
func WithHistory(maxEntries int) Option {
	return func(s *State) {
		s.history = history.New(maxEntries)
	}
}

// WithBufferOptions passes options through to the underlying buffer.
func WithBufferOptions(opts ...buffer.Option) Option {
	return func(s *State) {
		s.bufOpts = append(s.bufOpts, opts...)
	}
}
