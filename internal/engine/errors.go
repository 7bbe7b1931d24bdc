package engine

import (
	"github.com/dshills/six/internal/engine/buffer"
	"github.com/dshills/six/internal/engine/history"
)

// Errors returned by state operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the buffer.
	ErrOffsetOutOfRange = buffer.ErrOffsetOutOfRange

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = buffer.ErrRangeInvalid

	// ErrSplitsRune indicates an offset inside a multi-byte rune.
	ErrSplitsRune = buffer.ErrSplitsRune

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo
)
