package engine

import (
	"errors"

	"github.com/dshills/livemark/internal/engine/history"
	"github.com/dshills/livemark/internal/engine/tracking"
)

// Errors returned by editor operations.
var (
	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrNothingToRedo indicates the redo stack is empty.
	ErrNothingToRedo = history.ErrNothingToRedo

	// ErrSnapshotNotFound indicates a snapshot was not found.
	ErrSnapshotNotFound = tracking.ErrSnapshotNotFound

	// ErrReadOnly indicates an edit was attempted on a read-only editor.
	ErrReadOnly = errors.New("editor is read-only")

	// ErrEmptyInput indicates TypeCharacter was called with no character.
	ErrEmptyInput = errors.New("empty input")
)
