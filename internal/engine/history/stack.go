package history

import (
	"errors"
	"sync"

	"github.com/dshills/livemark/internal/engine/state"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no limit is given.
const DefaultMaxEntries = 1000

// History manages undo/redo stacks of editor state transitions.
type History struct {
	mu sync.Mutex

	undoStack []*Entry
	redoStack []*Entry

	// Grouping state
	grouping  bool
	groupName string
	groupEnts []*Entry

	// Configuration
	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Record adds the transition before -> after, tagged kind, to the undo stack.
// Clears the redo stack.
func (h *History) Record(kind state.ChangeKind, before, after state.EditorState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e := newEntry(kind, before, after)
	if h.grouping {
		h.groupEnts = append(h.groupEnts, e)
		return
	}

	h.pushLocked(e)
}

// pushLocked adds an entry without acquiring the lock.
func (h *History) pushLocked(e *Entry) {
	h.undoStack = append(h.undoStack, e)

	// Clear redo stack
	h.redoStack = nil

	// Enforce max entries
	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo pops the last entry and returns the state before it.
func (h *History) Undo() (state.EditorState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return state.EditorState{}, ErrNothingToUndo
	}

	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, e)
	return e.Before, nil
}

// Redo re-applies the last undone entry and returns the state after it.
func (h *History) Redo() (state.EditorState, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return state.EditorState{}, ErrNothingToRedo
	}

	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, e)
	return e.After, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// BeginGroup starts an entry group.
// Entries recorded while grouping are combined into a single undo unit.
func (h *History) BeginGroup(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		// Already grouping, ignore nested calls
		return
	}

	h.grouping = true
	h.groupName = name
	h.groupEnts = nil
}

// EndGroup finishes an entry group.
// All entries since BeginGroup are combined into one compound entry.
func (h *History) EndGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}

	h.grouping = false

	switch len(h.groupEnts) {
	case 0:
	case 1:
		h.pushLocked(h.groupEnts[0])
	default:
		h.pushLocked(newCompoundEntry(h.groupName, h.groupEnts))
	}
	h.groupEnts = nil
}

// CancelGroup discards the current group without adding to history.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.grouping = false
	h.groupEnts = nil
}

// IsGrouping returns true if currently in an entry group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.groupEnts = nil
}

// UndoInfo returns info about available undo operations, oldest first.
func (h *History) UndoInfo() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infoOf(h.undoStack)
}

// RedoInfo returns info about available redo operations, oldest first.
func (h *History) RedoInfo() []EntryInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return infoOf(h.redoStack)
}

// PeekUndo returns info about the next undo operation without removing it.
func (h *History) PeekUndo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return EntryInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].Info(), true
}

// SetMaxEntries changes the maximum number of undo entries.
// If the current stack is larger, oldest entries are removed.
func (h *History) SetMaxEntries(max int) {
	if max <= 0 {
		max = DefaultMaxEntries
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.maxEntries = max

	if len(h.undoStack) > max {
		excess := len(h.undoStack) - max
		h.undoStack = h.undoStack[excess:]
	}
}

// MaxEntries returns the maximum number of undo entries.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

func infoOf(entries []*Entry) []EntryInfo {
	result := make([]EntryInfo, len(entries))
	for i, e := range entries {
		result[i] = e.Info()
	}
	return result
}
