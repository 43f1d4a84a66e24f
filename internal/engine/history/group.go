package history

import "github.com/dshills/livemark/internal/engine/state"

// GroupScope provides a convenient way to group entries using defer.
// Usage:
//
//	func applyTransform(h *History) {
//	    defer h.GroupScope("bold").End()
//	    // ... several Record calls ...
//	}
type GroupScope struct {
	history *History
	active  bool
}

// GroupScope starts a new group scope.
// Call End() or use with defer to properly close the group.
func (h *History) GroupScope(name string) *GroupScope {
	h.BeginGroup(name)
	return &GroupScope{
		history: h,
		active:  true,
	}
}

// End ends the group scope.
// Safe to call multiple times; only the first call has effect.
func (g *GroupScope) End() {
	if g.active {
		g.history.EndGroup()
		g.active = false
	}
}

// Cancel cancels the group scope without recording a compound entry.
func (g *GroupScope) Cancel() {
	if g.active {
		g.history.CancelGroup()
		g.active = false
	}
}

// Transaction runs fn within a grouped undo context.
// If fn returns an error, the group is cancelled.
func (h *History) Transaction(name string, fn func() error) error {
	h.BeginGroup(name)

	if err := fn(); err != nil {
		h.CancelGroup()
		return err
	}

	h.EndGroup()
	return nil
}

// Checkpoint represents a point in history that can be returned to.
type Checkpoint struct {
	undoDepth int
}

// CreateCheckpoint creates a checkpoint at the current history position.
func (h *History) CreateCheckpoint() Checkpoint {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Checkpoint{undoDepth: len(h.undoStack)}
}

// UndoToCheckpoint undoes all entries since the checkpoint and returns the
// resulting state. ok is false if nothing was undone.
func (h *History) UndoToCheckpoint(cp Checkpoint) (st state.EditorState, ok bool) {
	for h.UndoCount() > cp.undoDepth {
		s, err := h.Undo()
		if err != nil {
			break
		}
		st, ok = s, true
	}
	return st, ok
}
