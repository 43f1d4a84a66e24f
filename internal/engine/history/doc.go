// Package history provides undo/redo for immutable editor states.
//
// Every accepted edit produces a new state.EditorState tagged with a change
// kind (insert-characters, remove-range, change-block-type). History records
// each transition as an Entry holding the state before and after it, so undo
// and redo simply hand back a previous snapshot.
//
// # History Stack
//
//	h := NewHistory(1000) // Max 1000 undo entries
//
//	h.Record(state.ChangeInsertCharacters, before, after)
//
//	prev, _ := h.Undo() // == before
//	next, _ := h.Redo() // == after
//
// # Grouping
//
// One autoformat keystroke can push several states (remove-range followed
// by insert-characters). Group them so a single undo restores the state
// before the keystroke:
//
//	h.BeginGroup("bold")
//	h.Record(state.ChangeRemoveRange, s0, s1)
//	h.Record(state.ChangeInsertCharacters, s1, s2)
//	h.EndGroup()
//
//	h.Undo() // returns s0
package history
