package history

import (
	"strings"
	"time"

	"github.com/dshills/livemark/internal/engine/state"
)

// Entry is one undoable transition between two editor states.
type Entry struct {
	Kind        state.ChangeKind
	Before      state.EditorState
	After       state.EditorState
	Description string
	Timestamp   time.Time

	// Parts holds the grouped entries of a compound entry, in order.
	Parts []*Entry
}

func newEntry(kind state.ChangeKind, before, after state.EditorState) *Entry {
	desc := kind.String()
	if desc == "" {
		desc = "edit"
	}
	return &Entry{
		Kind:        kind,
		Before:      before,
		After:       after,
		Description: desc,
		Timestamp:   time.Now(),
	}
}

// newCompoundEntry folds parts into one entry spanning the first Before and
// the last After. The compound takes the kind of its last part.
func newCompoundEntry(name string, parts []*Entry) *Entry {
	first, last := parts[0], parts[len(parts)-1]
	if name == "" {
		kinds := make([]string, len(parts))
		for i, p := range parts {
			kinds[i] = p.Description
		}
		name = strings.Join(kinds, "+")
	}
	return &Entry{
		Kind:        last.Kind,
		Before:      first.Before,
		After:       last.After,
		Description: name,
		Timestamp:   last.Timestamp,
		Parts:       parts,
	}
}

// IsCompound returns true if the entry groups several transitions.
func (e *Entry) IsCompound() bool {
	return len(e.Parts) > 0
}

// Kinds returns the change kinds of the entry, one per part.
func (e *Entry) Kinds() []state.ChangeKind {
	if !e.IsCompound() {
		return []state.ChangeKind{e.Kind}
	}
	out := make([]state.ChangeKind, len(e.Parts))
	for i, p := range e.Parts {
		out[i] = p.Kind
	}
	return out
}

// Info returns read-only info about the entry.
func (e *Entry) Info() EntryInfo {
	return EntryInfo{
		Description: e.Description,
		Timestamp:   e.Timestamp,
		Kinds:       e.Kinds(),
	}
}

// EntryInfo provides read-only info about an entry.
// Used for displaying undo/redo history to users.
type EntryInfo struct {
	Description string             // Human-readable description
	Timestamp   time.Time          // When the entry was recorded
	Kinds       []state.ChangeKind // Change kinds, one per grouped part
}
