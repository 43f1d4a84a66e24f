package engine

import (
	"sync"

	"github.com/dshills/livemark/internal/autoformat"
	"github.com/dshills/livemark/internal/engine/history"
	"github.com/dshills/livemark/internal/engine/state"
	"github.com/dshills/livemark/internal/engine/tracking"
)

// Re-export commonly used types for convenience.
type (
	// State is an immutable editor state snapshot.
	State = state.EditorState

	// Change describes one accepted edit.
	Change = tracking.Change

	// RevisionID identifies an editor state produced by an accepted edit.
	RevisionID = tracking.RevisionID

	// SnapshotID uniquely identifies a named snapshot.
	SnapshotID = tracking.SnapshotID

	// BlockDiff describes one block differing between two states.
	BlockDiff = tracking.BlockDiff
)

// ChangeListener is called after every accepted edit, outside the editor
// lock. It may read the editor but must not block.
type ChangeListener func(change Change)

// Editor is the host side of the autoformat engine. It owns the current
// EditorState, feeds keystrokes through the autoformat dispatcher, performs
// the default edit when a keystroke is unhandled and records every accepted
// transition in undo history.
//
// All operations are thread-safe. One edit is in flight at a time.
type Editor struct {
	mu sync.Mutex

	state      state.EditorState
	history    *history.History
	tracker    *tracking.Tracker
	dispatcher *autoformat.Dispatcher
	logger     autoformat.Logger

	listenersMu sync.RWMutex
	listeners   []ChangeListener

	// Configuration
	maxUndoEntries int
	maxChanges     int
	readOnly       bool
}

// New creates a new Editor holding one empty block.
func New(opts ...Option) *Editor {
	e := &Editor{
		state:          state.CreateEmpty(),
		logger:         nopLogger{},
		maxUndoEntries: DefaultMaxUndoEntries,
		maxChanges:     DefaultMaxChanges,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.dispatcher == nil {
		e.dispatcher = autoformat.New(autoformat.WithLogger(e.logger))
	}
	e.history = history.NewHistory(e.maxUndoEntries)
	e.tracker = tracking.NewTracker(tracking.WithMaxChanges(e.maxChanges))
	return e
}

// ============================================================================
// Edit Operations
// ============================================================================

// TypeCharacter inserts ch at the selection. The dispatcher is consulted
// first; when it handles the keystroke its result is committed, otherwise
// ch is inserted and the content-change rule applied. The returned result
// carries the committed state in both cases.
func (e *Editor) TypeCharacter(ch string) (autoformat.Result, error) {
	e.mu.Lock()
	if e.readOnly {
		e.mu.Unlock()
		return autoformat.Result{}, ErrReadOnly
	}
	if ch == "" {
		e.mu.Unlock()
		return autoformat.Result{}, ErrEmptyInput
	}

	prev := e.state
	res := e.dispatcher.OnBeforeCharacter(prev, ch)
	if res.IsHandled() {
		e.history.BeginGroup(res.Rule.String())
		from := prev
		for _, p := range res.Pushes {
			e.history.Record(p.Kind, from, p.State)
			from = p.State
		}
		e.history.EndGroup()

		change := e.commitLocked(res.State, res.Rule.String())
		e.mu.Unlock()
		e.notify(change)
		return res, nil
	}

	proposed, err := prev.InsertCharacters(ch)
	if err != nil {
		e.mu.Unlock()
		return autoformat.Result{}, err
	}
	next := e.dispatcher.OnContentChange(prev, proposed)
	e.history.Record(next.LastChange(), prev, next)
	change := e.commitLocked(next, "")
	e.mu.Unlock()

	e.notify(change)
	res.State = next
	return res, nil
}

// TypeText types every character of text in order.
func (e *Editor) TypeText(text string) error {
	for _, r := range text {
		if _, err := e.TypeCharacter(string(r)); err != nil {
			return err
		}
	}
	return nil
}

// Backspace deletes backward from the selection and applies the
// content-change rule, so an emptied one-character code-block reverts to a
// plain block.
func (e *Editor) Backspace() error {
	return e.edit(func(s state.EditorState) (state.EditorState, error) {
		return s.DeleteBackward()
	}, true)
}

// SplitBlock splits the current block at the caret (Enter).
func (e *Editor) SplitBlock() error {
	return e.edit(func(s state.EditorState) (state.EditorState, error) {
		return s.SplitBlock()
	}, false)
}

func (e *Editor) edit(fn func(state.EditorState) (state.EditorState, error), contentChange bool) error {
	e.mu.Lock()
	if e.readOnly {
		e.mu.Unlock()
		return ErrReadOnly
	}

	prev := e.state
	next, err := fn(prev)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if contentChange {
		next = e.dispatcher.OnContentChange(prev, next)
	}
	if next.Document().Equals(prev.Document()) && next.Selection().Equals(prev.Selection()) {
		e.mu.Unlock()
		return nil
	}
	e.history.Record(next.LastChange(), prev, next)
	change := e.commitLocked(next, "")
	e.mu.Unlock()

	e.notify(change)
	return nil
}

// commitLocked replaces the state and records the change (must hold lock).
func (e *Editor) commitLocked(next state.EditorState, rule string) Change {
	e.state = next
	change := Change{
		Kind: next.LastChange(),
		Rule: rule,
		Key:  next.Selection().StartKey(),
	}
	change.Revision = e.tracker.Record(change)
	return change
}

// ============================================================================
// Undo/Redo Operations
// ============================================================================

// Undo restores the state before the last recorded edit. An autoformat
// keystroke is undone as a single unit.
func (e *Editor) Undo() error {
	return e.step(e.history.Undo)
}

// Redo re-applies the last undone edit.
func (e *Editor) Redo() error {
	return e.step(e.history.Redo)
}

func (e *Editor) step(fn func() (state.EditorState, error)) error {
	e.mu.Lock()
	if e.readOnly {
		e.mu.Unlock()
		return ErrReadOnly
	}
	s, err := fn()
	if err != nil {
		e.mu.Unlock()
		return err
	}
	change := e.commitLocked(s, "")
	e.mu.Unlock()

	e.notify(change)
	return nil
}

// CanUndo returns true if undo is available.
func (e *Editor) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Editor) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoInfo describes the available undo entries, oldest first.
func (e *Editor) UndoInfo() []history.EntryInfo {
	return e.history.UndoInfo()
}

// SetMaxUndoEntries changes the undo limit, dropping the oldest entries.
func (e *Editor) SetMaxUndoEntries(max int) {
	e.history.SetMaxEntries(max)
}

// ============================================================================
// State Access
// ============================================================================

// State returns the current editor state.
func (e *Editor) State() state.EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// SetState replaces the current state, e.g. after loading a document.
// Undo history is cleared.
func (e *Editor) SetState(s state.EditorState) error {
	if err := s.Validate(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.readOnly {
		e.mu.Unlock()
		return ErrReadOnly
	}
	e.history.Clear()
	change := e.commitLocked(s, "")
	e.mu.Unlock()

	e.notify(change)
	return nil
}

// Text returns the document as plain text, one line per block.
func (e *Editor) Text() string {
	return e.State().Document().PlainText()
}

// Dispatcher returns the autoformat dispatcher.
func (e *Editor) Dispatcher() *autoformat.Dispatcher {
	return e.dispatcher
}

// IsReadOnly returns true if the editor rejects edits.
func (e *Editor) IsReadOnly() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.readOnly
}

// ============================================================================
// Change Tracking
// ============================================================================

// AddListener registers fn to be called after every accepted edit.
func (e *Editor) AddListener(fn ChangeListener) {
	e.listenersMu.Lock()
	defer e.listenersMu.Unlock()
	e.listeners = append(e.listeners, fn)
}

func (e *Editor) notify(change Change) {
	e.listenersMu.RLock()
	listeners := e.listeners
	e.listenersMu.RUnlock()

	for _, fn := range listeners {
		fn(change)
	}
}

// RevisionID returns the current revision.
func (e *Editor) RevisionID() RevisionID {
	return e.tracker.Revision()
}

// ChangesSince returns the changes after rev.
func (e *Editor) ChangesSince(rev RevisionID) []Change {
	return e.tracker.ChangesSince(rev)
}

// LatestChanges returns the n most recent changes.
func (e *Editor) LatestChanges(n int) []Change {
	return e.tracker.LatestChanges(n)
}

// CreateSnapshot stores the current state under name.
func (e *Editor) CreateSnapshot(name string) SnapshotID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.CreateSnapshot(name, e.state, e.tracker.Revision())
}

// DiffSinceSnapshot compares a snapshot with the current state.
func (e *Editor) DiffSinceSnapshot(id SnapshotID) ([]BlockDiff, error) {
	return e.tracker.DiffSinceSnapshot(id, e.State())
}

// RestoreSnapshot makes the snapshot's state current. The restore is
// recorded in undo history.
func (e *Editor) RestoreSnapshot(id SnapshotID) error {
	snap, err := e.tracker.GetSnapshot(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.readOnly {
		e.mu.Unlock()
		return ErrReadOnly
	}
	e.history.Record(state.ChangeNone, e.state, snap.State())
	change := e.commitLocked(snap.State(), "")
	e.mu.Unlock()

	e.notify(change)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
