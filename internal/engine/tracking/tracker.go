package tracking

import (
	"sync"
	"time"

	"github.com/dshills/livemark/internal/engine/state"
)

// DefaultMaxChanges is the default maximum number of changes to track.
const DefaultMaxChanges = 10000

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithMaxChanges sets the maximum number of changes to track.
// It must only be used during Tracker creation via NewTracker.
func WithMaxChanges(maxChanges int) TrackerOption {
	return func(t *Tracker) {
		if maxChanges > 0 {
			t.maxChanges = maxChanges
		}
	}
}

// Tracker assigns revisions to accepted edits and keeps a bounded log of
// them together with named snapshots.
// All operations are thread-safe.
type Tracker struct {
	mu sync.RWMutex

	revision RevisionID

	// Recent changes in a ring buffer
	changes    []Change
	head       int // Index of oldest entry
	count      int // Number of entries
	maxChanges int

	snapshots *SnapshotManager
}

// NewTracker creates a new change tracker.
func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		maxChanges: DefaultMaxChanges,
		snapshots:  NewSnapshotManager(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.changes = make([]Change, t.maxChanges)
	return t
}

// Record assigns the next revision to change, stores it and returns the
// revision. Revision and Timestamp of change are overwritten.
func (t *Tracker) Record(change Change) RevisionID {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.revision++
	change.Revision = t.revision
	change.Timestamp = time.Now()

	idx := (t.head + t.count) % t.maxChanges
	if t.count < t.maxChanges {
		t.count++
	} else {
		// Ring buffer is full, advance head
		t.head = (t.head + 1) % t.maxChanges
	}
	t.changes[idx] = change
	return t.revision
}

// Revision returns the latest revision.
func (t *Tracker) Revision() RevisionID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.revision
}

// ChangesSince returns the changes after rev in chronological order.
func (t *Tracker) ChangesSince(rev RevisionID) []Change {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.changesBetweenLocked(rev, t.revision)
}

// ChangesBetween returns the changes in (startRev, endRev].
func (t *Tracker) ChangesBetween(startRev, endRev RevisionID) []Change {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.changesBetweenLocked(startRev, endRev)
}

func (t *Tracker) changesBetweenLocked(startRev, endRev RevisionID) []Change {
	var result []Change
	for i := 0; i < t.count; i++ {
		c := t.changes[(t.head+i)%t.maxChanges]
		if c.Revision > startRev && c.Revision <= endRev {
			result = append(result, c)
		}
	}
	return result
}

// LatestChanges returns the n most recent changes, oldest first.
func (t *Tracker) LatestChanges(n int) []Change {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n > t.count {
		n = t.count
	}
	if n <= 0 {
		return nil
	}
	result := make([]Change, n)
	start := t.count - n
	for i := 0; i < n; i++ {
		result[i] = t.changes[(t.head+start+i)%t.maxChanges]
	}
	return result
}

// ChangeCount returns the number of tracked changes.
func (t *Tracker) ChangeCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}

// CreateSnapshot stores s under name at revision rev. An existing snapshot
// with the same name is replaced.
func (t *Tracker) CreateSnapshot(name string, s state.EditorState, rev RevisionID) SnapshotID {
	return t.snapshots.Create(name, s, rev)
}

// GetSnapshot returns a snapshot by ID.
func (t *Tracker) GetSnapshot(id SnapshotID) (*Snapshot, error) {
	return t.snapshots.Get(id)
}

// GetSnapshotByName returns a snapshot by name.
func (t *Tracker) GetSnapshotByName(name string) (*Snapshot, error) {
	return t.snapshots.GetByName(name)
}

// DeleteSnapshot removes a snapshot.
func (t *Tracker) DeleteSnapshot(id SnapshotID) {
	t.snapshots.Delete(id)
}

// ListSnapshots returns all snapshots ordered by creation time.
func (t *Tracker) ListSnapshots() []*Snapshot {
	return t.snapshots.List()
}

// DiffSinceSnapshot compares the snapshot with current block by block.
func (t *Tracker) DiffSinceSnapshot(id SnapshotID, current state.EditorState) ([]BlockDiff, error) {
	snap, err := t.snapshots.Get(id)
	if err != nil {
		return nil, err
	}
	return DiffBlocks(snap.State().Document(), current.Document()), nil
}

// Clear removes all changes and snapshots. The revision counter keeps
// counting.
func (t *Tracker) Clear() {
	t.mu.Lock()
	t.head = 0
	t.count = 0
	t.changes = make([]Change, t.maxChanges)
	t.mu.Unlock()

	t.snapshots.Clear()
}
