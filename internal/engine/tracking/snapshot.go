package tracking

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/livemark/internal/engine/state"
)

// ErrSnapshotNotFound is returned when a snapshot ID or name is unknown.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotID uniquely identifies a named snapshot.
type SnapshotID uint64

var snapshotIDCounter uint64

func nextSnapshotID() SnapshotID {
	return SnapshotID(atomic.AddUint64(&snapshotIDCounter, 1))
}

// Snapshot is a named, immutable editor state.
type Snapshot struct {
	ID        SnapshotID
	Name      string
	Timestamp time.Time
	Revision  RevisionID

	state state.EditorState
}

// State returns the stored editor state.
func (s *Snapshot) State() state.EditorState {
	return s.state
}

// Text returns the plain text of the stored document.
func (s *Snapshot) Text() string {
	return s.state.Document().PlainText()
}

// SnapshotManager manages named snapshots.
// All operations are thread-safe.
type SnapshotManager struct {
	mu        sync.RWMutex
	snapshots map[SnapshotID]*Snapshot
	byName    map[string]*Snapshot
}

// NewSnapshotManager creates a new snapshot manager.
func NewSnapshotManager() *SnapshotManager {
	return &SnapshotManager{
		snapshots: make(map[SnapshotID]*Snapshot),
		byName:    make(map[string]*Snapshot),
	}
}

// Create stores a new snapshot. A snapshot with the same name is replaced.
func (sm *SnapshotManager) Create(name string, s state.EditorState, rev RevisionID) SnapshotID {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if existing, ok := sm.byName[name]; ok {
		delete(sm.snapshots, existing.ID)
	}

	snap := &Snapshot{
		ID:        nextSnapshotID(),
		Name:      name,
		Timestamp: time.Now(),
		Revision:  rev,
		state:     s,
	}
	sm.snapshots[snap.ID] = snap
	if name != "" {
		sm.byName[name] = snap
	}
	return snap.ID
}

// Get retrieves a snapshot by ID.
func (sm *SnapshotManager) Get(id SnapshotID) (*Snapshot, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.snapshots[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrSnapshotNotFound, id)
	}
	return snap, nil
}

// GetByName retrieves a snapshot by name.
func (sm *SnapshotManager) GetByName(name string) (*Snapshot, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSnapshotNotFound, name)
	}
	return snap, nil
}

// Delete removes a snapshot by ID.
func (sm *SnapshotManager) Delete(id SnapshotID) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if snap, ok := sm.snapshots[id]; ok {
		if sm.byName[snap.Name] == snap {
			delete(sm.byName, snap.Name)
		}
		delete(sm.snapshots, id)
	}
}

// List returns all snapshots, oldest first.
func (sm *SnapshotManager) List() []*Snapshot {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	snapshots := make([]*Snapshot, 0, len(sm.snapshots))
	for _, snap := range sm.snapshots {
		snapshots = append(snapshots, snap)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].ID < snapshots[j].ID
	})
	return snapshots
}

// Count returns the number of snapshots.
func (sm *SnapshotManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.snapshots)
}

// Clear removes all snapshots.
func (sm *SnapshotManager) Clear() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.snapshots = make(map[SnapshotID]*Snapshot)
	sm.byName = make(map[string]*Snapshot)
}
