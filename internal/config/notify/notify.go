// Package notify delivers configuration change notifications.
//
// Components subscribe to a section path such as "autoformat" or
// "history.maxEntries" and are called when a reload changes a value at or
// below that path.
package notify

import (
	"strings"
	"sync"

	"github.com/dshills/livemark/internal/config/layer"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota
	// ChangeDelete indicates a value was removed.
	ChangeDelete
	// ChangeReload indicates the entire configuration was reloaded.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// Path is the dot-separated setting path. Empty for reload events.
	Path     string
	Type     ChangeType
	OldValue any
	NewValue any

	// Source identifies where the change came from, e.g. a file path.
	Source string
}

// Section returns the top-level section of the change path.
func (c Change) Section() string {
	section, _, _ := strings.Cut(c.Path, ".")
	return section
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type subscriber struct {
	path     string // empty for global observers
	observer Observer
}

// Notifier manages configuration change subscriptions.
// Observers are called synchronously, outside the notifier's lock.
type Notifier struct {
	mu     sync.RWMutex
	subs   map[uint64]subscriber
	nextID uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{subs: make(map[uint64]subscriber)}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for changes at path or below it.
// Subscribing to "autoformat" receives changes to "autoformat.bold".
// Reload events reach every observer.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subs[id] = subscriber{path: path, observer: observer}
	return &Subscription{id: id, notifier: n}
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.subs, id)
}

// Notify sends a change to every matching observer.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	var observers []Observer
	for _, s := range n.subs {
		if change.Path == "" || matches(s.path, change.Path) {
			observers = append(observers, s.observer)
		}
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

// NotifyReload sends a reload event.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// NotifyDiff compares two merged configurations and notifies one change per
// differing path. It returns the number of changes sent.
func (n *Notifier) NotifyDiff(old, new map[string]any, source string) int {
	changes := Diff(old, new, source)
	for _, c := range changes {
		n.Notify(c)
	}
	return len(changes)
}

// Diff returns the changes between two merged configurations, sorted by
// path.
func Diff(old, new map[string]any, source string) []Change {
	paths := layer.ChangedPaths(old, new)
	changes := make([]Change, 0, len(paths))
	for _, p := range paths {
		ov, _ := layer.GetByPath(old, p)
		nv, ok := layer.GetByPath(new, p)
		typ := ChangeSet
		if !ok {
			typ = ChangeDelete
		}
		changes = append(changes, Change{Path: p, Type: typ, OldValue: ov, NewValue: nv, Source: source})
	}
	return changes
}

// matches reports whether a subscription to prefix covers path.
func matches(prefix, path string) bool {
	if prefix == "" || prefix == path {
		return true
	}
	return strings.HasPrefix(path, prefix) && path[len(prefix)] == '.'
}
