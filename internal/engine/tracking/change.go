package tracking

import (
	"fmt"
	"time"

	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/state"
)

// RevisionID identifies an editor state produced by an accepted edit.
// Revision 0 is the initial state.
type RevisionID uint64

// Change describes one accepted edit.
type Change struct {
	// Revision is the revision the change produced.
	Revision RevisionID

	// Kind is the change kind of the resulting state.
	Kind state.ChangeKind

	// Rule names the autoformat rule that produced the change, empty for
	// plain edits.
	Rule string

	// Key is the block holding the caret after the change.
	Key block.Key

	// Timestamp is when the change was recorded.
	Timestamp time.Time
}

// IsFormat returns true if the change came from an autoformat rule.
func (c Change) IsFormat() bool {
	return c.Rule != ""
}

// String returns a debug representation of the change.
func (c Change) String() string {
	kind := c.Kind.String()
	if kind == "" {
		kind = "edit"
	}
	if c.Rule != "" {
		return fmt.Sprintf("r%d %s(%s) %s", c.Revision, kind, c.Rule, c.Key)
	}
	return fmt.Sprintf("r%d %s %s", c.Revision, kind, c.Key)
}
