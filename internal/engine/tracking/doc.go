// Package tracking records the changes an editor applies and keeps named
// snapshots of editor states.
//
// Every accepted edit gets a monotonically increasing RevisionID and a
// Change describing it (change kind, autoformat rule, affected block). The
// change log is a bounded ring buffer, so callers such as a renderer can ask
// "what changed since revision X?" without holding on to whole states.
//
// # Usage
//
//	tracker := tracking.NewTracker()
//
//	rev := tracker.Record(tracking.Change{
//	    Kind: state.ChangeBlockType,
//	    Rule: "header",
//	    Key:  key,
//	})
//
//	changes := tracker.ChangesSince(rev - 1)
//
// # Snapshots
//
// Snapshots hold an immutable EditorState under a name:
//
//	id := tracker.CreateSnapshot("before_paste", current, rev)
//	diff, _ := tracker.DiffSinceSnapshot(id, current)
//
// DiffBlocks compares two documents block by block and reports added,
// removed and modified blocks.
//
// # Thread Safety
//
// All Tracker operations are thread-safe. Snapshots are immutable and can be
// freely shared across goroutines.
package tracking
