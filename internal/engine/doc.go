// Package engine provides the live-markdown editor for Livemark.
//
// The engine package serves as the main facade, combining the immutable
// editor state, the autoformat dispatcher, undo/redo and change tracking into
// a unified, thread-safe API.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - block: Immutable text blocks with per-character inline styles
//   - document: Ordered, copy-on-write collection of blocks
//   - cursor: Block-relative caret and selection
//   - state: Immutable EditorState snapshots and default edits
//   - history: Undo/redo of state transitions with grouping
//   - tracking: Revision log and named snapshots
//
// The autoformat package decides, per keystroke, whether markdown typed so
// far should become formatting.
//
// # Basic Usage
//
//	e := engine.New()
//
//	e.TypeText("## Title")   // header-two block holding "Title"
//	e.SplitBlock()
//	e.TypeText("**bold**!")  // "bold!" with BOLD over "bold"
//
//	e.Undo()                 // back to "**bold**"
//
// # Thread Safety
//
// All Editor operations are thread-safe. Edits are serialized by a mutex so
// one keystroke is in flight per editor; listeners run after the lock is
// released.
package engine
