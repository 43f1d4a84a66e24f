// Package block provides the leaf data unit of a livemark document.
//
// A Block is one paragraph-level unit: a stable key, a block type, its text,
// and a per-character style list. The style list is always kept aligned 1:1
// with the text: every edit that removes or inserts characters removes or
// inserts the matching style slots in the same operation.
//
// Offsets and lengths count characters (Unicode code points), not bytes and
// not UTF-16 code units. A character outside the Basic Multilingual Plane,
// such as most emoji, is one offset here but two UTF-16 units. Hosts that
// address text in UTF-16 convert with cursor.UTF16ToOffset and
// cursor.OffsetToUTF16, or move the caret with Editor.MoveCaretUTF16.
//
// Basic usage:
//
//	b := block.New("a1b2", block.TypeUnstyled, "**bold**")
//
//	// Strip the markdown symbols, keeping styles aligned
//	b, _ = b.DeleteRange(6, 8)
//	b, _ = b.DeleteRange(0, 2)
//
//	// Force-apply a style over a range
//	b, _ = b.ApplyStyle(0, 4, block.StyleBold)
//
// Thread Safety:
//
// Block is an immutable value type. Every operation returns a new Block and
// leaves the receiver untouched, so Blocks are safe for concurrent use.
package block
