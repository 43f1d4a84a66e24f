// Package cursor provides caret and selection management for block documents.
//
// The cursor package handles:
//
//   - Caret positions as (block key, character offset) Points
//   - Selections with an anchor/focus model via the Selection type
//   - Offset transformation after block edits
//   - UTF-16 offset conversion for hosts that address text in code units
//
// Selection Model:
//
// Selections use an anchor/focus model where:
//   - Anchor: The position where the selection started
//   - Focus: The current caret position (where typing would occur)
//
// When anchor and focus are equal the selection is collapsed. IsBackward
// records whether the focus precedes the anchor, preserving the user's
// selection direction.
//
// Basic usage:
//
//	sel := cursor.Collapsed(key, 10)     // Caret at offset 10
//	sel = cursor.Within(key, 2, 6)       // Select [2, 6)
//	if err := sel.Validate(doc); err != nil {
//		// offset outside the block or unknown key
//	}
//
// Thread Safety:
//
// Point and Selection are immutable value types and safe for concurrent use.
package cursor
