package cursor

import "github.com/dshills/livemark/internal/engine/block"

// Edit describes a replacement of Range in one block by NewLen characters.
type Edit struct {
	Key    block.Key
	Range  block.Range
	NewLen int
}

// Delta returns the change in block length caused by this edit.
func (e Edit) Delta() int {
	return e.NewLen - e.Range.Len()
}

// TransformOffset updates an offset after an edit in the same block.
//
// Transformation rules:
//   - If edit is entirely before offset: adjust offset by the edit's delta
//   - If edit starts at or after offset: offset unchanged
//   - If edit spans offset: move offset to end of new text
func TransformOffset(offset int, edit Edit) int {
	if edit.Range.End <= offset {
		return offset + edit.Delta()
	}
	if edit.Range.Start >= offset {
		return offset
	}
	return edit.Range.Start + edit.NewLen
}

// TransformSelection updates both points of sel that lie in the edited block.
func TransformSelection(sel Selection, edit Edit) Selection {
	if sel.AnchorKey == edit.Key {
		sel.AnchorOffset = TransformOffset(sel.AnchorOffset, edit)
	}
	if sel.FocusKey == edit.Key {
		sel.FocusOffset = TransformOffset(sel.FocusOffset, edit)
	}
	return sel
}
