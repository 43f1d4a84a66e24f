package transform

import (
	"fmt"

	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/cursor"
	"github.com/dshills/livemark/internal/engine/state"
)

const backtick = '`'

// InlineCodeBlock turns block key into a code-block and strips the
// surrounding backticks. The text must start and end with a backtick. The
// caret is mapped through both deletions; the triggering character is
// consumed.
func InlineCodeBlock(s state.EditorState, key block.Key) (Output, error) {
	b, err := lookup(s, key)
	if err != nil {
		return Output{}, err
	}
	n := b.Len()
	if n < 3 || b.CharAt(0) != backtick || b.CharAt(n-1) != backtick {
		return Output{}, fmt.Errorf("%w: %q is not wrapped in backticks", ErrOutOfRange, b.Text())
	}

	sel := s.Selection()
	if sel.StartKey() != key {
		sel = cursor.Collapsed(key, n)
	}
	nb, sel, err := replaceRange(b, sel, n-1, n, "")
	if err != nil {
		return Output{}, err
	}
	if nb, sel, err = replaceRange(nb, sel, 0, 1, ""); err != nil {
		return Output{}, err
	}
	nb = nb.WithType(block.TypeCodeBlock)

	doc, err := s.Document().Replace(nb)
	if err != nil {
		return Output{}, err
	}
	caret := sel.CollapseToStart().Clamp(nb.Len())
	next := s.PushWithSelection(doc, caret, state.ChangeBlockType)
	return single(next), nil
}

// MergeCodeBlockOnBackspace reverts a code-block emptied by deleting its only
// character. It matches when the proposed selection block is an empty
// code-block and the same block in prev was a code-block of exactly one
// character. The block becomes an empty unstyled block with the caret at 0,
// pushed as change-block-type. Otherwise proposed is returned with false.
func MergeCodeBlockOnBackspace(prev, proposed state.EditorState) (state.EditorState, bool) {
	cur, ok := proposed.CurrentBlock()
	if !ok || cur.Type() != block.TypeCodeBlock || !cur.IsEmpty() {
		return proposed, false
	}
	old, ok := prev.Document().Block(cur.Key())
	if !ok || old.Type() != block.TypeCodeBlock || old.Len() != 1 {
		return proposed, false
	}

	doc, err := proposed.Document().Replace(cur.WithType(block.TypeUnstyled).Clear())
	if err != nil {
		return proposed, false
	}
	return proposed.PushWithSelection(doc, cursor.Collapsed(cur.Key(), 0), state.ChangeBlockType), true
}
