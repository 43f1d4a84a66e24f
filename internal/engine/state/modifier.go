package state

import (
	"fmt"

	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/cursor"
	"github.com/dshills/livemark/internal/engine/document"
)

// InsertCharacters replaces the selection with text. Inserted characters
// inherit the style of the character before the insertion point. The result
// is pushed as ChangeInsertCharacters with the caret after the new text.
func (s EditorState) InsertCharacters(text string) (EditorState, error) {
	cleared, err := s.removeSelection()
	if err != nil {
		return s, err
	}
	b, ok := cleared.CurrentBlock()
	if !ok {
		return s, ErrNoCurrentBlock
	}
	return cleared.insertAt(b, cleared.sel.StartOffset(), text, b.StyleAt(cleared.sel.StartOffset()-1))
}

// InsertStyledCharacters is InsertCharacters with an explicit style for every
// inserted character.
func (s EditorState) InsertStyledCharacters(text string, style block.StyleSet) (EditorState, error) {
	cleared, err := s.removeSelection()
	if err != nil {
		return s, err
	}
	b, ok := cleared.CurrentBlock()
	if !ok {
		return s, ErrNoCurrentBlock
	}
	return cleared.insertAt(b, cleared.sel.StartOffset(), text, style)
}

func (s EditorState) insertAt(b block.Block, offset int, text string, style block.StyleSet) (EditorState, error) {
	nb, err := b.InsertText(offset, text, style)
	if err != nil {
		return s, fmt.Errorf("insert %q at %s:%d: %w", text, b.Key(), offset, err)
	}
	doc, err := s.doc.Replace(nb)
	if err != nil {
		return s, err
	}
	end := offset + (nb.Len() - b.Len())
	return s.PushWithSelection(doc, cursor.Collapsed(b.Key(), end), ChangeInsertCharacters), nil
}

// RemoveRange deletes the content covered by the selection and pushes the
// result as ChangeRemoveRange. A collapsed selection is returned unchanged.
func (s EditorState) RemoveRange() (EditorState, error) {
	if s.sel.IsCollapsed() {
		return s, nil
	}
	return s.removeSelection()
}

// DeleteBackward performs a backspace: a range selection is removed; a caret
// deletes the character before it, or merges the block into the previous one
// when at offset 0. At the start of the first block nothing changes.
func (s EditorState) DeleteBackward() (EditorState, error) {
	if !s.sel.IsCollapsed() {
		return s.removeSelection()
	}
	b, ok := s.CurrentBlock()
	if !ok {
		return s, ErrNoCurrentBlock
	}
	offset := s.sel.StartOffset()
	if offset > 0 {
		return s.ForceSelection(cursor.Within(b.Key(), offset-1, offset)).removeSelection()
	}
	prev, ok := s.doc.Before(b.Key())
	if !ok {
		return s, nil
	}
	sel := cursor.NewSelection(cursor.NewPoint(prev.Key(), prev.Len()), cursor.NewPoint(b.Key(), 0), false)
	return s.ForceSelection(sel).removeSelection()
}

// SplitBlock splits the current block at the caret, moving the text after
// the caret into a new unstyled block. The caret moves to the new block.
func (s EditorState) SplitBlock() (EditorState, error) {
	cleared, err := s.removeSelection()
	if err != nil {
		return s, err
	}
	b, ok := cleared.CurrentBlock()
	if !ok {
		return s, ErrNoCurrentBlock
	}
	offset := cleared.sel.StartOffset()

	head, err := b.DeleteRange(offset, b.Len())
	if err != nil {
		return s, err
	}
	tail, err := block.New(document.GenerateKey(), block.TypeUnstyled, "").AppendFrom(b, offset)
	if err != nil {
		return s, err
	}

	doc, err := cleared.doc.Replace(head)
	if err != nil {
		return s, err
	}
	if doc, err = doc.InsertAfter(head.Key(), tail); err != nil {
		return s, err
	}
	return cleared.PushWithSelection(doc, cursor.Collapsed(tail.Key(), 0), ChangeNone), nil
}

// ApplyInlineStyle force-applies style over a single-block selection. The
// change tag and selection are kept.
func (s EditorState) ApplyInlineStyle(style block.Style) (EditorState, error) {
	if !s.sel.IsSingleBlock() {
		return s, fmt.Errorf("apply %s: selection spans blocks", style)
	}
	b, ok := s.CurrentBlock()
	if !ok {
		return s, ErrNoCurrentBlock
	}
	nb, err := b.ApplyStyle(s.sel.StartOffset(), s.sel.EndOffset(), style)
	if err != nil {
		return s, fmt.Errorf("apply %s: %w", style, err)
	}
	doc, err := s.doc.Replace(nb)
	if err != nil {
		return s, err
	}
	s.doc = doc
	return s, nil
}

// removeSelection deletes the selected content, merging blocks when the
// selection spans several. The caret ends at the old selection start.
func (s EditorState) removeSelection() (EditorState, error) {
	if s.sel.IsCollapsed() {
		return s, nil
	}
	start, end := s.sel.Start(), s.sel.End()
	if s.doc.IndexOf(start.Key) > s.doc.IndexOf(end.Key) {
		start, end = end, start
	}

	sb, ok := s.doc.Block(start.Key)
	if !ok {
		return s, fmt.Errorf("%w: %s", document.ErrBlockNotFound, start.Key)
	}

	if start.Key == end.Key {
		lo, hi := start.Offset, end.Offset
		if lo > hi {
			lo, hi = hi, lo
		}
		nb, err := sb.DeleteRange(lo, hi)
		if err != nil {
			return s, err
		}
		doc, err := s.doc.Replace(nb)
		if err != nil {
			return s, err
		}
		return s.PushWithSelection(doc, cursor.Collapsed(sb.Key(), lo), ChangeRemoveRange), nil
	}

	eb, ok := s.doc.Block(end.Key)
	if !ok {
		return s, fmt.Errorf("%w: %s", document.ErrBlockNotFound, end.Key)
	}
	head, err := sb.DeleteRange(start.Offset, sb.Len())
	if err != nil {
		return s, err
	}
	merged, err := head.AppendFrom(eb, end.Offset)
	if err != nil {
		return s, err
	}

	doc, err := s.doc.Replace(merged)
	if err != nil {
		return s, err
	}
	keys := s.doc.Keys()
	for _, k := range keys[s.doc.IndexOf(start.Key)+1 : s.doc.IndexOf(end.Key)+1] {
		if doc, err = doc.Remove(k); err != nil {
			return s, err
		}
	}
	return s.PushWithSelection(doc, cursor.Collapsed(sb.Key(), start.Offset), ChangeRemoveRange), nil
}
