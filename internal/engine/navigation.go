package engine

import (
	"fmt"

	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/cursor"
	"github.com/dshills/livemark/internal/engine/document"
)

// Direction is a caret movement.
type Direction int

const (
	MoveLeft Direction = iota
	MoveRight
	MoveUp
	MoveDown
	MoveLineStart
	MoveLineEnd
)

// MoveCaret collapses the selection and moves the caret. Left and right
// cross block boundaries; up and down keep the offset, clamped to the
// target block. Moving the caret is not an edit: nothing is recorded in
// history and listeners are not called. Returns false if the caret did
// not move.
func (e *Editor) MoveCaret(dir Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.state
	sel := s.Selection()
	doc := s.Document()
	key, offset := sel.FocusKey, sel.FocusOffset
	cur, ok := doc.Block(key)
	if !ok {
		return false
	}
	blocks := doc.Blocks()
	idx := doc.IndexOf(key)

	neighbor := func(delta int) (block.Block, bool) {
		i := idx + delta
		if i < 0 || i >= len(blocks) {
			return block.Block{}, false
		}
		return blocks[i], true
	}

	switch dir {
	case MoveLeft:
		if offset > 0 {
			offset--
		} else if prev, ok := neighbor(-1); ok {
			key, offset = prev.Key(), prev.Len()
		}
	case MoveRight:
		if offset < cur.Len() {
			offset++
		} else if next, ok := neighbor(1); ok {
			key, offset = next.Key(), 0
		}
	case MoveUp, MoveDown:
		delta := -1
		if dir == MoveDown {
			delta = 1
		}
		if b, ok := neighbor(delta); ok {
			key, offset = b.Key(), min(offset, b.Len())
		}
	case MoveLineStart:
		offset = 0
	case MoveLineEnd:
		offset = cur.Len()
	}

	next := cursor.Collapsed(key, offset)
	if next.Equals(sel) {
		return false
	}
	e.state = s.ForceSelection(next)
	return true
}

// MoveCaretUTF16 places a collapsed caret in block key at u16, an offset in
// UTF-16 code units. Offsets inside a surrogate pair round down and offsets
// past the end clamp to the block length.
func (e *Editor) MoveCaretUTF16(key block.Key, u16 int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, ok := e.state.Document().Block(key)
	if !ok {
		return fmt.Errorf("%w: %s", document.ErrBlockNotFound, key)
	}
	offset := cursor.UTF16ToOffset(b.Text(), u16)
	e.state = e.state.ForceSelection(cursor.Collapsed(key, offset))
	return nil
}

// CaretUTF16 returns the focus block and the focus offset in UTF-16 code
// units.
func (e *Editor) CaretUTF16() (block.Key, int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sel := e.state.Selection()
	b, ok := e.state.Document().Block(sel.FocusKey)
	if !ok {
		return sel.FocusKey, 0
	}
	return sel.FocusKey, cursor.OffsetToUTF16(b.Text(), sel.FocusOffset)
}
