package cursor

import (
	"errors"
	"fmt"

	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/document"
)

// Errors returned by Validate.
var (
	ErrUnknownBlock     = errors.New("selection references unknown block")
	ErrOffsetOutOfRange = errors.New("selection offset out of range")
)

// Selection is an anchor/focus pair of block points.
// Anchor is where the selection started; Focus is where typing occurs.
// When anchor and focus are equal the selection is collapsed (a caret).
// IsBackward is true when the focus precedes the anchor in the document.
// Selection is an immutable value type.
type Selection struct {
	AnchorKey    block.Key
	AnchorOffset int
	FocusKey     block.Key
	FocusOffset  int
	IsBackward   bool
}

// NewSelection creates a selection from explicit anchor and focus points.
func NewSelection(anchor, focus Point, backward bool) Selection {
	return Selection{
		AnchorKey:    anchor.Key,
		AnchorOffset: anchor.Offset,
		FocusKey:     focus.Key,
		FocusOffset:  focus.Offset,
		IsBackward:   backward,
	}
}

// Collapsed creates a caret at offset in block key.
func Collapsed(key block.Key, offset int) Selection {
	return Selection{AnchorKey: key, AnchorOffset: offset, FocusKey: key, FocusOffset: offset}
}

// Within creates a forward selection covering [start, end) of one block.
func Within(key block.Key, start, end int) Selection {
	if end < start {
		return Selection{AnchorKey: key, AnchorOffset: start, FocusKey: key, FocusOffset: end, IsBackward: true}
	}
	return Selection{AnchorKey: key, AnchorOffset: start, FocusKey: key, FocusOffset: end}
}

// Anchor returns the anchor point.
func (s Selection) Anchor() Point {
	return Point{Key: s.AnchorKey, Offset: s.AnchorOffset}
}

// Focus returns the focus point.
func (s Selection) Focus() Point {
	return Point{Key: s.FocusKey, Offset: s.FocusOffset}
}

// IsCollapsed returns true if anchor and focus are the same point.
func (s Selection) IsCollapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

// Start returns the point that comes first in the document.
func (s Selection) Start() Point {
	if s.IsBackward {
		return s.Focus()
	}
	return s.Anchor()
}

// End returns the point that comes last in the document.
func (s Selection) End() Point {
	if s.IsBackward {
		return s.Anchor()
	}
	return s.Focus()
}

// StartKey returns the key of the block holding the selection start.
func (s Selection) StartKey() block.Key {
	return s.Start().Key
}

// StartOffset returns the offset of the selection start.
func (s Selection) StartOffset() int {
	return s.Start().Offset
}

// EndKey returns the key of the block holding the selection end.
func (s Selection) EndKey() block.Key {
	return s.End().Key
}

// EndOffset returns the offset of the selection end.
func (s Selection) EndOffset() int {
	return s.End().Offset
}

// IsSingleBlock returns true if both points lie in the same block.
func (s Selection) IsSingleBlock() bool {
	return s.AnchorKey == s.FocusKey
}

// CollapseTo returns a caret at offset in the start block.
func (s Selection) CollapseTo(offset int) Selection {
	return Collapsed(s.StartKey(), offset)
}

// CollapseToStart collapses the selection to its start point.
func (s Selection) CollapseToStart() Selection {
	p := s.Start()
	return Collapsed(p.Key, p.Offset)
}

// CollapseToEnd collapses the selection to its end point.
func (s Selection) CollapseToEnd() Selection {
	p := s.End()
	return Collapsed(p.Key, p.Offset)
}

// Clamp clamps both offsets to [0, maxOffset].
func (s Selection) Clamp(maxOffset int) Selection {
	a := s.Anchor().Clamp(maxOffset)
	f := s.Focus().Clamp(maxOffset)
	return NewSelection(a, f, s.IsBackward)
}

// Validate checks that both points reference blocks of doc and that
// 0 <= offset <= len(text) holds for each.
func (s Selection) Validate(doc document.Document) error {
	for _, p := range []Point{s.Anchor(), s.Focus()} {
		b, ok := doc.Block(p.Key)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownBlock, p.Key)
		}
		if p.Offset < 0 || p.Offset > b.Len() {
			return fmt.Errorf("%w: %s not in [0:%d]", ErrOffsetOutOfRange, p, b.Len())
		}
	}
	return nil
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsCollapsed() {
		return fmt.Sprintf("Cursor(%s)", s.Focus())
	}
	dir := "→"
	if s.IsBackward {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%s%s%s)", s.Anchor(), dir, s.Focus())
}

// Equals returns true if two selections are identical.
func (s Selection) Equals(other Selection) bool {
	return s == other
}
