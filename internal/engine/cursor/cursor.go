package cursor

import (
	"fmt"

	"github.com/dshills/livemark/internal/engine/block"
)

// Point is a caret position: a block key and a character offset in it.
// Point is an immutable value type.
type Point struct {
	Key    block.Key
	Offset int
}

// NewPoint creates a point, clamping negative offsets to 0.
func NewPoint(key block.Key, offset int) Point {
	if offset < 0 {
		offset = 0
	}
	return Point{Key: key, Offset: offset}
}

// MoveTo returns a point at offset in the same block.
func (p Point) MoveTo(offset int) Point {
	return NewPoint(p.Key, offset)
}

// MoveBy returns a point shifted by delta characters.
func (p Point) MoveBy(delta int) Point {
	return NewPoint(p.Key, p.Offset+delta)
}

// Clamp returns a point clamped to [0, maxOffset].
func (p Point) Clamp(maxOffset int) Point {
	if p.Offset < 0 {
		return Point{Key: p.Key, Offset: 0}
	}
	if p.Offset > maxOffset {
		return Point{Key: p.Key, Offset: maxOffset}
	}
	return p
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("%s:%d", p.Key, p.Offset)
}

// Equals returns true if two points have the same key and offset.
func (p Point) Equals(other Point) bool {
	return p.Key == other.Key && p.Offset == other.Offset
}
