package block

import "fmt"

// Range represents a character range within a block.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start int // Inclusive start position
	End   int // Exclusive end position
}

// NewRange creates a new Range from start and end offsets.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%d:%d)", r.Start, r.End)
}

// Len returns the length of the range in characters.
func (r Range) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// IsValid returns true if the range is valid (Start <= End).
func (r Range) IsValid() bool {
	return r.Start <= r.End
}

// Contains returns true if the given offset is within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// Shift returns the range moved by delta characters.
func (r Range) Shift(delta int) Range {
	return Range{Start: r.Start + delta, End: r.End + delta}
}

// within reports whether the range is valid and lies in [0, length].
func (r Range) within(length int) error {
	if !r.IsValid() {
		return fmt.Errorf("%w: %s", ErrRangeInvalid, r)
	}
	if r.Start < 0 || r.End > length {
		return fmt.Errorf("%w: %s not in [0:%d]", ErrOffsetOutOfRange, r, length)
	}
	return nil
}
