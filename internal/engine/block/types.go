package block

import "fmt"

// Type is the structural type of a block.
type Type uint8

const (
	// TypeUnstyled is a plain paragraph.
	TypeUnstyled Type = iota
	// TypeHeaderOne is a level 1 heading.
	TypeHeaderOne
	// TypeHeaderTwo is a level 2 heading.
	TypeHeaderTwo
	// TypeHeaderThree is a level 3 heading.
	TypeHeaderThree
	// TypeCodeBlock is a code block.
	TypeCodeBlock
)

var typeNames = [...]string{
	TypeUnstyled:    "unstyled",
	TypeHeaderOne:   "header-one",
	TypeHeaderTwo:   "header-two",
	TypeHeaderThree: "header-three",
	TypeCodeBlock:   "code-block",
}

// String returns the type name, e.g. "header-two".
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// IsHeader returns true for the three heading types.
func (t Type) IsHeader() bool {
	return t == TypeHeaderOne || t == TypeHeaderTwo || t == TypeHeaderThree
}

// HeaderLevel returns 1-3 for heading types and 0 otherwise.
func (t Type) HeaderLevel() int {
	switch t {
	case TypeHeaderOne:
		return 1
	case TypeHeaderTwo:
		return 2
	case TypeHeaderThree:
		return 3
	default:
		return 0
	}
}

// ParseType parses a block type name produced by Type.String.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if name == s {
			return Type(i), nil
		}
	}
	return TypeUnstyled, fmt.Errorf("%w: %q", ErrUnknownType, s)
}
