package block

import "errors"

// Errors returned by block operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside [0, Len()].
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrUnknownType indicates a block type name could not be parsed.
	ErrUnknownType = errors.New("unknown block type")

	// ErrUnknownStyle indicates an inline style name could not be parsed.
	ErrUnknownStyle = errors.New("unknown inline style")
)
