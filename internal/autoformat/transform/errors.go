package transform

import "errors"

// Transform errors. None of them is fatal: the dispatcher logs them and
// leaves the keystroke to the host's default handling.
var (
	// ErrUnknownHeader indicates a '#' run with no matching heading type.
	ErrUnknownHeader = errors.New("unknown header symbol")

	// ErrOutOfRange indicates the computed offsets do not describe a
	// well-formed markdown sequence ending at the caret.
	ErrOutOfRange = errors.New("markdown sequence out of range")

	// ErrBlockNotFound indicates the target block is not in the document.
	ErrBlockNotFound = errors.New("block not found")
)
