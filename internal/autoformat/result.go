package autoformat

import (
	"github.com/dshills/livemark/internal/autoformat/detect"
	"github.com/dshills/livemark/internal/autoformat/transform"
	"github.com/dshills/livemark/internal/engine/state"
)

// Status indicates whether the dispatcher consumed a keystroke.
type Status uint8

const (
	// StatusUnhandled means the host must apply its default edit.
	StatusUnhandled Status = iota
	// StatusHandled means the keystroke was consumed by a transform.
	StatusHandled
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHandled:
		return "handled"
	case StatusUnhandled:
		return "not-handled"
	default:
		return "unknown"
	}
}

// Result is the outcome of OnBeforeCharacter.
type Result struct {
	// Status indicates whether the keystroke was consumed.
	Status Status

	// State is the new editor state when handled, the input state otherwise.
	State state.EditorState

	// Pushes lists the intermediate states the transform pushed, in order.
	Pushes []transform.Push

	// Rule names the rule that handled the keystroke (KindNone if unhandled).
	Rule detect.Kind
}

// IsHandled returns true if the keystroke was consumed.
func (r Result) IsHandled() bool {
	return r.Status == StatusHandled
}

func unhandled(s state.EditorState) Result {
	return Result{Status: StatusUnhandled, State: s}
}

func handled(rule detect.Kind, out transform.Output) Result {
	return Result{
		Status: StatusHandled,
		State:  out.State,
		Pushes: out.Pushes,
		Rule:   rule,
	}
}
