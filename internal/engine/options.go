package engine

import (
	"github.com/dshills/livemark/internal/autoformat"
	"github.com/dshills/livemark/internal/engine/history"
	"github.com/dshills/livemark/internal/engine/state"
	"github.com/dshills/livemark/internal/engine/tracking"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = history.DefaultMaxEntries
	DefaultMaxChanges     = tracking.DefaultMaxChanges
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithContent sets the initial content, one unstyled block per line.
func WithContent(content string) Option {
	return func(e *Editor) {
		e.state = state.CreateWithText(content)
	}
}

// WithState sets the initial editor state.
func WithState(s state.EditorState) Option {
	return func(e *Editor) {
		e.state = s
	}
}

// WithDispatcher sets the autoformat dispatcher. By default a dispatcher
// with every rule enabled is created.
func WithDispatcher(d *autoformat.Dispatcher) Option {
	return func(e *Editor) {
		e.dispatcher = d
	}
}

// WithLogger sets the logger. It is also handed to the default dispatcher.
func WithLogger(l autoformat.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Editor) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithMaxChanges sets the maximum number of tracked changes.
func WithMaxChanges(max int) Option {
	return func(e *Editor) {
		if max > 0 {
			e.maxChanges = max
		}
	}
}

// WithReadOnly creates a read-only editor.
// Edit operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Editor) {
		e.readOnly = true
	}
}
