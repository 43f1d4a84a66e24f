// Package transform rewrites an EditorState once a markdown trigger has been
// detected.
//
// Every transform is a pure function from an input state to an Output: the
// final state plus the intermediate states it pushed, each tagged with the
// change kind the host's undo system records. A transform that fails returns
// an error and no state, so nothing is partially applied.
package transform

import (
	"fmt"
	"unicode/utf8"

	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/cursor"
	"github.com/dshills/livemark/internal/engine/state"
)

// Push is one state pushed by a transform together with its change kind.
type Push struct {
	State state.EditorState
	Kind  state.ChangeKind
}

// Output is the result of a successful transform.
type Output struct {
	State  state.EditorState // Final state, selection included
	Pushes []Push            // Pushed states in order
}

// Kinds returns the change kinds of the pushes in order.
func (o Output) Kinds() []state.ChangeKind {
	kinds := make([]state.ChangeKind, len(o.Pushes))
	for i, p := range o.Pushes {
		kinds[i] = p.Kind
	}
	return kinds
}

func single(s state.EditorState) Output {
	return Output{State: s, Pushes: []Push{{State: s, Kind: s.LastChange()}}}
}

func lookup(s state.EditorState, key block.Key) (block.Block, error) {
	b, ok := s.Document().Block(key)
	if !ok {
		return block.Block{}, fmt.Errorf("%w: %s", ErrBlockNotFound, key)
	}
	return b, nil
}

// replaceRange replaces [start, end) of b with unstyled text, keeping the
// style slots aligned, and maps sel through the same edit.
func replaceRange(b block.Block, sel cursor.Selection, start, end int, text string) (block.Block, cursor.Selection, error) {
	nb, err := b.ReplaceRange(start, end, text, 0)
	if err != nil {
		return b, sel, err
	}
	edit := cursor.Edit{
		Key:    b.Key(),
		Range:  block.NewRange(start, end),
		NewLen: utf8.RuneCountInString(text),
	}
	return nb, cursor.TransformSelection(sel, edit), nil
}
