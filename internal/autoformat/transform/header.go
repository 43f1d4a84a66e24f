package transform

import (
	"fmt"
	"strings"

	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/cursor"
	"github.com/dshills/livemark/internal/engine/state"
)

var headerTypes = map[string]block.Type{
	"#":   block.TypeHeaderOne,
	"##":  block.TypeHeaderTwo,
	"###": block.TypeHeaderThree,
}

// HeaderType returns the heading type for a '#' run.
func HeaderType(symbol string) (block.Type, bool) {
	t, ok := headerTypes[symbol]
	return t, ok
}

// Header turns block key into the heading named by symbol. The block text is
// cleared and the caret collapsed at 0; the result is pushed as
// change-block-type.
func Header(s state.EditorState, key block.Key, symbol string) (Output, error) {
	typ, ok := HeaderType(symbol)
	if !ok {
		if symbol != "" && strings.Trim(symbol, "#") == "" {
			return Output{}, fmt.Errorf("%w: %d '#' characters", ErrUnknownHeader, len(symbol))
		}
		return Output{}, fmt.Errorf("%w: %q", ErrUnknownHeader, symbol)
	}

	b, err := lookup(s, key)
	if err != nil {
		return Output{}, err
	}

	doc, err := s.Document().Replace(b.WithType(typ).Clear())
	if err != nil {
		return Output{}, err
	}
	next := s.PushWithSelection(doc, cursor.Collapsed(key, 0), state.ChangeBlockType)
	return single(next), nil
}
