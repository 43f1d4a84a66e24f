package transform

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/cursor"
	"github.com/dshills/livemark/internal/engine/state"
)

// DoubleSided strips a symbol pair such as "**" around the text before the
// caret, inserts the triggering character ch where the closing symbol began
// and applies style to the formerly enclosed text.
//
// The closing symbol must end at the caret. Two states are pushed: the
// stripped text (remove-range) and the text with ch inserted and styled
// (insert-characters). The final caret sits after the enclosed text and ch.
func DoubleSided(s state.EditorState, key block.Key, symbol string, style block.Style, ch string) (Output, error) {
	b, err := lookup(s, key)
	if err != nil {
		return Output{}, err
	}
	sel := s.Selection()
	if sel.StartKey() != key {
		return Output{}, fmt.Errorf("%w: caret not in block %s", ErrOutOfRange, key)
	}

	text := b.Text()
	offset := sel.StartOffset()
	symLen := utf8.RuneCountInString(symbol)
	if symLen == 0 {
		return Output{}, fmt.Errorf("%w: empty symbol", ErrOutOfRange)
	}

	idx := strings.Index(text, symbol)
	if idx < 0 {
		return Output{}, fmt.Errorf("%w: %q not found", ErrOutOfRange, symbol)
	}
	start := utf8.RuneCountInString(text[:idx])
	open := start + symLen
	closing := offset - symLen
	if closing <= open || offset > b.Len() {
		return Output{}, fmt.Errorf("%w: enclosed [%d:%d] in %d", ErrOutOfRange, open, closing, b.Len())
	}
	if b.Slice(closing, offset) != symbol {
		return Output{}, fmt.Errorf("%w: %q does not end at %d", ErrOutOfRange, symbol, offset)
	}
	enclosed := closing - open

	// Drop the closing run first so the opening offsets stay valid.
	caret := cursor.Collapsed(key, offset)
	stripped, caret, err := replaceRange(b, caret, closing, offset, "")
	if err != nil {
		return Output{}, err
	}
	if stripped, caret, err = replaceRange(stripped, caret, start, open, ""); err != nil {
		return Output{}, err
	}
	end := start + enclosed

	doc, err := s.Document().Replace(stripped)
	if err != nil {
		return Output{}, err
	}
	removed := s.PushWithSelection(doc, caret, state.ChangeRemoveRange)

	inserted, caret, err := replaceRange(stripped, caret, end, end, ch)
	if err != nil {
		return Output{}, err
	}
	styled, err := inserted.ApplyStyle(start, end, style)
	if err != nil {
		return Output{}, err
	}
	if doc, err = doc.Replace(styled); err != nil {
		return Output{}, err
	}
	final := removed.PushWithSelection(doc, caret, state.ChangeInsertCharacters)

	return Output{
		State: final,
		Pushes: []Push{
			{State: removed, Kind: state.ChangeRemoveRange},
			{State: final, Kind: state.ChangeInsertCharacters},
		},
	}, nil
}
