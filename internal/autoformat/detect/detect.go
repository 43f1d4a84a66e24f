// Package detect provides the pure trigger predicates of the autoformat
// engine.
//
// Every predicate inspects block text (and, for headings, the caret offset
// and triggering character) and reports whether a markdown sequence has just
// become complete. Predicates hold no state and are re-evaluated from scratch
// on every keystroke. Once a transform consumes the symbols the text no longer
// matches, so a predicate never fires twice for the same sequence.
package detect

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/livemark/internal/engine/block"
)

// Markdown symbols recognised by the detectors.
const (
	HeaderSymbol = '#'
	StarSymbol   = '*'
	CodeSymbol   = '`'

	BoldSymbol   = "**"
	ItalicSymbol = "*"
)

// Kind identifies a trigger rule.
type Kind uint8

const (
	// KindNone means no rule matched.
	KindNone Kind = iota
	// KindHeader is the one-sided "#", "##", "###" rule.
	KindHeader
	// KindBold is the double-sided "**text**" rule.
	KindBold
	// KindItalic is the double-sided "*text*" rule.
	KindItalic
	// KindInlineCode is the double-sided "`text`" rule.
	KindInlineCode
)

// String returns the rule name.
func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindInlineCode:
		return "inline-code"
	default:
		return "none"
	}
}

// ParseKind parses a rule name produced by Kind.String.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindHeader, KindBold, KindItalic, KindInlineCode} {
		if k.String() == s {
			return k, true
		}
	}
	return KindNone, false
}

// Match describes a detected trigger.
type Match struct {
	Kind   Kind
	Symbol string      // The markdown symbol run, e.g. "##" or "**"
	Style  block.Style // Inline style for bold/italic, 0 otherwise
}

// Header reports whether typing ch at offset completes a heading prefix.
// It matches only when ch is a space, the text before the caret is a
// non-empty run of '#' and nothing follows the caret. The returned symbol is
// the whole run; runs longer than three are returned too and left for the
// transform to reject. A '#' trigger never matches.
func Header(text string, offset int, ch string) (string, bool) {
	if ch != " " {
		return "", false
	}
	if offset <= 0 || offset != utf8.RuneCountInString(text) {
		return "", false
	}
	if strings.Trim(text, string(HeaderSymbol)) != "" {
		return "", false
	}
	return text, true
}

// Bold reports whether text holds exactly one "**…**" pair: four asterisks
// where the 1st/2nd and the 3rd/4th are adjacent, and the text is more than
// just the symbols.
func Bold(text string) bool {
	idx := indicesOf(text, StarSymbol)
	return len(idx) == 4 &&
		idx[1]-idx[0] == 1 &&
		idx[3]-idx[2] == 1 &&
		!onlySymbols(text, 4)
}

// Italic reports whether text holds exactly one "*…*" pair with non-empty
// content between the asterisks.
func Italic(text string) bool {
	idx := indicesOf(text, StarSymbol)
	return len(idx) == 2 &&
		idx[1]-idx[0] > 1 &&
		!onlySymbols(text, 2)
}

// InlineCode reports whether text holds exactly one "`…`" pair with
// non-empty content between the backticks.
func InlineCode(text string) bool {
	idx := indicesOf(text, CodeSymbol)
	return len(idx) == 2 &&
		idx[1]-idx[0] > 1 &&
		!onlySymbols(text, 2)
}

// indicesOf returns the character offsets of every occurrence of sym.
func indicesOf(text string, sym rune) []int {
	var idx []int
	i := 0
	for _, r := range text {
		if r == sym {
			idx = append(idx, i)
		}
		i++
	}
	return idx
}

// onlySymbols reports whether text, with its first space removed, is exactly
// n characters long. With n symbols present this means the block holds
// nothing but the symbols (and at most one space).
func onlySymbols(text string, n int) bool {
	return utf8.RuneCountInString(strings.Replace(text, " ", "", 1)) == n
}

// Detect returns every rule matching the block text, in precedence order:
// header (space trigger only), bold, italic, inline code. The caller tries
// them in order and keeps the first whose transform succeeds.
func Detect(text string, offset int, ch string) []Match {
	var out []Match
	if sym, ok := Header(text, offset, ch); ok {
		out = append(out, Match{Kind: KindHeader, Symbol: sym})
	}
	if Bold(text) {
		out = append(out, Match{Kind: KindBold, Symbol: BoldSymbol, Style: block.StyleBold})
	}
	if Italic(text) {
		out = append(out, Match{Kind: KindItalic, Symbol: ItalicSymbol, Style: block.StyleItalic})
	}
	if InlineCode(text) {
		out = append(out, Match{Kind: KindInlineCode, Symbol: string(CodeSymbol)})
	}
	return out
}
