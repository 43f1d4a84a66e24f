package renderer

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/livemark/internal/engine/block"
)

// Theme holds the styles used for each kind of block.
type Theme struct {
	Text    tcell.Style
	Headers [3]tcell.Style // header-one .. header-three
	Code    tcell.Style
	Prefix  tcell.Style // heading "#" prefix
	Status  tcell.Style
}

// DefaultTheme returns the default terminal theme.
func DefaultTheme() Theme {
	base := tcell.StyleDefault
	return Theme{
		Text: base,
		Headers: [3]tcell.Style{
			base.Bold(true).Underline(true).Foreground(tcell.ColorYellow),
			base.Bold(true).Foreground(tcell.ColorYellow),
			base.Bold(true),
		},
		Code:   base.Reverse(true),
		Prefix: base.Dim(true),
		Status: base.Reverse(true),
	}
}

// BlockStyle returns the base style for a block type.
func (t Theme) BlockStyle(typ block.Type) tcell.Style {
	if lvl := typ.HeaderLevel(); lvl > 0 {
		return t.Headers[lvl-1]
	}
	if typ == block.TypeCodeBlock {
		return t.Code
	}
	return t.Text
}

// InlineStyle adds the attributes of an inline style set to base.
func InlineStyle(base tcell.Style, set block.StyleSet) tcell.Style {
	style := base
	if set.Has(block.StyleBold) {
		style = style.Bold(true)
	}
	if set.Has(block.StyleItalic) {
		style = style.Italic(true)
	}
	if set.Has(block.StyleUnderline) {
		style = style.Underline(true)
	}
	if set.Has(block.StyleStrikethrough) {
		style = style.StrikeThrough(true)
	}
	return style
}

// headerPrefix returns the markdown prefix drawn before a heading.
func headerPrefix(typ block.Type) string {
	switch typ.HeaderLevel() {
	case 1:
		return "# "
	case 2:
		return "## "
	case 3:
		return "### "
	default:
		return ""
	}
}
