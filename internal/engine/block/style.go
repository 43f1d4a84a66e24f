package block

import (
	"fmt"
	"strings"
)

// Style is a single inline style flag.
type Style uint8

// Inline styles.
const (
	StyleBold Style = 1 << iota
	StyleItalic
	StyleUnderline
	StyleCode
	StyleStrikethrough
)

var styleNames = []struct {
	style Style
	name  string
}{
	{StyleBold, "BOLD"},
	{StyleItalic, "ITALIC"},
	{StyleUnderline, "UNDERLINE"},
	{StyleCode, "CODE"},
	{StyleStrikethrough, "STRIKETHROUGH"},
}

// String returns the upper-case style name.
func (s Style) String() string {
	for _, n := range styleNames {
		if n.style == s {
			return n.name
		}
	}
	return fmt.Sprintf("Style(%d)", uint8(s))
}

// ParseStyle parses an upper-case style name such as "BOLD".
func ParseStyle(name string) (Style, error) {
	upper := strings.ToUpper(name)
	for _, n := range styleNames {
		if n.name == upper {
			return n.style, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

// StyleSet is the set of inline styles carried by one character.
// The zero value is the empty set.
type StyleSet uint8

// NewStyleSet returns a set holding the given styles.
func NewStyleSet(styles ...Style) StyleSet {
	var s StyleSet
	for _, st := range styles {
		s = s.Add(st)
	}
	return s
}

// Has returns true if the set contains style.
func (s StyleSet) Has(style Style) bool {
	return s&StyleSet(style) != 0
}

// Add returns the set with style added.
func (s StyleSet) Add(style Style) StyleSet {
	return s | StyleSet(style)
}

// Remove returns the set with style removed.
func (s StyleSet) Remove(style Style) StyleSet {
	return s &^ StyleSet(style)
}

// IsEmpty returns true if no style is set.
func (s StyleSet) IsEmpty() bool {
	return s == 0
}

// Styles returns the styles in the set in declaration order.
func (s StyleSet) Styles() []Style {
	var out []Style
	for _, n := range styleNames {
		if s.Has(n.style) {
			out = append(out, n.style)
		}
	}
	return out
}

// String returns the set as "{BOLD,ITALIC}".
func (s StyleSet) String() string {
	names := make([]string, 0, len(styleNames))
	for _, st := range s.Styles() {
		names = append(names, st.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
