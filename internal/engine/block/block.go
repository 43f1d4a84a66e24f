package block

import "fmt"

// Key is the stable identifier of a block within a document.
type Key string

// Block is one paragraph-level unit: key, type, text and one StyleSet per
// character. Block is an immutable value type; the zero value is an empty
// unstyled block with no key.
type Block struct {
	key    Key
	typ    Type
	text   []rune
	styles []StyleSet
}

// New creates a block with the given text and no inline styles.
func New(key Key, typ Type, text string) Block {
	runes := []rune(text)
	return Block{
		key:    key,
		typ:    typ,
		text:   runes,
		styles: make([]StyleSet, len(runes)),
	}
}

// NewStyled creates a block from text and a parallel style list.
// Returns ErrRangeInvalid if the lengths differ.
func NewStyled(key Key, typ Type, text string, styles []StyleSet) (Block, error) {
	runes := []rune(text)
	if len(runes) != len(styles) {
		return Block{}, fmt.Errorf("%w: %d characters, %d style slots", ErrRangeInvalid, len(runes), len(styles))
	}
	s := make([]StyleSet, len(styles))
	copy(s, styles)
	return Block{key: key, typ: typ, text: runes, styles: s}, nil
}

// Key returns the block key.
func (b Block) Key() Key {
	return b.key
}

// Type returns the block type.
func (b Block) Type() Type {
	return b.typ
}

// Text returns the block text.
func (b Block) Text() string {
	return string(b.text)
}

// Len returns the text length in characters.
func (b Block) Len() int {
	return len(b.text)
}

// IsEmpty returns true if the block has no text.
func (b Block) IsEmpty() bool {
	return len(b.text) == 0
}

// CharAt returns the character at offset, or 0 if out of range.
func (b Block) CharAt(offset int) rune {
	if offset < 0 || offset >= len(b.text) {
		return 0
	}
	return b.text[offset]
}

// Slice returns the text in [start, end), clamped to the block.
func (b Block) Slice(start, end int) string {
	start = clamp(start, 0, len(b.text))
	end = clamp(end, start, len(b.text))
	return string(b.text[start:end])
}

// StyleAt returns the style set of the character at offset.
func (b Block) StyleAt(offset int) StyleSet {
	if offset < 0 || offset >= len(b.styles) {
		return 0
	}
	return b.styles[offset]
}

// Styles returns a copy of the per-character style list.
func (b Block) Styles() []StyleSet {
	out := make([]StyleSet, len(b.styles))
	copy(out, b.styles)
	return out
}

// WithType returns the block with a different type.
func (b Block) WithType(t Type) Block {
	b.typ = t
	return b
}

// WithText returns the block with new text and an empty style list.
func (b Block) WithText(text string) Block {
	runes := []rune(text)
	b.text = runes
	b.styles = make([]StyleSet, len(runes))
	return b
}

// Clear returns the block with its text and styles removed.
func (b Block) Clear() Block {
	b.text = nil
	b.styles = nil
	return b
}

// DeleteRange removes the characters in [start, end) together with their
// style slots.
func (b Block) DeleteRange(start, end int) (Block, error) {
	r := NewRange(start, end)
	if err := r.within(len(b.text)); err != nil {
		return b, err
	}
	if r.IsEmpty() {
		return b, nil
	}

	text := make([]rune, 0, len(b.text)-r.Len())
	text = append(text, b.text[:r.Start]...)
	text = append(text, b.text[r.End:]...)

	styles := make([]StyleSet, 0, len(b.styles)-r.Len())
	styles = append(styles, b.styles[:r.Start]...)
	styles = append(styles, b.styles[r.End:]...)

	b.text = text
	b.styles = styles
	return b, nil
}

// InsertText inserts text at offset; every inserted character carries style.
func (b Block) InsertText(offset int, text string, style StyleSet) (Block, error) {
	if offset < 0 || offset > len(b.text) {
		return b, fmt.Errorf("%w: %d not in [0:%d]", ErrOffsetOutOfRange, offset, len(b.text))
	}
	ins := []rune(text)
	if len(ins) == 0 {
		return b, nil
	}

	newText := make([]rune, 0, len(b.text)+len(ins))
	newText = append(newText, b.text[:offset]...)
	newText = append(newText, ins...)
	newText = append(newText, b.text[offset:]...)

	newStyles := make([]StyleSet, 0, len(b.styles)+len(ins))
	newStyles = append(newStyles, b.styles[:offset]...)
	for range ins {
		newStyles = append(newStyles, style)
	}
	newStyles = append(newStyles, b.styles[offset:]...)

	b.text = newText
	b.styles = newStyles
	return b, nil
}

// ReplaceRange replaces [start, end) with text carrying style.
func (b Block) ReplaceRange(start, end int, text string, style StyleSet) (Block, error) {
	nb, err := b.DeleteRange(start, end)
	if err != nil {
		return b, err
	}
	return nb.InsertText(start, text, style)
}

// AppendFrom appends the characters of src starting at from, together with
// their styles, to the end of b.
func (b Block) AppendFrom(src Block, from int) (Block, error) {
	if from < 0 || from > len(src.text) {
		return b, fmt.Errorf("%w: %d not in [0:%d]", ErrOffsetOutOfRange, from, len(src.text))
	}
	n := len(src.text) - from
	text := make([]rune, 0, len(b.text)+n)
	text = append(text, b.text...)
	text = append(text, src.text[from:]...)

	styles := make([]StyleSet, 0, len(b.styles)+n)
	styles = append(styles, b.styles...)
	styles = append(styles, src.styles[from:]...)

	b.text = text
	b.styles = styles
	return b, nil
}

// ApplyStyle force-adds style to every character in [start, end).
func (b Block) ApplyStyle(start, end int, style Style) (Block, error) {
	return b.mapStyles(start, end, func(s StyleSet) StyleSet { return s.Add(style) })
}

// RemoveStyle removes style from every character in [start, end).
func (b Block) RemoveStyle(start, end int, style Style) (Block, error) {
	return b.mapStyles(start, end, func(s StyleSet) StyleSet { return s.Remove(style) })
}

func (b Block) mapStyles(start, end int, fn func(StyleSet) StyleSet) (Block, error) {
	r := NewRange(start, end)
	if err := r.within(len(b.styles)); err != nil {
		return b, err
	}
	styles := make([]StyleSet, len(b.styles))
	copy(styles, b.styles)
	for i := r.Start; i < r.End; i++ {
		styles[i] = fn(styles[i])
	}
	b.styles = styles
	return b, nil
}

// Spans returns the block text split into maximal runs of equal style.
func (b Block) Spans() []Span {
	var spans []Span
	for i := 0; i < len(b.text); {
		j := i + 1
		for j < len(b.text) && b.styles[j] == b.styles[i] {
			j++
		}
		spans = append(spans, Span{Range: NewRange(i, j), Text: string(b.text[i:j]), Style: b.styles[i]})
		i = j
	}
	return spans
}

// Span is a contiguous range of characters sharing one StyleSet.
type Span struct {
	Range Range
	Text  string
	Style StyleSet
}

// Equal reports whether two blocks have the same key, type, text and styles.
func (b Block) Equal(o Block) bool {
	if b.key != o.key || b.typ != o.typ || len(b.text) != len(o.text) {
		return false
	}
	for i := range b.text {
		if b.text[i] != o.text[i] || b.styles[i] != o.styles[i] {
			return false
		}
	}
	return true
}

// String returns a debug representation of the block.
func (b Block) String() string {
	return fmt.Sprintf("Block(%s %s %q)", b.key, b.typ, string(b.text))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
