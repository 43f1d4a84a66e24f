package block

import (
	"errors"
	"testing"
)

func assertAligned(t *testing.T, b Block) {
	t.Helper()
	if len(b.Styles()) != b.Len() {
		t.Fatalf("style list length %d != text length %d", len(b.Styles()), b.Len())
	}
}

func TestNewBlock(t *testing.T) {
	b := New("k1", TypeUnstyled, "héllo")
	if b.Key() != "k1" {
		t.Errorf("Key() = %q, want k1", b.Key())
	}
	if b.Len() != 5 {
		t.Errorf("Len() = %d, want 5 characters", b.Len())
	}
	if b.Text() != "héllo" {
		t.Errorf("Text() = %q", b.Text())
	}
	assertAligned(t, b)
}

func TestNewStyledLengthMismatch(t *testing.T) {
	_, err := NewStyled("k", TypeUnstyled, "abc", []StyleSet{0, 0})
	if !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("expected ErrRangeInvalid, got %v", err)
	}
}

func TestBlockIsImmutable(t *testing.T) {
	b := New("k", TypeUnstyled, "abc")
	b2, err := b.ApplyStyle(0, 3, StyleBold)
	if err != nil {
		t.Fatal(err)
	}
	if b.StyleAt(0).Has(StyleBold) {
		t.Error("original block should be unchanged")
	}
	if !b2.StyleAt(2).Has(StyleBold) {
		t.Error("new block should be bold")
	}

	b3, _ := b2.DeleteRange(0, 1)
	if b2.Text() != "abc" {
		t.Errorf("DeleteRange mutated receiver: %q", b2.Text())
	}
	if b3.Text() != "bc" {
		t.Errorf("DeleteRange = %q, want bc", b3.Text())
	}
}

func TestDeleteRangeKeepsStylesAligned(t *testing.T) {
	b, _ := NewStyled("k", TypeUnstyled, "a**b**c", []StyleSet{
		NewStyleSet(StyleItalic), 0, 0, NewStyleSet(StyleUnderline), 0, 0, NewStyleSet(StyleItalic),
	})

	b, err := b.DeleteRange(4, 6)
	if err != nil {
		t.Fatal(err)
	}
	b, err = b.DeleteRange(1, 3)
	if err != nil {
		t.Fatal(err)
	}

	if b.Text() != "abc" {
		t.Fatalf("Text() = %q, want abc", b.Text())
	}
	assertAligned(t, b)
	if !b.StyleAt(0).Has(StyleItalic) || !b.StyleAt(1).Has(StyleUnderline) || !b.StyleAt(2).Has(StyleItalic) {
		t.Errorf("styles not carried with characters: %v", b.Styles())
	}
}

func TestDeleteRangeErrors(t *testing.T) {
	b := New("k", TypeUnstyled, "abc")
	tests := []struct {
		name       string
		start, end int
		want       error
	}{
		{"reversed", 2, 1, ErrRangeInvalid},
		{"negative", -1, 1, ErrOffsetOutOfRange},
		{"past end", 1, 4, ErrOffsetOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.DeleteRange(tt.start, tt.end)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if got.Text() != "abc" {
				t.Errorf("failed delete changed text to %q", got.Text())
			}
		})
	}
}

func TestInsertText(t *testing.T) {
	b := New("k", TypeUnstyled, "bold")
	b, _ = b.ApplyStyle(0, 4, StyleBold)

	b, err := b.InsertText(4, "x", 0)
	if err != nil {
		t.Fatal(err)
	}
	if b.Text() != "boldx" {
		t.Errorf("Text() = %q", b.Text())
	}
	assertAligned(t, b)
	if b.StyleAt(4) != 0 {
		t.Errorf("inserted char style = %v, want empty", b.StyleAt(4))
	}
	if !b.StyleAt(3).Has(StyleBold) {
		t.Error("existing style lost")
	}

	if _, err := b.InsertText(9, "y", 0); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}

func TestReplaceRange(t *testing.T) {
	b := New("k", TypeUnstyled, "hello world")
	b, err := b.ReplaceRange(6, 11, "go", NewStyleSet(StyleCode))
	if err != nil {
		t.Fatal(err)
	}
	if b.Text() != "hello go" {
		t.Errorf("Text() = %q", b.Text())
	}
	assertAligned(t, b)
	if !b.StyleAt(7).Has(StyleCode) {
		t.Error("replacement style not applied")
	}
}

func TestRemoveStyle(t *testing.T) {
	b := New("k", TypeUnstyled, "abcd")
	b, _ = b.ApplyStyle(0, 4, StyleBold)
	b, _ = b.ApplyStyle(0, 4, StyleItalic)
	b, err := b.RemoveStyle(1, 3, StyleBold)
	if err != nil {
		t.Fatal(err)
	}
	want := []StyleSet{
		NewStyleSet(StyleBold, StyleItalic),
		NewStyleSet(StyleItalic),
		NewStyleSet(StyleItalic),
		NewStyleSet(StyleBold, StyleItalic),
	}
	for i, s := range b.Styles() {
		if s != want[i] {
			t.Errorf("style[%d] = %v, want %v", i, s, want[i])
		}
	}
}

func TestSpans(t *testing.T) {
	b := New("k", TypeUnstyled, "a bold word")
	b, _ = b.ApplyStyle(2, 6, StyleBold)
	spans := b.Spans()
	if len(spans) != 3 {
		t.Fatalf("got %d spans, want 3", len(spans))
	}
	if spans[1].Text != "bold" || !spans[1].Style.Has(StyleBold) {
		t.Errorf("span[1] = %+v", spans[1])
	}
	if spans[2].Range != NewRange(6, 11) {
		t.Errorf("span[2] range = %s", spans[2].Range)
	}
}

func TestWithTextResetsStyles(t *testing.T) {
	b := New("k", TypeHeaderOne, "abc")
	b, _ = b.ApplyStyle(0, 3, StyleBold)
	b = b.WithText("wxyz")
	assertAligned(t, b)
	if b.StyleAt(0) != 0 {
		t.Error("styles should be reset")
	}
	if b.Type() != TypeHeaderOne {
		t.Error("type should be kept")
	}
	if c := b.Clear(); !c.IsEmpty() || len(c.Styles()) != 0 {
		t.Error("Clear should drop text and styles")
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{TypeUnstyled, TypeHeaderOne, TypeHeaderTwo, TypeHeaderThree, TypeCodeBlock} {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Errorf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if _, err := ParseType("blockquote"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
	if TypeHeaderTwo.HeaderLevel() != 2 || TypeCodeBlock.IsHeader() {
		t.Error("header helpers wrong")
	}
}

func TestStyleSet(t *testing.T) {
	s := NewStyleSet(StyleBold, StyleItalic)
	if !s.Has(StyleBold) || !s.Has(StyleItalic) || s.Has(StyleCode) {
		t.Errorf("Has wrong for %v", s)
	}
	if s.String() != "{BOLD,ITALIC}" {
		t.Errorf("String() = %q", s.String())
	}
	if !s.Remove(StyleBold).Remove(StyleItalic).IsEmpty() {
		t.Error("Remove should empty the set")
	}

	st, err := ParseStyle("italic")
	if err != nil || st != StyleItalic {
		t.Errorf("ParseStyle(italic) = %v, %v", st, err)
	}
	if _, err := ParseStyle("SHOUTY"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("expected ErrUnknownStyle, got %v", err)
	}
}

func TestAppendFrom(t *testing.T) {
	head := New("a", TypeUnstyled, "one ")
	src := New("b", TypeUnstyled, "xxtwo")
	src, _ = src.ApplyStyle(2, 5, StyleBold)

	merged, err := head.AppendFrom(src, 2)
	if err != nil {
		t.Fatal(err)
	}
	if merged.Text() != "one two" || merged.Key() != "a" {
		t.Errorf("AppendFrom = %v", merged)
	}
	assertAligned(t, merged)
	if !merged.StyleAt(4).Has(StyleBold) || merged.StyleAt(3).Has(StyleBold) {
		t.Errorf("styles not carried: %v", merged.Styles())
	}
	if _, err := head.AppendFrom(src, 6); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("expected ErrOffsetOutOfRange, got %v", err)
	}
}
