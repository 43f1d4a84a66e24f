package detect

import (
	"testing"

	"github.com/dshills/livemark/internal/engine/block"
)

func TestHeader(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		ch     string
		want   string
		ok     bool
	}{
		{"h1", "#", 1, " ", "#", true},
		{"h2", "##", 2, " ", "##", true},
		{"h3", "###", 3, " ", "###", true},
		{"h4 still matches", "####", 4, " ", "####", true},
		{"hash trigger", "#", 1, "#", "", false},
		{"letter trigger", "##", 2, "a", "", false},
		{"empty", "", 0, " ", "", false},
		{"caret not at end", "##", 1, " ", "", false},
		{"mixed text", "#a", 2, " ", "", false},
		{"trailing text", "# title", 1, " ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Header(tt.text, tt.offset, tt.ch)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Header(%q, %d, %q) = %q, %v; want %q, %v",
					tt.text, tt.offset, tt.ch, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBold(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"**bold**", true},
		{"say **hi** now", true},
		{"**a**", true},
		{"****", false},
		{"** **", false},
		{"**bold*", false},
		{"*b*o*l*", false},
		{"**a** **b**", false},
		{"plain", false},
	}

	for _, tt := range tests {
		if got := Bold(tt.text); got != tt.want {
			t.Errorf("Bold(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestItalic(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"*it*", true},
		{"an *it* here", true},
		{"**", false},
		{"* *", false},
		{"*", false},
		{"**bold**", false},
		{"*a* *b*", false},
	}

	for _, tt := range tests {
		if got := Italic(tt.text); got != tt.want {
			t.Errorf("Italic(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestInlineCode(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"`x`", true},
		{"`go test`", true},
		{"``", false},
		{"` `", false},
		{"`x", false},
		{"`a` `b`", false},
	}

	for _, tt := range tests {
		if got := InlineCode(tt.text); got != tt.want {
			t.Errorf("InlineCode(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestDetectPrecedence(t *testing.T) {
	got := Detect("**bold**", 8, "x")
	if len(got) != 1 || got[0].Kind != KindBold || got[0].Symbol != "**" || got[0].Style != block.StyleBold {
		t.Errorf("Detect bold = %+v", got)
	}

	got = Detect("#", 1, " ")
	if len(got) != 1 || got[0].Kind != KindHeader || got[0].Symbol != "#" {
		t.Errorf("Detect header = %+v", got)
	}

	got = Detect("*a* `b`", 7, " ")
	if len(got) != 2 || got[0].Kind != KindItalic || got[1].Kind != KindInlineCode {
		t.Errorf("Detect italic+code = %+v", got)
	}

	if got := Detect("plain", 5, " "); len(got) != 0 {
		t.Errorf("Detect plain = %+v", got)
	}
}

func TestDetectUsesCharacterOffsets(t *testing.T) {
	if !Italic("*é*") {
		t.Error("multi-byte content should count as one character")
	}
	if !Bold("**日本**") {
		t.Error("CJK content should match")
	}
}

func TestKindString(t *testing.T) {
	for _, k := range []Kind{KindHeader, KindBold, KindItalic, KindInlineCode} {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("strike"); ok {
		t.Error("unknown kind should not parse")
	}
	if KindNone.String() != "none" {
		t.Errorf("KindNone.String() = %q", KindNone.String())
	}
}
