package export

import (
	"strings"
	"unicode"

	"github.com/dshills/livemark/internal/engine/block"
	"github.com/dshills/livemark/internal/engine/document"
)

// Markdown returns the markdown source for doc. Blocks are separated by a
// blank line.
func Markdown(doc document.Document) string {
	blocks := doc.Blocks()
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, blockMarkdown(b))
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func blockMarkdown(b block.Block) string {
	switch {
	case b.Type() == block.TypeCodeBlock:
		fence := codeFence(b.Text())
		return fence + "\n" + b.Text() + "\n" + fence
	case b.Type().IsHeader():
		prefix := strings.Repeat("#", b.Type().HeaderLevel())
		if b.IsEmpty() {
			return prefix
		}
		return prefix + " " + inlineMarkdown(b)
	default:
		return inlineMarkdown(b)
	}
}

// codeFence returns a backtick fence longer than any run inside text.
func codeFence(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

func inlineMarkdown(b block.Block) string {
	var out strings.Builder
	for i, span := range b.Spans() {
		text := span.Text
		if span.Style.Has(block.StyleCode) {
			out.WriteString(codeSpan(text))
			continue
		}
		text = escape(text, i == 0)

		open, close := markers(span.Style)
		if open == "" {
			out.WriteString(text)
			continue
		}
		// Emphasis markers must touch non-space characters.
		core := strings.TrimFunc(text, unicode.IsSpace)
		if core == "" {
			out.WriteString(text)
			continue
		}
		lead := text[:len(text)-len(strings.TrimLeftFunc(text, unicode.IsSpace))]
		trail := text[len(lead)+len(core):]
		out.WriteString(lead + open + core + close + trail)
	}
	return out.String()
}

func markers(s block.StyleSet) (open, close string) {
	var o, c []string
	if s.Has(block.StyleStrikethrough) {
		o, c = append(o, "~~"), append([]string{"~~"}, c...)
	}
	if s.Has(block.StyleBold) {
		o, c = append(o, "**"), append([]string{"**"}, c...)
	}
	if s.Has(block.StyleItalic) {
		o, c = append(o, "*"), append([]string{"*"}, c...)
	}
	return strings.Join(o, ""), strings.Join(c, "")
}

func codeSpan(text string) string {
	if !strings.Contains(text, "`") {
		return "`" + text + "`"
	}
	return "`` " + text + " ``"
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"~", `\~`,
	"<", `\<`,
	"[", `\[`,
)

// escape backslash-escapes characters that would otherwise start markup.
// A leading '#' is escaped only at the start of the block.
func escape(text string, atStart bool) string {
	text = escaper.Replace(text)
	if atStart && strings.HasPrefix(text, "#") {
		text = `\` + text
	}
	return text
}
