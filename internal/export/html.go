package export

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dshills/livemark/internal/engine/document"
)

// renderer is shared; goldmark instances are safe for concurrent use.
var renderer = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough),
)

// HTML renders doc to an HTML fragment.
func HTML(doc document.Document) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(Markdown(doc)), &buf); err != nil {
		return "", fmt.Errorf("rendering html: %w", err)
	}
	return buf.String(), nil
}
