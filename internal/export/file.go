package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/livemark/internal/engine/document"
)

// Format is an output format.
type Format int

const (
	FormatMarkdown Format = iota
	FormatHTML
)

// FormatForPath picks the format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown", ".txt", "":
		return FormatMarkdown, nil
	case ".html", ".htm":
		return FormatHTML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
	}
}

// WriteFile writes doc to path in the format given by its extension.
func WriteFile(path string, doc document.Document) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}

	out := Markdown(doc)
	if format == FormatHTML {
		if out, err = HTML(doc); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
