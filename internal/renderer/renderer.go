package renderer

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/livemark/internal/engine/state"
)

// Renderer draws editor states on a tcell screen.
type Renderer struct {
	mu     sync.Mutex
	screen tcell.Screen
	theme  Theme
	top    int // first visible row
	status string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTheme sets the theme.
func WithTheme(t Theme) Option {
	return func(r *Renderer) {
		r.theme = t
	}
}

// New creates a renderer for an initialized screen.
func New(screen tcell.Screen, opts ...Option) *Renderer {
	r := &Renderer{screen: screen, theme: DefaultTheme()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetStatus sets the status line text.
func (r *Renderer) SetStatus(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = msg
}

// Status returns the status line text.
func (r *Renderer) Status() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Render draws s and shows the screen.
func (r *Renderer) Render(s state.EditorState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	width, height := r.screen.Size()
	textRows := height - 1
	if width <= 0 || textRows <= 0 {
		return
	}

	sel := s.Selection()
	var rows []row
	cursorRow, cursorCol := -1, 0
	for _, b := range s.Document().Blocks() {
		br := layoutBlock(b, width)
		if b.Key() == sel.FocusKey {
			ri, col := caret(br, sel.FocusOffset)
			cursorRow, cursorCol = len(rows)+ri, col
		}
		rows = append(rows, br...)
	}

	r.scrollTo(cursorRow, textRows)

	r.screen.Clear()
	for y := 0; y < textRows && r.top+y < len(rows); y++ {
		r.drawRow(rows[r.top+y], y)
	}
	r.drawStatus(width, height-1)

	if cursorRow >= 0 && sel.IsCollapsed() {
		if cursorCol >= width {
			cursorCol = width - 1
		}
		r.screen.ShowCursor(cursorCol, cursorRow-r.top)
	} else {
		r.screen.HideCursor()
	}
	r.screen.Show()
}

// scrollTo adjusts the top row so row is visible.
func (r *Renderer) scrollTo(row, visible int) {
	if row < 0 {
		return
	}
	if row < r.top {
		r.top = row
	}
	if row >= r.top+visible {
		r.top = row - visible + 1
	}
}

func (r *Renderer) drawRow(rw row, y int) {
	base := r.theme.BlockStyle(rw.typ)
	x := 0
	for _, c := range rw.cells {
		style := InlineStyle(base, c.style.set)
		if c.style.prefix {
			style = r.theme.Prefix
		}
		r.screen.SetContent(x, y, c.r, nil, style)
		x += c.width
	}
}

func (r *Renderer) drawStatus(width, y int) {
	for x := 0; x < width; x++ {
		r.screen.SetContent(x, y, ' ', nil, r.theme.Status)
	}
	x := 0
	for _, ch := range r.status {
		w := runeWidth(ch)
		if x+w > width {
			break
		}
		r.screen.SetContent(x, y, ch, nil, r.theme.Status)
		x += w
	}
}
