// Package renderer draws an editor state on a tcell screen.
//
// Each block is laid out on its own rows and wrapped at the screen width,
// measuring runes with go-runewidth. Headings get a "#" level prefix and
// heading styles, code blocks are drawn reversed, and inline styles map to
// tcell attributes. The last row is a status line. The caret is placed from
// the collapsed selection and the view scrolls to keep it visible.
//
//	screen, _ := tcell.NewScreen()
//	_ = screen.Init()
//	r := renderer.New(screen)
//	r.Render(editor.State())
package renderer
