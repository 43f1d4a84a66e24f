package renderer

import (
	"github.com/mattn/go-runewidth"

	"github.com/dshills/livemark/internal/engine/block"
)

// cell is one laid-out rune.
type cell struct {
	r      rune
	width  int
	offset int // character offset in the block, -1 for prefix cells
	style  styleRef
}

// styleRef defers style resolution so layout needs no theme.
type styleRef struct {
	prefix bool
	set    block.StyleSet
}

// row is one screen row of a block.
type row struct {
	key   block.Key
	typ   block.Type
	cells []cell
}

// layoutBlock splits a block into rows of at most width columns.
// An empty block yields one empty row.
func layoutBlock(b block.Block, width int) []row {
	if width < 1 {
		width = 1
	}
	cur := row{key: b.Key(), typ: b.Type()}
	var rows []row
	col := 0

	add := func(c cell) {
		if col+c.width > width && len(cur.cells) > 0 {
			rows = append(rows, cur)
			cur = row{key: b.Key(), typ: b.Type()}
			col = 0
		}
		cur.cells = append(cur.cells, c)
		col += c.width
	}

	for _, r := range headerPrefix(b.Type()) {
		add(cell{r: r, width: runeWidth(r), offset: -1, style: styleRef{prefix: true}})
	}
	styles := b.Styles()
	i := 0
	for _, r := range b.Text() {
		add(cell{r: r, width: runeWidth(r), offset: i, style: styleRef{set: styles[i]}})
		i++
	}
	return append(rows, cur)
}

// runeWidth returns the display width of r. Zero-width and control runes
// take one column so every character stays addressable.
func runeWidth(r rune) int {
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// caret returns the row index (within rows) and column for a character
// offset. Offsets past the last character sit after it.
func caret(rows []row, offset int) (int, int) {
	lastRow, lastCol := 0, 0
	for ri, r := range rows {
		col := 0
		for _, c := range r.cells {
			if c.offset == offset {
				return ri, col
			}
			col += c.width
		}
		lastRow, lastCol = ri, col
	}
	return lastRow, lastCol
}
