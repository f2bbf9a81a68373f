package cmdtree

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// FormatLines lays out bindings for help display: one column per group,
// groups side by side with the group name heading each column, shorter
// columns padded with blank rows so the columns align. Bindings must
// already be in display order, as collect produces.
func FormatLines[T any](bindings []Binding[T]) []string {
	type column struct {
		title    string
		bindings []Binding[T]
	}

	var cols []*column
	var cur *column
	for i := range bindings {
		b := bindings[i]
		if cur == nil || b.Group != cur.title {
			cur = &column{title: b.Group}
			cols = append(cols, cur)
		}
		cur.bindings = append(cur.bindings, b)
	}

	height := 0
	rendered := make([][]string, len(cols))
	widths := make([]int, len(cols))
	for ci, col := range cols {
		keyWidth := 0
		for _, b := range col.bindings {
			if w := runewidth.StringWidth(b.keys()); w > keyWidth {
				keyWidth = w
			}
		}

		rows := []string{col.title}
		for _, b := range col.bindings {
			keys := b.keys()
			pad := strings.Repeat(" ", keyWidth-runewidth.StringWidth(keys))
			rows = append(rows, keys+pad+"  "+b.Help)
		}

		width := 0
		for _, r := range rows {
			if w := runewidth.StringWidth(r); w > width {
				width = w
			}
		}
		rendered[ci] = rows
		widths[ci] = width
		if len(rows) > height {
			height = len(rows)
		}
	}

	lines := make([]string, height)
	for r := 0; r < height; r++ {
		var b strings.Builder
		for ci, rows := range rendered {
			if ci > 0 {
				b.WriteString("   ")
			}
			cell := ""
			if r < len(rows) {
				cell = rows[r]
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[ci]-runewidth.StringWidth(cell)))
		}
		lines[r] = strings.TrimRight(b.String(), " ")
	}
	return lines
}
