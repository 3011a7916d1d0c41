package export

import (
	"strings"

	"github.com/san-kum/termsaver/internal/buffer"
)

// GridToText returns the grid's glyphs, one line per row, with trailing
// spaces removed.
func GridToText(g *buffer.Grid) string {
	if g == nil {
		return ""
	}
	rows := g.Rows()
	for i, r := range rows {
		rows[i] = strings.TrimRight(r, " ")
	}
	return strings.Join(rows, "\n") + "\n"
}
