package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/termsaver/internal/buffer"
)

const (
	background = "#0a0a0a"
	foreground = "#cccccc"
)

// GridToSVG draws the grid as monospace text, one <text> element per run of
// equally colored cells. cellW and cellH are the cell size in pixels.
func GridToSVG(g *buffer.Grid, cellW, cellH float64) string {
	if g == nil {
		return ""
	}
	if cellW <= 0 {
		cellW = 8
	}
	if cellH <= 0 {
		cellH = 16
	}

	width := float64(g.Width()) * cellW
	height := float64(g.Height()) * cellH

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g font-family="monospace" font-size="%.1f" xml:space="preserve">
`, width, height, width, height, background, cellH*0.85)

	for y := 0; y < g.Height(); y++ {
		baseline := float64(y)*cellH + cellH*0.8
		x := 0
		for x < g.Width() {
			c := g.At(x, y)
			if c.IsBlank() || c.Char == ' ' {
				x++
				continue
			}
			start := x
			var run strings.Builder
			for x < g.Width() {
				n := g.At(x, y)
				if n.Char == ' ' || n.HasColor != c.HasColor || n.Color != c.Color {
					break
				}
				run.WriteRune(n.Char)
				x++
			}
			fill := foreground
			if c.HasColor {
				fill = c.Color.Hex()
			}
			fmt.Fprintf(&sb, `<text x="%.1f" y="%.1f" fill="%s" textLength="%.1f">%s</text>
`, float64(start)*cellW, baseline, fill, float64(x-start)*cellW, html.EscapeString(run.String()))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots values as a polyline, for example one metric column of
// a recorded run.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		minY = min(minY, v)
		maxY = max(maxY, v)
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	rangeX := float64(len(values) - 1)

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for i, v := range values {
		x := float64(i) / rangeX * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
