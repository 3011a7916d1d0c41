package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/engine"
	"github.com/san-kum/termsaver/internal/theme"
)

// KeyHelp is one row of the help table.
type KeyHelp struct {
	Key  string
	Desc string
}

// Help is a centered, bordered key table. It starts hidden.
type Help struct {
	panel
	title  string
	keys   []KeyHelp
	border lipgloss.Border
}

func NewHelp(t theme.Theme, keys []KeyHelp) *Help {
	return &Help{
		panel:  panel{hidden: true, theme: t},
		title:  "termsaver",
		keys:   keys,
		border: lipgloss.RoundedBorder(),
	}
}

func (h *Help) Name() string { return "help" }

func (h *Help) lines() []string {
	keyWidth := 0
	for _, k := range h.keys {
		keyWidth = max(keyWidth, runewidth.StringWidth(k.Key))
	}
	out := make([]string, len(h.keys))
	for i, k := range h.keys {
		out[i] = runewidth.FillRight(k.Key, keyWidth) + "  " + k.Desc
	}
	return out
}

func (h *Help) Paint(s Surface, _ engine.FrameInfo) {
	lines := h.lines()
	inner := runewidth.StringWidth(h.title)
	for _, l := range lines {
		inner = max(inner, runewidth.StringWidth(l))
	}

	size := s.Size()
	w, hgt := inner+4, len(lines)+4
	x0, y0 := (size.Width-w)/2, (size.Height-hgt)/2

	frame := h.theme.Color(h.theme.Primary)
	edge := func(part string) buffer.Cell {
		r := []rune(part)
		if len(r) == 0 {
			return buffer.NewCell('+', frame)
		}
		return buffer.NewCell(r[0], frame)
	}

	for y := y0; y < y0+hgt; y++ {
		Fill(s, y, x0, x0+w, buffer.Blank)
	}
	Fill(s, y0, x0+1, x0+w-1, edge(h.border.Top))
	Fill(s, y0+hgt-1, x0+1, x0+w-1, edge(h.border.Bottom))
	for y := y0 + 1; y < y0+hgt-1; y++ {
		Fill(s, y, x0, x0+1, edge(h.border.Left))
		Fill(s, y, x0+w-1, x0+w, edge(h.border.Right))
	}
	Fill(s, y0, x0, x0+1, edge(h.border.TopLeft))
	Fill(s, y0, x0+w-1, x0+w, edge(h.border.TopRight))
	Fill(s, y0+hgt-1, x0, x0+1, edge(h.border.BottomLeft))
	Fill(s, y0+hgt-1, x0+w-1, x0+w, edge(h.border.BottomRight))

	Text(s, x0+2, y0+1, h.title, h.theme.Color(h.theme.Accent))
	for i, l := range lines {
		Text(s, x0+2, y0+3+i, l, h.theme.Color(h.theme.Text))
	}
}
