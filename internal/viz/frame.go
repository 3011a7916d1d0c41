package viz

import (
	"iter"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/termsaver/internal/buffer"
)

// Frame mirrors the terminal contents and caches each row as a rendered
// string.
type Frame struct {
	width, height int
	cells         []buffer.Cell
	dirty         []bool
	rows          []string

	renderer *lipgloss.Renderer
	styles   map[buffer.RGB]lipgloss.Style
	renders  int
}

func NewFrame(width, height int) *Frame {
	return NewFrameWithRenderer(width, height, lipgloss.DefaultRenderer())
}

// NewFrameWithRenderer uses r for color profile detection.
func NewFrameWithRenderer(width, height int, r *lipgloss.Renderer) *Frame {
	f := &Frame{renderer: r, styles: make(map[buffer.RGB]lipgloss.Style)}
	f.Resize(width, height)
	return f
}

// Resize blanks the frame at the new size.
func (f *Frame) Resize(width, height int) {
	f.width, f.height = max(width, 0), max(height, 0)
	f.cells = make([]buffer.Cell, f.width*f.height)
	f.dirty = make([]bool, f.height)
	f.rows = make([]string, f.height)
	_ = f.Clear()
}

func (f *Frame) Size() buffer.Size { return buffer.Size{Width: f.width, Height: f.height} }

func (f *Frame) Clear() error {
	for i := range f.cells {
		f.cells[i] = buffer.Blank
	}
	for y := range f.dirty {
		f.dirty[y] = true
	}
	return nil
}

func (f *Frame) Emit(changes iter.Seq[buffer.Change]) error {
	for ch := range changes {
		f.Put(ch.X, ch.Y, ch.Cell)
	}
	return nil
}

func (f *Frame) Put(x, y int, c buffer.Cell) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	i := y*f.width + x
	if f.cells[i] == c {
		return
	}
	f.cells[i] = c
	f.dirty[y] = true
}

// Renders counts row re-renders since construction.
func (f *Frame) Renders() int { return f.renders }

type span struct {
	text     string
	color    buffer.RGB
	hasColor bool
}

// spans splits row y into runs of equally colored cells.
func (f *Frame) spans(y int) []span {
	row := f.cells[y*f.width : (y+1)*f.width]
	var out []span
	var run strings.Builder
	for i, c := range row {
		if i > 0 && (c.HasColor != row[i-1].HasColor || (c.HasColor && c.Color != row[i-1].Color)) {
			prev := row[i-1]
			out = append(out, span{text: run.String(), color: prev.Color, hasColor: prev.HasColor})
			run.Reset()
		}
		run.WriteRune(c.Char)
	}
	if len(row) > 0 {
		last := row[len(row)-1]
		out = append(out, span{text: run.String(), color: last.Color, hasColor: last.HasColor})
	}
	return out
}

func (f *Frame) style(c buffer.RGB) lipgloss.Style {
	st, ok := f.styles[c]
	if !ok {
		st = f.renderer.NewStyle().Foreground(lipgloss.Color(c.Hex()))
		f.styles[c] = st
	}
	return st
}

// Row returns the rendered row y, re-rendering it only if it changed.
func (f *Frame) Row(y int) string {
	if !f.dirty[y] {
		return f.rows[y]
	}
	var b strings.Builder
	for _, s := range f.spans(y) {
		if !s.hasColor {
			b.WriteString(s.text)
			continue
		}
		b.WriteString(f.style(s.color).Render(s.text))
	}
	f.rows[y] = b.String()
	f.dirty[y] = false
	f.renders++
	return f.rows[y]
}

// View joins all rows.
func (f *Frame) View() string {
	var b strings.Builder
	for y := 0; y < f.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.Row(y))
	}
	return b.String()
}
