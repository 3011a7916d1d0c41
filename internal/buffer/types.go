package buffer

import (
	"fmt"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// RGBf builds a color from float channels, clamping each to [0,255].
func RGBf(r, g, b float64) RGB {
	return RGB{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

func clampChannel(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 || v != v {
		return 0
	}
	return uint8(v + 0.5)
}

// Scale multiplies every channel by f.
func (c RGB) Scale(f float64) RGB {
	return RGBf(float64(c.R)*f, float64(c.G)*f, float64(c.B)*f)
}

// Lerp blends linearly from c to o.
func (c RGB) Lerp(o RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return o
	}
	inv := 1 - t
	return RGBf(
		float64(c.R)*inv+float64(o.R)*t,
		float64(c.G)*inv+float64(o.G)*t,
		float64(c.B)*inv+float64(o.B)*t,
	)
}

// Hex returns the #rrggbb form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Cell is one grid position. Cells are compared with ==.
type Cell struct {
	Char     rune
	Color    RGB
	HasColor bool
}

// Blank is the value every cleared cell holds.
var Blank = Cell{Char: ' '}

// sentinel never equals a sanitized cell; used to force a full repaint.
var sentinel = Cell{Char: 0}

// NewCell returns a colored cell with a sanitized glyph.
func NewCell(ch rune, color RGB) Cell {
	return Cell{Char: Sanitize(ch), Color: color, HasColor: true}
}

// Plain returns an uncolored cell with a sanitized glyph.
func Plain(ch rune) Cell {
	return Cell{Char: Sanitize(ch)}
}

// Sanitize maps a rune onto a single printable, single-column glyph.
// Control characters become a space, wide or zero-width glyphs become '?'.
func Sanitize(ch rune) rune {
	if ch < ' ' || unicode.IsControl(ch) {
		return ' '
	}
	if ch < 0x7f {
		return ch
	}
	if !unicode.IsPrint(ch) || runewidth.RuneWidth(ch) != 1 {
		return '?'
	}
	return ch
}

// IsBlank reports whether the cell would draw nothing.
func (c Cell) IsBlank() bool {
	return c == Blank
}

// Point is a 0-based grid coordinate.
type Point struct {
	X, Y int
}

// Size is a grid dimension in cells.
type Size struct {
	Width, Height int
}

// Area returns Width*Height.
func (s Size) Area() int { return s.Width * s.Height }

// Contains reports whether p is inside [0,Width)x[0,Height).
func (s Size) Contains(p Point) bool {
	return p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height
}

// Change is one cell that differs between the previous and current frame.
type Change struct {
	X, Y int
	Cell Cell
}
