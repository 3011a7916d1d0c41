// Package ui paints overlays (status bar, help, toasts) on top of a rendered
// frame. Overlays never touch the engine buffers; they draw straight onto
// the output through a Surface after each tick.
package ui

import "github.com/san-kum/termsaver/internal/buffer"

// Surface is anything overlays can draw cells onto.
type Surface interface {
	Put(x, y int, c buffer.Cell)
	Size() buffer.Size
}

// GridSurface draws into a grid.
type GridSurface struct {
	*buffer.Grid
}

func (s GridSurface) Put(x, y int, c buffer.Cell) { s.Set(x, y, c) }

// Text writes s from (x,y) rightwards and returns the number of cells used.
// Cells outside the surface are dropped.
func Text(s Surface, x, y int, text string, color buffer.RGB) int {
	n := 0
	size := s.Size()
	for _, r := range text {
		if x+n >= size.Width {
			break
		}
		if x+n >= 0 && y >= 0 && y < size.Height {
			s.Put(x+n, y, buffer.NewCell(r, color))
		}
		n++
	}
	return n
}

// Fill sets cells [x0,x1) of row y to c.
func Fill(s Surface, y, x0, x1 int, c buffer.Cell) {
	size := s.Size()
	if y < 0 || y >= size.Height {
		return
	}
	for x := max(x0, 0); x < min(x1, size.Width); x++ {
		s.Put(x, y, c)
	}
}
