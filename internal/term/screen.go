// Package term drives the screensaver on a tcell screen.
package term

import (
	"iter"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/termsaver/internal/buffer"
)

// Screen adapts a tcell screen to the engine's output sink and the overlay
// surface. Emit and Put only stage cells; Show flushes them.
type Screen struct {
	s      tcell.Screen
	styles map[buffer.RGB]tcell.Style
}

func NewScreen(s tcell.Screen) *Screen {
	return &Screen{s: s, styles: make(map[buffer.RGB]tcell.Style)}
}

func (s *Screen) style(c buffer.Cell) tcell.Style {
	if !c.HasColor {
		return tcell.StyleDefault
	}
	st, ok := s.styles[c.Color]
	if !ok {
		st = tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.Color.R), int32(c.Color.G), int32(c.Color.B)))
		s.styles[c.Color] = st
	}
	return st
}

func (s *Screen) Clear() error {
	s.s.Clear()
	return nil
}

func (s *Screen) Emit(changes iter.Seq[buffer.Change]) error {
	for ch := range changes {
		s.s.SetContent(ch.X, ch.Y, ch.Cell.Char, nil, s.style(ch.Cell))
	}
	return nil
}

func (s *Screen) Put(x, y int, c buffer.Cell) {
	s.s.SetContent(x, y, c.Char, nil, s.style(c))
}

func (s *Screen) Size() buffer.Size {
	w, h := s.s.Size()
	return buffer.Size{Width: w, Height: h}
}

func (s *Screen) Show() { s.s.Show() }

// Sync repaints the physical terminal from scratch.
func (s *Screen) Sync() { s.s.Sync() }
