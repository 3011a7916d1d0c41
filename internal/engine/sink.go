package engine

import (
	"iter"

	"github.com/san-kum/termsaver/internal/buffer"
)

// Sink receives the per-frame change set. Emit must drain changes before
// returning. Clear discards whatever the sink currently displays so it
// agrees with a blank grid.
type Sink interface {
	Clear() error
	Emit(changes iter.Seq[buffer.Change]) error
}

// CountingSink discards output and counts it.
type CountingSink struct {
	Clears int
	Emits  int
	Cells  int
	Last   int
}

func (s *CountingSink) Clear() error {
	s.Clears++
	return nil
}

func (s *CountingSink) Emit(changes iter.Seq[buffer.Change]) error {
	n := 0
	for range changes {
		n++
	}
	s.Emits++
	s.Cells += n
	s.Last = n
	return nil
}

// RecordingSink mirrors every change onto a screen grid, the way a real
// terminal would, and keeps the last change set.
type RecordingSink struct {
	Screen *buffer.Grid
	Last   []buffer.Change
	Clears int
}

// NewRecordingSink creates a sink whose screen starts blank.
func NewRecordingSink(width, height int) *RecordingSink {
	return &RecordingSink{Screen: buffer.NewGrid(width, height)}
}

// Resize reallocates the mirrored screen.
func (s *RecordingSink) Resize(width, height int) {
	s.Screen = buffer.NewGrid(width, height)
}

func (s *RecordingSink) Clear() error {
	s.Clears++
	s.Screen.Clear()
	return nil
}

func (s *RecordingSink) Emit(changes iter.Seq[buffer.Change]) error {
	s.Last = s.Last[:0]
	for c := range changes {
		s.Last = append(s.Last, c)
		s.Screen.Set(c.X, c.Y, c.Cell)
	}
	return nil
}
