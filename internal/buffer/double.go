package buffer

import "iter"

// DoubleBuffer holds the grid being written this frame and the grid that
// was last emitted. Both live in a fixed arena and swap roles by index.
type DoubleBuffer struct {
	grids [2]*Grid
	cur   int
}

// NewDoubleBuffer allocates two blank grids of the given size.
func NewDoubleBuffer(width, height int) *DoubleBuffer {
	return &DoubleBuffer{
		grids: [2]*Grid{NewGrid(width, height), NewGrid(width, height)},
	}
}

// Resize reallocates both grids. Each is cleared independently, so no
// content from the previous size survives.
func (b *DoubleBuffer) Resize(width, height int) {
	b.grids[0].resize(width, height)
	b.grids[1].resize(width, height)
}

// Size returns the shared dimensions of both grids.
func (b *DoubleBuffer) Size() Size { return b.grids[0].Size() }

// Current is the grid patterns write into.
func (b *DoubleBuffer) Current() *Grid { return b.grids[b.cur] }

// Previous is the grid that was last handed to the output sink.
func (b *DoubleBuffer) Previous() *Grid { return b.grids[1-b.cur] }

// Clear blanks the current grid. Previous is untouched.
func (b *DoubleBuffer) Clear() { b.Current().Clear() }

// Write sets one cell of the current grid; out-of-bounds is ignored.
func (b *DoubleBuffer) Write(x, y int, c Cell) { b.Current().Set(x, y, c) }

// Changes yields, row-major, every cell where current differs from previous.
// The sequence reads the live grids and must be drained before Swap.
func (b *DoubleBuffer) Changes() iter.Seq[Change] {
	return func(yield func(Change) bool) {
		cur, prev := b.Current(), b.Previous()
		w := cur.width
		for i, c := range cur.cells {
			if c == prev.cells[i] {
				continue
			}
			if !yield(Change{X: i % w, Y: i / w, Cell: c}) {
				return
			}
		}
	}
}

// Swap makes the current grid the previous one and hands out the old
// previous grid, cleared, as the new current.
func (b *DoubleBuffer) Swap() {
	b.cur = 1 - b.cur
	b.Current().Clear()
}

// Invalidate poisons the previous grid so the next Changes reports every
// cell of the current grid.
func (b *DoubleBuffer) Invalidate() {
	b.Previous().Fill(sentinel)
}
