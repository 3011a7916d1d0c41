package buffer

// Grid is a height x width matrix of cells stored row-major.
type Grid struct {
	cells  []Cell
	width  int
	height int
}

// NewGrid allocates a blank grid. Negative dimensions are treated as zero.
func NewGrid(width, height int) *Grid {
	g := &Grid{}
	g.resize(width, height)
	return g
}

func (g *Grid) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == 0 || height == 0 {
		width, height = 0, 0
	}
	g.cells = make([]Cell, width*height)
	g.width = width
	g.height = height
	g.Fill(Blank)
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Size() Size  { return Size{Width: g.width, Height: g.height} }

// InBounds returns true if (x,y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = c
}

// At returns the cell at (x,y), or Blank when out of bounds.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Blank
	}
	return g.cells[y*g.width+x]
}

// Fill sets every cell to c using exponential copy.
func (g *Grid) Fill(c Cell) {
	if len(g.cells) == 0 {
		return
	}
	g.cells[0] = c
	for filled := 1; filled < len(g.cells); filled *= 2 {
		copy(g.cells[filled:], g.cells[:filled])
	}
}

// Clear blanks the grid.
func (g *Grid) Clear() { g.Fill(Blank) }

// Equal reports whether both grids have the same size and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := &Grid{cells: make([]Cell, len(g.cells)), width: g.width, height: g.height}
	copy(c.cells, g.cells)
	return c
}

// Count returns how many cells satisfy pred.
func (g *Grid) Count(pred func(Cell) bool) int {
	n := 0
	for _, c := range g.cells {
		if pred(c) {
			n++
		}
	}
	return n
}

// Rows returns each row as a string of glyphs.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	line := make([]rune, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			line[x] = g.cells[y*g.width+x].Char
		}
		rows[y] = string(line)
	}
	return rows
}
