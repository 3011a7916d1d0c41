package patterns

import (
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/theme"
)

var mazeAlgorithms = []string{"dfs", "prim", "kruskal", "wilson"}

type MazeConfig struct {
	Algorithm string  `yaml:"algorithm"`
	Speed     float64 `yaml:"speed"`
	Solve     bool    `yaml:"solve"`
	Hold      float64 `yaml:"hold"`
}

func (c MazeConfig) Clamped() MazeConfig {
	valid := c.Algorithm == "random"
	for _, a := range mazeAlgorithms {
		valid = valid || c.Algorithm == a
	}
	if !valid {
		c.Algorithm = "random"
	}
	c.Speed = pattern.ClampFloat(c.Speed, 10, 5000)
	c.Hold = pattern.ClampFloat(c.Hold, 0.5, 30)
	return c
}

var mazeDefaults = MazeConfig{Algorithm: "random", Speed: 300, Solve: true, Hold: 3}

var mazePresets = []pattern.PresetDef[MazeConfig]{
	{ID: 1, Name: "backtracker", Description: "long corridors, depth first", Config: MazeConfig{Algorithm: "dfs", Speed: 300, Solve: true, Hold: 3}},
	{ID: 2, Name: "prim", Description: "short branching dead ends", Config: MazeConfig{Algorithm: "prim", Speed: 400, Solve: true, Hold: 3}},
	{ID: 3, Name: "kruskal", Description: "merging forests", Config: MazeConfig{Algorithm: "kruskal", Speed: 400, Solve: true, Hold: 3}},
	{ID: 4, Name: "wilson", Description: "uniform spanning tree via erased walks", Config: MazeConfig{Algorithm: "wilson", Speed: 800, Solve: true, Hold: 3}},
	{ID: 5, Name: "slow", Description: "watch every step", Config: MazeConfig{Algorithm: "random", Speed: 40, Solve: true, Hold: 5}},
}

type mazePhase int

const (
	phaseGenerate mazePhase = iota
	phaseSolve
	phaseHold
)

// mazeGrid stores passages on a grid where maze cells sit at odd
// coordinates and the cells between them are walls.
type mazeGrid struct {
	cols, rows int
	mw, mh     int
	open       []bool
	carved     int
}

func newMazeGrid(width, height int) *mazeGrid {
	cols, rows := width, height
	if cols%2 == 0 {
		cols--
	}
	if rows%2 == 0 {
		rows--
	}
	m := &mazeGrid{}
	if cols < 3 || rows < 3 {
		return m
	}
	m.cols, m.rows = cols, rows
	m.mw, m.mh = (cols-1)/2, (rows-1)/2
	m.open = make([]bool, cols*rows)
	return m
}

func (m *mazeGrid) cells() int { return m.mw * m.mh }

func (m *mazeGrid) pos(c int) (int, int) {
	return 2*(c%m.mw) + 1, 2*(c/m.mw) + 1
}

func (m *mazeGrid) isOpen(x, y int) bool {
	if x < 0 || y < 0 || x >= m.cols || y >= m.rows {
		return false
	}
	return m.open[y*m.cols+x]
}

func (m *mazeGrid) touch(c int) {
	x, y := m.pos(c)
	m.open[y*m.cols+x] = true
}

// link opens a and b and the wall between them.
func (m *mazeGrid) link(a, b int) {
	ax, ay := m.pos(a)
	bx, by := m.pos(b)
	m.open[ay*m.cols+ax] = true
	m.open[by*m.cols+bx] = true
	m.open[((ay+by)/2)*m.cols+(ax+bx)/2] = true
	m.carved++
}

func (m *mazeGrid) neighbors(c int, out []int) []int {
	out = out[:0]
	x, y := c%m.mw, c/m.mw
	if x > 0 {
		out = append(out, c-1)
	}
	if x < m.mw-1 {
		out = append(out, c+1)
	}
	if y > 0 {
		out = append(out, c-m.mw)
	}
	if y < m.mh-1 {
		out = append(out, c+m.mw)
	}
	return out
}

// linked reports whether the wall between adjacent cells a and b is open.
func (m *mazeGrid) linked(a, b int) bool {
	ax, ay := m.pos(a)
	bx, by := m.pos(b)
	return m.isOpen((ax+bx)/2, (ay+by)/2)
}

// carver builds a perfect maze one action at a time.
type carver interface {
	// step performs one action and reports whether the maze is complete.
	step() bool
	// head is the cell most recently worked on, or -1.
	head() int
}

func newCarver(name string, m *mazeGrid, rng *rand.Rand) carver {
	switch name {
	case "prim":
		return newPrim(m, rng)
	case "kruskal":
		return newKruskal(m, rng)
	case "wilson":
		return newWilson(m, rng)
	default:
		return newBacktracker(m, rng)
	}
}

type backtracker struct {
	m       *mazeGrid
	rng     *rand.Rand
	stack   []int
	visited []bool
	scratch []int
}

func newBacktracker(m *mazeGrid, rng *rand.Rand) *backtracker {
	b := &backtracker{m: m, rng: rng, visited: make([]bool, m.cells())}
	if m.cells() > 0 {
		start := rng.Intn(m.cells())
		b.visited[start] = true
		m.touch(start)
		b.stack = append(b.stack, start)
	}
	return b
}

func (b *backtracker) step() bool {
	if len(b.stack) == 0 {
		return true
	}
	cur := b.stack[len(b.stack)-1]
	var options []int
	for _, n := range b.m.neighbors(cur, b.scratch) {
		if !b.visited[n] {
			options = append(options, n)
		}
	}
	if len(options) == 0 {
		b.stack = b.stack[:len(b.stack)-1]
		return len(b.stack) == 0
	}
	next := options[b.rng.Intn(len(options))]
	b.visited[next] = true
	b.m.link(cur, next)
	b.stack = append(b.stack, next)
	return false
}

func (b *backtracker) head() int {
	if len(b.stack) == 0 {
		return -1
	}
	return b.stack[len(b.stack)-1]
}

type prim struct {
	m        *mazeGrid
	rng      *rand.Rand
	in       []bool
	queued   []bool
	frontier []int
	last     int
	scratch  []int
}

func newPrim(m *mazeGrid, rng *rand.Rand) *prim {
	p := &prim{m: m, rng: rng, in: make([]bool, m.cells()), queued: make([]bool, m.cells()), last: -1}
	if m.cells() > 0 {
		p.add(rng.Intn(m.cells()))
	}
	return p
}

func (p *prim) add(c int) {
	p.in[c] = true
	p.m.touch(c)
	p.last = c
	for _, n := range p.m.neighbors(c, p.scratch) {
		if !p.in[n] && !p.queued[n] {
			p.queued[n] = true
			p.frontier = append(p.frontier, n)
		}
	}
}

func (p *prim) step() bool {
	if len(p.frontier) == 0 {
		return true
	}
	i := p.rng.Intn(len(p.frontier))
	f := p.frontier[i]
	p.frontier[i] = p.frontier[len(p.frontier)-1]
	p.frontier = p.frontier[:len(p.frontier)-1]

	var inside []int
	for _, n := range p.m.neighbors(f, nil) {
		if p.in[n] {
			inside = append(inside, n)
		}
	}
	p.m.link(inside[p.rng.Intn(len(inside))], f)
	p.add(f)
	return len(p.frontier) == 0
}

func (p *prim) head() int { return p.last }

type kruskal struct {
	m      *mazeGrid
	edges  [][2]int
	parent []int
	last   int
}

func newKruskal(m *mazeGrid, rng *rand.Rand) *kruskal {
	k := &kruskal{m: m, parent: make([]int, m.cells()), last: -1}
	for i := range k.parent {
		k.parent[i] = i
		if x := i % m.mw; x < m.mw-1 {
			k.edges = append(k.edges, [2]int{i, i + 1})
		}
		if y := i / m.mw; y < m.mh-1 {
			k.edges = append(k.edges, [2]int{i, i + m.mw})
		}
	}
	rng.Shuffle(len(k.edges), func(i, j int) { k.edges[i], k.edges[j] = k.edges[j], k.edges[i] })
	if m.cells() == 1 {
		m.touch(0)
	}
	return k
}

func (k *kruskal) find(c int) int {
	for k.parent[c] != c {
		k.parent[c] = k.parent[k.parent[c]]
		c = k.parent[c]
	}
	return c
}

func (k *kruskal) step() bool {
	for len(k.edges) > 0 {
		e := k.edges[len(k.edges)-1]
		k.edges = k.edges[:len(k.edges)-1]
		ra, rb := k.find(e[0]), k.find(e[1])
		if ra == rb {
			continue
		}
		k.parent[ra] = rb
		k.m.link(e[0], e[1])
		k.last = e[1]
		break
	}
	return len(k.edges) == 0 || k.m.carved == k.m.cells()-1
}

func (k *kruskal) head() int { return k.last }

// wilson performs loop-erased random walks from cells outside the maze
// until they hit it, then carves the erased path.
type wilson struct {
	m       *mazeGrid
	rng     *rand.Rand
	in      []bool
	next    []int
	start   int
	cur     int
	scan    int
	left    int
	scratch []int
}

func newWilson(m *mazeGrid, rng *rand.Rand) *wilson {
	w := &wilson{m: m, rng: rng, in: make([]bool, m.cells()), next: make([]int, m.cells()), cur: -1}
	if m.cells() == 0 {
		return w
	}
	root := rng.Intn(m.cells())
	w.in[root] = true
	m.touch(root)
	w.left = m.cells() - 1
	w.begin()
	return w
}

func (w *wilson) begin() {
	for w.scan < len(w.in) && w.in[w.scan] {
		w.scan++
	}
	if w.scan >= len(w.in) {
		w.cur = -1
		return
	}
	w.start, w.cur = w.scan, w.scan
}

func (w *wilson) step() bool {
	if w.left == 0 || w.cur < 0 {
		return true
	}
	ns := w.m.neighbors(w.cur, w.scratch)
	n := ns[w.rng.Intn(len(ns))]
	w.next[w.cur] = n
	w.cur = n
	if !w.in[n] {
		return false
	}
	for c := w.start; !w.in[c]; c = w.next[c] {
		w.in[c] = true
		w.m.link(c, w.next[c])
		w.left--
	}
	w.begin()
	return w.left == 0
}

func (w *wilson) head() int { return w.cur }

// Maze animates maze generation and then walks the solution from the top
// left to the bottom right corner.
type Maze struct {
	pattern.NoMouse
	pattern.Tunable[MazeConfig]

	theme theme.Theme
	seed  int64
	rng   *rand.Rand
	clock frameClock
	size  buffer.Size

	grid      *mazeGrid
	carver    carver
	algorithm string
	phase     mazePhase
	budget    float64
	hold      float64
	solution  []int
	shown     int
	mazes     int
}

func NewMaze(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(mazeDefaults, opts, mazePresets)
	if err != nil {
		return nil, err
	}
	m := &Maze{Tunable: t, theme: opts.Theme, seed: opts.Seed}
	m.Reset()
	return m, nil
}

func (m *Maze) Name() string { return "maze" }

func (m *Maze) Reset() {
	m.rng = newRand(m.seed)
	m.clock.reset()
	m.size = buffer.Size{}
	m.grid = nil
	m.carver = nil
	m.phase = phaseGenerate
	m.budget, m.hold = 0, 0
	m.solution = nil
	m.shown = 0
	m.mazes = 0
}

func (m *Maze) ApplyPreset(id int) bool { return m.Apply(id, m.Reset) }

// OnMouseClick starts a fresh maze.
func (m *Maze) OnMouseClick(buffer.Point) {
	if m.grid != nil {
		m.restart(m.Config())
	}
}

func (m *Maze) restart(cfg MazeConfig) {
	m.grid = newMazeGrid(m.size.Width, m.size.Height)
	m.algorithm = cfg.Algorithm
	if m.algorithm == "random" {
		m.algorithm = mazeAlgorithms[m.rng.Intn(len(mazeAlgorithms))]
	}
	m.carver = newCarver(m.algorithm, m.grid, m.rng)
	m.phase = phaseGenerate
	m.solution, m.shown, m.hold = nil, 0, 0
}

func (m *Maze) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	cfg := m.Config()
	if pattern.SizeChanged(&m.size, size) || m.grid == nil {
		m.restart(cfg)
	}
	dt := m.clock.delta(t)
	if m.grid.cells() == 0 {
		return
	}

	m.budget += dt * cfg.Speed
	if m.budget < 1 && m.phase == phaseGenerate && m.grid.carved == 0 {
		m.budget = 1
	}
	for m.budget >= 1 {
		m.budget--
		switch m.phase {
		case phaseGenerate:
			if m.carver.step() {
				m.mazes++
				if cfg.Solve {
					m.solution = solveMaze(m.grid, 0, m.grid.cells()-1)
					m.phase = phaseSolve
				} else {
					m.phase = phaseHold
				}
			}
		case phaseSolve:
			m.shown++
			if m.shown >= len(m.solution) {
				m.phase = phaseHold
			}
		case phaseHold:
			m.budget = 0
		}
	}
	if m.phase == phaseHold {
		m.hold += dt
		if m.hold >= cfg.Hold {
			m.restart(cfg)
		}
	}

	m.draw(g)
}

func (m *Maze) draw(g *buffer.Grid) {
	wall := buffer.NewCell('#', m.theme.Color(m.theme.Muted))
	for y := 0; y < m.grid.rows; y++ {
		for x := 0; x < m.grid.cols; x++ {
			if !m.grid.open[y*m.grid.cols+x] {
				g.Set(x, y, wall)
			}
		}
	}
	path := m.theme.Color(m.theme.Accent)
	for i := 0; i < m.shown && i < len(m.solution); i++ {
		x, y := m.grid.pos(m.solution[i])
		g.Set(x, y, buffer.NewCell('o', path))
		if i > 0 {
			px, py := m.grid.pos(m.solution[i-1])
			g.Set((x+px)/2, (y+py)/2, buffer.NewCell('o', path))
		}
	}
	if m.phase == phaseGenerate {
		if h := m.carver.head(); h >= 0 {
			x, y := m.grid.pos(h)
			g.Set(x, y, buffer.NewCell('@', m.theme.Color(m.theme.Primary)))
		}
	}
}

// solveMaze returns the cell path from a to b by breadth-first search, or
// nil when b is unreachable.
func solveMaze(m *mazeGrid, a, b int) []int {
	prev := make([]int, m.cells())
	for i := range prev {
		prev[i] = -1
	}
	prev[a] = a
	queue := []int{a}
	var scratch []int
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == b {
			break
		}
		scratch = m.neighbors(c, scratch)
		for _, n := range scratch {
			if prev[n] == -1 && m.linked(c, n) {
				prev[n] = c
				queue = append(queue, n)
			}
		}
	}
	if prev[b] == -1 {
		return nil
	}
	var path []int
	for c := b; c != a; c = prev[c] {
		path = append(path, c)
	}
	path = append(path, a)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (m *Maze) Metrics() map[string]float64 {
	carved, cells := 0, 0
	if m.grid != nil {
		carved, cells = m.grid.carved, m.grid.cells()
	}
	return map[string]float64{
		"carved":          float64(carved),
		"cells":           float64(cells),
		"solution_length": float64(len(m.solution)),
		"mazes":           float64(m.mazes),
		"phase":           float64(m.phase),
	}
}
