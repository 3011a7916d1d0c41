package physics

// Wave2D solves a damped 2D wave equation on a grid with an explicit
// finite-difference scheme. Edges are held at zero.
type Wave2D struct {
	W, H      int
	WaveSpeed float64
	Damping   float64

	cur, prev, next []float64
}

// NewWave2D creates a still surface. WaveSpeed is kept at or below the
// explicit scheme's stability limit of 1/sqrt(2).
func NewWave2D(width, height int, waveSpeed, damping float64) *Wave2D {
	w := &Wave2D{WaveSpeed: waveSpeed, Damping: damping}
	w.Resize(width, height)
	return w
}

// Resize reallocates a still surface of the given size.
func (w *Wave2D) Resize(width, height int) {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	w.W, w.H = width, height
	n := width * height
	w.cur = make([]float64, n)
	w.prev = make([]float64, n)
	w.next = make([]float64, n)
}

// Reset flattens the surface.
func (w *Wave2D) Reset() {
	clear(w.cur)
	clear(w.prev)
	clear(w.next)
}

func (w *Wave2D) At(x, y int) float64 {
	if x < 0 || y < 0 || x >= w.W || y >= w.H {
		return 0
	}
	return w.cur[y*w.W+x]
}

// Step advances one time step.
func (w *Wave2D) Step() {
	c2 := w.WaveSpeed * w.WaveSpeed
	if c2 > 0.5 {
		c2 = 0.5
	}
	width := w.W
	for y := 1; y < w.H-1; y++ {
		row := y * width
		for x := 1; x < width-1; x++ {
			i := row + x
			lap := w.cur[i-1] + w.cur[i+1] + w.cur[i-width] + w.cur[i+width] - 4*w.cur[i]
			w.next[i] = (2*w.cur[i] - w.prev[i] + c2*lap) * w.Damping
		}
	}
	w.prev, w.cur, w.next = w.cur, w.next, w.prev
}

// Drop displaces a disc of the given radius centred on (x, y).
func (w *Wave2D) Drop(x, y, radius int, amplitude float64) {
	if radius < 0 {
		radius = 0
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			px, py := x+dx, y+dy
			if px <= 0 || py <= 0 || px >= w.W-1 || py >= w.H-1 {
				continue
			}
			w.cur[py*w.W+px] += amplitude
		}
	}
}

// Energy sums displacement and velocity squared over the surface.
func (w *Wave2D) Energy() float64 {
	e := 0.0
	for i, u := range w.cur {
		v := u - w.prev[i]
		e += 0.5 * (u*u + v*v)
	}
	return e
}
