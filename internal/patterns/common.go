package patterns

import (
	"math"
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/theme"
)

const (
	// maxFrameDelta bounds the simulated time between two renders.
	maxFrameDelta = 0.1
	// maxStepsPerFrame bounds fixed-step catch-up work.
	maxStepsPerFrame = 4
)

// Character ramps from empty to full.
const (
	rampASCII = " .:-=+*#%@"
	rampFire  = " .:*sS#$@"
	rampSmoke = " .,:;ox%#@"
	rampWater = " .-~=oO0@"
)

// frameClock turns absolute scene time into per-frame deltas and whole
// fixed steps.
type frameClock struct {
	last    float64
	acc     float64
	started bool
}

func (c *frameClock) reset() { *c = frameClock{} }

// delta returns the time since the previous frame in [0, maxFrameDelta].
func (c *frameClock) delta(t float64) float64 {
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}
	d := t - c.last
	c.last = t
	if d < 0 || math.IsNaN(d) {
		return 0
	}
	if d > maxFrameDelta {
		return maxFrameDelta
	}
	return d
}

// steps returns how many fixed steps at hz have elapsed. The first frame
// always takes one step so a fresh pattern draws something.
func (c *frameClock) steps(t, hz float64) int {
	first := !c.started
	c.acc += c.delta(t) * hz
	if first {
		return 1
	}
	n := int(c.acc)
	c.acc -= float64(n)
	if n > maxStepsPerFrame {
		n = maxStepsPerFrame
		c.acc = 0
	}
	return n
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// tunable merges option overrides over defaults and builds the config holder.
func tunable[C pattern.Config[C]](defaults C, opts pattern.Options, presets []pattern.PresetDef[C]) (pattern.Tunable[C], error) {
	cfg, err := pattern.Merge(defaults, opts.Overrides)
	if err != nil {
		return pattern.Tunable[C]{}, err
	}
	return pattern.NewTunable(cfg, presets), nil
}

// ramp picks the rune for v in [0,1] from a ramp string.
func ramp(chars string, v float64) rune {
	rs := []rune(chars)
	if v <= 0 || math.IsNaN(v) {
		return rs[0]
	}
	i := int(v * float64(len(rs)))
	if i >= len(rs) {
		i = len(rs) - 1
	}
	return rs[i]
}

// shade writes a ramp glyph colored from the theme gradient, leaving cells
// below the threshold blank.
func shade(g *buffer.Grid, x, y int, v float64, chars string, th theme.Theme) {
	if v < 0.02 {
		return
	}
	g.Set(x, y, buffer.NewCell(ramp(chars, v), th.Sample(v)))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// line draws a Bresenham line, clipped by the grid.
func line(g *buffer.Grid, x0, y0, x1, y1 int, c buffer.Cell) int {
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	n := 0
	for {
		g.Set(x0, y0, c)
		n++
		if x0 == x1 && y0 == y1 {
			return n
		}
		if n > 4096 {
			return n
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// slopeGlyph returns a line glyph approximating the direction (dx, dy) in
// screen space.
func slopeGlyph(dx, dy float64) rune {
	a := math.Atan2(dy, dx) * 180 / math.Pi
	if a < 0 {
		a += 180
	}
	switch {
	case a < 22.5 || a >= 157.5:
		return '-'
	case a < 67.5:
		return '\\'
	case a < 112.5:
		return '|'
	default:
		return '/'
	}
}

// aspect compensates for terminal cells being about twice as tall as wide.
const aspect = 2.0
