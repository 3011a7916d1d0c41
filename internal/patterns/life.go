package patterns

import (
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/theme"
)

type LifeConfig struct {
	Density    float64 `yaml:"density"`
	Wrap       bool    `yaml:"wrap"`
	Rate       float64 `yaml:"rate"`
	Stagnation int     `yaml:"stagnation"`
	ShowAge    bool    `yaml:"show_age"`
}

func (c LifeConfig) Clamped() LifeConfig {
	c.Density = pattern.ClampFloat(c.Density, 0.05, 0.9)
	c.Rate = pattern.ClampFloat(c.Rate, 1, 60)
	c.Stagnation = pattern.ClampInt(c.Stagnation, 10, 1000)
	return c
}

var lifeDefaults = LifeConfig{Density: 0.3, Wrap: true, Rate: 12, Stagnation: 60, ShowAge: true}

var lifePresets = []pattern.PresetDef[LifeConfig]{
	{ID: 1, Name: "soup", Description: "random soup on a torus", Config: LifeConfig{Density: 0.35, Wrap: true, Rate: 15, Stagnation: 60, ShowAge: true}},
	{ID: 2, Name: "sparse", Description: "thin start, bounded plane", Config: LifeConfig{Density: 0.12, Wrap: false, Rate: 10, Stagnation: 80, ShowAge: true}},
	{ID: 3, Name: "fast", Description: "high generation rate, flat color", Config: LifeConfig{Density: 0.3, Wrap: true, Rate: 40, Stagnation: 200}},
}

var glider = []buffer.Point{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}

// Life is Conway's Game of Life (B3/S23). A board whose population repeats
// with period one or two for too long is reseeded.
type Life struct {
	pattern.NoMouse
	pattern.Tunable[LifeConfig]

	theme theme.Theme
	seed  int64
	rng   *rand.Rand
	clock frameClock
	size  buffer.Size

	w, h       int
	cur, nxt   []uint8
	age        []uint16
	generation int
	population int
	history    [2]int
	stale      int
	reseeds    int
	pending    []buffer.Point
}

func NewLife(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(lifeDefaults, opts, lifePresets)
	if err != nil {
		return nil, err
	}
	l := &Life{Tunable: t, theme: opts.Theme, seed: opts.Seed}
	l.Reset()
	return l, nil
}

func (l *Life) Name() string { return "life" }

func (l *Life) Reset() {
	l.rng = newRand(l.seed)
	l.clock.reset()
	l.size = buffer.Size{}
	l.resize(0, 0)
	l.generation, l.population, l.stale, l.reseeds = 0, 0, 0, 0
	l.history = [2]int{}
	l.pending = nil
}

func (l *Life) ApplyPreset(id int) bool { return l.Apply(id, l.Reset) }

// OnMouseClick drops a glider with its corner at p.
func (l *Life) OnMouseClick(p buffer.Point) {
	if len(l.pending) < 16 {
		l.pending = append(l.pending, p)
	}
}

func (l *Life) resize(w, h int) {
	l.w, l.h = w, h
	l.cur = make([]uint8, w*h)
	l.nxt = make([]uint8, w*h)
	l.age = make([]uint16, w*h)
}

func (l *Life) set(x, y int, alive bool) {
	if x < 0 || y < 0 || x >= l.w || y >= l.h {
		return
	}
	i := y*l.w + x
	if alive {
		l.cur[i] = 1
	} else {
		l.cur[i] = 0
		l.age[i] = 0
	}
}

func (l *Life) alive(x, y int) bool {
	if x < 0 || y < 0 || x >= l.w || y >= l.h {
		return false
	}
	return l.cur[y*l.w+x] == 1
}

func (l *Life) randomize(density float64) {
	for i := range l.cur {
		l.cur[i] = 0
		l.age[i] = 0
		if l.rng.Float64() < density {
			l.cur[i] = 1
		}
	}
	l.stale = 0
	l.history = [2]int{}
}

// step advances one generation and returns the new population.
func (l *Life) step(wrap bool) int {
	w, h := l.w, l.h
	pop := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if wrap {
						nx = (nx + w) % w
						ny = (ny + h) % h
					} else if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					neighbors += int(l.cur[ny*w+nx])
				}
			}
			idx := y*w + x
			alive := l.cur[idx] == 1
			l.nxt[idx] = 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				l.nxt[idx] = 1
				pop++
				if alive && l.age[idx] < 1<<15 {
					l.age[idx]++
				} else if !alive {
					l.age[idx] = 0
				}
			}
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
	l.generation++
	return pop
}

func (l *Life) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	cfg := l.Config()
	if pattern.SizeChanged(&l.size, size) {
		l.resize(size.Width, size.Height)
		l.randomize(cfg.Density)
	}
	if size.Area() == 0 {
		return
	}
	for _, p := range l.pending {
		for _, o := range glider {
			l.set(p.X+o.X, p.Y+o.Y, true)
		}
	}
	l.pending = l.pending[:0]

	for range l.clock.steps(t, cfg.Rate) {
		pop := l.step(cfg.Wrap)
		if pop == l.history[1] || pop == l.history[0] {
			l.stale++
		} else {
			l.stale = 0
		}
		l.history[0], l.history[1] = l.history[1], pop
		l.population = pop
		if pop == 0 || l.stale >= cfg.Stagnation {
			l.randomize(cfg.Density)
			l.reseeds++
		}
	}

	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; x++ {
			i := y*l.w + x
			if l.cur[i] == 0 {
				continue
			}
			v := 0.9
			if cfg.ShowAge {
				v = 1 - clamp01(float64(l.age[i])/40)*0.7
			}
			g.Set(x, y, buffer.NewCell('#', l.theme.Sample(v)))
		}
	}
}

func (l *Life) Metrics() map[string]float64 {
	return map[string]float64{
		"population": float64(l.population),
		"generation": float64(l.generation),
		"reseeds":    float64(l.reseeds),
	}
}
