package patterns

import (
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/noise"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/theme"
)

type FireConfig struct {
	Intensity float64 `yaml:"intensity"`
	Cooling   float64 `yaml:"cooling"`
	Wind      float64 `yaml:"wind"`
	Rate      float64 `yaml:"rate"`
	HeatBrush int     `yaml:"heat_brush"`
}

func (c FireConfig) Clamped() FireConfig {
	c.Intensity = pattern.ClampFloat(c.Intensity, 0, 1)
	c.Cooling = pattern.ClampFloat(c.Cooling, 0, 1)
	c.Wind = pattern.ClampFloat(c.Wind, -1, 1)
	c.Rate = pattern.ClampFloat(c.Rate, 5, 60)
	c.HeatBrush = pattern.ClampInt(c.HeatBrush, 0, 10)
	return c
}

var fireDefaults = FireConfig{Intensity: 0.9, Cooling: 0.35, Wind: 0, Rate: 30, HeatBrush: 3}

var firePresets = []pattern.PresetDef[FireConfig]{
	{ID: 1, Name: "campfire", Description: "low flames", Config: FireConfig{Intensity: 0.7, Cooling: 0.6, Rate: 25, HeatBrush: 2}},
	{ID: 2, Name: "inferno", Description: "tall roaring flames", Config: FireConfig{Intensity: 1, Cooling: 0.15, Rate: 40, HeatBrush: 5}},
	{ID: 3, Name: "windy", Description: "flames leaning right", Config: FireConfig{Intensity: 0.9, Cooling: 0.35, Wind: 0.6, Rate: 30, HeatBrush: 3}},
}

// Fire propagates a heat buffer upward, cooled by Perlin noise.
type Fire struct {
	pattern.Tunable[FireConfig]

	theme theme.Theme
	seed  int64
	rng   *rand.Rand
	field *noise.Field
	clock frameClock

	size  buffer.Size
	heat  []float64
	next  []float64
	mouse *buffer.Point
	steps int
}

func NewFire(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(fireDefaults, opts, firePresets)
	if err != nil {
		return nil, err
	}
	f := &Fire{Tunable: t, theme: opts.Theme, seed: opts.Seed, field: noise.New(opts.Seed)}
	f.Reset()
	return f, nil
}

func (f *Fire) Name() string { return "fire" }

func (f *Fire) Reset() {
	f.rng = newRand(f.seed)
	f.clock.reset()
	f.size = buffer.Size{}
	f.heat, f.next = nil, nil
	f.mouse = nil
	f.steps = 0
}

func (f *Fire) ApplyPreset(id int) bool { return f.Apply(id, f.Reset) }

func (f *Fire) OnMouseMove(p buffer.Point) { f.mouse = &p }

func (f *Fire) OnMouseClick(p buffer.Point) {
	f.addHeat(p, f.Config().HeatBrush*2, 1)
}

func (f *Fire) Render(g *buffer.Grid, t float64, size buffer.Size, mouse *buffer.Point) {
	if pattern.SizeChanged(&f.size, size) {
		f.heat = make([]float64, size.Area())
		f.next = make([]float64, size.Area())
	}
	if size.Area() == 0 {
		return
	}
	cfg := f.Config()
	if mouse == nil {
		mouse = f.mouse
	}
	for range f.clock.steps(t, cfg.Rate) {
		f.step(cfg, t)
		if mouse != nil {
			f.addHeat(*mouse, cfg.HeatBrush, 0.6)
		}
	}
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			shade(g, x, y, f.heat[y*size.Width+x], rampFire, f.theme)
		}
	}
}

func (f *Fire) step(cfg FireConfig, t float64) {
	w, h := f.size.Width, f.size.Height
	bottom := (h - 1) * w
	for x := 0; x < w; x++ {
		f.heat[bottom+x] = cfg.Intensity * (0.6 + 0.4*f.rng.Float64())
	}
	shift := 0
	if cfg.Wind > 0.3 {
		shift = 1
	} else if cfg.Wind < -0.3 {
		shift = -1
	}
	for y := 0; y < h-1; y++ {
		for x := 0; x < w; x++ {
			sx := x - shift
			below := (y + 1) * w
			sum := f.heat[below+clampIndex(sx, w)]*2 +
				f.heat[below+clampIndex(sx-1, w)] +
				f.heat[below+clampIndex(sx+1, w)]
			if y+2 < h {
				sum += f.heat[(y+2)*w+clampIndex(sx, w)]
			} else {
				sum += f.heat[below+clampIndex(sx, w)]
			}
			cool := cfg.Cooling * 0.12 * (0.5 + f.field.Unit3(float64(x)*0.15, float64(y)*0.3+t*2, t*0.5))
			v := sum/5 - cool
			if v < 0 {
				v = 0
			}
			f.next[y*w+x] = v
		}
	}
	copy(f.next[bottom:], f.heat[bottom:])
	f.heat, f.next = f.next, f.heat
	f.steps++
}

func (f *Fire) addHeat(p buffer.Point, radius int, amount float64) {
	if !f.size.Contains(p) {
		return
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			x, y := p.X+dx, p.Y+dy
			if !f.size.Contains(buffer.Point{X: x, Y: y}) || dx*dx+dy*dy > radius*radius {
				continue
			}
			i := y*f.size.Width + x
			f.heat[i] = clamp01(f.heat[i] + amount)
		}
	}
}

func (f *Fire) Metrics() map[string]float64 {
	burning, peak := 0, 0.0
	for _, v := range f.heat {
		if v > 0.05 {
			burning++
		}
		if v > peak {
			peak = v
		}
	}
	return map[string]float64{"burning": float64(burning), "peak": peak, "steps": float64(f.steps)}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
