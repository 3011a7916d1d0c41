package patterns

import (
	"math"
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/physics"
	"github.com/san-kum/termsaver/internal/theme"
)

type RippleConfig struct {
	Damping   float64 `yaml:"damping"`
	WaveSpeed float64 `yaml:"wave_speed"`
	DropRate  float64 `yaml:"drop_rate"`
	Strength  float64 `yaml:"strength"`
	Radius    int     `yaml:"radius"`
	Rate      float64 `yaml:"rate"`
}

func (c RippleConfig) Clamped() RippleConfig {
	c.Damping = pattern.ClampFloat(c.Damping, 0.9, 0.999)
	c.WaveSpeed = pattern.ClampFloat(c.WaveSpeed, 0.1, 0.7)
	c.DropRate = pattern.ClampFloat(c.DropRate, 0, 10)
	c.Strength = pattern.ClampFloat(c.Strength, 0.1, 5)
	c.Radius = pattern.ClampInt(c.Radius, 0, 6)
	c.Rate = pattern.ClampFloat(c.Rate, 10, 60)
	return c
}

var rippleDefaults = RippleConfig{Damping: 0.985, WaveSpeed: 0.5, DropRate: 1.5, Strength: 2, Radius: 1, Rate: 30}

var ripplePresets = []pattern.PresetDef[RippleConfig]{
	{ID: 1, Name: "pond", Description: "occasional drops on still water", Config: RippleConfig{Damping: 0.99, WaveSpeed: 0.5, DropRate: 0.5, Strength: 2, Radius: 1, Rate: 30}},
	{ID: 2, Name: "downpour", Description: "many small drops", Config: RippleConfig{Damping: 0.96, WaveSpeed: 0.6, DropRate: 8, Strength: 1, Radius: 0, Rate: 40}},
	{ID: 3, Name: "mouse only", Description: "click to drop stones", Config: RippleConfig{Damping: 0.995, WaveSpeed: 0.45, Strength: 3, Radius: 2, Rate: 30}},
}

// Ripple runs a damped 2D wave equation; random drops and clicks disturb it.
type Ripple struct {
	pattern.Tunable[RippleConfig]

	theme theme.Theme
	seed  int64
	rng   *rand.Rand
	clock frameClock
	wave  *physics.Wave2D
	size  buffer.Size
	drops int
	spawn float64
	queue []buffer.Point
}

func NewRipple(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(rippleDefaults, opts, ripplePresets)
	if err != nil {
		return nil, err
	}
	r := &Ripple{Tunable: t, theme: opts.Theme, seed: opts.Seed}
	r.Reset()
	return r, nil
}

func (r *Ripple) Name() string { return "ripple" }

func (r *Ripple) Reset() {
	r.rng = newRand(r.seed)
	r.clock.reset()
	r.wave = nil
	r.size = buffer.Size{}
	r.drops = 0
	r.spawn = 0
	r.queue = nil
}

func (r *Ripple) ApplyPreset(id int) bool { return r.Apply(id, r.Reset) }

func (r *Ripple) OnMouseMove(buffer.Point) {}

// OnMouseClick queues a stone for the next step.
func (r *Ripple) OnMouseClick(p buffer.Point) {
	if len(r.queue) < 32 {
		r.queue = append(r.queue, p)
	}
}

func (r *Ripple) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	cfg := r.Config()
	if pattern.SizeChanged(&r.size, size) || r.wave == nil {
		r.wave = physics.NewWave2D(size.Width, size.Height, cfg.WaveSpeed, cfg.Damping)
	}
	r.wave.WaveSpeed, r.wave.Damping = cfg.WaveSpeed, cfg.Damping
	if size.Area() == 0 {
		return
	}

	for range r.clock.steps(t, cfg.Rate) {
		r.spawn += cfg.DropRate / cfg.Rate
		for r.spawn >= 1 {
			r.spawn--
			x := 1 + r.rng.Intn(max(size.Width-2, 1))
			y := 1 + r.rng.Intn(max(size.Height-2, 1))
			r.wave.Drop(x, y, cfg.Radius, cfg.Strength)
			r.drops++
		}
		for _, p := range r.queue {
			r.wave.Drop(p.X, p.Y, cfg.Radius+1, cfg.Strength*1.5)
			r.drops++
		}
		r.queue = r.queue[:0]
		r.wave.Step()
	}

	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			h := r.wave.At(x, y)
			v := clamp01(math.Abs(h) / cfg.Strength * 2)
			if v < 0.04 {
				continue
			}
			ch := ramp(rampWater, v)
			if h < 0 {
				ch = ramp(" .,-~", v)
			}
			g.Set(x, y, buffer.NewCell(ch, r.theme.Sample(clamp01(0.5+h/cfg.Strength))))
		}
	}
}

func (r *Ripple) Metrics() map[string]float64 {
	e := 0.0
	if r.wave != nil {
		e = r.wave.Energy()
	}
	return map[string]float64{"energy": e, "drops": float64(r.drops)}
}
