package patterns

import (
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/physics"
	"github.com/san-kum/termsaver/internal/theme"
)

type RainConfig struct {
	Density  float64 `yaml:"density"`
	Wind     float64 `yaml:"wind"`
	Gravity  float64 `yaml:"gravity"`
	Splash   bool    `yaml:"splash"`
	MaxDrops int     `yaml:"max_drops"`
}

func (c RainConfig) Clamped() RainConfig {
	c.Density = pattern.ClampFloat(c.Density, 0.01, 5)
	c.Wind = pattern.ClampFloat(c.Wind, -20, 20)
	c.Gravity = pattern.ClampFloat(c.Gravity, 5, 200)
	c.MaxDrops = pattern.ClampInt(c.MaxDrops, 10, 5000)
	return c
}

var rainDefaults = RainConfig{Density: 0.6, Wind: 2, Gravity: 60, Splash: true, MaxDrops: 1500}

var rainPresets = []pattern.PresetDef[RainConfig]{
	{ID: 1, Name: "drizzle", Description: "light vertical rain", Config: RainConfig{Density: 0.15, Gravity: 40, Splash: false, MaxDrops: 400}},
	{ID: 2, Name: "storm", Description: "heavy slanted rain", Config: RainConfig{Density: 2.5, Wind: 12, Gravity: 90, Splash: true, MaxDrops: 4000}},
	{ID: 3, Name: "monsoon", Description: "dense rain with big splashes", Config: RainConfig{Density: 4, Wind: -4, Gravity: 120, Splash: true, MaxDrops: 5000}},
}

const (
	kindDrop = iota
	kindSplash
)

// Rain drops particles under gravity; drops that hit the floor splash.
type Rain struct {
	pattern.NoMouse
	pattern.Tunable[RainConfig]

	theme     theme.Theme
	seed      int64
	rng       *rand.Rand
	clock     frameClock
	size      buffer.Size
	particles []physics.Particle
	spawn     float64
	splashes  int
}

func NewRain(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(rainDefaults, opts, rainPresets)
	if err != nil {
		return nil, err
	}
	r := &Rain{Tunable: t, theme: opts.Theme, seed: opts.Seed}
	r.Reset()
	return r, nil
}

func (r *Rain) Name() string { return "rain" }

func (r *Rain) Reset() {
	r.rng = newRand(r.seed)
	r.clock.reset()
	r.size = buffer.Size{}
	r.particles = r.particles[:0]
	r.spawn = 0
	r.splashes = 0
}

func (r *Rain) ApplyPreset(id int) bool { return r.Apply(id, r.Reset) }

func (r *Rain) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	if pattern.SizeChanged(&r.size, size) {
		r.particles = r.particles[:0]
	}
	if size.Area() == 0 {
		return
	}
	cfg := r.Config()
	dt := r.clock.delta(t)
	floor := float64(size.Height - 1)
	gravity := physics.Vec2{X: 0, Y: cfg.Gravity}

	r.spawn += cfg.Density * float64(size.Width) * dt * 2
	for r.spawn >= 1 && len(r.particles) < cfg.MaxDrops {
		r.spawn--
		x := r.rng.Float64()*float64(size.Width+int(abs(cfg.Wind))*2) - abs(cfg.Wind)
		r.particles = append(r.particles, physics.Particle{
			Pos:     physics.Vec2{X: x, Y: -r.rng.Float64() * 3},
			Vel:     physics.Vec2{X: cfg.Wind, Y: cfg.Gravity * (0.3 + 0.2*r.rng.Float64())},
			Acc:     gravity,
			Life:    10,
			MaxLife: 10,
			Kind:    kindDrop,
		})
	}
	if r.spawn >= 1 {
		r.spawn = 0
	}

	for i := range r.particles {
		p := &r.particles[i]
		physics.Euler(p, dt)
		if p.Kind == kindDrop && p.Pos.Y >= floor {
			p.Life = 0
			if cfg.Splash {
				r.splash(p.Pos.X, floor, cfg.MaxDrops)
			}
		}
		if p.Kind == kindSplash && p.Pos.Y > floor {
			p.Life = 0
		}
	}
	r.particles = physics.Compact(r.particles)

	drop := r.theme.Color(r.theme.Secondary)
	splash := r.theme.Color(r.theme.Accent)
	for i := range r.particles {
		p := &r.particles[i]
		x, y := p.Pos.Cell()
		switch p.Kind {
		case kindDrop:
			g.Set(x, y, buffer.NewCell(slopeGlyph(p.Vel.X, p.Vel.Y/aspect), drop.Scale(0.6+0.4*clamp01(p.Pos.Y/max(floor, 1)))))
		case kindSplash:
			ch := '.'
			if p.Age() < 0.4 {
				ch = 'o'
			}
			g.Set(x, y, buffer.NewCell(ch, splash))
		}
	}
}

func (r *Rain) splash(x, y float64, limit int) {
	for k := 0; k < 3 && len(r.particles) < limit; k++ {
		life := 0.2 + 0.2*r.rng.Float64()
		r.particles = append(r.particles, physics.Particle{
			Pos:     physics.Vec2{X: x, Y: y - 0.01},
			Vel:     physics.Vec2{X: (r.rng.Float64() - 0.5) * 16, Y: -6 - r.rng.Float64()*6},
			Acc:     physics.Vec2{Y: 40},
			Life:    life,
			MaxLife: life,
			Kind:    kindSplash,
		})
		r.splashes++
	}
}

func (r *Rain) Metrics() map[string]float64 {
	drops := 0
	for _, p := range r.particles {
		if p.Kind == kindDrop {
			drops++
		}
	}
	return map[string]float64{
		"drops":    float64(drops),
		"splashes": float64(len(r.particles) - drops),
		"splashed": float64(r.splashes),
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
