package patterns

import (
	"math"
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/noise"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/physics"
	"github.com/san-kum/termsaver/internal/theme"
)

type SnowConfig struct {
	Density    float64 `yaml:"density"`
	Wind       float64 `yaml:"wind"`
	Fall       float64 `yaml:"fall"`
	Drift      float64 `yaml:"drift"`
	Accumulate bool    `yaml:"accumulate"`
	MaxDepth   float64 `yaml:"max_depth"`
	MaxFlakes  int     `yaml:"max_flakes"`
}

func (c SnowConfig) Clamped() SnowConfig {
	c.Density = pattern.ClampFloat(c.Density, 0.01, 3)
	c.Wind = pattern.ClampFloat(c.Wind, -10, 10)
	c.Fall = pattern.ClampFloat(c.Fall, 0.5, 20)
	c.Drift = pattern.ClampFloat(c.Drift, 0, 10)
	c.MaxDepth = pattern.ClampFloat(c.MaxDepth, 0, 0.5)
	c.MaxFlakes = pattern.ClampInt(c.MaxFlakes, 10, 3000)
	return c
}

var snowDefaults = SnowConfig{Density: 0.3, Wind: 0.5, Fall: 4, Drift: 2, Accumulate: true, MaxDepth: 0.25, MaxFlakes: 1200}

var snowPresets = []pattern.PresetDef[SnowConfig]{
	{ID: 1, Name: "flurry", Description: "sparse lazy flakes", Config: SnowConfig{Density: 0.08, Fall: 2.5, Drift: 1.5, Accumulate: false, MaxFlakes: 300}},
	{ID: 2, Name: "blizzard", Description: "dense, windy, deep drifts", Config: SnowConfig{Density: 2, Wind: 6, Fall: 8, Drift: 4, Accumulate: true, MaxDepth: 0.4, MaxFlakes: 3000}},
	{ID: 3, Name: "still night", Description: "vertical fall piling up", Config: SnowConfig{Density: 0.4, Fall: 3, Drift: 0.5, Accumulate: true, MaxDepth: 0.3, MaxFlakes: 1500}},
}

var flakeGlyphs = []rune{'.', '*', '+', 'o'}

// Snow drifts flakes along a noise field and piles them into drifts.
type Snow struct {
	pattern.NoMouse
	pattern.Tunable[SnowConfig]

	theme  theme.Theme
	seed   int64
	rng    *rand.Rand
	clock  frameClock
	size   buffer.Size
	flakes []physics.Particle
	depth  []float64
	spawn  float64
	melts  int
}

func NewSnow(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(snowDefaults, opts, snowPresets)
	if err != nil {
		return nil, err
	}
	s := &Snow{Tunable: t, theme: opts.Theme, seed: opts.Seed}
	s.Reset()
	return s, nil
}

func (s *Snow) Name() string { return "snow" }

func (s *Snow) Reset() {
	s.rng = newRand(s.seed)
	s.clock.reset()
	s.size = buffer.Size{}
	s.flakes = s.flakes[:0]
	s.depth = nil
	s.spawn = 0
	s.melts = 0
}

func (s *Snow) ApplyPreset(id int) bool { return s.Apply(id, s.Reset) }

func (s *Snow) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	if pattern.SizeChanged(&s.size, size) {
		s.flakes = s.flakes[:0]
		s.depth = make([]float64, size.Width)
	}
	if size.Area() == 0 {
		return
	}
	cfg := s.Config()
	dt := s.clock.delta(t)
	w, h := float64(size.Width), float64(size.Height)

	s.spawn += cfg.Density * w * dt
	for s.spawn >= 1 && len(s.flakes) < cfg.MaxFlakes {
		s.spawn--
		s.flakes = append(s.flakes, physics.Particle{
			Pos:  physics.Vec2{X: s.rng.Float64() * w, Y: -1},
			Vel:  physics.Vec2{Y: cfg.Fall * (0.6 + 0.8*s.rng.Float64())},
			Life: 1,
			Kind: s.rng.Intn(len(flakeGlyphs)),
		})
	}
	if s.spawn >= 1 {
		s.spawn = 0
	}

	for i := range s.flakes {
		f := &s.flakes[i]
		sway := (noise.Value(f.Pos.X*0.2, f.Pos.Y*0.1+t*0.3, s.seed+int64(f.Kind))*2 - 1) * cfg.Drift
		f.Pos.X += (cfg.Wind + sway) * dt
		f.Pos.Y += f.Vel.Y * dt
		physics.Wrap(f, physics.Bounds{MinX: 0, MinY: -2, MaxX: w, MaxY: h + 2})

		col := int(f.Pos.X)
		if col < 0 || col >= size.Width {
			continue
		}
		ground := h - s.depth[col]
		if f.Pos.Y >= ground-1 {
			f.Life = 0
			if cfg.Accumulate {
				s.settle(col, cfg.MaxDepth*h)
			}
		}
	}
	s.flakes = physics.Compact(s.flakes)

	flake := s.theme.Color(s.theme.Text)
	for _, f := range s.flakes {
		x, y := f.Pos.Cell()
		g.Set(x, y, buffer.NewCell(flakeGlyphs[f.Kind], flake))
	}
	s.drawDrifts(g, size)
}

// settle adds snow to a column and spreads it to lower neighbours so the
// drift keeps a gentle slope.
func (s *Snow) settle(col int, limit float64) {
	s.depth[col] += 0.25
	for _, n := range []int{col - 1, col + 1} {
		if n < 0 || n >= len(s.depth) {
			continue
		}
		if s.depth[col]-s.depth[n] > 1 {
			s.depth[col] -= 0.25
			s.depth[n] += 0.25
		}
	}
	if s.depth[col] > limit {
		for i := range s.depth {
			s.depth[i] *= 0.5
		}
		s.melts++
	}
}

func (s *Snow) drawDrifts(g *buffer.Grid, size buffer.Size) {
	for x, d := range s.depth {
		full := int(d)
		for k := 0; k < full; k++ {
			y := size.Height - 1 - k
			g.Set(x, y, buffer.NewCell('#', s.theme.Color(s.theme.Text).Scale(0.85)))
		}
		if frac := d - math.Floor(d); frac >= 0.5 {
			g.Set(x, size.Height-1-full, buffer.NewCell('_', s.theme.Color(s.theme.Muted)))
		}
	}
}

func (s *Snow) Metrics() map[string]float64 {
	total := 0.0
	for _, d := range s.depth {
		total += d
	}
	return map[string]float64{"flakes": float64(len(s.flakes)), "snow_depth": total, "melts": float64(s.melts)}
}
