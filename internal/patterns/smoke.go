package patterns

import (
	"math"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/noise"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/physics"
	"github.com/san-kum/termsaver/internal/theme"
)

type SmokeConfig struct {
	Rise       float64 `yaml:"rise"`
	Spread     float64 `yaml:"spread"`
	Turbulence float64 `yaml:"turbulence"`
	Octaves    int     `yaml:"octaves"`
	Density    float64 `yaml:"density"`
	Follow     bool    `yaml:"follow"`
}

func (c SmokeConfig) Clamped() SmokeConfig {
	c.Rise = pattern.ClampFloat(c.Rise, 0.1, 5)
	c.Spread = pattern.ClampFloat(c.Spread, 0.05, 1)
	c.Turbulence = pattern.ClampFloat(c.Turbulence, 0, 3)
	c.Octaves = pattern.ClampInt(c.Octaves, 1, 6)
	c.Density = pattern.ClampFloat(c.Density, 0.1, 2)
	return c
}

var smokeDefaults = SmokeConfig{Rise: 1, Spread: 0.35, Turbulence: 1, Octaves: 3, Density: 1, Follow: true}

var smokePresets = []pattern.PresetDef[SmokeConfig]{
	{ID: 1, Name: "incense", Description: "thin wavering thread", Config: SmokeConfig{Rise: 0.6, Spread: 0.1, Turbulence: 0.6, Octaves: 2, Density: 0.8, Follow: true}},
	{ID: 2, Name: "chimney", Description: "thick billowing plume", Config: SmokeConfig{Rise: 1.6, Spread: 0.7, Turbulence: 1.8, Octaves: 4, Density: 1.4, Follow: true}},
	{ID: 3, Name: "fixed", Description: "plume ignores the mouse", Config: SmokeConfig{Rise: 1, Spread: 0.35, Turbulence: 1, Octaves: 3, Density: 1}},
}

// Smoke advects an fBm density field up a plume whose source trails the
// mouse on a spring.
type Smoke struct {
	pattern.NoMouse
	pattern.Tunable[SmokeConfig]

	theme  theme.Theme
	field  *noise.Field
	spring *physics.Spring2

	size    buffer.Size
	target  physics.Vec2
	placed  bool
	density float64
}

func NewSmoke(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(smokeDefaults, opts, smokePresets)
	if err != nil {
		return nil, err
	}
	s := &Smoke{Tunable: t, theme: opts.Theme, field: noise.New(opts.Seed)}
	s.Reset()
	return s, nil
}

func (s *Smoke) Name() string { return "smoke" }

func (s *Smoke) Reset() {
	s.spring = physics.NewSpring2(30, 3, 0.6)
	s.size = buffer.Size{}
	s.placed = false
	s.density = 0
}

func (s *Smoke) ApplyPreset(id int) bool { return s.Apply(id, s.Reset) }

func (s *Smoke) Render(g *buffer.Grid, t float64, size buffer.Size, mouse *buffer.Point) {
	if size.Area() == 0 {
		return
	}
	cfg := s.Config()
	home := physics.Vec2{X: float64(size.Width) / 2, Y: float64(size.Height)}
	if pattern.SizeChanged(&s.size, size) || !s.placed {
		s.spring.Snap(home)
		s.target = home
		s.placed = true
	}
	if cfg.Follow && mouse != nil {
		s.target = physics.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)}
	}
	src := s.spring.Step(s.target)

	total := 0.0
	w, h := float64(size.Width), float64(size.Height)
	for y := 0; y < size.Height; y++ {
		above := src.Y - float64(y)
		if above < 0 {
			continue
		}
		rise := above / h
		width := (cfg.Spread*w*0.5)*rise + 1.5
		for x := 0; x < size.Width; x++ {
			sway := (s.field.At3(float64(y)*0.05, t*0.2, 0.5) * cfg.Turbulence * w * 0.15) * rise
			dx := (float64(x) - src.X - sway) / width
			falloff := math.Exp(-dx * dx)
			if falloff < 0.02 {
				continue
			}
			d := s.field.FBM(float64(x)*0.08, (float64(y)+t*cfg.Rise*8)*0.08*aspect, t*0.1, cfg.Octaves)
			v := clamp01(d*falloff*cfg.Density*(1.2-rise)*1.4 - 0.15)
			total += v
			shade(g, x, y, v, rampSmoke, s.theme)
		}
	}
	s.density = total / float64(size.Area())
}

func (s *Smoke) Metrics() map[string]float64 {
	return map[string]float64{"density": s.density, "source_x": s.spring.Pos.X, "source_y": s.spring.Pos.Y}
}
