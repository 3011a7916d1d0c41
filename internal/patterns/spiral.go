package patterns

import (
	"math"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/theme"
)

type SpiralConfig struct {
	Arms      int     `yaml:"arms"`
	Tightness float64 `yaml:"tightness"`
	Speed     float64 `yaml:"speed"`
	Thickness float64 `yaml:"thickness"`
	Rainbow   bool    `yaml:"rainbow"`
}

func (c SpiralConfig) Clamped() SpiralConfig {
	c.Arms = pattern.ClampInt(c.Arms, 1, 12)
	c.Tightness = pattern.ClampFloat(c.Tightness, 0.1, 5)
	c.Speed = pattern.ClampFloat(c.Speed, -5, 5)
	c.Thickness = pattern.ClampFloat(c.Thickness, 0.05, 0.95)
	return c
}

var spiralDefaults = SpiralConfig{Arms: 3, Tightness: 1.5, Speed: 1, Thickness: 0.45}

var spiralPresets = []pattern.PresetDef[SpiralConfig]{
	{ID: 1, Name: "galaxy", Description: "two loose arms", Config: SpiralConfig{Arms: 2, Tightness: 0.8, Speed: 0.4, Thickness: 0.35}},
	{ID: 2, Name: "hypnotic", Description: "many tight rainbow arms", Config: SpiralConfig{Arms: 8, Tightness: 3, Speed: 2, Thickness: 0.5, Rainbow: true}},
	{ID: 3, Name: "reverse", Description: "counter rotating", Config: SpiralConfig{Arms: 4, Tightness: 1.5, Speed: -1.5, Thickness: 0.4}},
}

// Spiral draws rotating logarithmic spiral arms.
type Spiral struct {
	pattern.NoMouse
	pattern.Tunable[SpiralConfig]

	theme theme.Theme
	lit   int
}

func NewSpiral(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(spiralDefaults, opts, spiralPresets)
	if err != nil {
		return nil, err
	}
	return &Spiral{Tunable: t, theme: opts.Theme}, nil
}

func (s *Spiral) Name() string { return "spiral" }

func (s *Spiral) Reset() { s.lit = 0 }

func (s *Spiral) ApplyPreset(id int) bool { return s.Apply(id, s.Reset) }

func (s *Spiral) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	cfg := s.Config()
	cx, cy := float64(size.Width)/2, float64(size.Height)/2
	s.lit = 0
	for y := 0; y < size.Height; y++ {
		dy := (float64(y) - cy) * aspect
		for x := 0; x < size.Width; x++ {
			dx := float64(x) - cx
			r := math.Hypot(dx, dy)
			if r < 0.5 {
				continue
			}
			theta := math.Atan2(dy, dx)
			// Points on arm k satisfy theta = tightness*ln(r) + 2*pi*k/arms.
			phase := float64(cfg.Arms)*(theta-cfg.Tightness*math.Log(r)) + t*cfg.Speed*2
			v := 0.5 + 0.5*math.Cos(phase)
			if v < 1-cfg.Thickness {
				continue
			}
			s.lit++
			norm := (v - (1 - cfg.Thickness)) / cfg.Thickness
			color := s.theme.Sample(norm)
			if cfg.Rainbow {
				color = theme.HSV(theta*180/math.Pi+r*4+t*40, 0.8, 0.4+0.6*norm)
			}
			g.Set(x, y, buffer.NewCell(ramp(rampASCII, 0.3+0.7*norm), color))
		}
	}
}

func (s *Spiral) Metrics() map[string]float64 {
	return map[string]float64{"arms": float64(s.Config().Arms), "lit": float64(s.lit)}
}
