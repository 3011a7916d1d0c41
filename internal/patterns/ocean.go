package patterns

import (
	"math"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/noise"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/theme"
)

type OceanConfig struct {
	Waves      int     `yaml:"waves"`
	Amplitude  float64 `yaml:"amplitude"`
	Speed      float64 `yaml:"speed"`
	Foam       float64 `yaml:"foam"`
	Choppiness float64 `yaml:"choppiness"`
	Horizon    float64 `yaml:"horizon"`
}

func (c OceanConfig) Clamped() OceanConfig {
	c.Waves = pattern.ClampInt(c.Waves, 1, 6)
	c.Amplitude = pattern.ClampFloat(c.Amplitude, 0.1, 3)
	c.Speed = pattern.ClampFloat(c.Speed, 0.1, 5)
	c.Foam = pattern.ClampFloat(c.Foam, 0, 1)
	c.Choppiness = pattern.ClampFloat(c.Choppiness, 0, 2)
	c.Horizon = pattern.ClampFloat(c.Horizon, 0, 0.8)
	return c
}

var oceanDefaults = OceanConfig{Waves: 4, Amplitude: 1, Speed: 1, Foam: 0.4, Choppiness: 0.6, Horizon: 0.2}

var oceanPresets = []pattern.PresetDef[OceanConfig]{
	{ID: 1, Name: "calm", Description: "long gentle swell", Config: OceanConfig{Waves: 2, Amplitude: 0.5, Speed: 0.5, Foam: 0.1, Choppiness: 0.2, Horizon: 0.3}},
	{ID: 2, Name: "storm", Description: "choppy water, heavy foam", Config: OceanConfig{Waves: 6, Amplitude: 2.5, Speed: 2, Foam: 0.9, Choppiness: 1.6, Horizon: 0.1}},
	{ID: 3, Name: "open sea", Description: "no horizon, deep swells", Config: OceanConfig{Waves: 4, Amplitude: 1.5, Speed: 0.8, Foam: 0.3, Choppiness: 0.5}},
}

// Ocean layers directional swells and adds fBm foam on the crests.
type Ocean struct {
	pattern.NoMouse
	pattern.Tunable[OceanConfig]

	theme theme.Theme
	field *noise.Field
	foam  int
}

func NewOcean(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(oceanDefaults, opts, oceanPresets)
	if err != nil {
		return nil, err
	}
	return &Ocean{Tunable: t, theme: opts.Theme, field: noise.New(opts.Seed)}, nil
}

func (o *Ocean) Name() string { return "ocean" }

func (o *Ocean) Reset() { o.foam = 0 }

func (o *Ocean) ApplyPreset(id int) bool { return o.Apply(id, o.Reset) }

func (o *Ocean) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	cfg := o.Config()
	tt := t * cfg.Speed
	horizon := int(float64(size.Height) * cfg.Horizon)
	o.foam = 0
	sky := o.theme.Color(o.theme.Muted)

	for y := 0; y < size.Height; y++ {
		if y < horizon {
			for x := 0; x < size.Width; x++ {
				if o.field.Unit3(float64(x)*0.04+tt*0.05, float64(y)*0.4, 7.5) > 0.7 {
					g.Set(x, y, buffer.NewCell('-', sky))
				}
			}
			continue
		}
		depth := float64(y-horizon+1) / float64(size.Height-horizon+1)
		for x := 0; x < size.Width; x++ {
			fx := float64(x) / 8
			fy := float64(y) / 4 * aspect
			h := 0.0
			for k := 0; k < cfg.Waves; k++ {
				dir := float64(k) * 0.7
				freq := 1 + float64(k)*0.6
				phase := fx*math.Cos(dir)*freq + fy*math.Sin(dir)*freq*0.5 - tt*(1+float64(k)*0.3)
				h += math.Sin(phase+cfg.Choppiness*math.Sin(phase*2)) / float64(k+1)
			}
			h = h / 2 * cfg.Amplitude * (0.4 + 0.6*depth)
			v := clamp01(0.5 + h*0.35)
			foam := o.field.FBM(fx*0.6, fy*0.6, tt*0.3, 3)
			if v > 0.7 && foam > 1-cfg.Foam*0.5 {
				o.foam++
				g.Set(x, y, buffer.NewCell('*', o.theme.Color(o.theme.Text)))
				continue
			}
			ch := ramp(rampWater, v)
			if ch == ' ' {
				ch = '.'
			}
			g.Set(x, y, buffer.NewCell(ch, o.theme.Sample(v*0.8*(0.5+0.5*depth))))
		}
	}
}

func (o *Ocean) Metrics() map[string]float64 {
	return map[string]float64{"foam": float64(o.foam)}
}
