package patterns

import (
	"math"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/noise"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/theme"
)

type PlasmaConfig struct {
	Scale   float64 `yaml:"scale"`
	Speed   float64 `yaml:"speed"`
	Warp    float64 `yaml:"warp"`
	Octaves int     `yaml:"octaves"`
}

func (c PlasmaConfig) Clamped() PlasmaConfig {
	c.Scale = pattern.ClampFloat(c.Scale, 0.02, 1)
	c.Speed = pattern.ClampFloat(c.Speed, 0.1, 5)
	c.Warp = pattern.ClampFloat(c.Warp, 0, 3)
	c.Octaves = pattern.ClampInt(c.Octaves, 1, 6)
	return c
}

var plasmaDefaults = PlasmaConfig{Scale: 0.12, Speed: 1, Warp: 0.8, Octaves: 2}

var plasmaPresets = []pattern.PresetDef[PlasmaConfig]{
	{ID: 1, Name: "calm", Description: "slow, wide bands", Config: PlasmaConfig{Scale: 0.06, Speed: 0.4, Warp: 0.3, Octaves: 1}},
	{ID: 2, Name: "psychedelic", Description: "fast and heavily warped", Config: PlasmaConfig{Scale: 0.2, Speed: 2.5, Warp: 2.5, Octaves: 3}},
	{ID: 3, Name: "fine", Description: "tight detail", Config: PlasmaConfig{Scale: 0.4, Speed: 1, Warp: 1, Octaves: 4}},
}

// Plasma sums sine waves over the plane and warps them with Perlin noise.
type Plasma struct {
	pattern.NoMouse
	pattern.Tunable[PlasmaConfig]

	theme theme.Theme
	field *noise.Field
	mean  float64
	cells int
}

func NewPlasma(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(plasmaDefaults, opts, plasmaPresets)
	if err != nil {
		return nil, err
	}
	return &Plasma{Tunable: t, theme: opts.Theme, field: noise.New(opts.Seed)}, nil
}

func (p *Plasma) Name() string { return "plasma" }

func (p *Plasma) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	cfg := p.Config()
	tt := t * cfg.Speed
	sum := 0.0
	p.cells = size.Area()
	for y := 0; y < size.Height; y++ {
		ny := float64(y) * cfg.Scale * aspect
		for x := 0; x < size.Width; x++ {
			nx := float64(x) * cfg.Scale
			warp := 0.0
			if cfg.Warp > 0 {
				warp = (p.field.FBM(nx*0.5, ny*0.5, tt*0.15, cfg.Octaves)*2 - 1) * cfg.Warp * math.Pi
			}
			v := math.Sin(nx+tt+warp) +
				math.Sin(ny+tt*0.7) +
				math.Sin(nx+ny+tt*0.5+warp) +
				math.Sin(math.Sqrt(nx*nx+ny*ny)+tt*1.3)
			v = (v + 4) / 8
			sum += v
			g.Set(x, y, buffer.NewCell(ramp(rampASCII, v), p.theme.Sample(v)))
		}
	}
	if p.cells > 0 {
		p.mean = sum / float64(p.cells)
	}
}

// Reset only clears metrics; the picture is a pure function of time.
func (p *Plasma) Reset() {
	p.mean = 0
	p.cells = 0
}

func (p *Plasma) ApplyPreset(id int) bool { return p.Apply(id, p.Reset) }

func (p *Plasma) Metrics() map[string]float64 {
	return map[string]float64{"cells": float64(p.cells), "mean": p.mean}
}
