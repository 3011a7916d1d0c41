package patterns

import (
	"math"
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/physics"
	"github.com/san-kum/termsaver/internal/theme"
)

type LiquidConfig struct {
	Blobs     int     `yaml:"blobs"`
	Radius    float64 `yaml:"radius"`
	Gravity   float64 `yaml:"gravity"`
	Viscosity float64 `yaml:"viscosity"`
	Pressure  float64 `yaml:"pressure"`
	Threshold float64 `yaml:"threshold"`
	Slosh     float64 `yaml:"slosh"`
}

func (c LiquidConfig) Clamped() LiquidConfig {
	c.Blobs = pattern.ClampInt(c.Blobs, 2, 40)
	c.Radius = pattern.ClampFloat(c.Radius, 1, 12)
	c.Gravity = pattern.ClampFloat(c.Gravity, 1, 80)
	c.Viscosity = pattern.ClampFloat(c.Viscosity, 0, 5)
	c.Pressure = pattern.ClampFloat(c.Pressure, 0, 100)
	c.Threshold = pattern.ClampFloat(c.Threshold, 0.3, 3)
	c.Slosh = pattern.ClampFloat(c.Slosh, 0, 60)
	return c
}

var liquidDefaults = LiquidConfig{Blobs: 14, Radius: 3, Gravity: 20, Viscosity: 0.8, Pressure: 30, Threshold: 1, Slosh: 8}

var liquidPresets = []pattern.PresetDef[LiquidConfig]{
	{ID: 1, Name: "mercury", Description: "heavy beads that barely slosh", Config: LiquidConfig{Blobs: 10, Radius: 2.5, Gravity: 40, Viscosity: 0.3, Pressure: 50, Threshold: 1.2}},
	{ID: 2, Name: "honey", Description: "slow thick pour", Config: LiquidConfig{Blobs: 16, Radius: 3.5, Gravity: 12, Viscosity: 3, Pressure: 20, Threshold: 0.8, Slosh: 12}},
	{ID: 3, Name: "rocking", Description: "water rocking side to side", Config: LiquidConfig{Blobs: 30, Radius: 2.5, Gravity: 25, Viscosity: 0.5, Pressure: 40, Threshold: 1, Slosh: 4}},
}

// Liquid pools metaballs in a box under a slowly tilting gravity. Blobs
// push apart when they overlap; clicks splash the blobs near the cursor.
type Liquid struct {
	pattern.NoMouse
	pattern.Tunable[LiquidConfig]

	theme    theme.Theme
	seed     int64
	rng      *rand.Rand
	clock    frameClock
	size     buffer.Size
	blobs    []physics.Particle
	radii    []float64
	queue    []buffer.Point
	filled   int
	splashes int
}

func NewLiquid(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(liquidDefaults, opts, liquidPresets)
	if err != nil {
		return nil, err
	}
	l := &Liquid{Tunable: t, theme: opts.Theme, seed: opts.Seed}
	l.Reset()
	return l, nil
}

func (l *Liquid) Name() string { return "liquid" }

func (l *Liquid) Reset() {
	l.rng = newRand(l.seed)
	l.clock.reset()
	l.size = buffer.Size{}
	l.blobs = nil
	l.radii = nil
	l.queue = nil
	l.filled = 0
	l.splashes = 0
}

func (l *Liquid) ApplyPreset(id int) bool { return l.Apply(id, l.Reset) }

// OnMouseClick splashes the blobs around the clicked point.
func (l *Liquid) OnMouseClick(p buffer.Point) {
	if len(l.queue) < 8 {
		l.queue = append(l.queue, p)
	}
}

// pour drops the blobs in from the top half of the box.
func (l *Liquid) pour(cfg LiquidConfig, w, h float64) {
	l.blobs = l.blobs[:0]
	l.radii = l.radii[:0]
	for range cfg.Blobs {
		l.blobs = append(l.blobs, physics.Particle{
			Pos:  physics.Vec2{X: l.rng.Float64() * w, Y: l.rng.Float64() * h * 0.5},
			Vel:  physics.Vec2{X: (l.rng.Float64() - 0.5) * 6},
			Life: 1,
		})
		l.radii = append(l.radii, cfg.Radius*(0.7+0.6*l.rng.Float64()))
	}
}

func (l *Liquid) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	cfg := l.Config()
	w, h := float64(size.Width), float64(size.Height)
	if pattern.SizeChanged(&l.size, size) || len(l.blobs) != cfg.Blobs {
		l.pour(cfg, w, h)
	}
	if size.Area() == 0 {
		return
	}
	dt := l.clock.delta(t)

	tilt := 0.0
	if cfg.Slosh > 0 {
		tilt = 0.35 * math.Sin(2*math.Pi*t/cfg.Slosh)
	}
	gravity := physics.FromAngle(math.Pi/2+tilt, cfg.Gravity)

	for _, p := range l.queue {
		at := physics.Vec2{X: float64(p.X), Y: float64(p.Y)}
		for i := range l.blobs {
			b := &l.blobs[i]
			d := physics.Vec2{X: b.Pos.X - at.X, Y: (b.Pos.Y - at.Y) * aspect}
			if d.LenSq() < 100 {
				b.Vel = b.Vel.Add(d.Norm().Scale(15)).Add(physics.Vec2{Y: -cfg.Gravity * 0.6})
			}
		}
		l.splashes++
	}
	l.queue = l.queue[:0]

	// Overlapping blobs push apart along the line between them.
	for i := range l.blobs {
		for j := i + 1; j < len(l.blobs); j++ {
			a, b := &l.blobs[i], &l.blobs[j]
			d := physics.Vec2{X: b.Pos.X - a.Pos.X, Y: (b.Pos.Y - a.Pos.Y) * aspect}
			reach := (l.radii[i] + l.radii[j]) * 0.8
			dist := d.Len()
			if dist >= reach || dist == 0 {
				continue
			}
			push := d.Norm().Scale((reach - dist) / reach * cfg.Pressure * dt)
			push.Y /= aspect
			a.Vel = a.Vel.Sub(push)
			b.Vel = b.Vel.Add(push)
		}
	}

	box := physics.Screen(size.Width, size.Height)
	for i := range l.blobs {
		b := &l.blobs[i]
		b.Vel = b.Vel.Add(physics.Vec2{X: gravity.X, Y: gravity.Y / aspect}.Scale(dt))
		physics.Drag(b, cfg.Viscosity, dt)
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		physics.Bounce(b, box, 0.3)
	}

	l.filled = 0
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			field := 0.0
			for i := range l.blobs {
				b := &l.blobs[i]
				dx := float64(x) + 0.5 - b.Pos.X
				dy := (float64(y) + 0.5 - b.Pos.Y) * aspect
				field += l.radii[i] * l.radii[i] / (dx*dx + dy*dy + 1e-3)
			}
			if field < cfg.Threshold {
				continue
			}
			l.filled++
			if field < cfg.Threshold*1.15 {
				g.Set(x, y, buffer.NewCell('~', l.theme.Sample(0.9)))
				continue
			}
			shade(g, x, y, 0.3+0.7*clamp01((field-cfg.Threshold)/(3*cfg.Threshold)), rampWater, l.theme)
		}
	}
}

func (l *Liquid) Metrics() map[string]float64 {
	energy := 0.0
	for _, b := range l.blobs {
		energy += 0.5 * b.Vel.LenSq()
	}
	return map[string]float64{
		"blobs":    float64(len(l.blobs)),
		"filled":   float64(l.filled),
		"splashes": float64(l.splashes),
		"energy":   energy,
	}
}
