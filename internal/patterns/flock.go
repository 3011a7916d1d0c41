package patterns

import (
	"math"
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/physics"
	"github.com/san-kum/termsaver/internal/theme"
)

type FlockConfig struct {
	Boids      int     `yaml:"boids"`
	Separation float64 `yaml:"separation"`
	Alignment  float64 `yaml:"alignment"`
	Cohesion   float64 `yaml:"cohesion"`
	MaxSpeed   float64 `yaml:"max_speed"`
	Perception float64 `yaml:"perception"`
	MouseRepel float64 `yaml:"mouse_repel"`
}

func (c FlockConfig) Clamped() FlockConfig {
	c.Boids = pattern.ClampInt(c.Boids, 5, 400)
	c.Separation = pattern.ClampFloat(c.Separation, 0, 5)
	c.Alignment = pattern.ClampFloat(c.Alignment, 0, 5)
	c.Cohesion = pattern.ClampFloat(c.Cohesion, 0, 5)
	c.MaxSpeed = pattern.ClampFloat(c.MaxSpeed, 1, 60)
	c.Perception = pattern.ClampFloat(c.Perception, 1, 30)
	c.MouseRepel = pattern.ClampFloat(c.MouseRepel, 0, 100)
	return c
}

var flockDefaults = FlockConfig{Boids: 80, Separation: 1.5, Alignment: 1, Cohesion: 0.8, MaxSpeed: 18, Perception: 8, MouseRepel: 30}

var flockPresets = []pattern.PresetDef[FlockConfig]{
	{ID: 1, Name: "starlings", Description: "large tight flock", Config: FlockConfig{Boids: 250, Separation: 1.2, Alignment: 1.5, Cohesion: 1.2, MaxSpeed: 20, Perception: 6, MouseRepel: 40}},
	{ID: 2, Name: "scatter", Description: "loose, mostly separating", Config: FlockConfig{Boids: 60, Separation: 3, Alignment: 0.3, Cohesion: 0.2, MaxSpeed: 14, Perception: 10, MouseRepel: 20}},
	{ID: 3, Name: "school", Description: "fish moving in lockstep", Config: FlockConfig{Boids: 120, Separation: 1, Alignment: 3, Cohesion: 1, MaxSpeed: 12, Perception: 12, MouseRepel: 60}},
}

// Flock runs Reynolds boids on a wrapping plane; the mouse repels them.
type Flock struct {
	pattern.NoMouse
	pattern.Tunable[FlockConfig]

	theme theme.Theme
	seed  int64
	rng   *rand.Rand
	clock frameClock
	size  buffer.Size
	boids []physics.Particle
	accel []physics.Vec2
}

func NewFlock(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(flockDefaults, opts, flockPresets)
	if err != nil {
		return nil, err
	}
	f := &Flock{Tunable: t, theme: opts.Theme, seed: opts.Seed}
	f.Reset()
	return f, nil
}

func (f *Flock) Name() string { return "flock" }

func (f *Flock) Reset() {
	f.rng = newRand(f.seed)
	f.clock.reset()
	f.size = buffer.Size{}
	f.boids = nil
	f.accel = nil
}

func (f *Flock) ApplyPreset(id int) bool { return f.Apply(id, f.Reset) }

func (f *Flock) populate(cfg FlockConfig, w, h float64) {
	f.boids = f.boids[:0]
	for i := 0; i < cfg.Boids; i++ {
		f.boids = append(f.boids, physics.Particle{
			Pos:  physics.Vec2{X: f.rng.Float64() * w, Y: f.rng.Float64() * h},
			Vel:  physics.FromAngle(f.rng.Float64()*2*math.Pi, cfg.MaxSpeed*0.5),
			Life: 1,
		})
	}
	f.accel = make([]physics.Vec2, cfg.Boids)
}

func (f *Flock) Render(g *buffer.Grid, t float64, size buffer.Size, mouse *buffer.Point) {
	cfg := f.Config()
	w, h := float64(size.Width), float64(size.Height)
	if pattern.SizeChanged(&f.size, size) || len(f.boids) != cfg.Boids {
		f.populate(cfg, w, h)
	}
	if size.Area() == 0 {
		return
	}
	dt := f.clock.delta(t)
	bounds := physics.Screen(size.Width, size.Height)

	// Positions are in cell units with y stretched so distances look round.
	r2 := cfg.Perception * cfg.Perception
	for i := range f.boids {
		b := &f.boids[i]
		var sep, ali, coh physics.Vec2
		n := 0
		for j := range f.boids {
			if i == j {
				continue
			}
			o := &f.boids[j]
			d := physics.Vec2{X: o.Pos.X - b.Pos.X, Y: (o.Pos.Y - b.Pos.Y) * aspect}
			dist2 := d.LenSq()
			if dist2 > r2 || dist2 == 0 {
				continue
			}
			n++
			sep = sep.Sub(d.Scale(1 / dist2))
			ali = ali.Add(o.Vel)
			coh = coh.Add(d)
		}
		a := physics.Vec2{}
		if n > 0 {
			inv := 1 / float64(n)
			a = a.Add(sep.Scale(cfg.Separation * cfg.MaxSpeed))
			a = a.Add(ali.Scale(inv).Sub(b.Vel).Scale(cfg.Alignment))
			a = a.Add(coh.Scale(inv).Scale(cfg.Cohesion))
		}
		if mouse != nil && cfg.MouseRepel > 0 {
			d := physics.Vec2{X: b.Pos.X - float64(mouse.X), Y: (b.Pos.Y - float64(mouse.Y)) * aspect}
			if dist2 := d.LenSq(); dist2 < r2*4 && dist2 > 0 {
				a = a.Add(d.Norm().Scale(cfg.MouseRepel * (1 - dist2/(r2*4))))
			}
		}
		f.accel[i] = a
	}

	for i := range f.boids {
		b := &f.boids[i]
		b.Vel = b.Vel.Add(f.accel[i].Scale(dt)).Limit(cfg.MaxSpeed)
		if b.Vel.Len() < cfg.MaxSpeed*0.3 {
			b.Vel = b.Vel.Norm().Scale(cfg.MaxSpeed * 0.3)
		}
		b.Pos = b.Pos.Add(physics.Vec2{X: b.Vel.X * dt, Y: b.Vel.Y * dt / aspect})
		physics.Wrap(b, bounds)
	}

	for i := range f.boids {
		b := &f.boids[i]
		x, y := b.Pos.Cell()
		v := clamp01(b.Vel.Len() / cfg.MaxSpeed)
		g.Set(x, y, buffer.NewCell(headingGlyph(b.Vel), f.theme.Sample(0.4+0.6*v)))
	}
}

func headingGlyph(v physics.Vec2) rune {
	a := math.Mod(v.Angle()*180/math.Pi+360+22.5, 360)
	return []rune{'>', '\\', 'v', '/', '<', '\\', '^', '/'}[int(a/45)%8]
}

func (f *Flock) Metrics() map[string]float64 {
	speed := 0.0
	for _, b := range f.boids {
		speed += b.Vel.Len()
	}
	if len(f.boids) > 0 {
		speed /= float64(len(f.boids))
	}
	return map[string]float64{"boids": float64(len(f.boids)), "avg_speed": speed}
}
