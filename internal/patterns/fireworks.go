package patterns

import (
	"math"
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/physics"
	"github.com/san-kum/termsaver/internal/theme"
)

type FireworksConfig struct {
	LaunchRate   float64 `yaml:"launch_rate"`
	BurstSize    int     `yaml:"burst_size"`
	Gravity      float64 `yaml:"gravity"`
	Secondary    float64 `yaml:"secondary"`
	MaxParticles int     `yaml:"max_particles"`
	Trails       bool    `yaml:"trails"`
}

func (c FireworksConfig) Clamped() FireworksConfig {
	c.LaunchRate = pattern.ClampFloat(c.LaunchRate, 0.1, 10)
	c.BurstSize = pattern.ClampInt(c.BurstSize, 10, 200)
	c.Gravity = pattern.ClampFloat(c.Gravity, 1, 50)
	c.Secondary = pattern.ClampFloat(c.Secondary, 0, 1)
	c.MaxParticles = pattern.ClampInt(c.MaxParticles, 100, 5000)
	return c
}

var fireworksDefaults = FireworksConfig{LaunchRate: 0.8, BurstSize: 60, Gravity: 12, Secondary: 0.1, MaxParticles: 2000, Trails: true}

var fireworksPresets = []pattern.PresetDef[FireworksConfig]{
	{ID: 1, Name: "quiet", Description: "an occasional shell", Config: FireworksConfig{LaunchRate: 0.3, BurstSize: 40, Gravity: 10, MaxParticles: 800}},
	{ID: 2, Name: "finale", Description: "constant launches with crackle", Config: FireworksConfig{LaunchRate: 6, BurstSize: 120, Gravity: 14, Secondary: 0.3, MaxParticles: 5000, Trails: true}},
	{ID: 3, Name: "crossette", Description: "every spark bursts again", Config: FireworksConfig{LaunchRate: 0.6, BurstSize: 30, Gravity: 12, Secondary: 1, MaxParticles: 3000, Trails: true}},
}

const (
	kindShell = iota
	kindSpark
	kindCrackle
	kindTrail
)

// Fireworks launches shells that burst into sparks; a fraction of sparks
// burst once more. The particle cap is checked before every spawn.
type Fireworks struct {
	pattern.NoMouse
	pattern.Tunable[FireworksConfig]

	theme     theme.Theme
	seed      int64
	rng       *rand.Rand
	clock     frameClock
	size      buffer.Size
	particles []physics.Particle
	hues      []float64
	spawn     float64
	queue     []buffer.Point
	bursts    int
}

func NewFireworks(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(fireworksDefaults, opts, fireworksPresets)
	if err != nil {
		return nil, err
	}
	f := &Fireworks{Tunable: t, theme: opts.Theme, seed: opts.Seed}
	f.Reset()
	return f, nil
}

func (f *Fireworks) Name() string { return "fireworks" }

func (f *Fireworks) Reset() {
	f.rng = newRand(f.seed)
	f.clock.reset()
	f.size = buffer.Size{}
	f.particles = f.particles[:0]
	f.hues = f.hues[:0]
	f.spawn = 0
	f.queue = nil
	f.bursts = 0
}

func (f *Fireworks) ApplyPreset(id int) bool { return f.Apply(id, f.Reset) }

// OnMouseClick launches a shell that bursts at the clicked point.
func (f *Fireworks) OnMouseClick(p buffer.Point) {
	if len(f.queue) < 8 {
		f.queue = append(f.queue, p)
	}
}

func (f *Fireworks) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	if pattern.SizeChanged(&f.size, size) {
		f.particles = f.particles[:0]
		f.hues = f.hues[:0]
	}
	if size.Area() == 0 {
		return
	}
	cfg := f.Config()
	dt := f.clock.delta(t)
	w, h := float64(size.Width), float64(size.Height)

	f.spawn += cfg.LaunchRate * dt
	for f.spawn >= 1 {
		f.spawn--
		x := w*0.15 + f.rng.Float64()*w*0.7
		apex := h*0.15 + f.rng.Float64()*h*0.35
		f.launch(cfg, x, apex)
	}
	for _, p := range f.queue {
		f.launch(cfg, float64(p.X), float64(p.Y))
	}
	f.queue = f.queue[:0]

	gravity := func(physics.Vec2) physics.Vec2 { return physics.Vec2{Y: cfg.Gravity} }
	n := len(f.particles)
	for i := 0; i < n; i++ {
		p := &f.particles[i]
		prev := p.Pos
		if p.Kind == kindShell {
			physics.Verlet(p, dt, gravity)
		} else {
			physics.Euler(p, dt)
		}
		switch p.Kind {
		case kindShell:
			if p.Vel.Y >= 0 {
				p.Life = 0
				f.burst(cfg, p.Pos, f.hues[i], kindSpark)
			} else if cfg.Trails {
				f.spawnParticle(cfg, physics.Particle{Pos: prev, Life: 0.3, MaxLife: 0.3, Kind: kindTrail}, f.hues[i])
			}
		case kindSpark:
			physics.Drag(p, 1.2, dt)
			if !p.Alive() && f.rng.Float64() < cfg.Secondary {
				f.burst(cfg, p.Pos, f.hues[i]+40, kindCrackle)
			}
		case kindCrackle:
			physics.Drag(p, 2, dt)
		}
		p = &f.particles[i]
		if p.Pos.Y > h+1 || p.Pos.X < -5 || p.Pos.X > w+5 {
			p.Life = 0
		}
	}
	f.compact()

	for i := range f.particles {
		p := &f.particles[i]
		x, y := p.Pos.Cell()
		age := p.Age()
		color := theme.HSV(f.hues[i], 0.9-0.5*age, 1-0.7*age)
		var ch rune
		switch p.Kind {
		case kindShell:
			ch, color = '^', f.theme.Color(f.theme.Accent)
		case kindTrail:
			ch, color = '.', f.theme.Color(f.theme.Muted)
		case kindCrackle:
			ch = '+'
		default:
			ch = '*'
			if age > 0.6 {
				ch = '.'
			} else if age > 0.3 {
				ch = '+'
			}
		}
		g.Set(x, y, buffer.NewCell(ch, color))
	}
}

func (f *Fireworks) launch(cfg FireworksConfig, x, apex float64) {
	h := float64(f.size.Height)
	rise := math.Max(h-1-apex, 1)
	// v^2 = 2 g d puts the apex at the requested row.
	vy := -math.Sqrt(2 * cfg.Gravity * rise)
	f.spawnParticle(cfg, physics.Particle{
		Pos:     physics.Vec2{X: x, Y: h - 1},
		Vel:     physics.Vec2{X: (f.rng.Float64() - 0.5) * 2, Y: vy},
		Acc:     physics.Vec2{Y: cfg.Gravity},
		Life:    10,
		MaxLife: 10,
		Kind:    kindShell,
	}, f.rng.Float64()*360)
}

func (f *Fireworks) burst(cfg FireworksConfig, at physics.Vec2, hue float64, kind int) {
	count, speed, life := cfg.BurstSize, 10.0+f.rng.Float64()*8, 1.2+f.rng.Float64()*0.8
	if kind == kindCrackle {
		count, speed, life = max(cfg.BurstSize/6, 4), 5, 0.5
	}
	f.bursts++
	for k := 0; k < count; k++ {
		a := float64(k)/float64(count)*2*math.Pi + f.rng.Float64()*0.2
		v := physics.FromAngle(a, speed*(0.5+0.5*f.rng.Float64()))
		v.Y /= aspect
		if !f.spawnParticle(cfg, physics.Particle{
			Pos:     at,
			Vel:     v,
			Acc:     physics.Vec2{Y: cfg.Gravity * 0.3},
			Life:    life,
			MaxLife: life,
			Kind:    kind,
		}, hue) {
			return
		}
	}
}

// spawnParticle appends p unless the cap is reached.
func (f *Fireworks) spawnParticle(cfg FireworksConfig, p physics.Particle, hue float64) bool {
	if len(f.particles) >= cfg.MaxParticles {
		return false
	}
	f.particles = append(f.particles, p)
	f.hues = append(f.hues, hue)
	return true
}

func (f *Fireworks) compact() {
	n := 0
	for i := range f.particles {
		if f.particles[i].Alive() {
			f.particles[n] = f.particles[i]
			f.hues[n] = f.hues[i]
			n++
		}
	}
	f.particles = f.particles[:n]
	f.hues = f.hues[:n]
}

func (f *Fireworks) Metrics() map[string]float64 {
	shells := 0
	for _, p := range f.particles {
		if p.Kind == kindShell {
			shells++
		}
	}
	return map[string]float64{
		"shells":    float64(shells),
		"particles": float64(len(f.particles)),
		"bursts":    float64(f.bursts),
	}
}
