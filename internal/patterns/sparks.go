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

type SparksConfig struct {
	Rate      float64 `yaml:"rate"`
	Speed     float64 `yaml:"speed"`
	Spread    float64 `yaml:"spread"`
	Gravity   float64 `yaml:"gravity"`
	Bounce    float64 `yaml:"bounce"`
	Wander    float64 `yaml:"wander"`
	Life      float64 `yaml:"life"`
	MaxSparks int     `yaml:"max_sparks"`
	Follow    bool    `yaml:"follow"`
}

func (c SparksConfig) Clamped() SparksConfig {
	c.Rate = pattern.ClampFloat(c.Rate, 1, 2000)
	c.Speed = pattern.ClampFloat(c.Speed, 1, 80)
	c.Spread = pattern.ClampFloat(c.Spread, 0, 180)
	c.Gravity = pattern.ClampFloat(c.Gravity, 0, 100)
	c.Bounce = pattern.ClampFloat(c.Bounce, 0, 0.95)
	c.Wander = pattern.ClampFloat(c.Wander, 0, 40)
	c.Life = pattern.ClampFloat(c.Life, 0.2, 6)
	c.MaxSparks = pattern.ClampInt(c.MaxSparks, 50, 5000)
	return c
}

var sparksDefaults = SparksConfig{Rate: 120, Speed: 25, Spread: 30, Gravity: 30, Bounce: 0.4, Wander: 6, Life: 1.5, MaxSparks: 2000, Follow: true}

var sparksPresets = []pattern.PresetDef[SparksConfig]{
	{ID: 1, Name: "grinder", Description: "a tight jet of fast sparks", Config: SparksConfig{Rate: 400, Speed: 45, Spread: 15, Gravity: 40, Bounce: 0.5, Wander: 2, Life: 1, MaxSparks: 4000, Follow: true}},
	{ID: 2, Name: "sparkler", Description: "slow sparks in every direction", Config: SparksConfig{Rate: 200, Speed: 12, Spread: 180, Gravity: 8, Wander: 10, Life: 0.8, MaxSparks: 2000, Follow: true}},
	{ID: 3, Name: "fountain", Description: "a tall arc that rains back down", Config: SparksConfig{Rate: 150, Speed: 30, Spread: 10, Gravity: 25, Bounce: 0.3, Wander: 4, Life: 2.5, MaxSparks: 3000}},
}

// Sparks sprays short-lived particles from an emitter that follows the
// mouse. Sparks wander along a noise field and bounce off the floor;
// clicks throw a ring of sparks.
type Sparks struct {
	pattern.NoMouse
	pattern.Tunable[SparksConfig]

	theme   theme.Theme
	seed    int64
	rng     *rand.Rand
	field   *noise.Field
	clock   frameClock
	size    buffer.Size
	sparks  []physics.Particle
	spawn   float64
	queue   []buffer.Point
	emitted int
	bounces int
}

func NewSparks(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(sparksDefaults, opts, sparksPresets)
	if err != nil {
		return nil, err
	}
	s := &Sparks{Tunable: t, theme: opts.Theme, seed: opts.Seed, field: noise.New(opts.Seed)}
	s.Reset()
	return s, nil
}

func (s *Sparks) Name() string { return "sparks" }

func (s *Sparks) Reset() {
	s.rng = newRand(s.seed)
	s.clock.reset()
	s.size = buffer.Size{}
	s.sparks = s.sparks[:0]
	s.spawn = 0
	s.queue = nil
	s.emitted = 0
	s.bounces = 0
}

func (s *Sparks) ApplyPreset(id int) bool { return s.Apply(id, s.Reset) }

// OnMouseClick throws a ring of sparks from the clicked point.
func (s *Sparks) OnMouseClick(p buffer.Point) {
	if len(s.queue) < 8 {
		s.queue = append(s.queue, p)
	}
}

func (s *Sparks) Render(g *buffer.Grid, t float64, size buffer.Size, mouse *buffer.Point) {
	if pattern.SizeChanged(&s.size, size) {
		s.sparks = s.sparks[:0]
	}
	if size.Area() == 0 {
		return
	}
	cfg := s.Config()
	dt := s.clock.delta(t)
	w, h := float64(size.Width), float64(size.Height)

	origin := physics.Vec2{X: w / 2, Y: h - 1}
	if cfg.Follow && mouse != nil && g.InBounds(mouse.X, mouse.Y) {
		origin = physics.Vec2{X: float64(mouse.X) + 0.5, Y: float64(mouse.Y) + 0.5}
	}
	spread := cfg.Spread * math.Pi / 180
	s.spawn += cfg.Rate * dt
	for s.spawn >= 1 {
		s.spawn--
		a := -math.Pi/2 + (s.rng.Float64()*2-1)*spread
		s.emit(cfg, origin, a, cfg.Speed*(0.6+0.4*s.rng.Float64()))
	}
	for _, p := range s.queue {
		at := physics.Vec2{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}
		for k := 0; k < 40; k++ {
			s.emit(cfg, at, float64(k)/40*2*math.Pi, cfg.Speed*0.5)
		}
	}
	s.queue = s.queue[:0]

	// The top is open so high sparks can fall back in.
	box := physics.Bounds{MaxX: w, MinY: -4 * h, MaxY: h}
	for i := range s.sparks {
		p := &s.sparks[i]
		p.Acc = physics.Vec2{
			X: s.field.At2(float64(p.Kind)*0.37, t*2) * cfg.Wander,
			Y: cfg.Gravity,
		}
		physics.Euler(p, dt)
		physics.Drag(p, 0.3, dt)
		if physics.Bounce(p, box, cfg.Bounce) {
			s.bounces++
		}
	}
	s.sparks = physics.Compact(s.sparks)

	for i := range s.sparks {
		p := &s.sparks[i]
		x, y := p.Pos.Cell()
		age := p.Age()
		ch := '*'
		if age > 0.6 {
			ch = '.'
		} else if age > 0.3 {
			ch = '+'
		}
		g.Set(x, y, buffer.NewCell(ch, theme.HSV(50*(1-age), 0.3+0.7*age, 1-0.6*age)))
	}
}

// emit adds one spark unless the cap is reached. Kind numbers sparks so
// each one samples its own row of the noise field.
func (s *Sparks) emit(cfg SparksConfig, at physics.Vec2, angle, speed float64) {
	if len(s.sparks) >= cfg.MaxSparks {
		return
	}
	v := physics.FromAngle(angle, speed)
	v.Y /= aspect
	life := cfg.Life * (0.5 + s.rng.Float64())
	s.sparks = append(s.sparks, physics.Particle{Pos: at, Vel: v, Life: life, MaxLife: life, Kind: s.emitted})
	s.emitted++
}

func (s *Sparks) Metrics() map[string]float64 {
	return map[string]float64{"sparks": float64(len(s.sparks)), "emitted": float64(s.emitted), "bounces": float64(s.bounces)}
}
