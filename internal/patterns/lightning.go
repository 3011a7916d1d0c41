package patterns

import (
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/physics"
	"github.com/san-kum/termsaver/internal/theme"
)

type LightningConfig struct {
	Frequency float64 `yaml:"frequency"`
	Branching float64 `yaml:"branching"`
	MaxDepth  int     `yaml:"max_depth"`
	MaxPoints int     `yaml:"max_points"`
	Fade      float64 `yaml:"fade"`
	Jitter    float64 `yaml:"jitter"`
}

func (c LightningConfig) Clamped() LightningConfig {
	c.Frequency = pattern.ClampFloat(c.Frequency, 0.05, 5)
	c.Branching = pattern.ClampFloat(c.Branching, 0, 1)
	c.MaxDepth = pattern.ClampInt(c.MaxDepth, 1, 8)
	c.MaxPoints = pattern.ClampInt(c.MaxPoints, 50, 5000)
	c.Fade = pattern.ClampFloat(c.Fade, 0.1, 3)
	c.Jitter = pattern.ClampFloat(c.Jitter, 0.05, 1)
	return c
}

var lightningDefaults = LightningConfig{Frequency: 0.7, Branching: 0.35, MaxDepth: 5, MaxPoints: 1500, Fade: 0.8, Jitter: 0.35}

var lightningPresets = []pattern.PresetDef[LightningConfig]{
	{ID: 1, Name: "distant", Description: "rare single bolts", Config: LightningConfig{Frequency: 0.25, Branching: 0.15, MaxDepth: 3, MaxPoints: 600, Fade: 0.6, Jitter: 0.3}},
	{ID: 2, Name: "storm", Description: "frequent forked strikes", Config: LightningConfig{Frequency: 2.5, Branching: 0.6, MaxDepth: 7, MaxPoints: 4000, Fade: 0.5, Jitter: 0.45}},
	{ID: 3, Name: "tesla", Description: "jagged, lingering arcs", Config: LightningConfig{Frequency: 1.2, Branching: 0.8, MaxDepth: 6, MaxPoints: 3000, Fade: 1.5, Jitter: 0.8}},
}

type segment struct {
	a, b  physics.Vec2
	depth int
}

type bolt struct {
	segments []segment
	age      float64
}

// Lightning grows bolts by recursive midpoint displacement with random
// forks. Recursion depth and the total point count are both capped.
type Lightning struct {
	pattern.NoMouse
	pattern.Tunable[LightningConfig]

	theme   theme.Theme
	seed    int64
	rng     *rand.Rand
	clock   frameClock
	size    buffer.Size
	bolts   []bolt
	spawn   float64
	queue   []buffer.Point
	strikes int
}

func NewLightning(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(lightningDefaults, opts, lightningPresets)
	if err != nil {
		return nil, err
	}
	l := &Lightning{Tunable: t, theme: opts.Theme, seed: opts.Seed}
	l.Reset()
	return l, nil
}

func (l *Lightning) Name() string { return "lightning" }

func (l *Lightning) Reset() {
	l.rng = newRand(l.seed)
	l.clock.reset()
	l.size = buffer.Size{}
	l.bolts = nil
	l.spawn = 0
	l.queue = nil
	l.strikes = 0
}

func (l *Lightning) ApplyPreset(id int) bool { return l.Apply(id, l.Reset) }

// OnMouseClick strikes the clicked point from the sky.
func (l *Lightning) OnMouseClick(p buffer.Point) {
	if len(l.queue) < 4 {
		l.queue = append(l.queue, p)
	}
}

func (l *Lightning) points() int {
	n := 0
	for _, b := range l.bolts {
		n += len(b.segments) + 1
	}
	return n
}

// strike builds a bolt from a to b unless the point budget is spent.
func (l *Lightning) strike(cfg LightningConfig, a, b physics.Vec2) {
	budget := cfg.MaxPoints - l.points() - 1
	if budget < 2 {
		return
	}
	var segs []segment
	l.subdivide(cfg, &segs, a, b, 0, cfg.Jitter, &budget)
	l.bolts = append(l.bolts, bolt{segments: segs})
	l.strikes++
}

func (l *Lightning) subdivide(cfg LightningConfig, out *[]segment, a, b physics.Vec2, depth int, jitter float64, budget *int) {
	if *budget <= 0 {
		return
	}
	if depth >= cfg.MaxDepth || *budget <= 1 || a.Dist(b) < 2 {
		*out = append(*out, segment{a: a, b: b, depth: depth})
		*budget--
		return
	}
	d := b.Sub(a)
	normal := physics.Vec2{X: -d.Y, Y: d.X}.Norm()
	mid := a.Add(d.Scale(0.5)).Add(normal.Scale((l.rng.Float64()*2 - 1) * jitter * d.Len()))
	l.subdivide(cfg, out, a, mid, depth+1, jitter*0.6, budget)
	l.subdivide(cfg, out, mid, b, depth+1, jitter*0.6, budget)

	if depth < cfg.MaxDepth-1 && l.rng.Float64() < cfg.Branching*0.5 && *budget > 4 {
		dir := mid.Sub(a).Rotate((l.rng.Float64() - 0.5) * 1.4).Scale(0.7 + l.rng.Float64()*0.6)
		l.subdivide(cfg, out, mid, mid.Add(dir), depth+2, jitter*0.6, budget)
	}
}

func (l *Lightning) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	if pattern.SizeChanged(&l.size, size) {
		l.bolts = l.bolts[:0]
	}
	if size.Area() == 0 {
		return
	}
	cfg := l.Config()
	dt := l.clock.delta(t)
	w, h := float64(size.Width), float64(size.Height)

	l.spawn += cfg.Frequency * dt
	for l.spawn >= 1 {
		l.spawn--
		top := physics.Vec2{X: w*0.1 + l.rng.Float64()*w*0.8, Y: 0}
		bottom := physics.Vec2{X: top.X + (l.rng.Float64()-0.5)*w*0.4, Y: h - 1}
		l.strike(cfg, top, bottom)
	}
	for _, p := range l.queue {
		l.strike(cfg, physics.Vec2{X: float64(p.X) + (l.rng.Float64()-0.5)*w*0.2, Y: 0}, physics.Vec2{X: float64(p.X), Y: float64(p.Y)})
	}
	l.queue = l.queue[:0]

	live := l.bolts[:0]
	for _, b := range l.bolts {
		b.age += dt
		if b.age < cfg.Fade {
			live = append(live, b)
		}
	}
	l.bolts = live

	for _, b := range l.bolts {
		fade := 1 - b.age/cfg.Fade
		flicker := 0.7 + 0.3*l.rng.Float64()
		for _, s := range b.segments {
			v := clamp01(fade * flicker * (1 - float64(s.depth)/float64(cfg.MaxDepth+3)))
			ch := slopeGlyph(s.b.X-s.a.X, (s.b.Y-s.a.Y)*aspect)
			if v < 0.3 {
				ch = '.'
			}
			ax, ay := s.a.Cell()
			bx, by := s.b.Cell()
			line(g, ax, ay, bx, by, buffer.NewCell(ch, l.theme.Sample(v)))
		}
	}
}

func (l *Lightning) Metrics() map[string]float64 {
	return map[string]float64{"bolts": float64(len(l.bolts)), "points": float64(l.points()), "strikes": float64(l.strikes)}
}
