package patterns

import (
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/theme"
)

type LavaLampConfig struct {
	Blobs     int     `yaml:"blobs"`
	Threshold float64 `yaml:"threshold"`
	Speed     float64 `yaml:"speed"`
	Radius    float64 `yaml:"radius"`
	Glow      bool    `yaml:"glow"`
}

func (c LavaLampConfig) Clamped() LavaLampConfig {
	c.Blobs = pattern.ClampInt(c.Blobs, 2, 16)
	c.Threshold = pattern.ClampFloat(c.Threshold, 0.3, 3)
	c.Speed = pattern.ClampFloat(c.Speed, 0.05, 3)
	c.Radius = pattern.ClampFloat(c.Radius, 1, 20)
	return c
}

var lavaLampDefaults = LavaLampConfig{Blobs: 6, Threshold: 1, Speed: 0.5, Radius: 6, Glow: true}

var lavaLampPresets = []pattern.PresetDef[LavaLampConfig]{
	{ID: 1, Name: "classic", Description: "a few large slow blobs", Config: LavaLampConfig{Blobs: 4, Threshold: 1, Speed: 0.3, Radius: 8, Glow: true}},
	{ID: 2, Name: "bubbly", Description: "many small quick blobs", Config: LavaLampConfig{Blobs: 14, Threshold: 1.2, Speed: 1.2, Radius: 3.5}},
	{ID: 3, Name: "molten", Description: "blobs that merge readily", Config: LavaLampConfig{Blobs: 8, Threshold: 0.6, Speed: 0.5, Radius: 6, Glow: true}},
}

type blob struct {
	x, y   float64
	vx, vy float64
	r      float64
	hue    float64
}

// LavaLamp thresholds a metaball field. Each filled cell takes the color
// of the blob contributing most to it.
type LavaLamp struct {
	pattern.NoMouse
	pattern.Tunable[LavaLampConfig]

	theme  theme.Theme
	seed   int64
	rng    *rand.Rand
	clock  frameClock
	size   buffer.Size
	blobs  []blob
	filled int
}

func NewLavaLamp(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(lavaLampDefaults, opts, lavaLampPresets)
	if err != nil {
		return nil, err
	}
	l := &LavaLamp{Tunable: t, theme: opts.Theme, seed: opts.Seed}
	l.Reset()
	return l, nil
}

func (l *LavaLamp) Name() string { return "lavalamp" }

func (l *LavaLamp) Reset() {
	l.rng = newRand(l.seed)
	l.clock.reset()
	l.size = buffer.Size{}
	l.blobs = nil
	l.filled = 0
}

func (l *LavaLamp) ApplyPreset(id int) bool { return l.Apply(id, l.Reset) }

func (l *LavaLamp) spawn(cfg LavaLampConfig, w, h float64) {
	l.blobs = l.blobs[:0]
	for i := 0; i < cfg.Blobs; i++ {
		l.blobs = append(l.blobs, blob{
			x:   l.rng.Float64() * w,
			y:   l.rng.Float64() * h,
			vx:  (l.rng.Float64() - 0.5) * 4,
			vy:  (l.rng.Float64() - 0.5) * 8,
			r:   cfg.Radius * (0.6 + 0.8*l.rng.Float64()),
			hue: float64(i) / float64(cfg.Blobs),
		})
	}
}

func (l *LavaLamp) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	cfg := l.Config()
	w, h := float64(size.Width), float64(size.Height)
	if pattern.SizeChanged(&l.size, size) || len(l.blobs) != cfg.Blobs {
		l.spawn(cfg, w, h)
	}
	if size.Area() == 0 {
		return
	}
	dt := l.clock.delta(t)

	for i := range l.blobs {
		b := &l.blobs[i]
		// Warm blobs rise at the bottom, cool ones sink at the top.
		buoyancy := (b.y/h - 0.5) * 6
		b.vy -= buoyancy * dt * cfg.Speed
		b.vy = pattern.ClampFloat(b.vy, -8, 8)
		b.x += b.vx * dt * cfg.Speed
		b.y += b.vy * dt * cfg.Speed
		if b.x < 0 || b.x >= w {
			b.vx = -b.vx
			b.x = pattern.ClampFloat(b.x, 0, w-0.01)
		}
		if b.y < 0 || b.y >= h {
			b.vy = -b.vy * 0.5
			b.y = pattern.ClampFloat(b.y, 0, h-0.01)
		}
	}

	l.filled = 0
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			field, best, bestIdx := 0.0, 0.0, 0
			for i := range l.blobs {
				b := &l.blobs[i]
				dx := float64(x) - b.x
				dy := (float64(y) - b.y) * aspect
				c := b.r * b.r / (dx*dx + dy*dy + 1e-3)
				field += c
				if c > best {
					best, bestIdx = c, i
				}
			}
			switch {
			case field >= cfg.Threshold:
				l.filled++
				v := clamp01(0.45 + 0.55*l.blobs[bestIdx].hue)
				ch := '#'
				if field < cfg.Threshold*1.3 {
					ch = '%'
				}
				g.Set(x, y, buffer.NewCell(ch, l.theme.Sample(v)))
			case cfg.Glow && field >= cfg.Threshold*0.6:
				g.Set(x, y, buffer.NewCell('.', l.theme.Sample(0.25)))
			}
		}
	}
}

func (l *LavaLamp) Metrics() map[string]float64 {
	return map[string]float64{"blobs": float64(len(l.blobs)), "filled": float64(l.filled)}
}
