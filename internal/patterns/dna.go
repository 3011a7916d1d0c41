package patterns

import (
	"math"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/theme"
)

type DNAConfig struct {
	Helices   int     `yaml:"helices"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
	Speed     float64 `yaml:"speed"`
	RungEvery int     `yaml:"rung_every"`
	Scroll    float64 `yaml:"scroll"`
}

func (c DNAConfig) Clamped() DNAConfig {
	c.Helices = pattern.ClampInt(c.Helices, 1, 4)
	c.Amplitude = pattern.ClampFloat(c.Amplitude, 0.1, 0.5)
	c.Frequency = pattern.ClampFloat(c.Frequency, 0.05, 1)
	c.Speed = pattern.ClampFloat(c.Speed, -5, 5)
	c.RungEvery = pattern.ClampInt(c.RungEvery, 1, 8)
	c.Scroll = pattern.ClampFloat(c.Scroll, -20, 20)
	return c
}

var dnaDefaults = DNAConfig{Helices: 1, Amplitude: 0.35, Frequency: 0.25, Speed: 1.5, RungEvery: 2, Scroll: 3}

var dnaPresets = []pattern.PresetDef[DNAConfig]{
	{ID: 1, Name: "single", Description: "one slow helix", Config: DNAConfig{Helices: 1, Amplitude: 0.4, Frequency: 0.2, Speed: 1, RungEvery: 2, Scroll: 2}},
	{ID: 2, Name: "lab", Description: "three helices side by side", Config: DNAConfig{Helices: 3, Amplitude: 0.35, Frequency: 0.3, Speed: 2, RungEvery: 3, Scroll: 4}},
	{ID: 3, Name: "spin", Description: "fast rotation, no scroll", Config: DNAConfig{Helices: 2, Amplitude: 0.45, Frequency: 0.15, Speed: 4, RungEvery: 1}},
}

var basePairs = [][2]rune{{'A', 'T'}, {'T', 'A'}, {'C', 'G'}, {'G', 'C'}}

// DNA renders rotating double helices. The strand in front is drawn
// brighter and over the rungs.
type DNA struct {
	pattern.NoMouse
	pattern.Tunable[DNAConfig]

	theme theme.Theme
	seed  int64
	rungs int
}

func NewDNA(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(dnaDefaults, opts, dnaPresets)
	if err != nil {
		return nil, err
	}
	return &DNA{Tunable: t, theme: opts.Theme, seed: opts.Seed}, nil
}

func (d *DNA) Name() string { return "dna" }

func (d *DNA) Reset() { d.rungs = 0 }

func (d *DNA) ApplyPreset(id int) bool { return d.Apply(id, d.Reset) }

func (d *DNA) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	cfg := d.Config()
	d.rungs = 0
	if size.Area() == 0 {
		return
	}
	slot := float64(size.Width) / float64(cfg.Helices)
	front := d.theme.Color(d.theme.Primary)
	back := d.theme.Color(d.theme.Secondary).Scale(0.45)
	rung := d.theme.Color(d.theme.Muted)
	scroll := t * cfg.Scroll

	for h := 0; h < cfg.Helices; h++ {
		cx := slot*float64(h) + slot/2
		amp := slot * cfg.Amplitude
		for y := 0; y < size.Height; y++ {
			row := float64(y) + scroll
			phase := row*cfg.Frequency + t*cfg.Speed + float64(h)*1.7
			s, c := math.Sin(phase), math.Cos(phase)
			xa := int(math.Round(cx + amp*s))
			xb := int(math.Round(cx - amp*s))
			ca, cb := front, back
			if c < 0 {
				ca, cb = back, front
			}

			idx := int(math.Floor(row))
			if idx%cfg.RungEvery == 0 {
				pair := basePairs[hashIndex(idx, h, d.seed)%len(basePairs)]
				lo, hi := min(xa, xb), max(xa, xb)
				mid := (lo + hi) / 2
				for x := lo + 1; x < hi; x++ {
					ch := '-'
					if x == mid {
						ch = pair[0]
						if xa > xb {
							ch = pair[1]
						}
					}
					g.Set(x, y, buffer.NewCell(ch, rung))
				}
				d.rungs++
			}
			// Back strand first so the front one overwrites it.
			if c < 0 {
				g.Set(xa, y, buffer.NewCell('o', ca))
				g.Set(xb, y, buffer.NewCell('O', cb))
			} else {
				g.Set(xb, y, buffer.NewCell('o', cb))
				g.Set(xa, y, buffer.NewCell('O', ca))
			}
		}
	}
}

// hashIndex gives a stable pseudo random index per row and helix.
func hashIndex(row, helix int, seed int64) int {
	h := uint64(row)*0x9E3779B97F4A7C15 ^ uint64(helix+1)*0xBF58476D1CE4E5B9 ^ uint64(seed)
	h ^= h >> 29
	return int(h % 1024)
}

func (d *DNA) Metrics() map[string]float64 {
	return map[string]float64{"strands": float64(d.Config().Helices * 2), "rungs": float64(d.rungs)}
}
