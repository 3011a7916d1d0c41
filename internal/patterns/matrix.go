package patterns

import (
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/theme"
)

type MatrixConfig struct {
	Density  float64 `yaml:"density"`
	MinSpeed float64 `yaml:"min_speed"`
	MaxSpeed float64 `yaml:"max_speed"`
	Trail    int     `yaml:"trail"`
	Glitch   float64 `yaml:"glitch"`
	Charset  string  `yaml:"charset"`
}

func (c MatrixConfig) Clamped() MatrixConfig {
	c.Density = pattern.ClampFloat(c.Density, 0.05, 1)
	c.MinSpeed = pattern.ClampFloat(c.MinSpeed, 1, 60)
	c.MaxSpeed = pattern.ClampFloat(c.MaxSpeed, c.MinSpeed, 80)
	c.Trail = pattern.ClampInt(c.Trail, 2, 60)
	c.Glitch = pattern.ClampFloat(c.Glitch, 0, 1)
	if _, ok := matrixCharsets[c.Charset]; !ok {
		c.Charset = "katakana"
	}
	return c
}

var matrixCharsets = map[string][]rune{
	"katakana": []rune("ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789"),
	"ascii":    []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789@#$%&*+=<>?"),
	"binary":   []rune("01"),
}

var matrixDefaults = MatrixConfig{Density: 0.6, MinSpeed: 8, MaxSpeed: 24, Trail: 14, Glitch: 0.05, Charset: "katakana"}

var matrixPresets = []pattern.PresetDef[MatrixConfig]{
	{ID: 1, Name: "classic", Description: "green katakana rain", Config: MatrixConfig{Density: 0.6, MinSpeed: 8, MaxSpeed: 24, Trail: 14, Glitch: 0.05, Charset: "katakana"}},
	{ID: 2, Name: "binary", Description: "dense falling bits", Config: MatrixConfig{Density: 0.9, MinSpeed: 12, MaxSpeed: 36, Trail: 20, Glitch: 0.15, Charset: "binary"}},
	{ID: 3, Name: "sparse", Description: "slow, long trails", Config: MatrixConfig{Density: 0.25, MinSpeed: 4, MaxSpeed: 10, Trail: 30, Glitch: 0.02, Charset: "ascii"}},
}

type column struct {
	head   float64
	speed  float64
	length int
	glyphs []rune
	active bool
	wait   float64
}

// Matrix drops glyph columns with fading trails.
type Matrix struct {
	pattern.NoMouse
	pattern.Tunable[MatrixConfig]

	theme   theme.Theme
	seed    int64
	rng     *rand.Rand
	clock   frameClock
	size    buffer.Size
	columns []column
}

func NewMatrix(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(matrixDefaults, opts, matrixPresets)
	if err != nil {
		return nil, err
	}
	m := &Matrix{Tunable: t, theme: opts.Theme, seed: opts.Seed}
	m.Reset()
	return m, nil
}

func (m *Matrix) Name() string { return "matrix" }

func (m *Matrix) Reset() {
	m.rng = newRand(m.seed)
	m.clock.reset()
	m.size = buffer.Size{}
	m.columns = nil
}

func (m *Matrix) ApplyPreset(id int) bool { return m.Apply(id, m.Reset) }

func (m *Matrix) start(c *column, cfg MatrixConfig, h int) {
	chars := matrixCharsets[cfg.Charset]
	c.active = true
	c.head = -m.rng.Float64() * float64(h) * 0.5
	c.speed = cfg.MinSpeed + m.rng.Float64()*(cfg.MaxSpeed-cfg.MinSpeed)
	c.length = cfg.Trail/2 + m.rng.Intn(cfg.Trail/2+1)
	if cap(c.glyphs) < h {
		c.glyphs = make([]rune, h)
	}
	c.glyphs = c.glyphs[:h]
	for i := range c.glyphs {
		c.glyphs[i] = chars[m.rng.Intn(len(chars))]
	}
}

func (m *Matrix) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	cfg := m.Config()
	if pattern.SizeChanged(&m.size, size) {
		m.columns = make([]column, size.Width)
	}
	if size.Area() == 0 {
		return
	}
	dt := m.clock.delta(t)
	chars := matrixCharsets[cfg.Charset]
	head := m.theme.Color(m.theme.Text)
	body := m.theme.Color(m.theme.Primary)

	for x := range m.columns {
		c := &m.columns[x]
		if !c.active {
			c.wait -= dt
			if c.wait <= 0 && m.rng.Float64() < cfg.Density {
				m.start(c, cfg, size.Height)
			} else if c.wait <= 0 {
				c.wait = m.rng.Float64() * 2
			}
			continue
		}
		c.head += c.speed * dt
		if int(c.head)-c.length > size.Height {
			c.active = false
			c.wait = m.rng.Float64() * 1.5
			continue
		}
		for k := 0; k <= c.length; k++ {
			y := int(c.head) - k
			if y < 0 || y >= size.Height {
				continue
			}
			if m.rng.Float64() < cfg.Glitch*dt*10 {
				c.glyphs[y] = chars[m.rng.Intn(len(chars))]
			}
			if k == 0 {
				g.Set(x, y, buffer.NewCell(c.glyphs[y], head))
				continue
			}
			fade := 1 - float64(k)/float64(c.length+1)
			g.Set(x, y, buffer.NewCell(c.glyphs[y], body.Scale(0.25+0.75*fade)))
		}
	}
}

func (m *Matrix) Metrics() map[string]float64 {
	active := 0
	for _, c := range m.columns {
		if c.active {
			active++
		}
	}
	return map[string]float64{"columns": float64(len(m.columns)), "active": float64(active)}
}
