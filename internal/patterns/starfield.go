package patterns

import (
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/physics"
	"github.com/san-kum/termsaver/internal/theme"
)

type StarfieldConfig struct {
	Stars  int     `yaml:"stars"`
	Speed  float64 `yaml:"speed"`
	Warp   float64 `yaml:"warp"`
	Follow bool    `yaml:"follow"`
	Trails bool    `yaml:"trails"`
}

func (c StarfieldConfig) Clamped() StarfieldConfig {
	c.Stars = pattern.ClampInt(c.Stars, 10, 2000)
	c.Speed = pattern.ClampFloat(c.Speed, 0.05, 3)
	c.Warp = pattern.ClampFloat(c.Warp, 1, 6)
	return c
}

var starfieldDefaults = StarfieldConfig{Stars: 300, Speed: 0.4, Warp: 3, Follow: true}

var starfieldPresets = []pattern.PresetDef[StarfieldConfig]{
	{ID: 1, Name: "cruise", Description: "slow drift through space", Config: StarfieldConfig{Stars: 200, Speed: 0.15, Warp: 2, Follow: true}},
	{ID: 2, Name: "hyperspace", Description: "fast with streaks", Config: StarfieldConfig{Stars: 800, Speed: 1.5, Warp: 5, Follow: true, Trails: true}},
	{ID: 3, Name: "dense", Description: "many stars, centered", Config: StarfieldConfig{Stars: 1500, Speed: 0.5, Warp: 3}},
}

type star struct {
	x, y, z float64
}

// Starfield projects 3D stars toward the viewer. A known mouse position
// steers the vanishing point and engages warp speed.
type Starfield struct {
	pattern.NoMouse
	pattern.Tunable[StarfieldConfig]

	theme   theme.Theme
	seed    int64
	rng     *rand.Rand
	clock   frameClock
	stars   []star
	center  *physics.Spring2
	size    buffer.Size
	visible int
	warping bool
}

func NewStarfield(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(starfieldDefaults, opts, starfieldPresets)
	if err != nil {
		return nil, err
	}
	s := &Starfield{Tunable: t, theme: opts.Theme, seed: opts.Seed}
	s.Reset()
	return s, nil
}

func (s *Starfield) Name() string { return "starfield" }

func (s *Starfield) Reset() {
	s.rng = newRand(s.seed)
	s.clock.reset()
	s.stars = s.stars[:0]
	s.center = physics.NewSpring2(30, 2, 0.8)
	s.size = buffer.Size{}
	s.visible = 0
	s.warping = false
}

func (s *Starfield) ApplyPreset(id int) bool { return s.Apply(id, s.Reset) }

func (s *Starfield) respawn(st *star, far bool) {
	st.x = s.rng.Float64()*2 - 1
	st.y = s.rng.Float64()*2 - 1
	st.z = s.rng.Float64()*0.9 + 0.1
	if far {
		st.z = 1
	}
}

func (s *Starfield) Render(g *buffer.Grid, t float64, size buffer.Size, mouse *buffer.Point) {
	cfg := s.Config()
	home := physics.Vec2{X: float64(size.Width) / 2, Y: float64(size.Height) / 2}
	if pattern.SizeChanged(&s.size, size) {
		s.center.Snap(home)
	}
	if size.Area() == 0 {
		return
	}
	for len(s.stars) < cfg.Stars {
		s.stars = append(s.stars, star{})
		s.respawn(&s.stars[len(s.stars)-1], false)
	}
	s.stars = s.stars[:cfg.Stars]

	target := home
	s.warping = false
	if cfg.Follow && mouse != nil {
		target = physics.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)}
		s.warping = true
	}
	c := s.center.Step(target)

	speed := cfg.Speed
	if s.warping {
		speed *= cfg.Warp
	}
	dt := s.clock.delta(t)
	sx, sy := float64(size.Width)/2, float64(size.Height)/2

	s.visible = 0
	for i := range s.stars {
		st := &s.stars[i]
		pz := st.z
		st.z -= speed * dt
		if st.z <= 0.01 {
			s.respawn(st, true)
			continue
		}
		x := c.X + st.x/st.z*sx
		y := c.Y + st.y/st.z*sy
		if x < 0 || y < 0 || x >= float64(size.Width) || y >= float64(size.Height) {
			s.respawn(st, true)
			continue
		}
		s.visible++
		bright := clamp01(1.1 - st.z)
		ch := '.'
		switch {
		case st.z < 0.2:
			ch = '@'
		case st.z < 0.4:
			ch = '*'
		case st.z < 0.7:
			ch = '+'
		}
		color := s.theme.Sample(bright)
		if (cfg.Trails || s.warping) && pz > st.z {
			px := c.X + st.x/pz*sx
			py := c.Y + st.y/pz*sy
			line(g, int(px), int(py), int(x), int(y), buffer.NewCell(slopeGlyph(x-px, y-py), color.Scale(0.5)))
		}
		g.Set(int(x), int(y), buffer.NewCell(ch, color))
	}
}

func (s *Starfield) Metrics() map[string]float64 {
	warp := 0.0
	if s.warping {
		warp = 1
	}
	return map[string]float64{"stars": float64(len(s.stars)), "visible": float64(s.visible), "warp": warp}
}
