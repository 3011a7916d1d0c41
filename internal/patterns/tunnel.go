package patterns

import (
	"math"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/physics"
	"github.com/san-kum/termsaver/internal/theme"
)

type TunnelConfig struct {
	Speed    float64 `yaml:"speed"`
	Twist    float64 `yaml:"twist"`
	Rings    float64 `yaml:"rings"`
	Sectors  int     `yaml:"sectors"`
	Rotation float64 `yaml:"rotation"`
	Follow   bool    `yaml:"follow"`
}

func (c TunnelConfig) Clamped() TunnelConfig {
	c.Speed = pattern.ClampFloat(c.Speed, 0.1, 5)
	c.Twist = pattern.ClampFloat(c.Twist, -3, 3)
	c.Rings = pattern.ClampFloat(c.Rings, 1, 20)
	c.Sectors = pattern.ClampInt(c.Sectors, 2, 32)
	c.Rotation = pattern.ClampFloat(c.Rotation, -3, 3)
	return c
}

var tunnelDefaults = TunnelConfig{Speed: 1, Twist: 0.5, Rings: 6, Sectors: 8, Rotation: 0.3, Follow: true}

var tunnelPresets = []pattern.PresetDef[TunnelConfig]{
	{ID: 1, Name: "wormhole", Description: "twisting fast ride", Config: TunnelConfig{Speed: 2.5, Twist: 1.5, Rings: 8, Sectors: 6, Rotation: 0.8, Follow: true}},
	{ID: 2, Name: "corridor", Description: "straight checkered hall", Config: TunnelConfig{Speed: 0.8, Twist: 0, Rings: 4, Sectors: 12, Rotation: 0}},
	{ID: 3, Name: "vortex", Description: "dense spinning rings", Config: TunnelConfig{Speed: 1.2, Twist: -2, Rings: 14, Sectors: 16, Rotation: -1.5, Follow: true}},
}

// Tunnel maps a checkered texture onto polar coordinates so the viewer
// appears to fly down a tube. The vanishing point trails the mouse.
type Tunnel struct {
	pattern.NoMouse
	pattern.Tunable[TunnelConfig]

	theme  theme.Theme
	size   buffer.Size
	center *physics.Spring2
	depth  float64
}

func NewTunnel(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(tunnelDefaults, opts, tunnelPresets)
	if err != nil {
		return nil, err
	}
	tu := &Tunnel{Tunable: t, theme: opts.Theme}
	tu.Reset()
	return tu, nil
}

func (tu *Tunnel) Name() string { return "tunnel" }

func (tu *Tunnel) Reset() {
	tu.size = buffer.Size{}
	tu.center = physics.NewSpring2(30, 1.5, 0.9)
	tu.depth = 0
}

func (tu *Tunnel) ApplyPreset(id int) bool { return tu.Apply(id, tu.Reset) }

func (tu *Tunnel) Render(g *buffer.Grid, t float64, size buffer.Size, mouse *buffer.Point) {
	cfg := tu.Config()
	home := physics.Vec2{X: float64(size.Width) / 2, Y: float64(size.Height) / 2}
	if pattern.SizeChanged(&tu.size, size) {
		tu.center.Snap(home)
	}
	if size.Area() == 0 {
		return
	}
	target := home
	if cfg.Follow && mouse != nil {
		target = physics.Vec2{X: float64(mouse.X), Y: float64(mouse.Y)}
	}
	c := tu.center.Step(target)
	tu.depth = t * cfg.Speed
	scale := math.Min(float64(size.Width), float64(size.Height)*aspect) / 2

	for y := 0; y < size.Height; y++ {
		dy := (float64(y) - c.Y) * aspect
		for x := 0; x < size.Width; x++ {
			dx := float64(x) - c.X
			r := math.Hypot(dx, dy) / scale
			if r < 0.04 {
				continue
			}
			angle := math.Atan2(dy, dx)
			u := angle/(2*math.Pi)*float64(cfg.Sectors) + t*cfg.Rotation + cfg.Twist/r*0.2
			v := cfg.Rings/r*0.25 + tu.depth
			check := (int(math.Floor(u)) + int(math.Floor(v))) & 1
			light := clamp01(r * 1.2)
			if check == 0 {
				light *= 0.55
			}
			g.Set(x, y, buffer.NewCell(ramp(rampASCII, light), tu.theme.Sample(light)))
		}
	}
}

func (tu *Tunnel) Metrics() map[string]float64 {
	return map[string]float64{"depth": tu.depth, "center_x": tu.center.Pos.X, "center_y": tu.center.Pos.Y}
}
