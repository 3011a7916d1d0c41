package patterns

import (
	"math"
	"math/rand"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/pattern"
	"github.com/san-kum/termsaver/internal/physics"
	"github.com/san-kum/termsaver/internal/theme"
)

type TreeConfig struct {
	Depth     int     `yaml:"depth"`
	Angle     float64 `yaml:"angle"`
	Shrink    float64 `yaml:"shrink"`
	GrowSpeed float64 `yaml:"grow_speed"`
	Wind      float64 `yaml:"wind"`
	Leaves    bool    `yaml:"leaves"`
	Hold      float64 `yaml:"hold"`
}

func (c TreeConfig) Clamped() TreeConfig {
	c.Depth = pattern.ClampInt(c.Depth, 1, 12)
	c.Angle = pattern.ClampFloat(c.Angle, 5, 60)
	c.Shrink = pattern.ClampFloat(c.Shrink, 0.5, 0.85)
	c.GrowSpeed = pattern.ClampFloat(c.GrowSpeed, 0.2, 10)
	c.Wind = pattern.ClampFloat(c.Wind, 0, 1)
	c.Hold = pattern.ClampFloat(c.Hold, 0.5, 30)
	return c
}

var treeDefaults = TreeConfig{Depth: 9, Angle: 25, Shrink: 0.72, GrowSpeed: 2, Wind: 0.3, Leaves: true, Hold: 6}

var treePresets = []pattern.PresetDef[TreeConfig]{
	{ID: 1, Name: "oak", Description: "wide spreading crown", Config: TreeConfig{Depth: 10, Angle: 32, Shrink: 0.7, GrowSpeed: 2, Wind: 0.2, Leaves: true, Hold: 6}},
	{ID: 2, Name: "cypress", Description: "narrow and tall", Config: TreeConfig{Depth: 9, Angle: 12, Shrink: 0.8, GrowSpeed: 2.5, Wind: 0.1, Leaves: true, Hold: 6}},
	{ID: 3, Name: "gale", Description: "bare branches bending in wind", Config: TreeConfig{Depth: 8, Angle: 28, Shrink: 0.72, GrowSpeed: 3, Wind: 0.9, Hold: 4}},
}

// maxBranches caps the segment list regardless of depth.
const maxBranches = 4096

type branch struct {
	parent int
	angle  float64
	length float64
	depth  int
}

// Tree grows a recursive binary tree level by level and sways it in the
// wind. Once grown it holds, then regrows with new random jitter.
type Tree struct {
	pattern.NoMouse
	pattern.Tunable[TreeConfig]

	theme    theme.Theme
	seed     int64
	rng      *rand.Rand
	clock    frameClock
	size     buffer.Size
	branches []branch
	growth   float64
	hold     float64
	elapsed  float64
	trees    int
}

func NewTree(opts pattern.Options) (pattern.Pattern, error) {
	t, err := tunable(treeDefaults, opts, treePresets)
	if err != nil {
		return nil, err
	}
	tr := &Tree{Tunable: t, theme: opts.Theme, seed: opts.Seed}
	tr.Reset()
	return tr, nil
}

func (tr *Tree) Name() string { return "tree" }

func (tr *Tree) Reset() {
	tr.rng = newRand(tr.seed)
	tr.clock.reset()
	tr.size = buffer.Size{}
	tr.branches = nil
	tr.growth, tr.hold, tr.elapsed = 0, 0, 0
	tr.trees = 0
}

func (tr *Tree) ApplyPreset(id int) bool { return tr.Apply(id, tr.Reset) }

// OnMouseClick replants the tree.
func (tr *Tree) OnMouseClick(buffer.Point) { tr.branches = nil }

// build lays out the branch list breadth first so that growth can reveal
// it level by level.
func (tr *Tree) build(cfg TreeConfig, trunk float64) {
	tr.branches = tr.branches[:0]
	tr.branches = append(tr.branches, branch{parent: -1, angle: -math.Pi / 2, length: trunk})
	spread := cfg.Angle * math.Pi / 180
	for i := 0; i < len(tr.branches) && len(tr.branches) < maxBranches; i++ {
		b := tr.branches[i]
		if b.depth+1 >= cfg.Depth {
			continue
		}
		for _, side := range []float64{-1, 1} {
			jitter := (tr.rng.Float64() - 0.5) * spread * 0.5
			tr.branches = append(tr.branches, branch{
				parent: i,
				angle:  b.angle + side*spread + jitter,
				length: b.length * cfg.Shrink * (0.85 + 0.3*tr.rng.Float64()),
				depth:  b.depth + 1,
			})
		}
	}
	tr.growth, tr.hold = 0, 0
	tr.trees++
}

func (tr *Tree) Render(g *buffer.Grid, t float64, size buffer.Size, _ *buffer.Point) {
	cfg := tr.Config()
	if pattern.SizeChanged(&tr.size, size) {
		tr.branches = nil
	}
	if size.Area() == 0 {
		return
	}
	if tr.branches == nil {
		tr.build(cfg, float64(size.Height)*0.3)
	}
	dt := tr.clock.delta(t)
	tr.elapsed += dt

	if tr.growth < float64(cfg.Depth) {
		tr.growth += dt * cfg.GrowSpeed
	} else {
		tr.hold += dt
		if tr.hold >= cfg.Hold {
			tr.build(cfg, float64(size.Height)*0.3)
		}
	}

	ends := make([]physics.Vec2, len(tr.branches))
	angles := make([]float64, len(tr.branches))
	root := physics.Vec2{X: float64(size.Width) / 2, Y: float64(size.Height) - 1}
	bark := tr.theme.Color(tr.theme.Secondary)
	for i, b := range tr.branches {
		level := float64(b.depth)
		if level > tr.growth {
			break
		}
		grown := clamp01(tr.growth - level)
		sway := cfg.Wind * 0.15 * (level + 1) / float64(cfg.Depth) * math.Sin(tr.elapsed*1.3+level*0.4)
		start := root
		angles[i] = b.angle + sway
		if b.parent >= 0 {
			start = ends[b.parent]
			angles[i] = angles[b.parent] + (b.angle - tr.branches[b.parent].angle) + sway
		}
		dir := physics.FromAngle(angles[i], b.length*grown)
		dir.Y /= aspect
		ends[i] = start.Add(dir)

		ch := slopeGlyph(dir.X, dir.Y*aspect)
		color := bark.Scale(1 - 0.4*level/float64(cfg.Depth))
		sx, sy := start.Cell()
		ex, ey := ends[i].Cell()
		line(g, sx, sy, ex, ey, buffer.NewCell(ch, color))
		if cfg.Leaves && b.depth == cfg.Depth-1 && grown >= 1 {
			g.Set(ex, ey, buffer.NewCell('*', tr.theme.Sample(0.5+0.5*tr.rng.Float64())))
		}
	}
}

func (tr *Tree) Metrics() map[string]float64 {
	return map[string]float64{"branches": float64(len(tr.branches)), "growth": tr.growth, "trees": float64(tr.trees)}
}
