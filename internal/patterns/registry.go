package patterns

import "github.com/san-kum/termsaver/internal/pattern"

type catalogEntry struct {
	name        string
	description string
	factory     pattern.Factory
}

var catalog = []catalogEntry{
	{"plasma", "sine plasma warped by Perlin noise", NewPlasma},
	{"fire", "rising heat buffer; the mouse adds heat", NewFire},
	{"ocean", "layered swells with foam on the crests", NewOcean},
	{"smoke", "fBm plume whose source follows the mouse", NewSmoke},
	{"ripple", "damped 2D wave equation; click to drop a stone", NewRipple},
	{"rain", "falling drops that splash on the floor", NewRain},
	{"snow", "drifting flakes piling into drifts", NewSnow},
	{"fireworks", "shells bursting into sparks; click to launch", NewFireworks},
	{"sparks", "a spray of sparks that follows the mouse", NewSparks},
	{"starfield", "3D stars; the mouse steers warp speed", NewStarfield},
	{"matrix", "falling glyph columns", NewMatrix},
	{"lavalamp", "metaballs rising and sinking", NewLavaLamp},
	{"liquid", "metaball liquid sloshing in a box; click to splash", NewLiquid},
	{"flock", "boids flocking away from the mouse", NewFlock},
	{"life", "Conway's Game of Life; click drops a glider", NewLife},
	{"maze", "maze generation and solving", NewMaze},
	{"lightning", "forked bolts; click to strike", NewLightning},
	{"tree", "fractal tree growing in the wind", NewTree},
	{"tunnel", "flight down a checkered tube", NewTunnel},
	{"spiral", "rotating logarithmic spiral arms", NewSpiral},
	{"dna", "rotating double helices", NewDNA},
}

// Register adds the whole catalog to r.
func Register(r *pattern.Registry) {
	for _, e := range catalog {
		r.Register(e.name, e.description, e.factory)
	}
}

// NewRegistry returns a registry holding every built-in pattern.
func NewRegistry() *pattern.Registry {
	r := pattern.NewRegistry()
	Register(r)
	return r
}
