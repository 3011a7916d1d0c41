package pattern

import (
	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/theme"
)

// Pattern is one animated visual. It owns its simulation state and writes a
// frame into the grid handed to Render.
type Pattern interface {
	Name() string

	// Render draws exactly one frame. t is scene time in seconds, mouse is
	// nil when the pointer position is unknown. size may change between
	// calls; cached state sized from it must be rebuilt.
	Render(g *buffer.Grid, t float64, size buffer.Size, mouse *buffer.Point)

	// Reset drops all simulation state. Calling it twice equals calling it once.
	Reset()

	OnMouseMove(p buffer.Point)
	OnMouseClick(p buffer.Point)

	Presets() []Preset
	// ApplyPreset replaces the config with preset id and resets.
	ApplyPreset(id int) bool

	// Metrics returns a snapshot; it never mutates state.
	Metrics() map[string]float64
}

// Options are passed to every pattern constructor.
type Options struct {
	Seed      int64
	Theme     theme.Theme
	Overrides map[string]any
}

// NoMouse provides no-op mouse hooks for embedding.
type NoMouse struct{}

func (NoMouse) OnMouseMove(buffer.Point)  {}
func (NoMouse) OnMouseClick(buffer.Point) {}

// SizeChanged reports whether a cached size no longer matches and records
// the new one.
func SizeChanged(cached *buffer.Size, size buffer.Size) bool {
	if *cached == size {
		return false
	}
	*cached = size
	return true
}
