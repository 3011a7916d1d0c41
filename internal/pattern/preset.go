package pattern

import "sort"

// Config is implemented by every pattern config struct. Clamped returns a
// copy with each numeric field forced into its valid range.
type Config[C any] interface {
	Clamped() C
}

// Preset is a named, numbered, immutable configuration snapshot.
type Preset struct {
	ID          int
	Name        string
	Description string
	Config      any
}

// PresetDef declares one preset of a concrete config type.
type PresetDef[C any] struct {
	ID          int
	Name        string
	Description string
	Config      C
}

// Tunable holds a pattern's effective config alongside its preset table.
// Patterns embed it.
type Tunable[C Config[C]] struct {
	cfg     C
	presets []PresetDef[C]
}

// NewTunable clamps the initial config and sorts presets by ID.
func NewTunable[C Config[C]](initial C, presets []PresetDef[C]) Tunable[C] {
	sorted := make([]PresetDef[C], len(presets))
	copy(sorted, presets)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	return Tunable[C]{cfg: initial.Clamped(), presets: sorted}
}

// Config returns the effective config.
func (t *Tunable[C]) Config() C { return t.cfg }

// SetConfig replaces the effective config after clamping.
func (t *Tunable[C]) SetConfig(c C) { t.cfg = c.Clamped() }

// Current returns the effective config without its static type, for
// callers that only hold a Pattern.
func (t *Tunable[C]) Current() any { return t.cfg }

// Presets lists the preset table in id order. Configs are reported as
// they would be applied.
func (t *Tunable[C]) Presets() []Preset {
	out := make([]Preset, len(t.presets))
	for i, p := range t.presets {
		out[i] = Preset{ID: p.ID, Name: p.Name, Description: p.Description, Config: p.Config.Clamped()}
	}
	return out
}

// Preset looks up a preset by id.
func (t *Tunable[C]) Preset(id int) (PresetDef[C], bool) {
	for _, p := range t.presets {
		if p.ID == id {
			return p, true
		}
	}
	return PresetDef[C]{}, false
}

// Apply swaps in preset id and calls reset. Unknown ids change nothing.
func (t *Tunable[C]) Apply(id int, reset func()) bool {
	p, ok := t.Preset(id)
	if !ok {
		return false
	}
	t.cfg = p.Config.Clamped()
	if reset != nil {
		reset()
	}
	return true
}
