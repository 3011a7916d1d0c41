package pattern

import (
	"errors"
	"testing"

	"github.com/san-kum/termsaver/internal/buffer"
)

type testConfig struct {
	Count int     `yaml:"count"`
	Speed float64 `yaml:"speed"`
}

func (c testConfig) Clamped() testConfig {
	c.Count = ClampInt(c.Count, 0, 100)
	c.Speed = ClampFloat(c.Speed, 0.1, 10)
	return c
}

type testPattern struct {
	NoMouse
	Tunable[testConfig]
	resets int
}

func (p *testPattern) Name() string                                             { return "test" }
func (p *testPattern) Render(*buffer.Grid, float64, buffer.Size, *buffer.Point) {}
func (p *testPattern) Reset()                                                   { p.resets++ }
func (p *testPattern) ApplyPreset(id int) bool                                  { return p.Apply(id, p.Reset) }
func (p *testPattern) Metrics() map[string]float64                              { return nil }

var testDefaults = testConfig{Count: 10, Speed: 1}

func newTestPattern() *testPattern {
	return &testPattern{Tunable: NewTunable(testDefaults, []PresetDef[testConfig]{
		{ID: 2, Name: "fast", Config: testConfig{Count: 20, Speed: 4}},
		{ID: 1, Name: "calm", Config: testConfig{Count: 5, Speed: 0.5}},
		{ID: 3, Name: "broken", Config: testConfig{Count: -4, Speed: 99}},
	})}
}

func TestMergePartial(t *testing.T) {
	cfg, err := Merge(testDefaults, map[string]any{"speed": 2.5})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if cfg.Count != 10 || cfg.Speed != 2.5 {
		t.Errorf("unexpected merged config %+v", cfg)
	}
}

func TestMergeClamps(t *testing.T) {
	cfg, err := Merge(testDefaults, map[string]any{"count": -5, "speed": 0})
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if cfg.Count != 0 || cfg.Speed != 0.1 {
		t.Errorf("expected clamped config, got %+v", cfg)
	}
}

func TestMergeUnknownField(t *testing.T) {
	cfg, err := Merge(testDefaults, map[string]any{"colour": 3})
	if !errors.Is(err, ErrInvalidOverride) {
		t.Errorf("expected ErrInvalidOverride, got %v", err)
	}
	if cfg != testDefaults {
		t.Errorf("expected defaults on error, got %+v", cfg)
	}
}

func TestPresetRoundTrip(t *testing.T) {
	p := newTestPattern()
	if !p.ApplyPreset(2) {
		t.Fatal("expected preset 2 to exist")
	}
	if p.Config() != (testConfig{Count: 20, Speed: 4}) {
		t.Errorf("config does not match preset: %+v", p.Config())
	}
	if p.resets != 1 {
		t.Errorf("expected one reset, got %d", p.resets)
	}
}

func TestPresetClampedOnApply(t *testing.T) {
	p := newTestPattern()
	p.ApplyPreset(3)
	if p.Config() != (testConfig{Count: 0, Speed: 10}) {
		t.Errorf("expected clamped preset config, got %+v", p.Config())
	}
}

func TestUnknownPresetLeavesConfig(t *testing.T) {
	p := newTestPattern()
	p.ApplyPreset(1)
	before := p.Config()
	if p.ApplyPreset(42) {
		t.Error("expected false for unknown preset")
	}
	if p.Config() != before {
		t.Error("unknown preset modified config")
	}
	if p.resets != 1 {
		t.Errorf("unknown preset should not reset, resets=%d", p.resets)
	}
}

func TestPresetsSorted(t *testing.T) {
	ps := newTestPattern().Presets()
	for i, want := range []int{1, 2, 3} {
		if ps[i].ID != want {
			t.Errorf("preset %d has id %d, want %d", i, ps[i].ID, want)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("b", "second", func(Options) (Pattern, error) { return newTestPattern(), nil })
	r.Register("a", "first", func(Options) (Pattern, error) { return newTestPattern(), nil })
	r.Register("c", "third", func(Options) (Pattern, error) { return newTestPattern(), nil })

	if names := r.Names(); len(names) != 3 || names[0] != "a" || names[2] != "c" {
		t.Errorf("unexpected names %v", names)
	}
	if _, err := r.New("zzz", Options{}); !errors.Is(err, ErrUnknownPattern) {
		t.Errorf("expected ErrUnknownPattern, got %v", err)
	}
	if r.Describe("b") != "second" {
		t.Errorf("unexpected description %q", r.Describe("b"))
	}

	tests := []struct {
		from   string
		offset int
		want   string
	}{
		{"a", 1, "b"},
		{"c", 1, "a"},
		{"a", -1, "c"},
		{"missing", 1, "a"},
	}
	for _, tt := range tests {
		if got := r.Neighbor(tt.from, tt.offset); got != tt.want {
			t.Errorf("Neighbor(%q, %d) = %q, want %q", tt.from, tt.offset, got, tt.want)
		}
	}
}
