package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/engine"
)

func TestFrameRate(t *testing.T) {
	clock := engine.NewManualClock()
	m := NewFrameRate(clock)

	if m.Value() != 0 {
		t.Error("expected zero rate before any frame")
	}
	for range 16 {
		m.Observe(engine.FrameInfo{})
		clock.Advance(100 * time.Millisecond)
	}
	if got := m.Value(); math.Abs(got-10) > 1e-9 {
		t.Errorf("expected 10 fps, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero rate after reset")
	}
}

func TestRenderTimeIgnoresSkipped(t *testing.T) {
	m := NewRenderTime()
	m.Observe(engine.FrameInfo{RenderTime: 2 * time.Millisecond})
	m.Observe(engine.FrameInfo{RenderTime: 4 * time.Millisecond})
	m.Observe(engine.FrameInfo{RenderTime: time.Second, Skipped: true})

	if got := m.Value(); math.Abs(got-3) > 1e-9 {
		t.Errorf("expected 3ms, got %f", got)
	}
}

func TestChurn(t *testing.T) {
	tests := []struct {
		name     string
		frames   []engine.FrameInfo
		expected float64
	}{
		{"empty", nil, 0},
		{"full", []engine.FrameInfo{{Size: buffer.Size{Width: 10, Height: 4}, Changes: 40}}, 1},
		{"half", []engine.FrameInfo{
			{Size: buffer.Size{Width: 10, Height: 4}, Changes: 40},
			{Size: buffer.Size{Width: 10, Height: 4}, Changes: 0},
		}, 0.5},
		{"zero size", []engine.FrameInfo{{Changes: 3}}, 0},
	}

	for _, tt := range tests {
		m := NewChurn()
		for _, f := range tt.frames {
			m.Observe(f)
		}
		if got := m.Value(); math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("%s: expected %f, got %f", tt.name, tt.expected, got)
		}
	}
}

func TestHealth(t *testing.T) {
	m := NewHealth()
	if m.Value() != 1 {
		t.Error("expected full health with no samples")
	}
	m.Observe(engine.FrameInfo{})
	m.Observe(engine.FrameInfo{Skipped: true})
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 1 {
		t.Error("expected full health after reset")
	}
}

func TestSet(t *testing.T) {
	set := Default(engine.NewManualClock())
	hook := set.Hook()
	hook(engine.FrameInfo{Size: buffer.Size{Width: 2, Height: 2}, Changes: 2})

	values := set.Values()
	if len(values) != len(set) {
		t.Fatalf("expected %d values, got %d", len(set), len(values))
	}
	if values["churn"] != 0.5 {
		t.Errorf("expected churn 0.5, got %f", values["churn"])
	}
	if set.Get("health") == nil || set.Get("missing") != nil {
		t.Error("Get lookup mismatch")
	}
	if names := set.Names(); names[0] != "fps" {
		t.Errorf("unexpected order %v", names)
	}
}
