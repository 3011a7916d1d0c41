package theme

import (
	"testing"

	"github.com/san-kum/termsaver/internal/buffer"
)

func TestGet(t *testing.T) {
	th, ok := Get("ocean")
	if !ok || th.Name != "ocean" {
		t.Fatalf("expected ocean theme, got %q (ok=%v)", th.Name, ok)
	}

	th, ok = Get("nonexistent")
	if ok {
		t.Error("expected ok=false for unknown theme")
	}
	if th.Name != Default.Name {
		t.Errorf("expected default theme fallback, got %q", th.Name)
	}
}

func TestNextWraps(t *testing.T) {
	last := Themes[len(Themes)-1]
	if got := Next(last.Name); got.Name != Themes[0].Name {
		t.Errorf("expected wrap to %q, got %q", Themes[0].Name, got.Name)
	}
}

func TestSampleEndpoints(t *testing.T) {
	for _, th := range Themes {
		lo, hi := th.Sample(0), th.Sample(1)
		if lo != th.Color(th.Gradient[0]) {
			t.Errorf("%s: Sample(0) = %v, want first stop", th.Name, lo)
		}
		if hi != th.Color(th.Gradient[len(th.Gradient)-1]) {
			t.Errorf("%s: Sample(1) = %v, want last stop", th.Name, hi)
		}
		// out of range input clamps
		if th.Sample(-3) != lo || th.Sample(42) != hi {
			t.Errorf("%s: out of range samples not clamped", th.Name)
		}
	}
}

func TestHSVPrimaries(t *testing.T) {
	tests := []struct {
		h    float64
		want buffer.RGB
	}{
		{0, buffer.RGB{R: 255}},
		{120, buffer.RGB{G: 255}},
		{240, buffer.RGB{B: 255}},
		{360 + 120, buffer.RGB{G: 255}},
	}
	for _, tt := range tests {
		if got := HSV(tt.h, 1, 1); got != tt.want {
			t.Errorf("HSV(%v) = %v, want %v", tt.h, got, tt.want)
		}
	}
}
