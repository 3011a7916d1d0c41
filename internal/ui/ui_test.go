package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/engine"
	"github.com/san-kum/termsaver/internal/theme"
)

func newSurface(w, h int) GridSurface {
	return GridSurface{buffer.NewGrid(w, h)}
}

func row(s GridSurface, y int) string {
	return s.Rows()[y]
}

func TestTextClips(t *testing.T) {
	tests := []struct {
		name     string
		x, y     int
		text     string
		expected string
	}{
		{"inside", 1, 0, "ab", " ab  "},
		{"right edge", 3, 0, "abcd", "   ab"},
		{"left edge", -2, 0, "abcd", "cd   "},
		{"off screen", 0, 5, "abcd", "     "},
	}

	for _, tt := range tests {
		s := newSurface(5, 1)
		Text(s, tt.x, tt.y, tt.text, buffer.RGB{})
		if got := row(s, 0); got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, got)
		}
	}
}

func TestStatusBar(t *testing.T) {
	s := newSurface(60, 3)
	s.Fill(buffer.Plain('#'))
	bar := NewStatusBar(theme.Default, func() Status {
		return Status{Pattern: "maze", Preset: "prim", Theme: "retro", State: "running", FPS: 30, Speed: 1}
	})

	bar.Paint(s, engine.FrameInfo{})

	bottom := row(s, 2)
	if !strings.HasPrefix(bottom, " maze [prim] | retro | 30.0 fps | 1.0x | running") {
		t.Errorf("unexpected status row %q", bottom)
	}
	if !strings.HasSuffix(bottom, "? help ") {
		t.Errorf("expected help hint, got %q", bottom)
	}
	if strings.Contains(bottom, "#") {
		t.Error("status row must cover the pattern")
	}
	if row(s, 1) != strings.Repeat("#", 60) {
		t.Error("status bar drew outside its row")
	}
}

func TestHelpCentered(t *testing.T) {
	s := newSurface(40, 12)
	h := NewHelp(theme.Default, []KeyHelp{{"q", "quit"}, {"space", "pause"}})
	if h.Visible() {
		t.Fatal("help should start hidden")
	}
	h.SetVisible(true)
	h.Paint(s, engine.FrameInfo{})

	text := strings.Join(s.Rows(), "\n")
	for _, want := range []string{"termsaver", "q      quit", "space  pause"} {
		if !strings.Contains(text, want) {
			t.Errorf("help missing %q:\n%s", want, text)
		}
	}
}

func TestHelpTinySurface(t *testing.T) {
	s := newSurface(3, 2)
	h := NewHelp(theme.Default, []KeyHelp{{"q", "quit"}})
	h.Paint(s, engine.FrameInfo{})
	h.Paint(newSurface(0, 0), engine.FrameInfo{})
}

func TestToastExpires(t *testing.T) {
	clock := engine.NewManualClock()
	toast := NewToast(theme.Default, clock, time.Second)

	if toast.Visible() {
		t.Fatal("empty toast should be hidden")
	}
	toast.Show("theme: ocean")
	if !toast.Visible() {
		t.Fatal("toast should show")
	}
	clock.Advance(999 * time.Millisecond)
	if !toast.Visible() {
		t.Error("toast expired early")
	}
	clock.Advance(time.Millisecond)
	if toast.Visible() {
		t.Error("toast should have expired")
	}
}

func TestManagerInvalidatesOnHide(t *testing.T) {
	clock := engine.NewManualClock()
	invalidations := 0
	m := NewManager(func() { invalidations++ })
	toast := NewToast(theme.Default, clock, time.Second)
	m.Add(toast)
	s := newSurface(20, 3)

	toast.Show("hi")
	m.Paint(s, engine.FrameInfo{})
	if invalidations != 0 {
		t.Fatalf("expected no invalidation while shown, got %d", invalidations)
	}
	if !strings.Contains(row(s, 0), "hi") {
		t.Errorf("toast not painted: %q", row(s, 0))
	}

	clock.Advance(2 * time.Second)
	if !m.Stale() {
		t.Error("expected stale after expiry")
	}
	m.Check()
	if invalidations != 1 {
		t.Errorf("expected Check to invalidate, got %d", invalidations)
	}

	m.Paint(s, engine.FrameInfo{})
	if invalidations != 2 {
		t.Errorf("expected Paint to invalidate once on hide, got %d", invalidations)
	}
	m.Paint(s, engine.FrameInfo{})
	if invalidations != 2 || m.Stale() {
		t.Error("hidden overlay must not keep invalidating")
	}
}

func TestManagerToggle(t *testing.T) {
	invalidations := 0
	m := NewManager(func() { invalidations++ })
	m.Add(NewHelp(theme.Default, nil))
	m.Add(NewToast(theme.Default, nil, 0))

	if !m.Toggle("help") {
		t.Error("expected help visible after toggle")
	}
	if m.Toggle("help") {
		t.Error("expected help hidden after second toggle")
	}
	if invalidations != 2 {
		t.Errorf("expected 2 invalidations, got %d", invalidations)
	}
	if m.Toggle("toast") || m.Toggle("missing") {
		t.Error("non-toggleable overlays must not toggle")
	}
}

func TestManagerSetTheme(t *testing.T) {
	m := NewManager(nil)
	h := NewHelp(theme.Default, nil)
	m.Add(h)
	m.SetTheme(theme.RetroGreen)
	if h.theme.Name != theme.RetroGreen.Name {
		t.Errorf("expected %s, got %s", theme.RetroGreen.Name, h.theme.Name)
	}
}
