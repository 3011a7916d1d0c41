package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/san-kum/termsaver/internal/app"
	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/config"
	"github.com/san-kum/termsaver/internal/patterns"
)

func newSim(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func newApp(t *testing.T, scr *Screen) *app.App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Pattern = "matrix"
	a, err := app.New(app.Options{
		Config:   cfg,
		Registry: patterns.NewRegistry(),
		Sink:     scr,
		Surface:  scr,
		Size:     scr.Size(),
	})
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	return a
}

func TestScreenEmit(t *testing.T) {
	sim := newSim(t, 10, 4)
	scr := NewScreen(sim)

	red := buffer.RGB{R: 255}
	changes := func(yield func(buffer.Change) bool) {
		yield(buffer.Change{X: 3, Y: 2, Cell: buffer.NewCell('#', red)})
	}
	if err := scr.Emit(changes); err != nil {
		t.Fatalf("emit: %v", err)
	}
	scr.Put(0, 0, buffer.Plain('@'))
	scr.Show()

	r, _, style, _ := sim.GetContent(3, 2)
	if r != '#' {
		t.Errorf("expected '#', got %q", r)
	}
	fg, _, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("expected red foreground, got %v", fg)
	}
	if r, _, _, _ := sim.GetContent(0, 0); r != '@' {
		t.Errorf("expected '@', got %q", r)
	}
	if got := scr.Size(); got != (buffer.Size{Width: 10, Height: 4}) {
		t.Errorf("unexpected size %v", got)
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev       *tcell.EventKey
		expected string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), "q"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), " "},
		{tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone), "?"},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), "right"},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "tab"},
		{tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "ctrl+c"},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), ""},
	}

	for _, tt := range tests {
		if got := KeyName(tt.ev); got != tt.expected {
			t.Errorf("expected %q, got %q", tt.expected, got)
		}
	}
}

func TestTranslateResize(t *testing.T) {
	sim := newSim(t, 20, 6)
	scr := NewScreen(sim)
	a := newApp(t, scr)

	var in input
	fn := in.translate(tcell.NewEventResize(30, 8), a)
	if fn == nil {
		t.Fatal("expected a resize closure")
	}
	fn()
	if err := a.Start(); err != nil {
		t.Fatal(err)
	}
	_ = a.Engine().Tick()

	if got := a.Engine().Size(); got != (buffer.Size{Width: 30, Height: 8}) {
		t.Errorf("expected 30x8, got %v", got)
	}
}

func TestTranslateIgnoresUnknownKeys(t *testing.T) {
	sim := newSim(t, 20, 6)
	a := newApp(t, NewScreen(sim))

	var in input
	if fn := in.translate(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), a); fn != nil {
		t.Error("expected no closure for an unbound key")
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	sim := newSim(t, 40, 12)
	scr := NewScreen(sim)
	a := newApp(t, scr)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	if err := Run(ctx, scr, a, 60); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !a.Done() {
		t.Error("expected app to be done")
	}
}
