package viz

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/termsaver/internal/app"
	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/config"
	"github.com/san-kum/termsaver/internal/patterns"
)

func plainFrame(w, h int) *Frame {
	return NewFrameWithRenderer(w, h, lipgloss.NewRenderer(io.Discard))
}

func TestFrameBatchesColorRuns(t *testing.T) {
	f := plainFrame(8, 1)
	red, blue := buffer.RGB{R: 255}, buffer.RGB{B: 255}
	f.Put(0, 0, buffer.NewCell('a', red))
	f.Put(1, 0, buffer.NewCell('b', red))
	f.Put(2, 0, buffer.NewCell('c', blue))
	f.Put(5, 0, buffer.NewCell('d', blue))

	tests := []struct {
		text     string
		hasColor bool
	}{
		{"ab", true},
		{"c", true},
		{"  ", false},
		{"d", true},
		{"  ", false},
	}

	spans := f.spans(0)
	if len(spans) != len(tests) {
		t.Fatalf("expected %d spans, got %d: %+v", len(tests), len(spans), spans)
	}
	for i, tt := range tests {
		if spans[i].text != tt.text || spans[i].hasColor != tt.hasColor {
			t.Errorf("span %d: expected %q/%v, got %q/%v", i, tt.text, tt.hasColor, spans[i].text, spans[i].hasColor)
		}
	}
	if got := f.Row(0); got != "abc  d  " {
		t.Errorf("expected plain row, got %q", got)
	}
}

func TestFrameCachesCleanRows(t *testing.T) {
	f := plainFrame(4, 3)
	f.View()
	base := f.Renders()
	if base != 3 {
		t.Fatalf("expected 3 initial renders, got %d", base)
	}

	f.View()
	if f.Renders() != base {
		t.Error("clean rows were re-rendered")
	}

	f.Put(1, 1, buffer.Plain('x'))
	f.Put(2, 1, buffer.Plain('y'))
	f.View()
	if f.Renders() != base+1 {
		t.Errorf("expected one re-render, got %d", f.Renders()-base)
	}

	f.Put(1, 1, buffer.Plain('x'))
	f.View()
	if f.Renders() != base+1 {
		t.Error("writing an identical cell must not dirty the row")
	}
	if f.View() != "    \n xy \n    " {
		t.Errorf("unexpected view %q", f.View())
	}
}

func TestFrameBounds(t *testing.T) {
	f := plainFrame(2, 2)
	f.Put(-1, 0, buffer.Plain('x'))
	f.Put(2, 0, buffer.Plain('x'))
	f.Put(0, 5, buffer.Plain('x'))
	if strings.Contains(f.View(), "x") {
		t.Error("out of bounds writes must be dropped")
	}

	f.Resize(0, 0)
	if f.View() != "" {
		t.Error("expected empty view")
	}
}

func newModel(t *testing.T) (Model, *app.App, *Frame) {
	t.Helper()
	f := plainFrame(30, 10)
	cfg := config.DefaultConfig()
	a, err := app.New(app.Options{
		Config:   cfg,
		Registry: patterns.NewRegistry(),
		Sink:     f,
		Surface:  f,
		Size:     f.Size(),
	})
	if err != nil {
		t.Fatalf("app: %v", err)
	}
	if err := a.Start(); err != nil {
		t.Fatal(err)
	}
	return NewModel(a, f, 30), a, f
}

func TestModelTickRenders(t *testing.T) {
	m, _, f := newModel(t)

	next, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected the next tick to be scheduled")
	}
	view := next.View()
	if strings.TrimSpace(view) == "" {
		t.Error("expected a drawn frame")
	}
	if !strings.Contains(f.Row(9), "plasma") {
		t.Errorf("expected status bar, got %q", f.Row(9))
	}
}

func TestModelKeysAndQuit(t *testing.T) {
	m, a, _ := newModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if a.Pattern() != "rain" {
		t.Errorf("expected rain, got %s", a.Pattern())
	}

	_, cmd := next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelResize(t *testing.T) {
	m, a, f := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 50, Height: 20})
	next.Update(TickMsg(time.Now()))

	want := buffer.Size{Width: 50, Height: 20}
	if f.Size() != want || a.Engine().Size() != want {
		t.Errorf("expected %v, got frame %v engine %v", want, f.Size(), a.Engine().Size())
	}
}

func TestSparklineChart(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		width  int
		runes  int
	}{
		{"empty", nil, 5, 5},
		{"fits", []float64{1, 2, 3}, 10, 3},
		{"sampled", []float64{1, 2, 3, 4, 5, 6, 7, 8}, 4, 4},
		{"flat", []float64{2, 2}, 2, 2},
	}
	for _, tt := range tests {
		got := SparklineChart(tt.values, tt.width)
		if n := lipgloss.Width(got); n != tt.runes {
			t.Errorf("%s: expected width %d, got %d", tt.name, tt.runes, n)
		}
	}
}
