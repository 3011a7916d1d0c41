package export

import (
	"strings"
	"testing"

	"github.com/san-kum/termsaver/internal/buffer"
)

func sampleGrid() *buffer.Grid {
	g := buffer.NewGrid(6, 2)
	red := buffer.RGB{R: 255}
	g.Set(0, 0, buffer.NewCell('a', red))
	g.Set(1, 0, buffer.NewCell('b', red))
	g.Set(2, 0, buffer.NewCell('c', buffer.RGB{G: 255}))
	g.Set(4, 1, buffer.Plain('<'))
	return g
}

func TestGridToText(t *testing.T) {
	tests := []struct {
		name     string
		grid     *buffer.Grid
		expected string
	}{
		{"sample", sampleGrid(), "abc\n    <\n"},
		{"blank", buffer.NewGrid(3, 1), "\n"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		if got := GridToText(tt.grid); got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, got)
		}
	}
}

func TestGridToSVG(t *testing.T) {
	svg := GridToSVG(sampleGrid(), 10, 20)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an svg document")
	}
	if !strings.Contains(svg, `width="60" height="40"`) {
		t.Error("unexpected canvas size")
	}
	if got := strings.Count(svg, "<text"); got != 3 {
		t.Errorf("expected 3 text runs, got %d", got)
	}
	if !strings.Contains(svg, `fill="#ff0000" textLength="20.0">ab</text>`) {
		t.Error("red run not batched")
	}
	if !strings.Contains(svg, "&lt;") {
		t.Error("glyphs must be escaped")
	}
	if GridToSVG(nil, 1, 1) != "" {
		t.Error("expected empty output for nil grid")
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single point")
	}
	svg := SeriesToSVG([]float64{1, 3, 2, 2}, 100, 50, "#00ff88")
	if got := strings.Count(svg, " L"); got != 3 {
		t.Errorf("expected 3 line segments, got %d", got)
	}
	if !strings.Contains(svg, `stroke="#00ff88"`) {
		t.Error("stroke color missing")
	}
}
