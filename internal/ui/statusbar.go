package ui

import (
	"fmt"
	"strings"

	"github.com/san-kum/termsaver/internal/buffer"
	"github.com/san-kum/termsaver/internal/engine"
	"github.com/san-kum/termsaver/internal/theme"
)

// Status is what the status bar shows.
type Status struct {
	Pattern string
	Preset  string
	Theme   string
	State   string
	FPS     float64
	Speed   float64
	Extra   string
}

func (s Status) String() string {
	parts := []string{s.Pattern}
	if s.Preset != "" {
		parts[0] += " [" + s.Preset + "]"
	}
	parts = append(parts,
		s.Theme,
		fmt.Sprintf("%.1f fps", s.FPS),
		fmt.Sprintf("%.1fx", s.Speed),
		s.State,
	)
	if s.Extra != "" {
		parts = append(parts, s.Extra)
	}
	return " " + strings.Join(parts, " | ") + " "
}

// StatusBar occupies the bottom row.
type StatusBar struct {
	panel
	source func() Status
	hint   string
}

func NewStatusBar(t theme.Theme, source func() Status) *StatusBar {
	return &StatusBar{panel: panel{theme: t}, source: source, hint: "? help "}
}

func (b *StatusBar) Name() string { return "status" }

func (b *StatusBar) Paint(s Surface, _ engine.FrameInfo) {
	size := s.Size()
	if size.Height == 0 || size.Width == 0 {
		return
	}
	y := size.Height - 1
	Fill(s, y, 0, size.Width, buffer.Blank)

	text := b.source().String()
	n := Text(s, 0, y, text, b.theme.Color(b.theme.Text))
	if hx := size.Width - len(b.hint); hx > n {
		Text(s, hx, y, b.hint, b.theme.Color(b.theme.Muted))
	}
}
