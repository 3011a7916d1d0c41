// Package theme defines the color schemes shared by patterns and overlays.
package theme

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/termsaver/internal/buffer"
)

// Theme defines the UI colors and the gradient patterns sample from.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color

	// Gradient runs from "cold/empty" at 0 to "hot/full" at 1.
	Gradient []lipgloss.Color

	stops []colorful.Color
}

// Available themes
var (
	Cyberpunk = newTheme(Theme{
		Name:       "cyberpunk",
		Primary:    lipgloss.Color("#ff00ff"), // Magenta
		Secondary:  lipgloss.Color("#00ffff"), // Cyan
		Accent:     lipgloss.Color("#ffff00"), // Yellow
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Warning:    lipgloss.Color("#ff8800"),
		Error:      lipgloss.Color("#ff0000"),
		Gradient:   []lipgloss.Color{"#1a001a", "#7a00a8", "#ff00ff", "#00ffff", "#ffffff"},
	})

	RetroGreen = newTheme(Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // Green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Warning:    lipgloss.Color("#ffff00"),
		Error:      lipgloss.Color("#ff0000"),
		Gradient:   []lipgloss.Color{"#001100", "#005500", "#00aa00", "#00ff00", "#ccffcc"},
	})

	Minimal = newTheme(Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Warning:    lipgloss.Color("#ffaa00"),
		Error:      lipgloss.Color("#ff0000"),
		Gradient:   []lipgloss.Color{"#111111", "#444444", "#888888", "#cccccc", "#ffffff"},
	})

	Ocean = newTheme(Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"), // Ocean blue
		Secondary:  lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Warning:    lipgloss.Color("#ffcc00"),
		Error:      lipgloss.Color("#ff4444"),
		Gradient:   []lipgloss.Color{"#001a33", "#003d73", "#0077be", "#00a8cc", "#e0f0ff"},
	})

	Sunset = newTheme(Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"), // Coral
		Secondary:  lipgloss.Color("#feca57"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Warning:    lipgloss.Color("#ffc048"),
		Error:      lipgloss.Color("#ff4757"),
		Gradient:   []lipgloss.Color{"#2d1b2e", "#8b2f4f", "#ff6b6b", "#feca57", "#fff5f5"},
	})

	Ember = newTheme(Theme{
		Name:       "ember",
		Primary:    lipgloss.Color("#ff5500"),
		Secondary:  lipgloss.Color("#ffaa00"),
		Accent:     lipgloss.Color("#ffee88"),
		Background: lipgloss.Color("#120400"),
		Text:       lipgloss.Color("#fff0e0"),
		Muted:      lipgloss.Color("#7a3a1a"),
		Warning:    lipgloss.Color("#ffdd00"),
		Error:      lipgloss.Color("#ff2200"),
		Gradient:   []lipgloss.Color{"#120400", "#7a0a00", "#ff3300", "#ffaa00", "#ffffcc"},
	})

	// Default theme
	Default = Cyberpunk

	// All available themes
	Themes = []Theme{
		Cyberpunk,
		RetroGreen,
		Minimal,
		Ocean,
		Sunset,
		Ember,
	}
)

func newTheme(t Theme) Theme {
	t.stops = make([]colorful.Color, 0, len(t.Gradient))
	for _, c := range t.Gradient {
		parsed, err := colorful.Hex(string(c))
		if err != nil {
			continue
		}
		t.stops = append(t.stops, parsed)
	}
	return t
}

// Get returns a theme by name.
func Get(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Default, false
}

// Next returns the theme after name, wrapping around.
func Next(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Default
}

// Names returns list of available theme names
func Names() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Sample interpolates the gradient in Lab space; t is clamped to [0,1].
func (t Theme) Sample(v float64) buffer.RGB {
	if len(t.stops) == 0 {
		g := buffer.RGBf(v*255, v*255, v*255)
		return g
	}
	if v <= 0 || math.IsNaN(v) {
		return toRGB(t.stops[0])
	}
	if v >= 1 {
		return toRGB(t.stops[len(t.stops)-1])
	}
	pos := v * float64(len(t.stops)-1)
	i := int(pos)
	frac := pos - float64(i)
	return toRGB(t.stops[i].BlendLab(t.stops[i+1], frac).Clamped())
}

// Color converts one of the theme's lipgloss colors to RGB.
func (t Theme) Color(c lipgloss.Color) buffer.RGB {
	parsed, err := colorful.Hex(string(c))
	if err != nil {
		return buffer.RGB{R: 255, G: 255, B: 255}
	}
	return toRGB(parsed)
}

// HSV returns a color from hue in degrees and saturation/value in [0,1].
func HSV(h, s, v float64) buffer.RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return toRGB(colorful.Hsv(h, s, v).Clamped())
}

func toRGB(c colorful.Color) buffer.RGB {
	r, g, b := c.RGB255()
	return buffer.RGB{R: r, G: g, B: b}
}
