package ui

import (
	"github.com/san-kum/termsaver/internal/engine"
	"github.com/san-kum/termsaver/internal/theme"
)

// Overlay draws on top of the pattern every tick while visible.
type Overlay interface {
	Name() string
	Visible() bool
	Paint(s Surface, info engine.FrameInfo)
}

// Toggler is an overlay the user can show and hide.
type Toggler interface {
	Overlay
	SetVisible(v bool)
}

// Themed overlays follow the active theme.
type Themed interface {
	SetTheme(t theme.Theme)
}

type panel struct {
	hidden bool
	theme  theme.Theme
}

func (p *panel) Visible() bool          { return !p.hidden }
func (p *panel) SetVisible(v bool)      { p.hidden = !v }
func (p *panel) SetTheme(t theme.Theme) { p.theme = t }
