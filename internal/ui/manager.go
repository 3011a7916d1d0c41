package ui

import (
	"github.com/san-kum/termsaver/internal/engine"
	"github.com/san-kum/termsaver/internal/theme"
)

// Manager paints overlays in registration order. When an overlay that was
// painted disappears it calls invalidate so the pattern repaints the area
// underneath on the next frame.
type Manager struct {
	overlays   []Overlay
	shown      []bool
	invalidate func()
}

func NewManager(invalidate func()) *Manager {
	if invalidate == nil {
		invalidate = func() {}
	}
	return &Manager{invalidate: invalidate}
}

func (m *Manager) Add(o Overlay) {
	m.overlays = append(m.overlays, o)
	m.shown = append(m.shown, false)
}

// Get returns the overlay called name, or nil.
func (m *Manager) Get(name string) Overlay {
	for _, o := range m.overlays {
		if o.Name() == name {
			return o
		}
	}
	return nil
}

// Toggle flips a toggleable overlay and reports whether it is now visible.
func (m *Manager) Toggle(name string) bool {
	t, ok := m.Get(name).(Toggler)
	if !ok {
		return false
	}
	t.SetVisible(!t.Visible())
	m.invalidate()
	return t.Visible()
}

func (m *Manager) SetTheme(t theme.Theme) {
	for _, o := range m.overlays {
		if th, ok := o.(Themed); ok {
			th.SetTheme(t)
		}
	}
}

// Paint draws every visible overlay onto s.
func (m *Manager) Paint(s Surface, info engine.FrameInfo) {
	hidden := false
	for i, o := range m.overlays {
		vis := o.Visible()
		if vis {
			o.Paint(s, info)
		} else if m.shown[i] {
			hidden = true
		}
		m.shown[i] = vis
	}
	if hidden {
		m.invalidate()
	}
}

// Stale reports whether an overlay still on screen has since gone away.
func (m *Manager) Stale() bool {
	for i, o := range m.overlays {
		if m.shown[i] && !o.Visible() {
			return true
		}
	}
	return false
}

// Check invalidates when Stale. Run it before every tick so expiring toasts
// are cleared even while the engine is paused.
func (m *Manager) Check() {
	if m.Stale() {
		m.invalidate()
	}
}

// Hook adapts the manager to an engine after-render callback on s.
func (m *Manager) Hook(s Surface) engine.AfterRenderFunc {
	return func(info engine.FrameInfo) { m.Paint(s, info) }
}
