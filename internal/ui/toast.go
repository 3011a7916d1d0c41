package ui

import (
	"time"

	"github.com/san-kum/termsaver/internal/engine"
	"github.com/san-kum/termsaver/internal/theme"
)

const DefaultToastTTL = 2 * time.Second

// Toast shows a short message near the top of the screen. Expiry is wall
// time, so it is unaffected by pause and speed.
type Toast struct {
	panel
	clock engine.Clock
	ttl   time.Duration
	msg   string
	until time.Time
}

func NewToast(t theme.Theme, clock engine.Clock, ttl time.Duration) *Toast {
	if clock == nil {
		clock = engine.SystemClock{}
	}
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &Toast{panel: panel{theme: t}, clock: clock, ttl: ttl}
}

func (t *Toast) Name() string { return "toast" }

func (t *Toast) Show(msg string) {
	t.msg = msg
	t.until = t.clock.Now().Add(t.ttl)
}

func (t *Toast) Message() string { return t.msg }

func (t *Toast) Visible() bool {
	return t.msg != "" && t.clock.Now().Before(t.until)
}

func (t *Toast) Paint(s Surface, _ engine.FrameInfo) {
	size := s.Size()
	text := " " + t.msg + " "
	x := max((size.Width-len([]rune(text)))/2, 0)
	Text(s, x, 0, text, t.theme.Color(t.theme.Accent))
}
