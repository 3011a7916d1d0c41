package metrics

import (
	"time"

	"github.com/san-kum/termsaver/internal/engine"
)

// FrameRate is frames per wall-clock second over a sliding window.
type FrameRate struct {
	clock  engine.Clock
	window time.Duration
	stamps []time.Time
}

func NewFrameRate(clock engine.Clock) *FrameRate {
	if clock == nil {
		clock = engine.SystemClock{}
	}
	return &FrameRate{clock: clock, window: time.Second}
}

func (f *FrameRate) Name() string { return "fps" }

func (f *FrameRate) Observe(engine.FrameInfo) {
	now := f.clock.Now()
	f.stamps = append(f.stamps, now)
	cut := 0
	for cut < len(f.stamps)-1 && now.Sub(f.stamps[cut]) > f.window {
		cut++
	}
	f.stamps = f.stamps[cut:]
}

func (f *FrameRate) Value() float64 {
	if len(f.stamps) < 2 {
		return 0
	}
	span := f.stamps[len(f.stamps)-1].Sub(f.stamps[0])
	if span <= 0 {
		return 0
	}
	return float64(len(f.stamps)-1) / span.Seconds()
}

func (f *FrameRate) Reset() { f.stamps = f.stamps[:0] }

// RenderTime is the mean render duration in milliseconds.
type RenderTime struct {
	total   time.Duration
	samples int
}

func NewRenderTime() *RenderTime { return &RenderTime{} }

func (r *RenderTime) Name() string { return "render_ms" }

func (r *RenderTime) Observe(info engine.FrameInfo) {
	if info.Skipped {
		return
	}
	r.total += info.RenderTime
	r.samples++
}

func (r *RenderTime) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.total.Microseconds()) / 1000 / float64(r.samples)
}

func (r *RenderTime) Reset() {
	r.total = 0
	r.samples = 0
}

// Churn is the mean fraction of the screen rewritten per frame.
type Churn struct {
	sum     float64
	samples int
}

func NewChurn() *Churn { return &Churn{} }

func (c *Churn) Name() string { return "churn" }

func (c *Churn) Observe(info engine.FrameInfo) {
	area := info.Size.Area()
	if area == 0 {
		return
	}
	c.sum += float64(info.Changes) / float64(area)
	c.samples++
}

func (c *Churn) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Churn) Reset() {
	c.sum = 0
	c.samples = 0
}

// Health is the share of frames rendered without being skipped.
type Health struct {
	skipped int
	samples int
}

func NewHealth() *Health { return &Health{} }

func (h *Health) Name() string { return "health" }

func (h *Health) Observe(info engine.FrameInfo) {
	h.samples++
	if info.Skipped {
		h.skipped++
	}
}

func (h *Health) Value() float64 {
	if h.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(h.skipped)/float64(h.samples)
}

func (h *Health) Reset() {
	h.skipped = 0
	h.samples = 0
}
