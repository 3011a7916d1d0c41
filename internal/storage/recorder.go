package storage

import (
	"maps"

	"github.com/san-kum/termsaver/internal/engine"
	"github.com/san-kum/termsaver/internal/metrics"
)

// Recorder collects one Frame per engine tick.
type Recorder struct {
	metrics metrics.Set
	source  func() map[string]float64
	frames  []Frame
}

// NewRecorder records the values of set and, if source is non-nil, the
// map it returns (typically the active pattern's metrics). The recorder only
// reads set: the caller must register set.Hook before the recorder's hook.
func NewRecorder(set metrics.Set, source func() map[string]float64) *Recorder {
	return &Recorder{metrics: set, source: source}
}

func (r *Recorder) Observe(info engine.FrameInfo) {
	f := Frame{
		Frame:    info.Frame,
		Time:     info.Time,
		RenderMS: float64(info.RenderTime.Microseconds()) / 1000,
		Changes:  info.Changes,
		Skipped:  info.Skipped,
		Metrics:  r.metrics.Values(),
	}
	if r.source != nil {
		maps.Copy(f.Metrics, r.source())
	}
	r.frames = append(r.frames, f)
}

func (r *Recorder) Hook() engine.AfterRenderFunc { return r.Observe }

func (r *Recorder) Frames() []Frame { return r.frames }
