package engine

import "time"

// Stats counts engine activity since construction.
type Stats struct {
	Frames       uint64
	Skipped      uint64
	RenderErrors uint64
	SinkErrors   uint64
	LastChanges  int
	TotalChanges uint64
	// FrameTime is an exponential moving average of render time.
	FrameTime time.Duration
}

const frameTimeAlpha = 0.1

func (s *Stats) observe(info FrameInfo) {
	s.Frames++
	s.LastChanges = info.Changes
	s.TotalChanges += uint64(info.Changes)
	if s.Frames == 1 {
		s.FrameTime = info.RenderTime
		return
	}
	s.FrameTime += time.Duration(frameTimeAlpha * float64(info.RenderTime-s.FrameTime))
}

// Map flattens the counters for storage and the status bar.
func (s Stats) Map() map[string]float64 {
	return map[string]float64{
		"frames":        float64(s.Frames),
		"skipped":       float64(s.Skipped),
		"render_errors": float64(s.RenderErrors),
		"sink_errors":   float64(s.SinkErrors),
		"last_changes":  float64(s.LastChanges),
		"frame_ms":      float64(s.FrameTime.Microseconds()) / 1000,
	}
}
