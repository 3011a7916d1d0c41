package metrics

import "github.com/san-kum/termsaver/internal/engine"

// Metric accumulates one figure over observed frames.
type Metric interface {
	Name() string
	Observe(info engine.FrameInfo)
	Value() float64
	Reset()
}

// Set is an ordered group of metrics observed together.
type Set []Metric

// Default returns the metrics recorded by bench and shown in the status bar.
func Default(clock engine.Clock) Set {
	return Set{
		NewFrameRate(clock),
		NewRenderTime(),
		NewChurn(),
		NewHealth(),
	}
}

func (s Set) Observe(info engine.FrameInfo) {
	for _, m := range s {
		m.Observe(info)
	}
}

// Hook adapts the set to an engine after-render callback.
func (s Set) Hook() engine.AfterRenderFunc {
	return s.Observe
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, m := range s {
		names[i] = m.Name()
	}
	return names
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

// Get returns the metric called name, or nil.
func (s Set) Get(name string) Metric {
	for _, m := range s {
		if m.Name() == name {
			return m
		}
	}
	return nil
}
