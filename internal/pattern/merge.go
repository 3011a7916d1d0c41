package pattern

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// Merge layers a partial override map over defaults. Keys use the config's
// yaml tags. The merged result is clamped; on error the clamped defaults are
// returned alongside it.
func Merge[C Config[C]](defaults C, overrides map[string]any) (C, error) {
	if len(overrides) == 0 {
		return defaults.Clamped(), nil
	}
	data, err := yaml.Marshal(overrides)
	if err != nil {
		return defaults.Clamped(), fmt.Errorf("%w: %v", ErrInvalidOverride, err)
	}

	cfg := defaults
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return defaults.Clamped(), fmt.Errorf("%w: %v", ErrInvalidOverride, err)
	}
	return cfg.Clamped(), nil
}

// ClampInt forces v into [lo,hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat forces v into [lo,hi]; NaN becomes lo.
func ClampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
