package engine

import (
	"errors"
	"fmt"
)

// Domain errors for engine operations.
var (
	// ErrInvalidTransition indicates a state change not allowed from the current state.
	ErrInvalidTransition = errors.New("engine: invalid state transition")

	// ErrNilPattern indicates SetPattern was called without a pattern.
	ErrNilPattern = errors.New("engine: nil pattern")

	// ErrRenderFailed indicates the active pattern panicked while rendering.
	ErrRenderFailed = errors.New("engine: pattern render failed")

	// ErrSinkFailed indicates the output sink rejected a frame.
	ErrSinkFailed = errors.New("engine: output sink failed")
)

// RenderError wraps a recovered render panic with frame context.
type RenderError struct {
	Pattern string
	Frame   uint64
	Time    float64
	Value   any
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("engine: %s panicked at frame %d (t=%.3f): %v", e.Pattern, e.Frame, e.Time, e.Value)
}

func (e *RenderError) Unwrap() error {
	return ErrRenderFailed
}
