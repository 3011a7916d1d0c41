package pattern

import "errors"

// Domain errors for pattern construction.
var (
	// ErrUnknownPattern indicates a name missing from the registry.
	ErrUnknownPattern = errors.New("pattern: unknown pattern")

	// ErrInvalidOverride indicates an override map that could not be decoded
	// onto a config struct.
	ErrInvalidOverride = errors.New("pattern: invalid config override")
)
