// Package patterns is the built-in pattern catalog.
//
// Every pattern keeps its simulation state private, derives its step size
// from the scene time passed to Render and rebuilds cached grids when the
// size changes. Randomness comes from a generator seeded from the
// construction options and re-seeded by Reset, so a reset pattern replays
// the same frames.
//
// [NewRegistry] returns a registry holding the whole catalog.
package patterns
