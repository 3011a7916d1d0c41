// Package pattern defines the contract every visual pattern implements and
// the helpers patterns share for configuration and presets.
//
//   - [Pattern]: render/reset/mouse/preset/metrics contract
//   - [Tunable]: effective config and preset table
//   - [Merge]: partial overrides layered over defaults, then clamped
//   - [Registry]: name to constructor mapping used by the engine's callers
//
// # Example
//
//	reg := patterns.NewRegistry()
//	p, _ := reg.New("plasma", pattern.Options{Seed: 1, Theme: theme.Default})
//	p.ApplyPreset(2)
//	p.Render(grid, t, grid.Size(), nil)
//
// # Thread Safety
//
// Patterns are NOT thread-safe. The engine calls every method from one
// goroutine, between or during ticks but never concurrently.
package pattern
