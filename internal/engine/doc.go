// Package engine drives the active pattern frame by frame.
//
// Each [Engine.Tick] clears the current grid, lets the active
// [pattern.Pattern] render into it, hands the diff against the previous
// frame to a [Sink], swaps the grids and finally runs the after-render
// callbacks that overlays use to paint on top of the fresh frame.
//
// # Pattern Switching
//
// [Engine.SetPattern] resets the outgoing pattern, blanks the current grid
// and swaps immediately, and clears the sink. The first diff of the new
// pattern is therefore taken against a blank baseline, never against the
// old pattern's last frame.
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. [Engine.Run] serializes input by
// executing closures received on its inbox between ticks.
package engine
