// Package viz runs the screensaver inside a Bubble Tea program.
//
//   - [Frame]: output sink and overlay surface that keeps one rendered
//     string per row and re-renders only rows that changed
//   - [Model]: the tea.Model driving the app from tick, key, mouse and
//     resize messages
//   - [Header], [Metric], [Swatch], [SparklineChart]: styles shared with
//     the command line listings
//
// Adjacent cells of the same color are emitted as one lipgloss span, so a
// row costs one escape sequence per color run rather than per cell.
//
// # Key Bindings
//
//	Space   - Pause/Resume
//	←/→     - Previous/next pattern
//	Tab 1-9 - Presets
//	T       - Cycle color themes
//	+/-     - Speed
//	?       - Show help overlay
package viz
