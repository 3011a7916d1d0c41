// Package buffer provides the character grid primitives shared by every
// pattern and the double buffer that turns successive frames into a minimal
// set of terminal writes.
//
//   - [Cell]: one display glyph plus an optional color
//   - [Grid]: a row-major matrix of cells
//   - [DoubleBuffer]: current/previous grids with [DoubleBuffer.Changes]
//
// # Frame Discipline
//
// A frame is produced by clearing the current grid, letting a pattern write
// into it, draining [DoubleBuffer.Changes] and finally calling
// [DoubleBuffer.Swap]. The change sequence reads both grids lazily, so it
// must be consumed before the swap.
//
// # Thread Safety
//
// Grids and double buffers are NOT thread-safe. They are owned by a single
// engine goroutine.
package buffer
