// Package viz renders arrays and growth traces for the terminal.
//
//   - [RenderArray]: one row of cells, spare capacity greyed out
//   - [GrowthPlot]: capacity and size against append count
//   - [LiveModel]: Bubble Tea program that appends on every tick
//
// # Key Bindings
//
//	Space - Pause/Resume appending
//	R     - Release the array and start over
//	Q     - Quit
package viz
