// Package viz provides a terminal live view of a running simulation.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: Bubble Tea model stepping the simulation at 60 fps
//   - [Canvas]: Braille-based pixel canvas projecting the X/Z plane
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset scenario from its original seed
//	P     - Perturb all bodies slightly
//	A     - Add a random body
//	C     - Toggle collision resolution
//	K/J   - Speed up / slow down time
//	+/-   - Zoom in / out
//	?     - Show help overlay
package viz
