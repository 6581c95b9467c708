// Package viz is the terminal live view of a haptic simulation, built on
// Bubble Tea.
//
//   - [Menu]: preset picker that opens the live view
//   - [Model]: live view with the surface U(x), the object and cursor
//     markers, and rolling force, velocity and target-force graphs
//   - [Canvas]: Braille-based pixel canvas
//
// # Key Bindings
//
//	←/→   - Move the cursor
//	D     - Grab or release the object
//	P / S - Put a position or speed target under the cursor
//	I     - Toggle impedance mode
//	F     - Toggle friction
//	Space - Pause/Resume
//	R     - Reset to the start state
//	?     - Show help overlay
package viz
