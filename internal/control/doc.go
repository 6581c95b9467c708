// Package control provides the force generators that act on the haptic
// object besides the surface profile:
//
//   - [Drag]: rubber-band pull toward the user's cursor
//   - [PositionTarget]: spring-damper toward a target position
//   - [SpeedTarget]: approach a target at a capped speed, slowing down
//     linearly inside a deceleration zone
//
// Each generator is a pure function of the object's position and velocity
// and its own settings. Position and speed targets may be active together;
// their forces add.
//
// # Usage
//
//	pos := control.DefaultPositionTarget()
//	pos.SetTarget(300)
//	pos.Enabled = true
//	f := pos.Force(x, vx)
package control
