// Package dynamo is the haptic simulation core.
//
// A [Simulation] moves one object along x under the force of a
// [profile.Profile], a user drag spring, optional stick/slip friction and
// the position and speed controllers, integrated with either the standard
// or the impedance dynamics:
//
//   - [ObjectState]: position, velocity and the drag flag
//   - [Params]: validated snapshot of every tunable, swapped whole by setters
//   - [Forces]: per-step breakdown published after each [Simulation.Step]
//   - [Metric], [Observer]: hooks called after every step
//
// # Example
//
//	prof, _ := profile.New(profile.Entry{Shape: shape.NewTrapezoid(300, 500, 100, 30, false)})
//	p := dynamo.DefaultParams()
//	p.Bounds = dynamo.Bounds{Min: 50, Max: 550}
//	sim, _ := dynamo.New(p, prof)
//	for range 1000 {
//		sim.Step()
//	}
//
// # Thread Safety
//
// Simulation instances are NOT thread-safe. Step and the setters must be
// called from one goroutine. [Batch] runs separate instances in parallel.
package dynamo
