// Package integrators holds the per-step dynamics of the haptic object.
//
// A [Strategy] turns the forces gathered for a step into an acceleration.
// [Standard] is plain Newtonian motion with viscous damping; [Impedance]
// substitutes its own virtual mass, damping and stiffness. Exactly one
// strategy is used per step. [Guard] and [Euler] are shared by both.
package integrators

// Input is what a strategy sees for one step.
type Input struct {
	X, Vx float64
	// Drive is the sum of friction-gated passive force and controller forces.
	Drive float64
	// Desired is the rest position for impedance control.
	Desired float64
}

// Output is a strategy's acceleration plus the extra force it generated, if any.
type Output struct {
	Accel     float64
	Impedance float64
}

type Strategy interface {
	Name() string
	Accelerate(in Input) Output
}
