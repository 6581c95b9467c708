// Package shape provides the building blocks of a haptic surface profile.
//
// Every shape is a pure scalar function of position that returns exactly
// zero outside its domain:
//
//   - [Constant]: b inside optional bounds
//   - [Linear]: a*x + b inside optional bounds
//   - [Trapezoid]: flat top with smoothed shoulders, optionally a pit
//   - [Semicircle]: bump or pit of a given radius
//   - [SineSum]: sum of sinusoids over the whole axis
//
// The set is closed: [Shape] carries an unexported method so that only the
// kinds above satisfy it, and callers switch on [Shape.Kind] or a type
// switch instead of inspecting function names.
//
// Shoulders are built from [Smoothstep], a cubic ramp with zero slope at
// both ends, which keeps composed potentials C1-continuous.
package shape
