// Package analysis inspects recorded runs.
//
//   - [PowerSpectrum], [DominantFrequency]: oscillation content of a trace
//   - [Summarize]: descriptive statistics of a series
//   - [NewPhasePortrait], [PhasePortraitToASCII]: the (x, vx) trajectory
//   - [Crossings]: passes through a level, e.g. a target position
//   - [Sweep]: final state as one parameter varies
//
// # Ringing
//
// A controller that rings around its target shows a clear spectral peak:
//
//	xs, _ := res.Trace.Series("position")
//	f, amp := analysis.DominantFrequency(xs, dt)
package analysis
