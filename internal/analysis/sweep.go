package analysis

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/hapticsim/internal/config"
	"github.com/san-kum/hapticsim/internal/dynamo"
)

// SweepPoint is where the object ended up for one parameter value.
type SweepPoint struct {
	Param float64
	Final dynamo.ObjectState
}

// Sweep runs the scenario once per value of the named parameter, in
// parallel, and records each final state. A sweep over friction.static,
// for example, shows where the object sticks.
func Sweep(ctx context.Context, base *config.Config, param string, values []float64, workers int) ([]SweepPoint, error) {
	sims := make([]*dynamo.Simulation, len(values))
	for i, v := range values {
		cfg := base.Clone()
		if err := cfg.SetParam(param, v); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", param, v, err)
		}
		sim, err := cfg.NewSimulation()
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", param, v, err)
		}
		sims[i] = sim
	}

	results, err := dynamo.Batch(ctx, sims, base.Simulation.Steps, workers)
	if err != nil {
		return nil, err
	}
	points := make([]SweepPoint, len(values))
	for i, r := range results {
		points[i] = SweepPoint{Param: values[i], Final: r.Final}
	}
	return points, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	out := make([]float64, n)
	floats.Span(out, lo, hi)
	return out
}
