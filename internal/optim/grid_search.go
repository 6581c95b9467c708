package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/hapticsim/internal/config"
	"github.com/san-kum/hapticsim/internal/dynamo"
	"github.com/san-kum/hapticsim/internal/experiment"
)

// GridSearch evaluates every combination of the given parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	// Workers bounds the parallel runs; 0 means unbounded.
	Workers int
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search returns the best combination and its score. Combinations that do
// not validate are skipped.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	objective Objective,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("optim: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}
	for _, name := range g.paramNames {
		if _, err := base.GetParam(name); err != nil {
			return nil, 0, err
		}
	}

	var combos []map[string]float64
	g.enumerate(0, make(map[string]float64), &combos)

	sims := make([]*dynamo.Simulation, 0, len(combos))
	kept := make([]map[string]float64, 0, len(combos))
	for _, params := range combos {
		cfg, err := apply(base, params)
		if err != nil {
			continue
		}
		exp, err := experiment.New(cfg, experiment.WithoutTrace())
		if err != nil {
			continue
		}
		sims = append(sims, exp.Simulation())
		kept = append(kept, params)
	}
	if len(sims) == 0 {
		return nil, 0, fmt.Errorf("optim: no valid parameter combination")
	}

	results, err := dynamo.Batch(ctx, sims, base.Simulation.Steps, g.Workers)
	if err != nil {
		return nil, 0, err
	}

	best := math.Inf(1)
	var bestParams map[string]float64
	for i, r := range results {
		if val := objective(r); val < best {
			best = val
			bestParams = kept[i]
		}
	}
	return bestParams, best, nil
}

func (g *GridSearch) enumerate(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, current)
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		g.enumerate(depth+1, newParams, out)
	}
}

// apply returns a validated copy of base with params set.
func apply(base *config.Config, params map[string]float64) (*config.Config, error) {
	cfg := base.Clone()
	for name, v := range params {
		if err := cfg.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
