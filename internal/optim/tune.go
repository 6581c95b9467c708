package optim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/san-kum/hapticsim/internal/config"
	"github.com/san-kum/hapticsim/internal/experiment"
)

// penalty is the score of a candidate that cannot be simulated.
const penalty = 1e9

const DefaultMaxEvals = 200

// Bound limits one tuned parameter.
type Bound struct {
	Name     string
	Min, Max float64
}

// Tuner searches continuous parameter values with Nelder-Mead. Candidates
// are clamped into their bounds before each run.
type Tuner struct {
	Bounds   []Bound
	MaxEvals int
	Logger   *slog.Logger
}

type TuneResult struct {
	Params      map[string]float64
	Score       float64
	Evaluations int
}

// PositionGains tunes the position controller's spring and damper.
func PositionGains() []Bound {
	return []Bound{
		{Name: "position.stiffness", Min: 0, Max: 200},
		{Name: "position.damping", Min: 0, Max: 100},
	}
}

// ImpedanceGains tunes the impedance stiffness and damping.
func ImpedanceGains() []Bound {
	return []Bound{
		{Name: "impedance.stiffness", Min: 0, Max: 200},
		{Name: "impedance.damping", Min: 0, Max: 100},
	}
}

// Tune starts from the values in base and returns the best candidate seen.
func (t *Tuner) Tune(ctx context.Context, base *config.Config, objective Objective) (*TuneResult, error) {
	if len(t.Bounds) == 0 {
		return nil, errors.New("optim: nothing to tune")
	}
	logger := t.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	maxEvals := t.MaxEvals
	if maxEvals <= 0 {
		maxEvals = DefaultMaxEvals
	}

	x0 := make([]float64, len(t.Bounds))
	span := 0.0
	for i, b := range t.Bounds {
		if b.Min > b.Max {
			return nil, fmt.Errorf("optim: %s bounds %g > %g", b.Name, b.Min, b.Max)
		}
		v, err := base.GetParam(b.Name)
		if err != nil {
			return nil, err
		}
		x0[i] = math.Max(b.Min, math.Min(b.Max, v))
		span += b.Max - b.Min
	}
	// Initial simplex edge: a tenth of the mean range.
	method := &optimize.NelderMead{SimplexSize: 0.1 * span / float64(len(t.Bounds))}

	best := &TuneResult{Score: math.Inf(1)}
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			if ctx.Err() != nil {
				return penalty
			}
			params := t.clamp(x)
			score := t.evaluate(ctx, base, params, objective)
			best.Evaluations++
			if score < best.Score {
				best.Score = score
				best.Params = params
			}
			logger.Debug("tune evaluation", "eval", best.Evaluations, "params", params, "score", score)
			return score
		},
	}
	settings := &optimize.Settings{FuncEvaluations: maxEvals}

	if _, err := optimize.Minimize(problem, x0, settings, method); err != nil {
		logger.Debug("optimization ended", "err", err)
	}
	if err := ctx.Err(); err != nil {
		return best, err
	}
	if best.Params == nil {
		return nil, errors.New("optim: no candidate could be evaluated")
	}
	return best, nil
}

func (t *Tuner) clamp(x []float64) map[string]float64 {
	params := make(map[string]float64, len(t.Bounds))
	for i, b := range t.Bounds {
		params[b.Name] = math.Max(b.Min, math.Min(b.Max, x[i]))
	}
	return params
}

func (t *Tuner) evaluate(ctx context.Context, base *config.Config, params map[string]float64, objective Objective) float64 {
	cfg, err := apply(base, params)
	if err != nil {
		return penalty
	}
	exp, err := experiment.New(cfg, experiment.WithoutTrace())
	if err != nil {
		return penalty
	}
	res, err := exp.Run(ctx)
	if err != nil {
		return penalty
	}
	return objective(res.Result)
}
