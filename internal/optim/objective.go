package optim

import (
	"math"

	"github.com/san-kum/hapticsim/internal/dynamo"
)

// Objective scores a finished run. Lower is better.
type Objective func(r *dynamo.Result) float64

// Metric scores a run by one of its metrics. Missing metrics score +Inf.
func Metric(name string) Objective {
	return func(r *dynamo.Result) float64 {
		v, ok := r.Metrics[name]
		if !ok {
			return math.Inf(1)
		}
		return v
	}
}

// TrackingCost prefers runs that settle on target quickly with little
// overshoot. A run that never settles costs its whole duration plus its
// final distance from the target.
func TrackingCost(target float64) Objective {
	return func(r *dynamo.Result) float64 {
		settle, ok := r.Metrics["settling_time"]
		if !ok || settle < 0 {
			settle = r.Time + math.Abs(r.Final.X-target)
		}
		return settle + 0.1*r.Metrics["overshoot"]
	}
}
