package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/hapticsim/internal/dynamo"
)

// Sample is the state and force breakdown after one step.
type Sample struct {
	Step      int     `csv:"step" json:"step"`
	Time      float64 `csv:"t" json:"t"`
	X         float64 `csv:"x" json:"x"`
	Vx        float64 `csv:"vx" json:"vx"`
	Haptic    float64 `csv:"f_haptic" json:"f_haptic"`
	Drag      float64 `csv:"f_drag" json:"f_drag"`
	Target    float64 `csv:"f_target" json:"f_target"`
	Speed     float64 `csv:"f_speed" json:"f_speed"`
	Friction  float64 `csv:"f_friction" json:"f_friction"`
	Impedance float64 `csv:"f_impedance" json:"f_impedance"`
	Total     float64 `csv:"f_total" json:"f_total"`
	Accel     float64 `csv:"accel" json:"accel"`
	Phase     string  `csv:"phase" json:"phase"`
}

// Trace records every step it observes.
type Trace struct {
	Samples []Sample
}

func NewTrace(capacity int) *Trace {
	if capacity < 0 {
		capacity = 0
	}
	return &Trace{Samples: make([]Sample, 0, capacity)}
}

func (tr *Trace) OnStep(s dynamo.ObjectState, f dynamo.Forces, t float64) {
	tr.Samples = append(tr.Samples, Sample{
		Step:      len(tr.Samples) + 1,
		Time:      t,
		X:         s.X,
		Vx:        s.Vx,
		Haptic:    f.Haptic,
		Drag:      f.Drag,
		Target:    f.Target,
		Speed:     f.Speed,
		Friction:  f.Friction,
		Impedance: f.Impedance,
		Total:     f.Total,
		Accel:     f.Accel,
		Phase:     f.Phase.String(),
	})
}

func (tr *Trace) Len() int { return len(tr.Samples) }

var series = map[string]func(Sample) float64{
	"time":      func(s Sample) float64 { return s.Time },
	"position":  func(s Sample) float64 { return s.X },
	"velocity":  func(s Sample) float64 { return s.Vx },
	"haptic":    func(s Sample) float64 { return s.Haptic },
	"drag":      func(s Sample) float64 { return s.Drag },
	"target":    func(s Sample) float64 { return s.Target + s.Speed },
	"friction":  func(s Sample) float64 { return s.Friction },
	"impedance": func(s Sample) float64 { return s.Impedance },
	"force":     func(s Sample) float64 { return s.Total },
	"accel":     func(s Sample) float64 { return s.Accel },
}

// SeriesNames lists the names Series accepts.
func SeriesNames() []string {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Series extracts one column of the trace.
func (tr *Trace) Series(name string) ([]float64, error) {
	get, ok := series[name]
	if !ok {
		return nil, fmt.Errorf("unknown series %q (want one of %v)", name, SeriesNames())
	}
	out := make([]float64, len(tr.Samples))
	for i, s := range tr.Samples {
		out[i] = get(s)
	}
	return out, nil
}
