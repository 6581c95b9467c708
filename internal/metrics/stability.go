package metrics

import (
	"math"

	"github.com/san-kum/hapticsim/internal/dynamo"
)

// Stability is the fraction of steps with the object within band of the
// reference position.
type Stability struct {
	name      string
	reference float64
	band      float64
	inside    int
	samples   int
}

func NewStability(reference, band float64) *Stability {
	return &Stability{
		name:      "stability",
		reference: reference,
		band:      band,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(st dynamo.ObjectState, f dynamo.Forces, t float64) {
	s.samples++
	if math.Abs(st.X-s.reference) <= s.band {
		s.inside++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return float64(s.inside) / float64(s.samples)
}

func (s *Stability) Reset() {
	s.inside = 0
	s.samples = 0
}

// Settling is the time after which the object stayed within band of the
// reference until the end of the run, or -1 if it ended outside.
type Settling struct {
	name      string
	reference float64
	band      float64
	enteredAt float64
	inside    bool
}

func NewSettling(reference, band float64) *Settling {
	return &Settling{
		name:      "settling_time",
		reference: reference,
		band:      band,
	}
}

func (s *Settling) Name() string { return s.name }

func (s *Settling) Observe(st dynamo.ObjectState, f dynamo.Forces, t float64) {
	in := math.Abs(st.X-s.reference) <= s.band
	if in && !s.inside {
		s.enteredAt = t
	}
	s.inside = in
}

func (s *Settling) Value() float64 {
	if !s.inside {
		return -1
	}
	return s.enteredAt
}

func (s *Settling) Reset() {
	s.enteredAt = 0
	s.inside = false
}

// Overshoot is the furthest the object went past the reference, measured
// in the direction it first approached from. Zero if it never crossed.
type Overshoot struct {
	name      string
	reference float64
	side      float64
	max       float64
}

func NewOvershoot(reference float64) *Overshoot {
	return &Overshoot{
		name:      "overshoot",
		reference: reference,
	}
}

func (o *Overshoot) Name() string { return o.name }

func (o *Overshoot) Observe(st dynamo.ObjectState, f dynamo.Forces, t float64) {
	d := st.X - o.reference
	if o.side == 0 {
		switch {
		case d < 0:
			o.side = -1
		case d > 0:
			o.side = 1
		}
		return
	}
	if past := -o.side * d; past > o.max {
		o.max = past
	}
}

func (o *Overshoot) Value() float64 { return o.max }

func (o *Overshoot) Reset() {
	o.side = 0
	o.max = 0
}
