package metrics

import (
	"math"

	"github.com/san-kum/hapticsim/internal/dynamo"
)

// ControlEffort is the mean magnitude of the actuator force (position,
// speed and impedance terms) per step.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(s dynamo.ObjectState, f dynamo.Forces, t float64) {
	c.sum += math.Abs(f.Control())
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
