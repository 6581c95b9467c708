package control

import "math"

const (
	DefaultDragStiffness = 20.0
	DefaultDragDeadband  = 0.5
	DefaultDragMaxForce  = 1000.0
)

// Drag is the spring the user pulls the object with while dragging.
type Drag struct {
	Stiffness float64 `yaml:"stiffness" json:"stiffness"`
	Deadband  float64 `yaml:"deadband" json:"deadband"`
	MaxForce  float64 `yaml:"max_force" json:"max_force"`
}

func DefaultDrag() Drag {
	return Drag{
		Stiffness: DefaultDragStiffness,
		Deadband:  DefaultDragDeadband,
		MaxForce:  DefaultDragMaxForce,
	}
}

// Force returns the pull toward cursor. It is zero unless dragging with a
// cursor set, and zero when the raw pull is inside the deadband.
func (d Drag) Force(dragging bool, cursor *float64, x float64) float64 {
	if !dragging || cursor == nil {
		return 0
	}
	raw := d.Stiffness * (*cursor - x)
	if math.Abs(raw) < d.Deadband {
		return 0
	}
	return clamp(raw, d.MaxForce)
}

func (d Drag) Validate() error {
	return nonNegative("drag",
		param{"stiffness", d.Stiffness},
		param{"deadband", d.Deadband},
		param{"max_force", d.MaxForce},
	)
}
