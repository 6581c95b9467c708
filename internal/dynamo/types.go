package dynamo

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/hapticsim/internal/control"
	"github.com/san-kum/hapticsim/internal/friction"
	"github.com/san-kum/hapticsim/internal/integrators"
)

// ObjectState is the moving point. Dragging is set from outside the
// simulation by drag-start and drag-end events.
type ObjectState struct {
	X        float64 `json:"x"`
	Vx       float64 `json:"vx"`
	Dragging bool    `json:"dragging"`
}

func (s ObjectState) IsValid() bool {
	return !math.IsNaN(s.X) && !math.IsInf(s.X, 0) &&
		!math.IsNaN(s.Vx) && !math.IsInf(s.Vx, 0)
}

// Mode selects the dynamics equation used for a step.
type Mode int

const (
	ModeStandard Mode = iota
	ModeImpedance
)

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeImpedance:
		return "impedance"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Bounds is the inelastic wall pair the position is clamped to.
type Bounds struct {
	Min float64 `yaml:"x_min" json:"x_min"`
	Max float64 `yaml:"x_max" json:"x_max"`
}

func (b Bounds) Clamp(x float64) (float64, bool) {
	switch {
	case x < b.Min:
		return b.Min, true
	case x > b.Max:
		return b.Max, true
	}
	return x, false
}

const (
	DefaultDt                = 0.01
	DefaultMass              = 1.0
	DefaultDamping           = 0.5
	DefaultVelocityThreshold = 0.01
	DefaultStaticFriction    = 7.0
	DefaultKineticFriction   = 5.0
)

// Params is everything a step reads besides the state and the profile.
// A Simulation holds one validated snapshot and swaps it whole on every
// setter call.
type Params struct {
	Dt                float64
	Mass              float64
	Damping           float64
	Bounds            Bounds
	VelocityThreshold float64

	Drag      control.Drag
	Position  control.PositionTarget
	Speed     control.SpeedTarget
	Impedance integrators.Impedance
	Mode      Mode

	FrictionEnabled bool
	Friction        friction.Coefficients
}

func DefaultParams() Params {
	return Params{
		Dt:                DefaultDt,
		Mass:              DefaultMass,
		Damping:           DefaultDamping,
		Bounds:            Bounds{Min: -100, Max: 100},
		VelocityThreshold: DefaultVelocityThreshold,
		Drag:              control.DefaultDrag(),
		Position:          control.DefaultPositionTarget(),
		Speed:             control.DefaultSpeedTarget(),
		Impedance:         *integrators.DefaultImpedance(),
		Mode:              ModeStandard,
		Friction: friction.Coefficients{
			Static:  DefaultStaticFriction,
			Kinetic: DefaultKineticFriction,
		},
	}
}

// Clone copies p without sharing the target pointers.
func (p Params) Clone() Params {
	c := p
	if p.Position.Target != nil {
		v := *p.Position.Target
		c.Position.Target = &v
	}
	if p.Speed.Target != nil {
		v := *p.Speed.Target
		c.Speed.Target = &v
	}
	return c
}

func (p Params) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"dt", p.Dt},
		{"mass", p.Mass},
		{"damping", p.Damping},
		{"x_min", p.Bounds.Min},
		{"x_max", p.Bounds.Max},
		{"velocity_threshold", p.VelocityThreshold},
		{"impedance.mass", p.Impedance.Mass},
		{"impedance.damping", p.Impedance.Damping},
		{"impedance.stiffness", p.Impedance.Stiffness},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrParameterBounds, f.name)
		}
	}
	if p.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrParameterBounds, p.Dt)
	}
	if p.Mass <= 0 {
		return fmt.Errorf("%w: mass must be positive, got %g", ErrParameterBounds, p.Mass)
	}
	if p.Impedance.Mass <= 0 {
		return fmt.Errorf("%w: impedance mass must be positive, got %g", ErrParameterBounds, p.Impedance.Mass)
	}
	if p.Damping < 0 || p.Impedance.Damping < 0 || p.Impedance.Stiffness < 0 {
		return fmt.Errorf("%w: damping and stiffness must be non-negative", ErrParameterBounds)
	}
	if p.VelocityThreshold < 0 {
		return fmt.Errorf("%w: velocity threshold must be non-negative, got %g", ErrParameterBounds, p.VelocityThreshold)
	}
	if p.Bounds.Min >= p.Bounds.Max {
		return fmt.Errorf("%w: x_min %g must be below x_max %g", ErrParameterBounds, p.Bounds.Min, p.Bounds.Max)
	}
	if p.Mode != ModeStandard && p.Mode != ModeImpedance {
		return fmt.Errorf("%w: unknown %s", ErrParameterBounds, p.Mode)
	}
	for _, v := range []interface{ Validate() error }{p.Drag, p.Position, p.Speed, p.Friction} {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrParameterBounds, err)
		}
	}
	return nil
}

// Forces is the breakdown of one step.
type Forces struct {
	Haptic    float64        `json:"haptic"`
	Drag      float64        `json:"drag"`
	Target    float64        `json:"target"`
	Speed     float64        `json:"speed"`
	Move      float64        `json:"move"`
	Friction  float64        `json:"friction"`
	Impedance float64        `json:"impedance"`
	Total     float64        `json:"total"`
	Accel     float64        `json:"accel"`
	Phase     friction.Phase `json:"phase"`
}

// Control is the part of the total produced by the actuators rather than
// by the surface or the user.
func (f Forces) Control() float64 { return f.Target + f.Speed + f.Impedance }

func (f Forces) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("haptic", f.Haptic),
		slog.Float64("drag", f.Drag),
		slog.Float64("target", f.Target),
		slog.Float64("speed", f.Speed),
		slog.Float64("friction", f.Friction),
		slog.Float64("impedance", f.Impedance),
		slog.Float64("total", f.Total),
		slog.String("phase", f.Phase.String()),
	)
}

type Metric interface {
	Name() string
	Observe(s ObjectState, f Forces, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s ObjectState, f Forces, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s ObjectState, f Forces, t float64)

func (fn ObserverFunc) OnStep(s ObjectState, f Forces, t float64) { fn(s, f, t) }

type Result struct {
	Final      ObjectState
	Forces     Forces
	Time       float64
	StepsTaken int
	Metrics    map[string]float64
}
