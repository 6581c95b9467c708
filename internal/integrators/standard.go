package integrators

// Standard is F = m*a with a viscous damping term.
type Standard struct {
	Mass    float64
	Damping float64
}

func NewStandard(mass, damping float64) *Standard {
	return &Standard{Mass: mass, Damping: damping}
}

func (s *Standard) Name() string { return "standard" }

func (s *Standard) Accelerate(in Input) Output {
	return Output{Accel: in.Drive/s.Mass - s.Damping*in.Vx/s.Mass}
}
