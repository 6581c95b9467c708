package control

const (
	DefaultPositionStiffness = 10.0
	DefaultPositionDamping   = 5.0
	DefaultPositionMaxForce  = 500.0
)

// PositionTarget pulls the object to Target with a clamped spring-damper.
type PositionTarget struct {
	Enabled   bool     `yaml:"enabled" json:"enabled"`
	Target    *float64 `yaml:"target,omitempty" json:"target,omitempty"`
	Stiffness float64  `yaml:"stiffness" json:"stiffness"`
	Damping   float64  `yaml:"damping" json:"damping"`
	MaxForce  float64  `yaml:"max_force" json:"max_force"`
}

func DefaultPositionTarget() PositionTarget {
	return PositionTarget{
		Stiffness: DefaultPositionStiffness,
		Damping:   DefaultPositionDamping,
		MaxForce:  DefaultPositionMaxForce,
	}
}

func (p *PositionTarget) SetTarget(x float64) { p.Target = &x }
func (p *PositionTarget) ClearTarget()        { p.Target = nil }

// Active reports whether the controller contributes force this step.
func (p PositionTarget) Active() bool { return p.Enabled && p.Target != nil }

func (p PositionTarget) Force(x, vx float64) float64 {
	if !p.Active() {
		return 0
	}
	return clamp(p.Stiffness*(*p.Target-x)-p.Damping*vx, p.MaxForce)
}

func (p PositionTarget) Validate() error {
	if p.Target != nil {
		if err := finiteParam("position", param{"target", *p.Target}); err != nil {
			return err
		}
	}
	return nonNegative("position",
		param{"stiffness", p.Stiffness},
		param{"damping", p.Damping},
		param{"max_force", p.MaxForce},
	)
}
