package integrators

const (
	DefaultImpedanceMass      = 5.0
	DefaultImpedanceDamping   = 10.0
	DefaultImpedanceStiffness = 20.0
)

// Impedance renders the object as M*a + B*v + K*(x - desired) = F_applied.
// The standard mass and damping are not used.
type Impedance struct {
	Mass      float64 `yaml:"mass" json:"mass"`
	Damping   float64 `yaml:"damping" json:"damping"`
	Stiffness float64 `yaml:"stiffness" json:"stiffness"`
}

func NewImpedance(mass, damping, stiffness float64) *Impedance {
	return &Impedance{Mass: mass, Damping: damping, Stiffness: stiffness}
}

func DefaultImpedance() *Impedance {
	return NewImpedance(DefaultImpedanceMass, DefaultImpedanceDamping, DefaultImpedanceStiffness)
}

func (im *Impedance) Name() string { return "impedance" }

func (im *Impedance) Accelerate(in Input) Output {
	f := -im.Damping*in.Vx - im.Stiffness*(in.X-in.Desired)
	return Output{
		Accel:     (in.Drive + f) / im.Mass,
		Impedance: f,
	}
}
