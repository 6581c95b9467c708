package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/hapticsim/internal/control"
	"github.com/san-kum/hapticsim/internal/dynamo"
	"github.com/san-kum/hapticsim/internal/friction"
	"github.com/san-kum/hapticsim/internal/integrators"
	"github.com/san-kum/hapticsim/internal/profile"
	"github.com/san-kum/hapticsim/internal/shape"
)

const (
	DefaultSteps = 2000
	DefaultXMin  = 50.0
	DefaultXMax  = 550.0
	DefaultMass  = 5.0
	DefaultDamp  = 2.0
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is a complete scenario: simulation parameters, controller setup
// and the profile, in the order its entries are added.
type Config struct {
	Name       string                 `yaml:"name,omitempty"`
	Simulation SimulationConfig       `yaml:"simulation"`
	Drag       control.Drag           `yaml:"drag"`
	Position   control.PositionTarget `yaml:"position"`
	Speed      control.SpeedTarget    `yaml:"speed"`
	Impedance  ImpedanceConfig        `yaml:"impedance"`
	Friction   FrictionConfig         `yaml:"friction"`
	Profile    []ShapeConfig          `yaml:"profile"`
}

type SimulationConfig struct {
	Dt                float64   `yaml:"dt"`
	Steps             int       `yaml:"steps"`
	Mass              float64   `yaml:"mass"`
	Damping           float64   `yaml:"damping"`
	XMin              float64   `yaml:"x_min"`
	XMax              float64   `yaml:"x_max"`
	VelocityThreshold float64   `yaml:"velocity_threshold"`
	Start             InitState `yaml:"start"`
}

type InitState struct {
	X  float64 `yaml:"x"`
	Vx float64 `yaml:"vx"`
}

type ImpedanceConfig struct {
	Enabled bool `yaml:"enabled"`

	integrators.Impedance `yaml:",inline"`
}

type FrictionConfig struct {
	Enabled bool `yaml:"enabled"`

	friction.Coefficients `yaml:",inline"`
}

// ShapeConfig is one profile entry. Shape selects the kind and decides
// which of the remaining fields are read.
type ShapeConfig struct {
	Shape    string `yaml:"shape"`
	Override bool   `yaml:"override,omitempty"`

	// constant, linear
	A      float64  `yaml:"a,omitempty"`
	B      float64  `yaml:"b,omitempty"`
	XStart *float64 `yaml:"x_start,omitempty"`
	XEnd   *float64 `yaml:"x_end,omitempty"`

	// trapezoid, semicircle
	X0     float64 `yaml:"x0,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	BaseA  float64 `yaml:"base_a,omitempty"`
	BaseB  float64 `yaml:"base_b,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`
	Pit    bool    `yaml:"pit,omitempty"`

	// sine_sum
	Components []shape.SineComponent `yaml:"components,omitempty"`

	FStat     float64  `yaml:"f_stat,omitempty"`
	FDin      float64  `yaml:"f_din,omitempty"`
	FStatBase *float64 `yaml:"f_stat_base,omitempty"`
	FDinBase  *float64 `yaml:"f_din_base,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "default",
		Simulation: SimulationConfig{
			Dt:                dynamo.DefaultDt,
			Steps:             DefaultSteps,
			Mass:              DefaultMass,
			Damping:           DefaultDamp,
			XMin:              DefaultXMin,
			XMax:              DefaultXMax,
			VelocityThreshold: dynamo.DefaultVelocityThreshold,
			Start:             InitState{X: DefaultXMin},
		},
		Drag:      control.DefaultDrag(),
		Position:  control.DefaultPositionTarget(),
		Speed:     control.DefaultSpeedTarget(),
		Impedance: ImpedanceConfig{Impedance: *integrators.DefaultImpedance()},
		Friction: FrictionConfig{Coefficients: friction.Coefficients{
			Static:  dynamo.DefaultStaticFriction,
			Kinetic: dynamo.DefaultKineticFriction,
		}},
		Profile: []ShapeConfig{
			{Shape: "trapezoid", X0: 300, Height: 500, BaseA: 100, BaseB: 30},
		},
	}
}

// Load reads a YAML scenario over the defaults. A profile list in the file
// replaces the default profile as a whole; without a profile key the default
// trapezoid is kept. An empty list gives a flat surface.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks that the scenario builds.
func (c *Config) Validate() error {
	if c.Simulation.Steps < 0 {
		return fmt.Errorf("%w: steps must be non-negative, got %d", ErrInvalidConfig, c.Simulation.Steps)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.BuildProfile(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Params converts the scenario into a simulation parameter snapshot.
func (c *Config) Params() dynamo.Params {
	p := dynamo.Params{
		Dt:                c.Simulation.Dt,
		Mass:              c.Simulation.Mass,
		Damping:           c.Simulation.Damping,
		Bounds:            dynamo.Bounds{Min: c.Simulation.XMin, Max: c.Simulation.XMax},
		VelocityThreshold: c.Simulation.VelocityThreshold,
		Drag:              c.Drag,
		Position:          c.Position,
		Speed:             c.Speed,
		Impedance:         c.Impedance.Impedance,
		Mode:              dynamo.ModeStandard,
		FrictionEnabled:   c.Friction.Enabled,
		Friction:          c.Friction.Coefficients,
	}
	if c.Impedance.Enabled {
		p.Mode = dynamo.ModeImpedance
	}
	return p.Clone()
}

func (c *Config) BuildProfile() (*profile.Profile, error) {
	prof, err := profile.New()
	if err != nil {
		return nil, err
	}
	for i, sc := range c.Profile {
		e, err := sc.Entry()
		if err != nil {
			return nil, fmt.Errorf("profile[%d]: %w", i, err)
		}
		if err := prof.Add(e); err != nil {
			return nil, fmt.Errorf("profile[%d]: %w", i, err)
		}
	}
	return prof, nil
}

// NewSimulation builds the profile and a simulation placed at the start state.
func (c *Config) NewSimulation() (*dynamo.Simulation, error) {
	prof, err := c.BuildProfile()
	if err != nil {
		return nil, err
	}
	sim, err := dynamo.New(c.Params(), prof)
	if err != nil {
		return nil, err
	}
	if err := sim.SetState(c.Simulation.Start.X, c.Simulation.Start.Vx); err != nil {
		return nil, err
	}
	return sim, nil
}

// Entry decodes the shape by its kind.
func (sc ShapeConfig) Entry() (profile.Entry, error) {
	kind, err := shape.ParseKind(sc.Shape)
	if err != nil {
		return profile.Entry{}, err
	}

	var s shape.Shape
	switch kind {
	case shape.KindConstant:
		c := shape.NewConstant(sc.B)
		c.Bounds = sc.interval()
		s = c
	case shape.KindLinear:
		l := shape.NewLinear(sc.A, sc.B)
		l.Bounds = sc.interval()
		s = l
	case shape.KindTrapezoid:
		s = shape.NewTrapezoid(sc.X0, sc.Height, sc.BaseA, sc.BaseB, sc.Pit)
	case shape.KindSemicircle:
		s = shape.NewSemicircle(sc.X0, sc.Radius, sc.Pit)
	case shape.KindSineSum:
		s = shape.NewSineSum(sc.Components...)
	}

	e := profile.Entry{
		Shape:    s,
		Override: sc.Override,
		Friction: friction.Coefficients{Static: sc.FStat, Kinetic: sc.FDin},
	}
	if sc.FStatBase != nil || sc.FDinBase != nil {
		if kind != shape.KindTrapezoid {
			return profile.Entry{}, fmt.Errorf("%w: f_stat_base/f_din_base only apply to trapezoids, got %s", ErrInvalidConfig, kind)
		}
		flat := e.Friction
		if sc.FStatBase != nil {
			flat.Static = *sc.FStatBase
		}
		if sc.FDinBase != nil {
			flat.Kinetic = *sc.FDinBase
		}
		e.FlatFriction = &flat
	}
	return e, nil
}

// interval is nil when neither end is given. A missing end is unbounded.
func (sc ShapeConfig) interval() *shape.Interval {
	if sc.XStart == nil && sc.XEnd == nil {
		return nil
	}
	iv := shape.Interval{Start: math.Inf(-1), End: math.Inf(1)}
	if sc.XStart != nil {
		iv.Start = *sc.XStart
	}
	if sc.XEnd != nil {
		iv.End = *sc.XEnd
	}
	return &iv
}
