package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/hapticsim/internal/shape"
)

// tunables are the scalar parameters addressable by name for sweeps and
// tuning.
var tunables = map[string]func(c *Config) *float64{
	"mass":                func(c *Config) *float64 { return &c.Simulation.Mass },
	"damping":             func(c *Config) *float64 { return &c.Simulation.Damping },
	"velocity_threshold":  func(c *Config) *float64 { return &c.Simulation.VelocityThreshold },
	"start.x":             func(c *Config) *float64 { return &c.Simulation.Start.X },
	"start.vx":            func(c *Config) *float64 { return &c.Simulation.Start.Vx },
	"drag.stiffness":      func(c *Config) *float64 { return &c.Drag.Stiffness },
	"position.stiffness":  func(c *Config) *float64 { return &c.Position.Stiffness },
	"position.damping":    func(c *Config) *float64 { return &c.Position.Damping },
	"position.max_force":  func(c *Config) *float64 { return &c.Position.MaxForce },
	"speed.max_speed":     func(c *Config) *float64 { return &c.Speed.MaxSpeed },
	"speed.zone_width":    func(c *Config) *float64 { return &c.Speed.ZoneWidth },
	"speed.gain":          func(c *Config) *float64 { return &c.Speed.Gain },
	"impedance.mass":      func(c *Config) *float64 { return &c.Impedance.Mass },
	"impedance.damping":   func(c *Config) *float64 { return &c.Impedance.Damping },
	"impedance.stiffness": func(c *Config) *float64 { return &c.Impedance.Stiffness },
	"friction.static":     func(c *Config) *float64 { return &c.Friction.Static },
	"friction.kinetic":    func(c *Config) *float64 { return &c.Friction.Kinetic },
}

func ParamNames() []string {
	names := make([]string, 0, len(tunables))
	for name := range tunables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) GetParam(name string) (float64, error) {
	field, ok := tunables[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown parameter %q", ErrInvalidConfig, name)
	}
	return *field(c), nil
}

// SetParam sets a named scalar. The result is not validated; call Validate
// before building a simulation from it.
func (c *Config) SetParam(name string, v float64) error {
	field, ok := tunables[name]
	if !ok {
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidConfig, name)
	}
	*field(c) = v
	return nil
}

// Clone deep-copies the config.
func (c *Config) Clone() *Config {
	out := *c
	out.Position.Target = clonePtr(c.Position.Target)
	out.Speed.Target = clonePtr(c.Speed.Target)
	out.Profile = make([]ShapeConfig, len(c.Profile))
	for i, sc := range c.Profile {
		sc.XStart = clonePtr(sc.XStart)
		sc.XEnd = clonePtr(sc.XEnd)
		sc.FStatBase = clonePtr(sc.FStatBase)
		sc.FDinBase = clonePtr(sc.FDinBase)
		sc.Components = append([]shape.SineComponent(nil), sc.Components...)
		out.Profile[i] = sc
	}
	return &out
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
