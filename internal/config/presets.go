package config

import (
	"sort"

	"github.com/san-kum/hapticsim/internal/shape"
)

func ptr(v float64) *float64 { return &v }

var presets = map[string]func() *Config{
	"default": DefaultConfig,
	"pit": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "pit"
		cfg.Profile[0].Pit = true
		cfg.Simulation.Start.X = 240
		return cfg
	},
	"bumps": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "bumps"
		cfg.Simulation.XMin, cfg.Simulation.XMax = 0, 400
		cfg.Simulation.Mass, cfg.Simulation.Damping = 1, 0.5
		cfg.Simulation.Start.X = 10
		cfg.Profile = []ShapeConfig{
			{Shape: "constant", B: 0},
			{Shape: "semicircle", X0: 100, Radius: 50},
			{Shape: "trapezoid", X0: 300, Height: 20, BaseA: 10, BaseB: 50},
		}
		return cfg
	},
	"friction": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "friction"
		cfg.Friction.Enabled = true
		cfg.Simulation.Start.X = 100
		cfg.Profile = []ShapeConfig{
			{Shape: "constant", B: 0, XStart: ptr(150), XEnd: ptr(200), FStat: 40, FDin: 30},
			{Shape: "trapezoid", X0: 350, Height: 300, BaseA: 80, BaseB: 60, Pit: true,
				FStat: 10, FDin: 8, FStatBase: ptr(25), FDinBase: ptr(20)},
		}
		return cfg
	},
	"speed": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "speed"
		cfg.Speed.Enabled = true
		cfg.Speed.SetTarget(450)
		cfg.Speed.MaxSpeed = 40
		cfg.Speed.ZoneWidth = 80
		cfg.Profile = []ShapeConfig{
			{Shape: "semicircle", X0: 200, Radius: 30},
			{Shape: "semicircle", X0: 320, Radius: 20, Pit: true},
		}
		return cfg
	},
	"position": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "position"
		cfg.Position.Enabled = true
		cfg.Position.SetTarget(420)
		cfg.Profile = []ShapeConfig{
			{Shape: "trapezoid", X0: 300, Height: 200, BaseA: 60, BaseB: 40},
		}
		return cfg
	},
	"impedance": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "impedance"
		cfg.Impedance.Enabled = true
		cfg.Position.SetTarget(300)
		cfg.Profile[0].Pit = true
		cfg.Simulation.Start.X = 240
		return cfg
	},
	"waves": func() *Config {
		cfg := DefaultConfig()
		cfg.Name = "waves"
		cfg.Simulation.Start.X = 80
		cfg.Simulation.Start.Vx = 60
		cfg.Simulation.Damping = 0.5
		cfg.Profile = []ShapeConfig{
			{Shape: "sine_sum", Components: []shape.SineComponent{
				{Amplitude: 40, Frequency: 0.05},
				{Amplitude: 10, Frequency: 0.2, Phase: 1},
			}},
			{Shape: "semicircle", X0: 500, Radius: 40, Override: true},
		}
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Config {
	build, ok := presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
