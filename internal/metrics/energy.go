package metrics

import (
	"math"

	"github.com/san-kum/hapticsim/internal/dynamo"
)

// Potential is the surface the object moves on.
type Potential interface {
	Potential(x float64) float64
}

func mechanical(u Potential, mass, x, vx float64) float64 {
	return 0.5*mass*vx*vx + u.Potential(x)
}

// Energy is the mean mechanical energy 0.5*m*v² + U(x) over the run.
type Energy struct {
	name        string
	mass        float64
	surface     Potential
	samples     int
	totalEnergy float64
}

func NewEnergy(mass float64, surface Potential) *Energy {
	return &Energy{
		name:    "energy",
		mass:    mass,
		surface: surface,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s dynamo.ObjectState, f dynamo.Forces, t float64) {
	e.totalEnergy += mechanical(e.surface, e.mass, s.X, s.Vx)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative change of mechanical energy from the
// first observed step. Damping and friction make it grow; it is mainly a
// check on the integrator for undamped, frictionless surfaces.
type EnergyDrift struct {
	name          string
	mass          float64
	surface       Potential
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(mass float64, surface Potential) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		mass:    mass,
		surface: surface,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s dynamo.ObjectState, f dynamo.Forces, t float64) {
	energy := mechanical(e.surface, e.mass, s.X, s.Vx)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
