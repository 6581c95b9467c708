// Package friction implements the stick/slip model applied to the passive
// (profile plus drag) part of the drive force.
package friction

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidCoefficients = errors.New("friction: coefficients must be finite and non-negative")

// Coefficients are force magnitudes, not ratios: Static is the breakaway
// threshold and Kinetic the sliding resistance.
type Coefficients struct {
	Static  float64 `yaml:"static" json:"static"`
	Kinetic float64 `yaml:"kinetic" json:"kinetic"`
}

func (c Coefficients) IsZero() bool { return c.Static == 0 && c.Kinetic == 0 }

func (c Coefficients) Validate() error {
	for _, v := range []float64{c.Static, c.Kinetic} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w (static=%g, kinetic=%g)", ErrInvalidCoefficients, c.Static, c.Kinetic)
		}
	}
	return nil
}

// Phase is the outcome of a stick/slip decision.
type Phase int

const (
	// Off means friction was not evaluated for the step.
	Off Phase = iota
	Stuck
	Breakaway
	Sliding
)

func (p Phase) String() string {
	switch p {
	case Off:
		return "off"
	case Stuck:
		return "stuck"
	case Breakaway:
		return "breakaway"
	case Sliding:
		return "sliding"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Resolve picks the profile-local coefficients when the profile declares
// them at the current position, otherwise the global ones.
func Resolve(local Coefficients, ok bool, global Coefficients) Coefficients {
	if ok {
		return local
	}
	return global
}

// Apply returns the drive force net of friction.
//
// At rest (|vx| < vxThreshold) a drive below the static threshold is fully
// cancelled. A drive at or above it breaks away against kinetic friction,
// opposing vx when it is nonzero and the drive otherwise. While moving,
// kinetic friction opposes vx.
func Apply(fMove, vx float64, c Coefficients, vxThreshold float64) (float64, Phase) {
	if math.Abs(vx) < vxThreshold {
		if math.Abs(fMove) < c.Static {
			return 0, Stuck
		}
		dir := sign(vx)
		if dir == 0 {
			dir = sign(fMove)
		}
		return fMove - dir*c.Kinetic, Breakaway
	}
	return fMove - sign(vx)*c.Kinetic, Sliding
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(text []byte) error {
	for _, c := range []Phase{Off, Stuck, Breakaway, Sliding} {
		if c.String() == string(text) {
			*p = c
			return nil
		}
	}
	return fmt.Errorf("friction: unknown phase %q", text)
}
