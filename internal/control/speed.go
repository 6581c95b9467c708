package control

import "math"

const (
	DefaultMaxSpeed      = 10.0
	DefaultZoneWidth     = 50.0
	DefaultSpeedGain     = 5.0
	DefaultSpeedMaxForce = 500.0
)

// SpeedTarget drives the object toward Target at up to MaxSpeed, ramping the
// commanded speed down to zero across the last ZoneWidth of distance.
type SpeedTarget struct {
	Enabled   bool     `yaml:"enabled" json:"enabled"`
	Target    *float64 `yaml:"target,omitempty" json:"target,omitempty"`
	MaxSpeed  float64  `yaml:"max_speed" json:"max_speed"`
	ZoneWidth float64  `yaml:"zone_width" json:"zone_width"`
	Gain      float64  `yaml:"gain" json:"gain"`
	MaxForce  float64  `yaml:"max_force" json:"max_force"`
}

func DefaultSpeedTarget() SpeedTarget {
	return SpeedTarget{
		MaxSpeed:  DefaultMaxSpeed,
		ZoneWidth: DefaultZoneWidth,
		Gain:      DefaultSpeedGain,
		MaxForce:  DefaultSpeedMaxForce,
	}
}

func (s *SpeedTarget) SetTarget(x float64) { s.Target = &x }
func (s *SpeedTarget) ClearTarget()        { s.Target = nil }

func (s SpeedTarget) Active() bool { return s.Enabled && s.Target != nil }

// DesiredSpeed is the signed speed commanded at position x.
func (s SpeedTarget) DesiredSpeed(x float64) float64 {
	if s.Target == nil {
		return 0
	}
	delta := *s.Target - x
	dist := math.Abs(delta)
	dir := 0.0
	if delta > 0 {
		dir = 1
	} else if delta < 0 {
		dir = -1
	}
	if dist >= s.ZoneWidth {
		return dir * s.MaxSpeed
	}
	return dir * s.MaxSpeed * dist / s.ZoneWidth
}

func (s SpeedTarget) Force(x, vx float64) float64 {
	if !s.Active() {
		return 0
	}
	return clamp(s.Gain*(s.DesiredSpeed(x)-vx), s.MaxForce)
}

func (s SpeedTarget) Validate() error {
	if s.Target != nil {
		if err := finiteParam("speed", param{"target", *s.Target}); err != nil {
			return err
		}
	}
	return nonNegative("speed",
		param{"max_speed", s.MaxSpeed},
		param{"zone_width", s.ZoneWidth},
		param{"gain", s.Gain},
		param{"max_force", s.MaxForce},
	)
}
