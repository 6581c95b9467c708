package shape

import (
	"fmt"
	"math"
)

// Constant is b everywhere, or only within Bounds when they are set.
type Constant struct {
	B      float64
	Bounds *Interval
}

func NewConstant(b float64) *Constant { return &Constant{B: b} }

func (c *Constant) Kind() Kind { return KindConstant }

func (c *Constant) Value(x float64) float64 {
	if c.Bounds != nil && !c.Bounds.Contains(x) {
		return 0
	}
	return c.B
}

func (c *Constant) Region(x float64) Region {
	if c.Bounds != nil && !c.Bounds.Contains(x) {
		return Outside
	}
	return Body
}

func (c *Constant) Validate() error {
	if !finite(c.B) {
		return fmt.Errorf("%w: constant b is not finite", ErrInvalidShape)
	}
	if c.Bounds != nil {
		return c.Bounds.validate()
	}
	return nil
}

func (c *Constant) sealed() {}

// Linear is a*x + b everywhere, or only within Bounds when they are set.
type Linear struct {
	A, B   float64
	Bounds *Interval
}

func NewLinear(a, b float64) *Linear { return &Linear{A: a, B: b} }

func (l *Linear) Kind() Kind { return KindLinear }

func (l *Linear) Value(x float64) float64 {
	if l.Bounds != nil && !l.Bounds.Contains(x) {
		return 0
	}
	return l.A*x + l.B
}

func (l *Linear) Region(x float64) Region {
	if l.Bounds != nil && !l.Bounds.Contains(x) {
		return Outside
	}
	return Body
}

func (l *Linear) Validate() error {
	if !finite(l.A, l.B) {
		return fmt.Errorf("%w: linear coefficients are not finite", ErrInvalidShape)
	}
	if l.Bounds != nil {
		return l.Bounds.validate()
	}
	return nil
}

func (l *Linear) sealed() {}

// Trapezoid is a plateau of width BaseA centred on X0 with smoothed
// shoulders of width BaseB/2 on each side. Pit flips the sign.
type Trapezoid struct {
	X0     float64
	Height float64
	BaseA  float64
	BaseB  float64
	Pit    bool
}

func NewTrapezoid(x0, height, baseA, baseB float64, pit bool) *Trapezoid {
	return &Trapezoid{X0: x0, Height: height, BaseA: baseA, BaseB: baseB, Pit: pit}
}

func (t *Trapezoid) Kind() Kind { return KindTrapezoid }

// Extent returns the outer interval outside of which the trapezoid is zero.
func (t *Trapezoid) Extent() Interval {
	half := t.BaseA/2 + t.BaseB/2
	return Interval{Start: t.X0 - half, End: t.X0 + half}
}

func (t *Trapezoid) Value(x float64) float64 {
	ext := t.Extent()
	if !ext.Contains(x) {
		return 0
	}
	halfA := t.BaseA / 2
	left := Smoothstep(ext.Start, t.X0-halfA, x)
	right := 1 - Smoothstep(t.X0+halfA, ext.End, x)
	u := t.Height * math.Min(left, right)
	if t.Pit {
		return -u
	}
	return u
}

func (t *Trapezoid) Region(x float64) Region {
	if !t.Extent().Contains(x) {
		return Outside
	}
	if math.Abs(x-t.X0) <= t.BaseA/2 {
		return Flat
	}
	return Slope
}

func (t *Trapezoid) Validate() error {
	if !finite(t.X0, t.Height, t.BaseA, t.BaseB) {
		return fmt.Errorf("%w: trapezoid parameters are not finite", ErrInvalidShape)
	}
	if t.BaseA < 0 || t.BaseB < 0 {
		return fmt.Errorf("%w: trapezoid bases must be non-negative (base_a=%g, base_b=%g)", ErrInvalidShape, t.BaseA, t.BaseB)
	}
	if ext := t.Extent(); !finite(ext.Start, ext.End, ext.End-ext.Start) {
		return fmt.Errorf("%w: trapezoid extent overflows (x0=%g, base_a=%g, base_b=%g)", ErrInvalidShape, t.X0, t.BaseA, t.BaseB)
	}
	return nil
}

func (t *Trapezoid) sealed() {}

// Semicircle is a half disc of Radius centred on X0. Pit flips the sign.
type Semicircle struct {
	X0     float64
	Radius float64
	Pit    bool
}

func NewSemicircle(x0, radius float64, pit bool) *Semicircle {
	return &Semicircle{X0: x0, Radius: radius, Pit: pit}
}

func (s *Semicircle) Kind() Kind { return KindSemicircle }

func (s *Semicircle) Value(x float64) float64 {
	d := x - s.X0
	if math.Abs(d) >= s.Radius {
		return 0
	}
	y := math.Sqrt(s.Radius*s.Radius - d*d)
	if s.Pit {
		return -y
	}
	return y
}

func (s *Semicircle) Region(x float64) Region {
	if math.Abs(x-s.X0) > s.Radius {
		return Outside
	}
	return Body
}

func (s *Semicircle) Validate() error {
	if !finite(s.X0, s.Radius) {
		return fmt.Errorf("%w: semicircle parameters are not finite", ErrInvalidShape)
	}
	if s.Radius < 0 {
		return fmt.Errorf("%w: semicircle radius %g is negative", ErrInvalidShape, s.Radius)
	}
	if !finite(s.Radius*s.Radius, s.X0-s.Radius, s.X0+s.Radius) {
		return fmt.Errorf("%w: semicircle radius %g overflows", ErrInvalidShape, s.Radius)
	}
	return nil
}

func (s *Semicircle) sealed() {}

type SineComponent struct {
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
	Frequency float64 `yaml:"frequency" json:"frequency"`
	Phase     float64 `yaml:"phase" json:"phase"`
}

// SineSum adds amplitude*sin(frequency*x + phase) over its components in order.
type SineSum struct {
	Components []SineComponent
}

func NewSineSum(components ...SineComponent) *SineSum {
	return &SineSum{Components: components}
}

func (s *SineSum) Kind() Kind { return KindSineSum }

func (s *SineSum) Value(x float64) float64 {
	total := 0.0
	for _, c := range s.Components {
		total += c.Amplitude * math.Sin(c.Frequency*x+c.Phase)
	}
	return total
}

func (s *SineSum) Region(float64) Region { return Body }

func (s *SineSum) Validate() error {
	for i, c := range s.Components {
		if !finite(c.Amplitude, c.Frequency, c.Phase) {
			return fmt.Errorf("%w: sine component %d is not finite", ErrInvalidShape, i)
		}
	}
	return nil
}

func (s *SineSum) sealed() {}
