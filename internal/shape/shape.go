package shape

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidShape is returned for malformed shape parameters and unknown kinds.
var ErrInvalidShape = errors.New("shape: invalid parameters")

type Kind int

const (
	KindConstant Kind = iota
	KindLinear
	KindTrapezoid
	KindSemicircle
	KindSineSum
)

var kindNames = map[Kind]string{
	KindConstant:   "constant",
	KindLinear:     "linear",
	KindTrapezoid:  "trapezoid",
	KindSemicircle: "semicircle",
	KindSineSum:    "sine_sum",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a discriminator name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidShape, name)
}

// Region classifies a position relative to a shape's domain.
type Region int

const (
	Outside Region = iota
	// Body is anywhere inside a shape that has no sub-regions.
	Body
	// Flat is the top (or floor) of a trapezoid.
	Flat
	// Slope is a trapezoid shoulder.
	Slope
)

func (r Region) String() string {
	switch r {
	case Body:
		return "body"
	case Flat:
		return "flat"
	case Slope:
		return "slope"
	default:
		return "outside"
	}
}

// Shape is a stateless scalar profile function.
type Shape interface {
	Kind() Kind
	// Value returns the shape's contribution at x, exactly 0 outside its domain.
	Value(x float64) float64
	// Region reports where x falls within the shape's domain.
	Region(x float64) Region
	Validate() error

	sealed()
}

// Interval is a closed range [Start, End]. Either end may be infinite.
type Interval struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end" json:"end"`
}

func (iv Interval) Contains(x float64) bool {
	return x >= iv.Start && x <= iv.End
}

func (iv Interval) validate() error {
	if math.IsNaN(iv.Start) || math.IsNaN(iv.End) {
		return fmt.Errorf("%w: NaN bounds", ErrInvalidShape)
	}
	if iv.Start > iv.End {
		return fmt.Errorf("%w: bounds start %g > end %g", ErrInvalidShape, iv.Start, iv.End)
	}
	return nil
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
