package control

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidParam = errors.New("control: invalid parameter")

type param struct {
	name  string
	value float64
}

func finiteParam(scope string, params ...param) error {
	for _, p := range params {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%w: %s.%s is not finite", ErrInvalidParam, scope, p.name)
		}
	}
	return nil
}

func nonNegative(scope string, params ...param) error {
	if err := finiteParam(scope, params...); err != nil {
		return err
	}
	for _, p := range params {
		if p.value < 0 {
			return fmt.Errorf("%w: %s.%s must be non-negative, got %g", ErrInvalidParam, scope, p.name, p.value)
		}
	}
	return nil
}

func clamp(v, limit float64) float64 {
	return math.Max(-limit, math.Min(limit, v))
}
