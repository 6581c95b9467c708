// Package profile composes shapes into the potential U(x) felt by the
// haptic object and derives the surface force from it.
package profile

import (
	"errors"
	"fmt"

	"github.com/san-kum/hapticsim/internal/friction"
	"github.com/san-kum/hapticsim/internal/shape"
)

// FiniteDiffStep is the half-width of the central difference used by Force.
const FiniteDiffStep = 1e-3

var ErrNilShape = errors.New("profile: entry has no shape")

// Entry is one shape in a profile.
//
// Friction applies wherever the shape's domain contains x. For trapezoids,
// FlatFriction (when set) replaces Friction on the flat top only.
type Entry struct {
	Shape        shape.Shape
	Override     bool
	Friction     friction.Coefficients
	FlatFriction *friction.Coefficients
}

func (e Entry) Validate() error {
	if e.Shape == nil {
		return ErrNilShape
	}
	if err := e.Shape.Validate(); err != nil {
		return err
	}
	if err := e.Friction.Validate(); err != nil {
		return err
	}
	if e.FlatFriction != nil {
		if err := e.FlatFriction.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (e Entry) declaresFriction() bool {
	if !e.Friction.IsZero() {
		return true
	}
	return e.FlatFriction != nil && !e.FlatFriction.IsZero()
}

// frictionAt returns the entry's coefficients for the region x falls in.
func (e Entry) frictionAt(x float64) (friction.Coefficients, bool) {
	switch e.Shape.Region(x) {
	case shape.Outside:
		return friction.Coefficients{}, false
	case shape.Flat:
		if e.FlatFriction != nil {
			return *e.FlatFriction, true
		}
	}
	return e.Friction, true
}

// Profile is an ordered list of entries. Order matters: the first active
// override wins the potential, the last matching entry wins friction.
type Profile struct {
	entries []Entry
}

// New builds a profile from entries, validating each in order.
func New(entries ...Entry) (*Profile, error) {
	p := &Profile{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		if err := p.Add(e); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Add appends an entry after validating it.
func (p *Profile) Add(e Entry) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("profile entry %d: %w", len(p.entries), err)
	}
	p.entries = append(p.entries, e)
	return nil
}

// AddShape appends a plain additive shape with no friction.
func (p *Profile) AddShape(s shape.Shape) error {
	return p.Add(Entry{Shape: s})
}

func (p *Profile) Len() int { return len(p.entries) }

// Entries returns a copy of the entries in insertion order.
func (p *Profile) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Potential sums the non-override entries at x. If an override entry is
// nonzero at x, its value is returned alone; entries after it are not
// evaluated.
func (p *Profile) Potential(x float64) float64 {
	total := 0.0
	for _, e := range p.entries {
		v := e.Shape.Value(x)
		if e.Override {
			if v != 0 {
				return v
			}
			continue
		}
		total += v
	}
	return total
}

// Force is the negated central difference of the potential at x.
func (p *Profile) Force(x float64) float64 {
	dU := (p.Potential(x+FiniteDiffStep) - p.Potential(x-FiniteDiffStep)) / (2 * FiniteDiffStep)
	return -dU
}

// LocalFriction scans entries newest first and returns the coefficients of
// the first one that declares friction and whose domain contains x. The
// region-resolved pair is returned even when it is zero, so an explicitly
// frictionless flat top masks the global values. ok is false when no entry
// matches and the caller should use global values.
func (p *Profile) LocalFriction(x float64) (friction.Coefficients, bool) {
	for i := len(p.entries) - 1; i >= 0; i-- {
		e := p.entries[i]
		if !e.declaresFriction() {
			continue
		}
		if c, ok := e.frictionAt(x); ok {
			return c, true
		}
	}
	return friction.Coefficients{}, false
}

// Sample evaluates U and F on n+1 evenly spaced points over [from, to].
func (p *Profile) Sample(from, to float64, n int) (xs, us, fs []float64) {
	if n < 1 {
		n = 1
	}
	xs = make([]float64, n+1)
	us = make([]float64, n+1)
	fs = make([]float64, n+1)
	dx := (to - from) / float64(n)
	for i := 0; i <= n; i++ {
		x := from + float64(i)*dx
		xs[i] = x
		us[i] = p.Potential(x)
		fs[i] = p.Force(x)
	}
	return xs, us, fs
}
