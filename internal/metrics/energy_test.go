package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/hapticsim/internal/dynamo"
)

type quadratic struct{ k float64 }

func (q quadratic) Potential(x float64) float64 { return 0.5 * q.k * x * x }

func TestEnergy(t *testing.T) {
	m := NewEnergy(2.0, quadratic{k: 4})

	m.Observe(dynamo.ObjectState{X: 1, Vx: 3}, dynamo.Forces{}, 0)
	e1 := m.Value()

	expected := 0.5*2*9 + 0.5*4*1
	if math.Abs(e1-expected) > 1e-9 {
		t.Errorf("expected energy %f, got %f", expected, e1)
	}

	m.Observe(dynamo.ObjectState{X: 0, Vx: 0}, dynamo.Forces{}, 0.01)
	if got := m.Value(); math.Abs(got-expected/2) > 1e-9 {
		t.Errorf("expected mean energy %f, got %f", expected/2, got)
	}
}

func TestEnergyReset(t *testing.T) {
	m := NewEnergy(1.0, quadratic{k: 1})

	m.Observe(dynamo.ObjectState{X: 1, Vx: 1}, dynamo.Forces{}, 0)
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(1.0, quadratic{k: 1})

	m.Observe(dynamo.ObjectState{X: 2, Vx: 0}, dynamo.Forces{}, 0)
	m.Observe(dynamo.ObjectState{X: 0, Vx: 2}, dynamo.Forces{}, 0.01)
	if m.Value() > 1e-12 {
		t.Errorf("expected no drift when energy moves between terms, got %f", m.Value())
	}

	m.Observe(dynamo.ObjectState{X: 0, Vx: 1}, dynamo.Forces{}, 0.02)
	if math.Abs(m.Value()-0.75) > 1e-9 {
		t.Errorf("expected drift 0.75, got %f", m.Value())
	}
}

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()
	m.Observe(dynamo.ObjectState{}, dynamo.Forces{Target: 3, Speed: -1, Haptic: 100}, 0)
	m.Observe(dynamo.ObjectState{}, dynamo.Forces{Impedance: -4}, 0.01)
	if got := m.Value(); got != 3 {
		t.Errorf("expected mean effort 3, got %f", got)
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero effort after reset")
	}
}
