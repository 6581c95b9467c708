package dynamo

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/hapticsim/internal/friction"
	"github.com/san-kum/hapticsim/internal/profile"
	"github.com/san-kum/hapticsim/internal/shape"
)

func flatSim(t *testing.T) *Simulation {
	t.Helper()
	prof, err := profile.New()
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(DefaultParams(), prof)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// drag pulls with stiffness 20 toward x+offset.
func drag(t *testing.T, s *Simulation, offset float64) {
	t.Helper()
	s.StartDrag()
	if err := s.SetCursor(s.Position() + offset); err != nil {
		t.Fatal(err)
	}
}

func TestNew_Rejects(t *testing.T) {
	prof, _ := profile.New()
	if _, err := New(DefaultParams(), nil); !errors.Is(err, ErrNilProfile) {
		t.Errorf("nil profile: got %v, want ErrNilProfile", err)
	}

	p := DefaultParams()
	p.Mass = 0
	if _, err := New(p, prof); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("zero mass: got %v, want ErrParameterBounds", err)
	}
}

func TestNew_StartsClamped(t *testing.T) {
	prof, _ := profile.New()
	p := DefaultParams()
	p.Bounds = Bounds{Min: 50, Max: 550}
	s, err := New(p, prof)
	if err != nil {
		t.Fatal(err)
	}
	if s.Position() != 50 {
		t.Errorf("got x=%v, want 50", s.Position())
	}
}

func TestStep_Stiction(t *testing.T) {
	s := flatSim(t)
	s.EnableFriction(true)
	if err := s.SetFriction(7, 5); err != nil {
		t.Fatal(err)
	}
	drag(t, s, 0.25) // 5 N, below static

	for i := 0; i < 10; i++ {
		s.Step()
		if s.Velocity() != 0 {
			t.Fatalf("step %d: vx=%v, want 0", i, s.Velocity())
		}
	}
	f := s.Forces()
	if f.Phase != friction.Stuck {
		t.Errorf("got phase %v, want stuck", f.Phase)
	}
	if f.Move+f.Friction != 0 {
		t.Errorf("net passive force %v, want 0", f.Move+f.Friction)
	}
}

func TestStep_Breakaway(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		sign   float64
	}{
		{"positive", 0.5, 1},
		{"negative", -0.5, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := flatSim(t)
			s.EnableFriction(true)
			if err := s.SetFriction(7, 5); err != nil {
				t.Fatal(err)
			}
			drag(t, s, tt.offset) // 10 N

			s.Step()
			if s.Forces().Phase != friction.Breakaway {
				t.Errorf("first step phase %v, want breakaway", s.Forces().Phase)
			}
			for i := 0; i < 3; i++ {
				s.Step()
			}
			if s.Velocity()*tt.sign <= 0 {
				t.Errorf("got vx=%v, want sign %v", s.Velocity(), tt.sign)
			}
			if s.Forces().Phase != friction.Sliding {
				t.Errorf("got phase %v, want sliding", s.Forces().Phase)
			}
		})
	}
}

func TestStep_LocalFrictionOverridesGlobal(t *testing.T) {
	prof, err := profile.New(profile.Entry{
		Shape:    shape.NewConstant(0),
		Friction: friction.Coefficients{Static: 100},
	})
	if err != nil {
		t.Fatal(err)
	}
	p := DefaultParams()
	p.FrictionEnabled = true
	p.Friction = friction.Coefficients{}
	s, err := New(p, prof)
	if err != nil {
		t.Fatal(err)
	}
	drag(t, s, 0.5)
	s.Step()
	if s.Velocity() != 0 {
		t.Errorf("got vx=%v, want 0 under local static friction", s.Velocity())
	}
}

func TestStep_FrictionDisabled(t *testing.T) {
	s := flatSim(t)
	drag(t, s, 0.25)
	s.Step()
	if s.Velocity() <= 0 {
		t.Errorf("got vx=%v, want motion without friction", s.Velocity())
	}
	if s.Forces().Phase != friction.Off {
		t.Errorf("got phase %v, want off", s.Forces().Phase)
	}
}

func TestStep_PositionClamp(t *testing.T) {
	s := flatSim(t)
	if err := s.SetState(99.9, 100); err != nil {
		t.Fatal(err)
	}
	s.Step()
	if s.Position() != 100 || s.Velocity() != 0 {
		t.Errorf("got x=%v vx=%v, want 100 and 0", s.Position(), s.Velocity())
	}
}

func TestStep_OvershootGuard(t *testing.T) {
	s := flatSim(t)
	if err := s.SetDamping(1000); err != nil {
		t.Fatal(err)
	}
	if err := s.SetState(10, 1); err != nil {
		t.Fatal(err)
	}
	s.Step()
	if s.Velocity() != 0 {
		t.Errorf("got vx=%v, want exactly 0", s.Velocity())
	}
	if s.Position() != 10 {
		t.Errorf("got x=%v, want 10", s.Position())
	}
	if a := s.Forces().Accel; math.Abs(a+100) > 1e-9 {
		t.Errorf("got a=%v, want -100", a)
	}
}

func TestStep_VelocityDeadband(t *testing.T) {
	s := flatSim(t)
	if err := s.SetState(0, 0.005); err != nil {
		t.Fatal(err)
	}
	s.Step()
	if s.Velocity() != 0 {
		t.Errorf("got vx=%v, want 0", s.Velocity())
	}
}

func TestStep_ReturnsHapticAndDrag(t *testing.T) {
	prof, err := profile.New(profile.Entry{Shape: shape.NewSemicircle(0, 10, false)})
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(DefaultParams(), prof)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetState(5, 0); err != nil {
		t.Fatal(err)
	}
	drag(t, s, 1)

	fh, fd := s.Step()
	if want := prof.Force(5); fh != want {
		t.Errorf("got haptic %v, want %v", fh, want)
	}
	if fd != 20 {
		t.Errorf("got drag %v, want 20", fd)
	}
}

func TestStep_ControllersSum(t *testing.T) {
	s := flatSim(t)
	if err := s.SetTargetPosition(10); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSpeedTarget(10, 10, 50); err != nil {
		t.Fatal(err)
	}
	s.EnablePositionControl(true)
	s.EnableSpeedControl(true)

	s.Step()
	f := s.Forces()
	if f.Target != 100 {
		t.Errorf("got target force %v, want 100", f.Target)
	}
	if f.Speed != 10 {
		t.Errorf("got speed force %v, want 10", f.Speed)
	}
	if f.Total != f.Target+f.Speed {
		t.Errorf("got total %v, want %v", f.Total, f.Target+f.Speed)
	}
}

func TestStep_ImpedanceConverges(t *testing.T) {
	s := flatSim(t)
	if err := s.SetTargetPosition(20); err != nil {
		t.Fatal(err)
	}
	if err := s.SetMode(ModeImpedance); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3000; i++ {
		s.Step()
	}
	if math.Abs(s.Position()-20) > 0.5 {
		t.Errorf("got x=%v, want near 20", s.Position())
	}
	if math.Abs(s.Velocity()) > 0.05 {
		t.Errorf("got vx=%v, want near 0", s.Velocity())
	}
}

func TestStep_ImpedanceHoldsWithoutTarget(t *testing.T) {
	s := flatSim(t)
	if err := s.SetMode(ModeImpedance); err != nil {
		t.Fatal(err)
	}
	if err := s.SetState(5, 0); err != nil {
		t.Fatal(err)
	}
	s.Step()
	if s.Forces().Impedance != 0 || s.Position() != 5 {
		t.Errorf("got impedance %v at x=%v, want 0 at 5", s.Forces().Impedance, s.Position())
	}
}

func TestSetters_RejectInvalid(t *testing.T) {
	tests := []struct {
		name string
		set  func(s *Simulation) error
	}{
		{"zero mass", func(s *Simulation) error { return s.SetMass(0) }},
		{"negative damping", func(s *Simulation) error { return s.SetDamping(-1) }},
		{"nan dt", func(s *Simulation) error { return s.SetDt(math.NaN()) }},
		{"inverted bounds", func(s *Simulation) error { return s.SetBounds(10, 5) }},
		{"negative friction", func(s *Simulation) error { return s.SetFriction(-1, 0) }},
		{"inf target", func(s *Simulation) error { return s.SetTargetPosition(math.Inf(1)) }},
		{"zero impedance mass", func(s *Simulation) error { return s.SetImpedance(0, 1, 1) }},
		{"bad mode", func(s *Simulation) error { return s.SetMode(Mode(7)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := flatSim(t)
			before := s.Params()
			err := tt.set(s)
			if !errors.Is(err, ErrParameterBounds) {
				t.Fatalf("got %v, want ErrParameterBounds", err)
			}
			after := s.Params()
			if after.Mass != before.Mass || after.Dt != before.Dt || after.Bounds != before.Bounds ||
				after.Friction != before.Friction || after.Position.Target != nil || after.Mode != before.Mode {
				t.Errorf("params changed after rejected update: %+v", after)
			}
		})
	}
}

func TestSetBounds_ClampsState(t *testing.T) {
	s := flatSim(t)
	if err := s.SetState(80, 3); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBounds(0, 50); err != nil {
		t.Fatal(err)
	}
	if s.Position() != 50 || s.Velocity() != 0 {
		t.Errorf("got x=%v vx=%v, want 50 and 0", s.Position(), s.Velocity())
	}
}

func TestSetProfile(t *testing.T) {
	s := flatSim(t)
	if err := s.SetProfile(nil); !errors.Is(err, ErrNilProfile) {
		t.Errorf("got %v, want ErrNilProfile", err)
	}
	prof, _ := profile.New(profile.Entry{Shape: shape.NewConstant(3)})
	if err := s.SetProfile(prof); err != nil {
		t.Fatal(err)
	}
	if s.Potential(0) != 3 {
		t.Errorf("got U(0)=%v, want 3", s.Potential(0))
	}
}

func TestEndDrag_ClearsCursor(t *testing.T) {
	s := flatSim(t)
	drag(t, s, 1)
	s.EndDrag()
	if _, ok := s.Cursor(); ok || s.Dragging() {
		t.Error("expected no cursor and no drag after EndDrag")
	}
	_, fd := s.Step()
	if fd != 0 {
		t.Errorf("got drag %v, want 0", fd)
	}
}

func TestParams_CloneIsolatesTargets(t *testing.T) {
	s := flatSim(t)
	if err := s.SetTargetPosition(4); err != nil {
		t.Fatal(err)
	}
	p := s.Params()
	*p.Position.Target = 99
	if got := *s.Params().Position.Target; got != 4 {
		t.Errorf("got target %v, want 4", got)
	}
}

type countMetric struct{ n int }

func (c *countMetric) Name() string                         { return "count" }
func (c *countMetric) Observe(ObjectState, Forces, float64) { c.n++ }
func (c *countMetric) Value() float64                       { return float64(c.n) }
func (c *countMetric) Reset()                               { c.n = 0 }

func TestRun(t *testing.T) {
	s := flatSim(t)
	s.AddMetric(&countMetric{})
	var seen int
	s.AddObserver(ObserverFunc(func(ObjectState, Forces, float64) { seen++ }))

	res, err := s.Run(context.Background(), 25)
	if err != nil {
		t.Fatal(err)
	}
	if res.StepsTaken != 25 || seen != 25 {
		t.Errorf("got %d steps and %d observations, want 25", res.StepsTaken, seen)
	}
	if res.Metrics["count"] != 25 {
		t.Errorf("got count %v, want 25", res.Metrics["count"])
	}
	if math.Abs(res.Time-0.25) > 1e-9 {
		t.Errorf("got t=%v, want 0.25", res.Time)
	}
}

func TestRun_Canceled(t *testing.T) {
	s := flatSim(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.Run(ctx, 10)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if res.StepsTaken != 0 {
		t.Errorf("got %d steps, want 0", res.StepsTaken)
	}
}

func TestRun_NegativeSteps(t *testing.T) {
	s := flatSim(t)
	if _, err := s.Run(context.Background(), -1); !errors.Is(err, ErrParameterBounds) {
		t.Errorf("got %v, want ErrParameterBounds", err)
	}
}

func TestReset(t *testing.T) {
	s := flatSim(t)
	drag(t, s, 5)
	for i := 0; i < 10; i++ {
		s.Step()
	}
	if err := s.Reset(-3); err != nil {
		t.Fatal(err)
	}
	if s.Position() != -3 || s.Velocity() != 0 || s.Time() != 0 || s.Steps() != 0 {
		t.Errorf("got x=%v vx=%v t=%v steps=%d after reset", s.Position(), s.Velocity(), s.Time(), s.Steps())
	}
	if err := s.Reset(math.NaN()); !errors.Is(err, ErrInvalidState) {
		t.Errorf("got %v, want ErrInvalidState", err)
	}
}

func TestBatch(t *testing.T) {
	sims := make([]*Simulation, 4)
	for i := range sims {
		sims[i] = flatSim(t)
		if err := sims[i].SetState(0, float64(i+1)); err != nil {
			t.Fatal(err)
		}
	}
	results, err := Batch(context.Background(), sims, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range results {
		if r == nil || r.StepsTaken != 10 {
			t.Fatalf("result %d: %+v", i, r)
		}
		if i > 0 && r.Final.X <= results[i-1].Final.X {
			t.Errorf("result %d: x=%v not beyond previous %v", i, r.Final.X, results[i-1].Final.X)
		}
	}
}

func TestSimulationError(t *testing.T) {
	err := &SimulationError{Step: 3, Time: 0.03, Wrapped: ErrInvalidState}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("expected SimulationError to unwrap to ErrInvalidState")
	}
}
