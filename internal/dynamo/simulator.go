package dynamo

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/san-kum/hapticsim/internal/control"
	"github.com/san-kum/hapticsim/internal/friction"
	"github.com/san-kum/hapticsim/internal/integrators"
	"github.com/san-kum/hapticsim/internal/profile"
)

// Simulation owns the object state, the profile and the parameter snapshot.
// It is not safe for concurrent use; see the package doc.
type Simulation struct {
	params  Params
	profile *profile.Profile
	state   ObjectState
	cursor  *float64
	forces  Forces
	t       float64
	steps   int

	metrics   []Metric
	observers []Observer
	logger    *slog.Logger
}

// New validates p and returns a simulation at rest at x = 0, clamped into
// the bounds.
func New(p Params, prof *profile.Profile) (*Simulation, error) {
	if prof == nil {
		return nil, ErrNilProfile
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		params:  p.Clone(),
		profile: prof,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	s.state.X, _ = p.Bounds.Clamp(0)
	return s, nil
}

func (s *Simulation) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.logger = l
}

func (s *Simulation) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Step advances the simulation by one dt and returns the surface force and
// the drag force that acted during it. The full breakdown is in Forces.
func (s *Simulation) Step() (float64, float64) {
	p := &s.params
	st := s.state

	fHaptic := s.profile.Force(st.X)
	fDrag := p.Drag.Force(st.Dragging, s.cursor, st.X)
	fTarget := p.Position.Force(st.X, st.Vx)
	fSpeed := p.Speed.Force(st.X, st.Vx)

	fMove := fHaptic + fDrag
	fMoveFrict, phase := fMove, friction.Off
	if p.FrictionEnabled {
		local, ok := s.profile.LocalFriction(st.X)
		c := friction.Resolve(local, ok, p.Friction)
		fMoveFrict, phase = friction.Apply(fMove, st.Vx, c, p.VelocityThreshold)
	}

	in := integrators.Input{
		X:       st.X,
		Vx:      st.Vx,
		Drive:   fMoveFrict + fTarget + fSpeed,
		Desired: st.X,
	}
	if p.Position.Target != nil {
		in.Desired = *p.Position.Target
	}
	out := s.strategy().Accelerate(in)

	a, stopped := integrators.Guard(st.Vx, out.Accel, p.Dt)
	if stopped {
		st.Vx = 0
	} else {
		st.X, st.Vx = integrators.Euler(st.X, st.Vx, a, p.Dt)
	}

	if math.Abs(st.Vx) < p.VelocityThreshold {
		st.Vx = 0
	}
	if x, hit := p.Bounds.Clamp(st.X); hit {
		st.X, st.Vx = x, 0
	}

	s.state = st
	s.forces = Forces{
		Haptic:    fHaptic,
		Drag:      fDrag,
		Target:    fTarget,
		Speed:     fSpeed,
		Move:      fMove,
		Friction:  fMoveFrict - fMove,
		Impedance: out.Impedance,
		Total:     in.Drive + out.Impedance,
		Accel:     a,
		Phase:     phase,
	}
	s.t += p.Dt
	s.steps++

	for _, m := range s.metrics {
		m.Observe(s.state, s.forces, s.t)
	}
	for _, o := range s.observers {
		o.OnStep(s.state, s.forces, s.t)
	}
	return fHaptic, fDrag
}

func (s *Simulation) strategy() integrators.Strategy {
	if s.params.Mode == ModeImpedance {
		return &s.params.Impedance
	}
	return integrators.NewStandard(s.params.Mass, s.params.Damping)
}

// Run steps the simulation headlessly, checking ctx between steps. Metrics
// are reset first and reported in the result.
func (s *Simulation) Run(ctx context.Context, steps int) (*Result, error) {
	if steps < 0 {
		return nil, fmt.Errorf("%w: steps must be non-negative, got %d", ErrParameterBounds, steps)
	}
	for _, m := range s.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}
	var err error
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		default:
		}
		if err != nil {
			break
		}
		s.Step()
		result.StepsTaken++
		if !s.state.IsValid() {
			err = &SimulationError{Step: s.steps, Time: s.t, State: s.state, Wrapped: ErrInvalidState}
			break
		}
	}

	result.Final = s.state
	result.Forces = s.forces
	result.Time = s.t
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	s.logger.Debug("run finished",
		"steps", result.StepsTaken,
		"x", s.state.X,
		"vx", s.state.Vx,
		"forces", s.forces,
		"err", err,
	)
	return result, err
}

// Reset puts the object at rest at x (clamped into the bounds) and zeroes
// the clock. Parameters, profile, cursor and drag state are kept.
func (s *Simulation) Reset(x float64) error {
	if err := s.SetState(x, 0); err != nil {
		return err
	}
	s.t = 0
	s.steps = 0
	s.forces = Forces{}
	return nil
}

func (s *Simulation) State() ObjectState        { return s.state }
func (s *Simulation) Position() float64         { return s.state.X }
func (s *Simulation) Velocity() float64         { return s.state.Vx }
func (s *Simulation) Dragging() bool            { return s.state.Dragging }
func (s *Simulation) Forces() Forces            { return s.forces }
func (s *Simulation) Params() Params            { return s.params.Clone() }
func (s *Simulation) Profile() *profile.Profile { return s.profile }
func (s *Simulation) Time() float64             { return s.t }
func (s *Simulation) Steps() int                { return s.steps }

func (s *Simulation) Cursor() (float64, bool) {
	if s.cursor == nil {
		return 0, false
	}
	return *s.cursor, true
}

// Potential and Force query the current profile without stepping.
func (s *Simulation) Potential(x float64) float64 { return s.profile.Potential(x) }
func (s *Simulation) Force(x float64) float64     { return s.profile.Force(x) }

// SetState moves the object. x is clamped into the bounds.
func (s *Simulation) SetState(x, vx float64) error {
	if !finite(x) || !finite(vx) {
		return fmt.Errorf("%w: state x=%g vx=%g", ErrInvalidState, x, vx)
	}
	s.state.X, _ = s.params.Bounds.Clamp(x)
	s.state.Vx = vx
	return nil
}

// SetProfile swaps the profile. It takes effect from the next step.
func (s *Simulation) SetProfile(p *profile.Profile) error {
	if p == nil {
		return ErrNilProfile
	}
	s.profile = p
	return nil
}

func (s *Simulation) StartDrag() { s.state.Dragging = true }

// EndDrag stops dragging and forgets the cursor.
func (s *Simulation) EndDrag() {
	s.state.Dragging = false
	s.cursor = nil
}

func (s *Simulation) SetCursor(x float64) error {
	if !finite(x) {
		return fmt.Errorf("%w: cursor %g is not finite", ErrParameterBounds, x)
	}
	s.cursor = &x
	return nil
}

func (s *Simulation) ClearCursor() { s.cursor = nil }

// SetParams replaces the whole parameter snapshot. The position is clamped
// if the bounds moved.
func (s *Simulation) SetParams(p Params) error {
	return s.update(func(next *Params) { *next = p.Clone() })
}

func (s *Simulation) SetDt(dt float64) error {
	return s.update(func(p *Params) { p.Dt = dt })
}

func (s *Simulation) SetMass(m float64) error {
	return s.update(func(p *Params) { p.Mass = m })
}

func (s *Simulation) SetDamping(b float64) error {
	return s.update(func(p *Params) { p.Damping = b })
}

func (s *Simulation) SetBounds(xMin, xMax float64) error {
	return s.update(func(p *Params) { p.Bounds = Bounds{Min: xMin, Max: xMax} })
}

func (s *Simulation) SetVelocityThreshold(v float64) error {
	return s.update(func(p *Params) { p.VelocityThreshold = v })
}

func (s *Simulation) SetDrag(d control.Drag) error {
	return s.update(func(p *Params) { p.Drag = d })
}

func (s *Simulation) SetTargetPosition(x float64) error {
	return s.update(func(p *Params) { p.Position.SetTarget(x) })
}

func (s *Simulation) ClearTargetPosition() {
	s.params.Position.ClearTarget()
}

func (s *Simulation) SetPositionGains(stiffness, damping, maxForce float64) error {
	return s.update(func(p *Params) {
		p.Position.Stiffness = stiffness
		p.Position.Damping = damping
		p.Position.MaxForce = maxForce
	})
}

func (s *Simulation) EnablePositionControl(on bool) {
	s.params.Position.Enabled = on
	s.logger.Debug("position control", "enabled", on)
}

// SetSpeedTarget sets the target and its zone in one call.
func (s *Simulation) SetSpeedTarget(x, maxSpeed, zoneWidth float64) error {
	return s.update(func(p *Params) {
		p.Speed.SetTarget(x)
		p.Speed.MaxSpeed = maxSpeed
		p.Speed.ZoneWidth = zoneWidth
	})
}

func (s *Simulation) ClearSpeedTarget() {
	s.params.Speed.ClearTarget()
}

func (s *Simulation) SetSpeedGain(gain, maxForce float64) error {
	return s.update(func(p *Params) {
		p.Speed.Gain = gain
		p.Speed.MaxForce = maxForce
	})
}

func (s *Simulation) EnableSpeedControl(on bool) {
	s.params.Speed.Enabled = on
	s.logger.Debug("speed control", "enabled", on)
}

func (s *Simulation) SetImpedance(mass, damping, stiffness float64) error {
	return s.update(func(p *Params) {
		p.Impedance = integrators.Impedance{Mass: mass, Damping: damping, Stiffness: stiffness}
	})
}

func (s *Simulation) SetMode(m Mode) error {
	if err := s.update(func(p *Params) { p.Mode = m }); err != nil {
		return err
	}
	s.logger.Debug("integration mode", "mode", m.String())
	return nil
}

func (s *Simulation) SetFriction(static, kinetic float64) error {
	return s.update(func(p *Params) {
		p.Friction = friction.Coefficients{Static: static, Kinetic: kinetic}
	})
}

func (s *Simulation) EnableFriction(on bool) {
	s.params.FrictionEnabled = on
	s.logger.Debug("friction", "enabled", on)
}

// update applies fn to a copy of the parameters and keeps the copy only if
// it validates.
func (s *Simulation) update(fn func(p *Params)) error {
	next := s.params.Clone()
	fn(&next)
	if err := next.Validate(); err != nil {
		return err
	}
	s.params = next
	if x, hit := s.params.Bounds.Clamp(s.state.X); hit {
		s.state.X, s.state.Vx = x, 0
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
