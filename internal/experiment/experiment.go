package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/san-kum/hapticsim/internal/config"
	"github.com/san-kum/hapticsim/internal/dynamo"
	"github.com/san-kum/hapticsim/internal/metrics"
)

// SettleBand is the distance from the target counted as settled.
const SettleBand = 1.0

type Option func(*Experiment)

// WithoutTrace skips per-step recording; only metrics and the final state
// are kept.
func WithoutTrace() Option {
	return func(e *Experiment) { e.trace = nil }
}

func WithMetrics(ms ...dynamo.Metric) Option {
	return func(e *Experiment) { e.extra = append(e.extra, ms...) }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

// Experiment is one headless run of a scenario.
type Experiment struct {
	cfg       *config.Config
	simulator *dynamo.Simulation
	trace     *Trace
	extra     []dynamo.Metric
	logger    *slog.Logger
}

type Result struct {
	*dynamo.Result
	Name  string
	Trace *Trace
}

func New(cfg *config.Config, opts ...Option) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := cfg.NewSimulation()
	if err != nil {
		return nil, err
	}
	e := &Experiment{
		cfg:       cfg,
		simulator: s,
		trace:     NewTrace(cfg.Simulation.Steps),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	s.SetLogger(e.logger)

	for _, m := range DefaultMetrics(cfg, s) {
		s.AddMetric(m)
	}
	for _, m := range e.extra {
		s.AddMetric(m)
	}
	if e.trace != nil {
		s.AddObserver(e.trace)
	}
	return e, nil
}

// DefaultMetrics are attached to every experiment. Settling metrics are
// added only when the scenario has a target to settle on.
func DefaultMetrics(cfg *config.Config, s *dynamo.Simulation) []dynamo.Metric {
	p := s.Params()
	mass := p.Mass
	if p.Mode == dynamo.ModeImpedance {
		mass = p.Impedance.Mass
	}
	ms := []dynamo.Metric{
		metrics.NewControlEffort(),
		metrics.NewEnergy(mass, s.Profile()),
		metrics.NewEnergyDrift(mass, s.Profile()),
	}
	if target, ok := Target(cfg); ok {
		ms = append(ms,
			metrics.NewStability(target, SettleBand),
			metrics.NewSettling(target, SettleBand),
			metrics.NewOvershoot(target),
		)
	}
	return ms
}

// Target is the position the scenario drives toward, if any: the position
// target, else the speed target.
func Target(cfg *config.Config) (float64, bool) {
	switch {
	case cfg.Position.Target != nil && (cfg.Position.Enabled || cfg.Impedance.Enabled):
		return *cfg.Position.Target, true
	case cfg.Speed.Target != nil && cfg.Speed.Enabled:
		return *cfg.Speed.Target, true
	}
	return 0, false
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	e.logger.Debug("experiment start", "name", e.cfg.Name, "steps", e.cfg.Simulation.Steps)

	res, err := e.simulator.Run(ctx, e.cfg.Simulation.Steps)
	if res == nil {
		return nil, err
	}
	return &Result{Result: res, Name: e.cfg.Name, Trace: e.trace}, err
}

// Simulation returns the underlying simulation for adding observers.
func (e *Experiment) Simulation() *dynamo.Simulation {
	return e.simulator
}
