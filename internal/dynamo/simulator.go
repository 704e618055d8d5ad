package dynamo

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	sys     System
	metrics []Metric
}

func New(sys System) *Simulator {
	return &Simulator{
		sys:     sys,
		metrics: make([]Metric, 0),
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Simulator) System() System { return s.sys }

// Run steps the system cfg.Steps times. On cancellation the partial
// result is returned together with the context error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	frames := cfg.Steps + 1
	if cfg.RecordEvery > 0 {
		frames = cfg.Steps/cfg.RecordEvery + 2
	}
	result := &Result{
		Frames:  make([]Snapshot, 0, frames),
		Times:   make([]float64, 0, frames),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := s.sys.Particles()
	t := 0.0

	result.Frames = append(result.Frames, x)
	result.Times = append(result.Times, t)

	initialEnergy := s.computeEnergy(x)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, initialEnergy, x)
			return result, fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		default:
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}

		dt := s.sys.Dt()
		s.sys.Step()
		next := s.sys.Particles()

		if cfg.ValidateState && !next.IsValid() {
			err := &SimulationError{
				Step:    i,
				Time:    t,
				Wrapped: SimError{Time: t, Step: i, Message: ErrInvalidState.Error()},
			}
			result.Errors = append(result.Errors, err)
			break
		}

		x = next
		t += dt
		result.StepsTaken++

		if cfg.RecordEvery <= 1 || result.StepsTaken%cfg.RecordEvery == 0 || i == cfg.Steps-1 {
			result.Frames = append(result.Frames, x)
			result.Times = append(result.Times, t)
		}
	}

	s.finish(result, initialEnergy, x)
	return result, nil
}

func (s *Simulator) finish(result *Result, initialEnergy float64, x Snapshot) {
	finalEnergy := s.computeEnergy(x)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrParameterBounds, cfg.Steps)
	}
	if cfg.RecordEvery < 0 {
		return fmt.Errorf("%w: record interval must not be negative, got %d", ErrParameterBounds, cfg.RecordEvery)
	}
	return nil
}

func (s *Simulator) computeEnergy(x Snapshot) float64 {
	if h, ok := s.sys.(Hamiltonian); ok {
		return h.Energy(x)
	}
	return 0
}

// RunWithCallback steps until cfg.Steps is reached or the callback
// returns false. The callback sees the state before each step.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(Snapshot, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		default:
		}

		x := s.sys.Particles()
		if !callback(x, t) {
			return nil
		}

		t += s.sys.Dt()
		s.sys.Step()

		if cfg.ValidateState && !s.sys.Particles().IsValid() {
			return &SimulationError{Step: i, Time: t, Wrapped: ErrInvalidState}
		}
	}

	return nil
}
