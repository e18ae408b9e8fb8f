package sim

import (
	"context"
	"math"

	"github.com/mpolane/gravsim/internal/physics"
)

// RunConfig describes a recorded run: a fixed number of ticks, each fed the
// same frame delta (the host normally supplies its render clock here).
type RunConfig struct {
	FrameDelta    float64
	Ticks         int
	ValidateState bool
}

// Runner drives a Stepper for a fixed number of ticks, recording a frame
// snapshot per tick and feeding metrics and observers with stable
// post-integration state. It is the batch counterpart of the live view.
type Runner struct {
	stepper   *Stepper
	params    Params
	metrics   []Metric
	observers []Observer
}

func NewRunner(stepper *Stepper, params Params) *Runner {
	return &Runner{stepper: stepper, params: params}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) validate(bodies []*physics.Body, cfg RunConfig) error {
	if cfg.FrameDelta <= 0 {
		return ErrInvalidFrameDelta
	}
	if cfg.Ticks <= 0 {
		return ErrInvalidTicks
	}
	if len(bodies) == 0 {
		return ErrNoBodies
	}
	return nil
}

// Run advances bodies for cfg.Ticks frames, mutating them in place and
// returning the recorded trajectory. A canceled context returns the partial
// result along with the context error.
func (r *Runner) Run(ctx context.Context, bodies []*physics.Body, cfg RunConfig) (*Result, error) {
	if err := r.validate(bodies, cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Frames:  make([][]float64, 0, cfg.Ticks+1),
		Times:   make([]float64, 0, cfg.Ticks+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	t := 0.0
	result.Frames = append(result.Frames, Snapshot(bodies))
	result.Times = append(result.Times, t)

	initialEnergy := physics.TotalEnergy(bodies, r.params.G, r.params.Softening)

	for tick := 0; tick < cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.stepper.Step(bodies, r.params, cfg.FrameDelta)
		t += cfg.FrameDelta * r.params.TimeScale

		for _, m := range r.metrics {
			m.Observe(bodies, t)
		}
		for _, o := range r.observers {
			o.OnTick(bodies, tick, t)
		}

		if cfg.ValidateState && !stateValid(bodies) {
			return result, ErrInvalidState
		}

		result.TicksTaken++
		result.Frames = append(result.Frames, Snapshot(bodies))
		result.Times = append(result.Times, t)
	}

	finalEnergy := physics.TotalEnergy(bodies, r.params.G, r.params.Softening)
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func stateValid(bodies []*physics.Body) bool {
	for _, b := range bodies {
		if !b.Pos.IsValid() || !b.Vel.IsValid() {
			return false
		}
	}
	return true
}
