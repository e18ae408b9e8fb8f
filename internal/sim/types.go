package sim

import (
	"github.com/mpolane/gravsim/internal/physics"
)

const (
	// DefaultSubSteps divides each rendered frame into small integration
	// steps. 8 keeps close encounters stable at ~1/60 s frames without
	// costing visual frame rate.
	DefaultSubSteps = 8

	DefaultG          = 1.0
	DefaultTimeScale  = 1.0
	DefaultSoftening  = 0.5
	DefaultFrameDelta = 1.0 / 60.0
)

// Params are the host-tunable knobs read by the stepper on every call.
// They carry no enforced bounds; a TimeScale of zero freezes the system
// exactly, and G is a free runtime parameter rather than a physical constant.
type Params struct {
	G           float64
	TimeScale   float64
	SubSteps    int
	Softening   float64
	Collisions  bool
	Restitution float64
}

func DefaultParams() Params {
	return Params{
		G:           DefaultG,
		TimeScale:   DefaultTimeScale,
		SubSteps:    DefaultSubSteps,
		Softening:   DefaultSoftening,
		Collisions:  true,
		Restitution: physics.DefaultRestitution,
	}
}

// Metric accumulates a scalar over a recorded run.
type Metric interface {
	Name() string
	Observe(bodies []*physics.Body, t float64)
	Value() float64
	Reset()
}

// Observer is called once per tick with stable post-integration state.
type Observer interface {
	OnTick(bodies []*physics.Body, tick int, t float64)
}

// Snapshot flattens the body list into [px py pz vx vy vz] per body, the
// layout used by the run store and the analysis helpers.
func Snapshot(bodies []*physics.Body) []float64 {
	out := make([]float64, 0, len(bodies)*6)
	for _, b := range bodies {
		out = append(out, b.Pos.X, b.Pos.Y, b.Pos.Z, b.Vel.X, b.Vel.Y, b.Vel.Z)
	}
	return out
}

// Result holds the recorded trajectory of a run. Frames[i] is the Snapshot
// after tick i; Frames[0] is the initial configuration.
type Result struct {
	Frames      [][]float64
	Times       []float64
	Metrics     map[string]float64
	EnergyDrift float64
	TicksTaken  int
}
