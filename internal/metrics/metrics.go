// Package metrics provides run-level observers for recorded simulations.
// Each metric accumulates over the run via Observe and reports one scalar.
package metrics

import (
	"math"

	"github.com/mpolane/gravsim/internal/physics"
)

// EnergyDrift tracks the worst relative deviation of total energy from its
// first observed value. Velocity-Verlet should keep this bounded; a blowup
// here usually means the sub-step got too large for a close encounter.
type EnergyDrift struct {
	g         float64
	softening float64
	initial   float64
	maxDrift  float64
	samples   int
}

func NewEnergyDrift(g, softening float64) *EnergyDrift {
	return &EnergyDrift{g: g, softening: softening}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(bodies []*physics.Body, t float64) {
	energy := physics.TotalEnergy(bodies, e.g, e.softening)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the worst absolute deviation of total linear
// momentum from its first observed value. With collisions enabled this
// should stay at numerical noise; the impulse is equal and opposite.
type MomentumDrift struct {
	initialSet bool
	initial    [3]float64
	maxDrift   float64
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(bodies []*physics.Body, t float64) {
	p := physics.TotalMomentum(bodies)
	if !m.initialSet {
		m.initial = [3]float64{p.X, p.Y, p.Z}
		m.initialSet = true
		return
	}

	dx := p.X - m.initial[0]
	dy := p.Y - m.initial[1]
	dz := p.Z - m.initial[2]
	drift := math.Sqrt(dx*dx + dy*dy + dz*dz)
	m.maxDrift = math.Max(m.maxDrift, drift)
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initialSet = false
	m.maxDrift = 0
}

// BoundingRadius tracks the largest distance any body reaches from the
// origin over the run, a cheap escape detector for nominally bound
// scenarios.
type BoundingRadius struct {
	max float64
}

func NewBoundingRadius() *BoundingRadius {
	return &BoundingRadius{}
}

func (b *BoundingRadius) Name() string { return "bounding_radius" }

func (b *BoundingRadius) Observe(bodies []*physics.Body, t float64) {
	for _, body := range bodies {
		b.max = math.Max(b.max, body.Pos.Length())
	}
}

func (b *BoundingRadius) Value() float64 { return b.max }

func (b *BoundingRadius) Reset() { b.max = 0 }
