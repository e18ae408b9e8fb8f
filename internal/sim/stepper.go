package sim

import (
	"math/rand"

	"github.com/mpolane/gravsim/internal/physics"
	"github.com/mpolane/gravsim/internal/vec"
)

// Stepper advances a body list with sub-stepped velocity-Verlet. It owns
// the per-step acceleration scratch buffer and the tie-break noise source,
// so a warmed-up Stepper allocates nothing per frame.
//
// A Stepper is single-threaded by contract: one Step call mutates the body
// list to completion before returning, and readers of body state must only
// look between calls.
type Stepper struct {
	acc []vec.V3
	rng *rand.Rand
}

func NewStepper(seed int64) *Stepper {
	return &Stepper{rng: rand.New(rand.NewSource(seed))}
}

// NewStepperWithRand injects the noise source directly, letting tests pin
// the symmetry-breaking jitter.
func NewStepperWithRand(rng *rand.Rand) *Stepper {
	return &Stepper{rng: rng}
}

func (s *Stepper) ensureScratch(n int) {
	if len(s.acc) != n {
		s.acc = make([]vec.V3, n)
	}
}

// Step advances every body by frameDelta of wall time, scaled by
// p.TimeScale and divided into p.SubSteps velocity-Verlet sub-steps.
// Bodies are mutated in place; nothing is returned and nothing can fail.
//
// The ordering inside a sub-step is load-bearing: the first half-kick uses
// the acceleration of the old positions, the second the acceleration of the
// drifted positions. Both evaluations are done fresh; acceleration is never
// carried across sub-steps or frames.
func (s *Stepper) Step(bodies []*physics.Body, p Params, frameDelta float64) {
	if len(bodies) == 0 {
		return
	}

	sub := p.SubSteps
	if sub < 1 {
		sub = DefaultSubSteps
	}

	dt := frameDelta * p.TimeScale / float64(sub)
	if dt == 0 {
		// Frozen time must leave positions and velocities bit-identical,
		// including skipping the collision pass.
		return
	}

	s.ensureScratch(len(bodies))
	half := 0.5 * dt

	for step := 0; step < sub; step++ {
		for i := range bodies {
			s.acc[i] = physics.AccelerationOn(bodies, i, p.G, p.Softening, p.Collisions, s.rng)
		}
		for i, b := range bodies {
			b.Vel = b.Vel.Add(s.acc[i].Scaled(half))
		}
		for _, b := range bodies {
			b.Pos = b.Pos.Add(b.Vel.Scaled(dt))
		}
		for i := range bodies {
			s.acc[i] = physics.AccelerationOn(bodies, i, p.G, p.Softening, p.Collisions, s.rng)
		}
		for i, b := range bodies {
			b.Vel = b.Vel.Add(s.acc[i].Scaled(half))
		}

		if p.Collisions {
			physics.ResolveCollisions(bodies, p.Restitution, s.rng)
		}
	}
}
