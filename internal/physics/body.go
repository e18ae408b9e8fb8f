package physics

import (
	"math/rand"

	"github.com/mpolane/gravsim/internal/vec"
)

// Body is a point mass advanced by the stepper. Pos and Vel are mutated in
// place every sub-step; everything else is fixed for the body's lifetime.
//
// CollisionRadius zero removes the body from collision handling entirely.
// Color and Radius are presentation attributes carried through for whatever
// is drawing the bodies; they have no physical meaning.
type Body struct {
	ID              int
	Mass            float64
	Pos             vec.V3
	Vel             vec.V3
	CollisionRadius float64

	Radius float64
	Color  string
}

// Clone returns a deep copy of the body slice. Used by ensemble runs and
// tests that need an untouched reference configuration.
func Clone(bodies []*Body) []*Body {
	out := make([]*Body, len(bodies))
	for i, b := range bodies {
		c := *b
		out[i] = &c
	}
	return out
}

// jitter returns a small random unit-scale vector. It is the shared
// symmetry-breaking substitute for a zero separation: not physics, just a
// way to keep 1/r² finite when two bodies momentarily coincide.
func jitter(rng *rand.Rand) vec.V3 {
	v := vec.V3{
		X: rng.Float64()*2 - 1,
		Y: rng.Float64()*2 - 1,
		Z: rng.Float64()*2 - 1,
	}
	if v.LengthSq() == 0 {
		v.X = 1
	}
	return v.Normalized().Scaled(0.01)
}
