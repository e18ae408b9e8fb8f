package physics

import (
	"math"
	"math/rand"

	"github.com/mpolane/gravsim/internal/vec"
)

// AccelerationOn computes the net softened gravitational acceleration on
// bodies[i] from every other body.
//
// The denominator is the Plummer-softened (|d|² + softening²)^1.5, which
// bounds the acceleration as the separation goes to zero. With clampContact
// set (collision handling enabled), the effective separation is additionally
// floored at the pair's contact distance so an overlapping pair never feels
// more force than it would at touch; overlap is the resolver's job, and
// letting 1/r² run free inside it slingshots bodies apart.
func AccelerationOn(bodies []*Body, i int, g, softening float64, clampContact bool, rng *rand.Rand) vec.V3 {
	var acc vec.V3
	self := bodies[i]

	for j, other := range bodies {
		if j == i {
			continue
		}

		d := other.Pos.Sub(self.Pos)
		if d.LengthSq() == 0 {
			d = jitter(rng)
		}

		if clampContact {
			contact := self.CollisionRadius + other.CollisionRadius
			if contact > 0 {
				if dist := d.Length(); dist < contact {
					d = d.Scaled(contact / dist)
				}
			}
		}

		r2 := d.LengthSq()
		denom := math.Pow(r2+softening*softening, 1.5)
		acc = acc.Add(d.Scaled(g * other.Mass / denom))
	}

	return acc
}

// TotalEnergy returns kinetic plus softened pairwise potential energy for
// the current configuration, using the same softening as the evaluator so
// the quantity tracked matches the forces actually applied.
func TotalEnergy(bodies []*Body, g, softening float64) float64 {
	ke := 0.0
	pe := 0.0

	for i, b := range bodies {
		ke += 0.5 * b.Mass * b.Vel.LengthSq()

		for j := i + 1; j < len(bodies); j++ {
			r := math.Sqrt(bodies[j].Pos.Sub(b.Pos).LengthSq() + softening*softening)
			pe -= g * b.Mass * bodies[j].Mass / r
		}
	}

	return ke + pe
}

// TotalMomentum returns the summed linear momentum of all bodies.
func TotalMomentum(bodies []*Body) vec.V3 {
	var p vec.V3
	for _, b := range bodies {
		p = p.Add(b.Vel.Scaled(b.Mass))
	}
	return p
}

// AngularMomentum returns the summed angular momentum about the origin.
func AngularMomentum(bodies []*Body) vec.V3 {
	var l vec.V3
	for _, b := range bodies {
		l = l.Add(b.Pos.Cross(b.Vel.Scaled(b.Mass)))
	}
	return l
}
