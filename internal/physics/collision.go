package physics

import (
	"math/rand"
)

// DefaultRestitution is the fraction of relative approach speed returned as
// separation speed after an impulse. 0.8 keeps collisions bouncy without
// feeding energy into the system.
const DefaultRestitution = 0.8

// ResolveCollisions detects every overlapping pair and resolves it with a
// positional correction plus a restitution impulse.
//
// Each unordered pair is visited exactly once per call; overlaps are not
// iterated to convergence, so dense clusters may keep a little residual
// penetration until the next sub-step. The positional push is an unweighted
// half-depth per body regardless of mass ratio. The impulse uses the pair's
// reduced mass and is only applied while the bodies are approaching; a pair
// that already separates is left alone so the resolver never re-collides it.
//
// A body with CollisionRadius zero is invisible to this pass entirely.
func ResolveCollisions(bodies []*Body, restitution float64, rng *rand.Rand) {
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		if a.CollisionRadius <= 0 {
			continue
		}

		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if b.CollisionRadius <= 0 {
				continue
			}

			d := b.Pos.Sub(a.Pos)
			if d.LengthSq() == 0 {
				d = jitter(rng)
			}

			dist := d.Length()
			contact := a.CollisionRadius + b.CollisionRadius
			if dist >= contact {
				continue
			}

			n := d.Scaled(1 / dist)
			depth := contact - dist

			a.Pos = a.Pos.Sub(n.Scaled(depth / 2))
			b.Pos = b.Pos.Add(n.Scaled(depth / 2))

			vn := b.Vel.Sub(a.Vel).Dot(n)
			if vn >= 0 {
				continue
			}

			impulse := -(1 + restitution) * vn / (1/a.Mass + 1/b.Mass)
			a.Vel = a.Vel.Sub(n.Scaled(impulse / a.Mass))
			b.Vel = b.Vel.Add(n.Scaled(impulse / b.Mass))
		}
	}
}
