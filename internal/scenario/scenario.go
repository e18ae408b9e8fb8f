// Package scenario builds initial body configurations for the named
// presets. Generators are pure with respect to their inputs: deterministic
// presets produce bit-identical positions and velocities on every call, and
// the randomized parts of the others draw only from the generator's own
// injectable source.
package scenario

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mpolane/gravsim/internal/physics"
	"github.com/mpolane/gravsim/internal/vec"
)

// Preset names a known initial configuration.
type Preset string

const (
	TwoBody     Preset = "two-body"
	FigureEight Preset = "figure-eight"
	Chaotic     Preset = "chaotic"
	Ternary     Preset = "ternary"
	Galaxy      Preset = "galaxy"
)

// Presets lists every preset in stable order.
func Presets() []Preset {
	return []Preset{TwoBody, FigureEight, Chaotic, Ternary, Galaxy}
}

// Options tune the scale-sensitive presets. GRef is the reference
// gravitational constant used to compute circular-orbit speeds at
// generation time; it is deliberately decoupled from the live tunable G.
type Options struct {
	Scale        float64 // figure-eight position scale factor
	GalaxyBodies int
	GRef         float64
}

func DefaultOptions() Options {
	return Options{Scale: 6, GalaxyBodies: 100, GRef: 1}
}

// Generator produces body sets. The contained source feeds only the
// explicitly randomized sub-parts (chaotic preset, galaxy ring placement,
// random bodies, perturbation) and display colors, never the deterministic
// positions and velocities.
type Generator struct {
	rng *rand.Rand
}

func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

func NewWithRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate returns a fresh body list for the preset. Switching presets is
// expected to discard the previous list wholesale; nothing carries over.
func (g *Generator) Generate(p Preset, opts Options) ([]*physics.Body, error) {
	if opts.Scale <= 0 {
		opts.Scale = 6
	}
	if opts.GalaxyBodies <= 0 {
		opts.GalaxyBodies = 100
	}
	if opts.GRef <= 0 {
		opts.GRef = 1
	}

	switch p {
	case TwoBody:
		return g.twoBody(opts), nil
	case FigureEight:
		return g.figureEight(opts), nil
	case Chaotic:
		return g.chaotic(), nil
	case Ternary:
		return g.ternary(opts), nil
	case Galaxy:
		return g.galaxy(opts), nil
	default:
		return nil, fmt.Errorf("scenario: unknown preset %q", p)
	}
}

// twoBody places two equal masses on opposite sides of the origin with
// equal-and-opposite tangential velocity: a stable circular-ish orbit.
func (g *Generator) twoBody(opts Options) []*physics.Body {
	const (
		mass = 10.0
		sep  = 5.0
	)
	// Each body circles the barycenter at radius sep; the partner sits at
	// distance 2*sep, so v² = GRef*m*sep/(2*sep)².
	v := math.Sqrt(opts.GRef * mass / (4 * sep))

	return []*physics.Body{
		{ID: 0, Mass: mass, Pos: vec.V3{X: -sep}, Vel: vec.V3{Y: -v}, CollisionRadius: 1, Radius: 1, Color: g.color()},
		{ID: 1, Mass: mass, Pos: vec.V3{X: sep}, Vel: vec.V3{Y: v}, CollisionRadius: 1, Radius: 1, Color: g.color()},
	}
}

// figureEight is the Chenciner–Montgomery periodic three-body solution for
// unit masses and G=1, scaled by S in position and 1/sqrt(S) in velocity.
// That scaling maps closed orbits to closed orbits, so the choreography
// survives at any S. Run it with collisions disabled: contact-distance
// force clamping is enough to knock the delicate solution off its track.
func (g *Generator) figureEight(opts Options) []*physics.Body {
	s := opts.Scale
	vs := 1 / math.Sqrt(s)

	pos := []vec.V3{
		{X: -0.97000436, Z: 0.24308753},
		{X: 0.97000436, Z: -0.24308753},
		{},
	}
	vel := []vec.V3{
		{X: 0.466203685, Z: 0.43236573},
		{X: 0.466203685, Z: 0.43236573},
		{X: -0.93240737, Z: -0.86473146},
	}

	bodies := make([]*physics.Body, 3)
	for i := range bodies {
		bodies[i] = &physics.Body{
			ID:     i,
			Mass:   1,
			Pos:    pos[i].Scaled(s),
			Vel:    vel[i].Scaled(vs),
			Radius: 0.4,
			Color:  g.color(),
		}
	}
	return bodies
}

// chaotic is three bodies with fully randomized mass, position and
// velocity. Intentionally not reproducible across differently-seeded
// generators; sensitivity to these draws is the point of the preset.
func (g *Generator) chaotic() []*physics.Body {
	bodies := make([]*physics.Body, 3)
	for i := range bodies {
		bodies[i] = &physics.Body{
			ID:              i,
			Mass:            g.uniform(1, 10),
			Pos:             g.uniformVec(10),
			Vel:             g.uniformVec(0.5),
			CollisionRadius: 0.5,
			Radius:          0.5,
			Color:           g.color(),
		}
	}
	return bodies
}

// ternary is a hierarchical triple: a heavy body at rest, a medium body on
// a circular orbit around it, and a light body orbiting the medium body
// with the medium's velocity plus its own local circular speed. The
// combined motion is only approximately circular once both orbits overlap.
func (g *Generator) ternary(opts Options) []*physics.Body {
	const (
		centralMass = 100.0
		mediumMass  = 10.0
		lightMass   = 0.1
		innerR      = 20.0
		outerR      = 3.0
	)

	vMedium := math.Sqrt(opts.GRef * centralMass / innerR)
	vLight := math.Sqrt(opts.GRef * mediumMass / outerR)

	return []*physics.Body{
		{ID: 0, Mass: centralMass, CollisionRadius: 2, Radius: 2, Color: g.color()},
		{ID: 1, Mass: mediumMass, Pos: vec.V3{X: innerR}, Vel: vec.V3{Y: vMedium},
			CollisionRadius: 1, Radius: 1, Color: g.color()},
		{ID: 2, Mass: lightMass, Pos: vec.V3{X: innerR + outerR}, Vel: vec.V3{Y: vMedium + vLight},
			CollisionRadius: 0.3, Radius: 0.3, Color: g.color()},
	}
}

// galaxy is one very massive center plus a ring of light bodies, each
// placed at a randomized radius with the tangential speed that makes its
// orbit circular under GRef.
func (g *Generator) galaxy(opts Options) []*physics.Body {
	const (
		centralMass = 1000.0
		bodyMass    = 0.1
		ringMin     = 10.0
		ringMax     = 30.0
	)

	bodies := make([]*physics.Body, 0, opts.GalaxyBodies+1)
	bodies = append(bodies, &physics.Body{
		ID: 0, Mass: centralMass, CollisionRadius: 3, Radius: 3, Color: g.color(),
	})

	for i := 1; i <= opts.GalaxyBodies; i++ {
		r := g.uniform(ringMin, ringMax)
		theta := g.uniform(0, 2*math.Pi)
		v := math.Sqrt(opts.GRef * centralMass / r)

		bodies = append(bodies, &physics.Body{
			ID:   i,
			Mass: bodyMass,
			Pos:  vec.V3{X: r * math.Cos(theta), Z: r * math.Sin(theta)},
			Vel:  vec.V3{X: -math.Sin(theta) * v, Z: math.Cos(theta) * v},
			// Collision participation off: a hundred grazing ring bodies
			// resolving against each other every sub-step adds nothing
			// visually and dominates the frame budget.
			CollisionRadius: 0,
			Radius:          0.3,
			Color:           g.color(),
		})
	}

	return bodies
}

// AddRandomBody appends one fully randomized body to a live scenario
// without disturbing the existing ones, and returns it.
func (g *Generator) AddRandomBody(bodies []*physics.Body) ([]*physics.Body, *physics.Body) {
	id := 0
	for _, b := range bodies {
		if b.ID >= id {
			id = b.ID + 1
		}
	}

	b := &physics.Body{
		ID:              id,
		Mass:            g.uniform(1, 10),
		Pos:             g.uniformVec(15),
		Vel:             g.uniformVec(0.5),
		CollisionRadius: g.uniform(0.3, 1),
		Radius:          g.uniform(0.3, 1),
		Color:           g.color(),
	}
	return append(bodies, b), b
}

// Perturb nudges every body by small random offsets, the standard
// demonstration of sensitivity to initial conditions.
func (g *Generator) Perturb(bodies []*physics.Body) {
	for _, b := range bodies {
		b.Pos = b.Pos.Add(g.uniformVec(0.05))
		b.Vel = b.Vel.Add(g.uniformVec(0.005))
	}
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) uniformVec(scale float64) vec.V3 {
	return vec.V3{
		X: (g.rng.Float64()*2 - 1) * scale,
		Y: (g.rng.Float64()*2 - 1) * scale,
		Z: (g.rng.Float64()*2 - 1) * scale,
	}
}

func (g *Generator) color() string {
	return colorful.Hsv(g.rng.Float64()*360, 0.7, 0.95).Hex()
}
