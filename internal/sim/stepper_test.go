package sim

import (
	"math"
	"testing"

	"github.com/mpolane/gravsim/internal/physics"
	"github.com/mpolane/gravsim/internal/scenario"
	"github.com/mpolane/gravsim/internal/vec"
)

func twoBodyOrbit(t *testing.T) []*physics.Body {
	t.Helper()
	bodies, err := scenario.New(1).Generate(scenario.TwoBody, scenario.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	return bodies
}

func TestTimeScaleZeroFreezesState(t *testing.T) {
	bodies := twoBodyOrbit(t)
	ref := physics.Clone(bodies)

	p := DefaultParams()
	p.TimeScale = 0

	s := NewStepper(1)
	for i := 0; i < 50; i++ {
		s.Step(bodies, p, DefaultFrameDelta)
	}

	for i, b := range bodies {
		if b.Pos != ref[i].Pos || b.Vel != ref[i].Vel {
			t.Fatalf("body %d moved with frozen time: %v -> %v", i, ref[i].Pos, b.Pos)
		}
	}
}

func TestEmptyAndSingleBody(t *testing.T) {
	s := NewStepper(1)
	p := DefaultParams()

	s.Step(nil, p, DefaultFrameDelta)

	lone := []*physics.Body{{ID: 0, Mass: 1, Vel: vec.V3{X: 1}}}
	s.Step(lone, p, DefaultFrameDelta)

	// No partners, no force: pure inertial drift.
	want := DefaultFrameDelta * p.TimeScale
	if math.Abs(lone[0].Pos.X-want) > 1e-12 {
		t.Errorf("lone body should drift by %f, got %f", want, lone[0].Pos.X)
	}
	if lone[0].Vel != (vec.V3{X: 1}) {
		t.Errorf("lone body velocity changed: %v", lone[0].Vel)
	}
}

func TestMomentumConservedTwoBody(t *testing.T) {
	bodies := twoBodyOrbit(t)

	p := DefaultParams()
	p.Collisions = false

	initial := physics.TotalMomentum(bodies)
	s := NewStepper(1)
	for i := 0; i < 500; i++ {
		s.Step(bodies, p, DefaultFrameDelta)
	}

	drift := physics.TotalMomentum(bodies).Sub(initial).Length()
	if drift > 1e-9 {
		t.Errorf("momentum drifted by %e over 500 ticks", drift)
	}
}

func TestStepperDeterministic(t *testing.T) {
	p := DefaultParams()

	a := twoBodyOrbit(t)
	b := physics.Clone(a)

	sa := NewStepper(7)
	sb := NewStepper(7)
	for i := 0; i < 100; i++ {
		sa.Step(a, p, DefaultFrameDelta)
		sb.Step(b, p, DefaultFrameDelta)
	}

	for i := range a {
		if a[i].Pos != b[i].Pos || a[i].Vel != b[i].Vel {
			t.Fatalf("same seed, diverging trajectories at body %d", i)
		}
	}
}

func TestFigureEightStaysBounded(t *testing.T) {
	opts := scenario.DefaultOptions()
	opts.Scale = 6
	bodies, err := scenario.New(1).Generate(scenario.FigureEight, opts)
	if err != nil {
		t.Fatal(err)
	}

	p := Params{
		G:         1,
		TimeScale: 1,
		SubSteps:  8,
		Softening: 0.05,
	}

	maxInitial := 0.0
	for _, b := range bodies {
		maxInitial = math.Max(maxInitial, b.Pos.Length())
	}

	s := NewStepper(1)
	for tick := 0; tick < 500; tick++ {
		s.Step(bodies, p, DefaultFrameDelta)
		for _, b := range bodies {
			if r := b.Pos.Length(); r > 3*maxInitial {
				t.Fatalf("body %d escaped to r=%f (limit %f) at tick %d", b.ID, r, 3*maxInitial, tick)
			}
		}
	}
}

func TestFigureEightClosesAfterOnePeriod(t *testing.T) {
	// Unscaled Chenciner–Montgomery choreography: period ~6.32591 at G=1.
	// The orbit must return each body to its start within a small tolerance;
	// this is the sharpest regression test the integrator has.
	opts := scenario.DefaultOptions()
	opts.Scale = 1
	bodies, err := scenario.New(1).Generate(scenario.FigureEight, opts)
	if err != nil {
		t.Fatal(err)
	}
	start := physics.Clone(bodies)

	const (
		period = 6.32591398
		dt     = 1e-4
	)
	p := Params{G: 1, TimeScale: 1, SubSteps: 1}

	s := NewStepper(1)
	steps := int(math.Round(period / dt))
	for i := 0; i < steps; i++ {
		s.Step(bodies, p, dt)
	}

	for i, b := range bodies {
		if d := b.Pos.Distance(start[i].Pos); d > 0.05 {
			t.Errorf("body %d ended %f from its start after one period", i, d)
		}
	}
}

func TestCollisionsSeparateOverlap(t *testing.T) {
	a := &physics.Body{ID: 0, Mass: 1, Pos: vec.V3{X: -0.3}, Vel: vec.V3{X: 0.5}, CollisionRadius: 1}
	b := &physics.Body{ID: 1, Mass: 1, Pos: vec.V3{X: 0.3}, Vel: vec.V3{X: -0.5}, CollisionRadius: 1}
	bodies := []*physics.Body{a, b}

	p := DefaultParams()
	p.G = 0.2

	s := NewStepper(1)
	s.Step(bodies, p, DefaultFrameDelta)

	if sep := a.Pos.Distance(b.Pos); sep < 2-1e-6 {
		t.Errorf("overlap survived the step: separation %f", sep)
	}
}

func TestStepKeepsStateFinite(t *testing.T) {
	// Stacked coincident bodies, collisions on: the degeneracy paths must
	// defuse every division by zero.
	bodies := []*physics.Body{
		{ID: 0, Mass: 1, Pos: vec.V3{X: 1}, CollisionRadius: 0.5},
		{ID: 1, Mass: 1, Pos: vec.V3{X: 1}, CollisionRadius: 0.5},
		{ID: 2, Mass: 1, Pos: vec.V3{X: 1}, CollisionRadius: 0.5},
	}

	p := DefaultParams()
	s := NewStepper(1)
	for i := 0; i < 20; i++ {
		s.Step(bodies, p, DefaultFrameDelta)
	}

	if !stateValid(bodies) {
		t.Fatal("degenerate stack produced NaN/Inf state")
	}
}
