package scenario

import (
	"math"
	"testing"

	"github.com/mpolane/gravsim/internal/physics"
)

func generate(t *testing.T, g *Generator, p Preset) []*physics.Body {
	t.Helper()
	bodies, err := g.Generate(p, DefaultOptions())
	if err != nil {
		t.Fatalf("generate %s: %v", p, err)
	}
	return bodies
}

func samePhysicalState(a, b []*physics.Body) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Pos != b[i].Pos || a[i].Vel != b[i].Vel || a[i].Mass != b[i].Mass {
			return false
		}
	}
	return true
}

func TestDeterministicPresetsIgnoreSeed(t *testing.T) {
	// Positions, velocities and masses of the non-randomized presets must
	// be bit-identical regardless of the generator's seed.
	for _, p := range []Preset{TwoBody, FigureEight, Ternary} {
		t.Run(string(p), func(t *testing.T) {
			a := generate(t, New(1), p)
			b := generate(t, New(99), p)
			if !samePhysicalState(a, b) {
				t.Error("physical state depends on the noise seed")
			}
		})
	}
}

func TestRandomizedPresetsReproducibleBySeed(t *testing.T) {
	for _, p := range []Preset{Chaotic, Galaxy} {
		t.Run(string(p), func(t *testing.T) {
			a := generate(t, New(7), p)
			b := generate(t, New(7), p)
			if !samePhysicalState(a, b) {
				t.Error("same seed should reproduce the configuration")
			}

			c := generate(t, New(8), p)
			if samePhysicalState(a, c) {
				t.Error("different seeds should differ")
			}
		})
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := New(1).Generate(Preset("nope"), DefaultOptions()); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestTwoBodyIsBalanced(t *testing.T) {
	bodies := generate(t, New(1), TwoBody)

	if len(bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(bodies))
	}
	if p := physics.TotalMomentum(bodies); p.Length() > 1e-12 {
		t.Errorf("two-body preset should have zero net momentum, got %v", p)
	}
	if bodies[0].Pos.Add(bodies[1].Pos).Length() > 1e-12 {
		t.Error("bodies should sit on opposite sides of the origin")
	}
}

func TestFigureEightScaling(t *testing.T) {
	opts := DefaultOptions()
	opts.Scale = 6
	bodies, err := New(1).Generate(FigureEight, opts)
	if err != nil {
		t.Fatal(err)
	}

	if len(bodies) != 3 {
		t.Fatalf("expected 3 bodies, got %d", len(bodies))
	}
	for _, b := range bodies {
		if b.Mass != 1 {
			t.Errorf("figure-eight bodies must have unit mass, got %f", b.Mass)
		}
	}

	want := 0.97000436 * 6
	if got := bodies[1].Pos.X; math.Abs(got-want) > 1e-12 {
		t.Errorf("position scale not applied: got %f, want %f", got, want)
	}

	wantV := 0.466203685 / math.Sqrt(6)
	if got := bodies[0].Vel.X; math.Abs(got-wantV) > 1e-12 {
		t.Errorf("velocity scale not applied: got %f, want %f", got, wantV)
	}

	if p := physics.TotalMomentum(bodies); p.Length() > 1e-9 {
		t.Errorf("figure-eight momentum should vanish, got %v", p)
	}
}

func TestTernaryHierarchy(t *testing.T) {
	bodies := generate(t, New(1), Ternary)

	if len(bodies) != 3 {
		t.Fatalf("expected 3 bodies, got %d", len(bodies))
	}

	central, medium, light := bodies[0], bodies[1], bodies[2]
	if central.Vel.Length() != 0 {
		t.Error("central body should start at rest")
	}
	if !(central.Mass > medium.Mass && medium.Mass > light.Mass) {
		t.Error("masses should be strictly hierarchical")
	}
	if light.Vel.Y <= medium.Vel.Y {
		t.Error("light body should carry the medium body's velocity plus its own orbital speed")
	}
}

func TestGalaxyCircularSpeeds(t *testing.T) {
	opts := DefaultOptions()
	opts.GalaxyBodies = 50
	bodies, err := New(3).Generate(Galaxy, opts)
	if err != nil {
		t.Fatal(err)
	}

	if len(bodies) != 51 {
		t.Fatalf("expected 51 bodies, got %d", len(bodies))
	}

	central := bodies[0]
	for _, b := range bodies[1:] {
		r := b.Pos.Length()
		want := math.Sqrt(opts.GRef * central.Mass / r)
		if math.Abs(b.Vel.Length()-want) > 1e-9 {
			t.Fatalf("body %d speed %f, want circular %f at r=%f", b.ID, b.Vel.Length(), want, r)
		}
		// Tangential: velocity orthogonal to the radius vector.
		if math.Abs(b.Pos.Dot(b.Vel)) > 1e-6 {
			t.Fatalf("body %d velocity not tangential", b.ID)
		}
	}
}

func TestAddRandomBody(t *testing.T) {
	g := New(4)
	bodies := generate(t, g, TwoBody)

	grown, added := g.AddRandomBody(bodies)
	if len(grown) != 3 {
		t.Fatalf("expected 3 bodies, got %d", len(grown))
	}
	if added.ID != 2 {
		t.Errorf("new body should get the next free ID, got %d", added.ID)
	}
	if added.Mass <= 0 {
		t.Errorf("new body must have positive mass, got %f", added.Mass)
	}
	if grown[0] != bodies[0] || grown[1] != bodies[1] {
		t.Error("existing bodies must not be replaced")
	}
}

func TestPerturbStaysSmall(t *testing.T) {
	g := New(5)
	bodies := generate(t, g, FigureEight)
	ref := physics.Clone(bodies)

	g.Perturb(bodies)

	for i, b := range bodies {
		dp := b.Pos.Sub(ref[i].Pos)
		dv := b.Vel.Sub(ref[i].Vel)

		if dp.LengthSq() == 0 && dv.LengthSq() == 0 {
			t.Errorf("body %d not perturbed", i)
		}
		for _, c := range []float64{dp.X, dp.Y, dp.Z} {
			if math.Abs(c) > 0.05 {
				t.Errorf("position offset %f out of range", c)
			}
		}
		for _, c := range []float64{dv.X, dv.Y, dv.Z} {
			if math.Abs(c) > 0.005 {
				t.Errorf("velocity offset %f out of range", c)
			}
		}
	}
}
