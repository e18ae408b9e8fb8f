package physics

import (
	"math"
	"testing"

	"github.com/mpolane/gravsim/internal/vec"
)

func TestHeadOnCollision(t *testing.T) {
	a := &Body{ID: 0, Mass: 1, Pos: vec.V3{X: -0.5}, Vel: vec.V3{X: 1}, CollisionRadius: 1}
	b := &Body{ID: 1, Mass: 1, Pos: vec.V3{X: 0.5}, Vel: vec.V3{X: -1}, CollisionRadius: 1}
	bodies := []*Body{a, b}

	approach := b.Vel.Sub(a.Vel).X // -2

	ResolveCollisions(bodies, DefaultRestitution, testRand())

	if sep := a.Pos.Distance(b.Pos); sep < 2-1e-9 {
		t.Errorf("post-resolution separation %f below contact distance", sep)
	}

	after := b.Vel.Sub(a.Vel).X
	if after <= 0 {
		t.Fatalf("relative normal velocity should reverse sign, got %f", after)
	}
	if math.Abs(after- -DefaultRestitution*approach) > 1e-9 {
		t.Errorf("expected separation speed %f, got %f", -DefaultRestitution*approach, after)
	}

	// Equal masses, symmetric setup: speeds swap and shrink by e.
	if math.Abs(a.Vel.X+0.8) > 1e-9 || math.Abs(b.Vel.X-0.8) > 1e-9 {
		t.Errorf("unexpected velocities a=%v b=%v", a.Vel, b.Vel)
	}
}

func TestCollisionConservesMomentum(t *testing.T) {
	a := &Body{ID: 0, Mass: 3, Pos: vec.V3{X: -0.4, Y: 0.1}, Vel: vec.V3{X: 2, Y: -1}, CollisionRadius: 1}
	b := &Body{ID: 1, Mass: 7, Pos: vec.V3{X: 0.4}, Vel: vec.V3{X: -1, Y: 0.5}, CollisionRadius: 1}
	bodies := []*Body{a, b}

	before := TotalMomentum(bodies)
	ResolveCollisions(bodies, DefaultRestitution, testRand())
	after := TotalMomentum(bodies)

	if before.Sub(after).Length() > 1e-9 {
		t.Errorf("impulse changed total momentum: %v -> %v", before, after)
	}
}

func TestSeparatingPairGetsNoImpulse(t *testing.T) {
	a := &Body{ID: 0, Mass: 1, Pos: vec.V3{X: -0.5}, Vel: vec.V3{X: -1}, CollisionRadius: 1}
	b := &Body{ID: 1, Mass: 1, Pos: vec.V3{X: 0.5}, Vel: vec.V3{X: 1}, CollisionRadius: 1}
	bodies := []*Body{a, b}

	ResolveCollisions(bodies, DefaultRestitution, testRand())

	// Positions are still corrected, velocities untouched.
	if a.Vel != (vec.V3{X: -1}) || b.Vel != (vec.V3{X: 1}) {
		t.Errorf("separating pair was impulsed: a=%v b=%v", a.Vel, b.Vel)
	}
	if sep := a.Pos.Distance(b.Pos); sep < 2-1e-9 {
		t.Errorf("overlap not corrected, separation %f", sep)
	}
}

func TestZeroRadiusBodyIgnored(t *testing.T) {
	ghost := &Body{ID: 0, Mass: 1, Pos: vec.V3{X: -0.1}, Vel: vec.V3{X: 5}, CollisionRadius: 0}
	solid := &Body{ID: 1, Mass: 1, Pos: vec.V3{X: 0.1}, Vel: vec.V3{X: -5}, CollisionRadius: 2}
	bodies := []*Body{ghost, solid}

	ResolveCollisions(bodies, DefaultRestitution, testRand())

	if ghost.Pos != (vec.V3{X: -0.1}) || ghost.Vel != (vec.V3{X: 5}) {
		t.Errorf("zero-radius body was touched: pos=%v vel=%v", ghost.Pos, ghost.Vel)
	}
	if solid.Pos != (vec.V3{X: 0.1}) || solid.Vel != (vec.V3{X: -5}) {
		t.Errorf("partner of zero-radius body was touched: pos=%v vel=%v", solid.Pos, solid.Vel)
	}
}

func TestCoincidentPairIsDefused(t *testing.T) {
	a := &Body{ID: 0, Mass: 1, Pos: vec.V3{X: 1, Y: 1}, CollisionRadius: 0.5}
	b := &Body{ID: 1, Mass: 1, Pos: vec.V3{X: 1, Y: 1}, CollisionRadius: 0.5}
	bodies := []*Body{a, b}

	ResolveCollisions(bodies, DefaultRestitution, testRand())

	if !a.Pos.IsValid() || !b.Pos.IsValid() || !a.Vel.IsValid() || !b.Vel.IsValid() {
		t.Fatal("coincident pair produced non-finite state")
	}
	if a.Pos == b.Pos {
		t.Error("coincident pair was not separated")
	}
}

func TestInelasticRestitution(t *testing.T) {
	a := &Body{ID: 0, Mass: 1, Pos: vec.V3{X: -0.5}, Vel: vec.V3{X: 1}, CollisionRadius: 1}
	b := &Body{ID: 1, Mass: 1, Pos: vec.V3{X: 0.5}, Vel: vec.V3{X: -1}, CollisionRadius: 1}

	ResolveCollisions([]*Body{a, b}, 0, testRand())

	// Fully inelastic: the pair should move together afterwards.
	if rel := b.Vel.Sub(a.Vel).Length(); rel > 1e-9 {
		t.Errorf("restitution 0 should kill relative velocity, got %f", rel)
	}
}
