// Package physics implements the gravitational core of the simulator:
// the body data model, the softened pairwise force evaluator and the
// impulse-based collision resolver.
//
// The package deliberately raises no errors. Degenerate inputs that would
// otherwise produce NaN (exactly coincident bodies, zero separation during
// a collision) are defused inline by substituting small random displacements,
// favoring visual continuity over numerical rigor. The one construction-time
// invariant callers must uphold is Mass > 0; the resolver divides by mass.
//
// All functions mutate or read the body slice synchronously on the calling
// goroutine. Nothing here is safe for concurrent mutation.
package physics
