package sim

import (
	"context"
	"math/rand"
	"sync"

	"github.com/mpolane/gravsim/internal/physics"
)

// Ensemble runs several copies of the same configuration in parallel, each
// with its own seeded noise source and an optional per-copy perturbation.
// Copy 0 always runs unperturbed as the reference trajectory, which is what
// the divergence analysis compares against.
type Ensemble struct {
	params    Params
	runs      int
	seedStart int64
	perturb   func([]*physics.Body, *rand.Rand)
}

func NewEnsemble(params Params, runs int, seedStart int64, perturb func([]*physics.Body, *rand.Rand)) *Ensemble {
	return &Ensemble{params: params, runs: runs, seedStart: seedStart, perturb: perturb}
}

// Run clones the base configuration per copy, so the caller's bodies are
// never touched.
func (e *Ensemble) Run(ctx context.Context, base []*physics.Body, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, e.runs)
	errs := make([]error, e.runs)

	var wg sync.WaitGroup
	for i := 0; i < e.runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			rng := rand.New(rand.NewSource(e.seedStart + int64(idx)))
			bodies := physics.Clone(base)
			if idx > 0 && e.perturb != nil {
				e.perturb(bodies, rng)
			}

			runner := NewRunner(NewStepperWithRand(rng), e.params)
			results[idx], errs[idx] = runner.Run(ctx, bodies, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
