package sim

import (
	"testing"

	"github.com/mpolane/gravsim/internal/scenario"
)

func BenchmarkStepFigureEight(b *testing.B) {
	bodies, err := scenario.New(1).Generate(scenario.FigureEight, scenario.DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}

	params := DefaultParams()
	params.Collisions = false
	s := NewStepper(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(bodies, params, DefaultFrameDelta)
	}
}

func BenchmarkStepGalaxy(b *testing.B) {
	bodies, err := scenario.New(1).Generate(scenario.Galaxy, scenario.DefaultOptions())
	if err != nil {
		b.Fatal(err)
	}

	params := DefaultParams()
	s := NewStepper(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(bodies, params, DefaultFrameDelta)
	}
}

func BenchmarkStepGalaxyCollisions(b *testing.B) {
	opts := scenario.DefaultOptions()
	bodies, err := scenario.New(1).Generate(scenario.Galaxy, opts)
	if err != nil {
		b.Fatal(err)
	}
	for _, body := range bodies {
		body.CollisionRadius = 0.3
	}

	params := DefaultParams()
	s := NewStepper(1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Step(bodies, params, DefaultFrameDelta)
	}
}
