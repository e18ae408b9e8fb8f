package config

import "github.com/mpolane/gravsim/internal/scenario"

// Presets carries the tuned parameter set for each scenario. Softening is a
// per-scenario stability knob (tight orbits want less smoothing, dense
// clusters more), and the collision default follows the scenario: the
// figure-eight choreography must run with collisions off because
// contact-distance force clamping perturbs the periodic solution.
var Presets = map[string]*Config{
	string(scenario.TwoBody): {
		Scenario: string(scenario.TwoBody),
		G:        1, TimeScale: 1, SubSteps: 8,
		Softening: 0.5, Restitution: DefaultRestitution, Collisions: true,
		FrameDelta: 1.0 / 60.0, Duration: 60,
		ScenarioParams: ScenarioConfig{Scale: DefaultScale, GalaxyBodies: DefaultGalaxySize, GRef: 1},
	},
	string(scenario.FigureEight): {
		Scenario: string(scenario.FigureEight),
		G:        1, TimeScale: 1, SubSteps: 8,
		Softening: 0.05, Restitution: DefaultRestitution, Collisions: false,
		FrameDelta: 1.0 / 60.0, Duration: 120,
		ScenarioParams: ScenarioConfig{Scale: DefaultScale, GalaxyBodies: DefaultGalaxySize, GRef: 1},
	},
	string(scenario.Chaotic): {
		Scenario: string(scenario.Chaotic),
		G:        2, TimeScale: 1, SubSteps: 8,
		Softening: 1.0, Restitution: DefaultRestitution, Collisions: true,
		FrameDelta: 1.0 / 60.0, Duration: 60,
		ScenarioParams: ScenarioConfig{Scale: DefaultScale, GalaxyBodies: DefaultGalaxySize, GRef: 1},
	},
	string(scenario.Ternary): {
		Scenario: string(scenario.Ternary),
		G:        1, TimeScale: 2, SubSteps: 8,
		Softening: 0.5, Restitution: DefaultRestitution, Collisions: true,
		FrameDelta: 1.0 / 60.0, Duration: 120,
		ScenarioParams: ScenarioConfig{Scale: DefaultScale, GalaxyBodies: DefaultGalaxySize, GRef: 1},
	},
	string(scenario.Galaxy): {
		Scenario: string(scenario.Galaxy),
		G:        1, TimeScale: 2, SubSteps: 4,
		Softening: 2.0, Restitution: DefaultRestitution, Collisions: false,
		FrameDelta: 1.0 / 60.0, Duration: 120,
		ScenarioParams: ScenarioConfig{Scale: DefaultScale, GalaxyBodies: DefaultGalaxySize, GRef: 1},
	},
}

// GetPreset returns a copy of the tuned config for name, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the preset names in stable order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for _, p := range scenario.Presets() {
		if _, ok := Presets[string(p)]; ok {
			names = append(names, string(p))
		}
	}
	return names
}
