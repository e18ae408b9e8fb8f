package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mpolane/gravsim/internal/scenario"
	"github.com/mpolane/gravsim/internal/sim"
)

const (
	DefaultDuration    = 20.0
	DefaultRestitution = 0.8
	DefaultScale       = 6.0
	DefaultGalaxySize  = 100
)

var (
	ErrNonPositive     = errors.New("config: value must be positive")
	ErrNegativeTime    = errors.New("config: time scale must not be negative")
	ErrUnknownScenario = errors.New("config: unknown scenario")
)

// Config is the full description of a run: which scenario to build and the
// tunables fed to the stepper every tick.
type Config struct {
	Scenario    string  `yaml:"scenario"`
	G           float64 `yaml:"g"`
	TimeScale   float64 `yaml:"time_scale"`
	SubSteps    int     `yaml:"sub_steps"`
	Softening   float64 `yaml:"softening"`
	Restitution float64 `yaml:"restitution"`
	Collisions  bool    `yaml:"collisions"`
	FrameDelta  float64 `yaml:"frame_delta"`
	Duration    float64 `yaml:"duration"`
	Seed        int64   `yaml:"seed"`
	Perturb     bool    `yaml:"perturb"`

	ScenarioParams ScenarioConfig `yaml:"scenario_params"`
}

// ScenarioConfig tunes the scale-sensitive presets.
type ScenarioConfig struct {
	Scale        float64 `yaml:"scale"`
	GalaxyBodies int     `yaml:"galaxy_bodies"`
	GRef         float64 `yaml:"g_ref"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    string(scenario.TwoBody),
		G:           sim.DefaultG,
		TimeScale:   sim.DefaultTimeScale,
		SubSteps:    sim.DefaultSubSteps,
		Softening:   sim.DefaultSoftening,
		Restitution: DefaultRestitution,
		Collisions:  true,
		FrameDelta:  sim.DefaultFrameDelta,
		Duration:    DefaultDuration,
		ScenarioParams: ScenarioConfig{
			Scale:        DefaultScale,
			GalaxyBodies: DefaultGalaxySize,
			GRef:         1,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FrameDelta <= 0 {
		return fmt.Errorf("%w: frame_delta %f", ErrNonPositive, c.FrameDelta)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration %f", ErrNonPositive, c.Duration)
	}
	if c.SubSteps <= 0 {
		return fmt.Errorf("%w: sub_steps %d", ErrNonPositive, c.SubSteps)
	}
	if c.TimeScale < 0 {
		return fmt.Errorf("%w: %f", ErrNegativeTime, c.TimeScale)
	}
	known := false
	for _, p := range scenario.Presets() {
		if string(p) == c.Scenario {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownScenario, c.Scenario)
	}
	return nil
}

// Params maps the config onto the stepper's runtime parameters.
func (c *Config) Params() sim.Params {
	return sim.Params{
		G:           c.G,
		TimeScale:   c.TimeScale,
		SubSteps:    c.SubSteps,
		Softening:   c.Softening,
		Collisions:  c.Collisions,
		Restitution: c.Restitution,
	}
}

// Options maps the config onto the scenario generator options.
func (c *Config) Options() scenario.Options {
	return scenario.Options{
		Scale:        c.ScenarioParams.Scale,
		GalaxyBodies: c.ScenarioParams.GalaxyBodies,
		GRef:         c.ScenarioParams.GRef,
	}
}

// Ticks converts the configured duration into whole frames.
func (c *Config) Ticks() int {
	return int(c.Duration / c.FrameDelta)
}
