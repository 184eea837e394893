// Package config provides scenario configuration loading for urbansim.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"urbansim/internal/core"
	"urbansim/internal/engine"
	"urbansim/internal/rules"
)

// Config describes one simulation scenario.
type Config struct {
	// City is the label recorded on the run.
	City string `yaml:"city"`
	// Steps is the number of timesteps to simulate.
	Steps int `yaml:"steps"`
	// GridLimit caps how many cells are loaded from the source.
	GridLimit int `yaml:"grid_limit"`
	// Seed drives the per-step processing order and any demo data.
	Seed int64 `yaml:"seed"`
	// Shuffle randomizes cell processing order each step. Disable for
	// fully deterministic, sorted-order runs.
	Shuffle bool `yaml:"shuffle"`
	// SnapshotEvery is the snapshot cadence in steps.
	SnapshotEvery int `yaml:"snapshot_every"`
	// NATSURL enables the NATS persistence sink when set.
	NATSURL string `yaml:"nats_url"`
	// Modules lists the enabled rule modules by registry name.
	Modules []string `yaml:"modules"`
	// Policies configures the policy module.
	Policies rules.PolicySet `yaml:"policies"`
}

// Default returns the standard scenario configuration with every rule
// module enabled.
func Default() *Config {
	return &Config{
		City:          "Leipzig",
		Steps:         50,
		GridLimit:     50,
		Seed:          1337,
		Shuffle:       true,
		SnapshotEvery: 10,
		Modules: []string{
			"infrastructure",
			"policy",
			"education",
			"healthcare",
			"spatial-effects",
			"population",
			"transportation",
			"housing-market",
			"safety",
			"commercial",
		},
		Policies: rules.DefaultPolicies(),
	}
}

// LoadFromFile loads a scenario from a YAML file layered over defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the scenario is runnable.
func (c *Config) Validate() error {
	if c.City == "" {
		return fmt.Errorf("city is required")
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive")
	}
	if c.GridLimit <= 0 {
		return fmt.Errorf("grid_limit must be positive")
	}
	if c.SnapshotEvery <= 0 {
		return fmt.Errorf("snapshot_every must be positive")
	}
	if len(c.Modules) == 0 {
		return fmt.Errorf("at least one module is required")
	}
	return nil
}

// Pipeline builds the configured rule modules, wiring the policy module
// to this scenario's policy set.
func (c *Config) Pipeline() ([]core.Module, error) {
	pipeline := make([]core.Module, 0, len(c.Modules))
	for _, name := range c.Modules {
		if name == "policy" {
			pipeline = append(pipeline, rules.NewPolicy(c.Policies))
			continue
		}
		factory, ok := core.Modules()[name]
		if !ok {
			return nil, fmt.Errorf("unknown rule module %q", name)
		}
		pipeline = append(pipeline, factory())
	}
	core.SortPipeline(pipeline)
	return pipeline, nil
}

// EngineConfig maps the scenario onto the engine tunables.
func (c *Config) EngineConfig() engine.Config {
	return engine.Config{
		CityName:      c.City,
		GridLimit:     c.GridLimit,
		Seed:          c.Seed,
		Shuffle:       c.Shuffle,
		SnapshotEvery: c.SnapshotEvery,
	}
}
