// Package config loads experiment definitions from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Experiment describes one evaluation run: the network topology, the
// data source, the error metric, the initializer, and where to record
// the result.
type Experiment struct {
	// Network lists layer widths, input first. A dense connection is
	// created between each consecutive pair.
	Network struct {
		Layers []int `yaml:"layers"`
	} `yaml:"network"`

	// Metric is the output error metric: "mae" or "mse".
	Metric string `yaml:"metric"`

	Initializer struct {
		// Kind is "xavier", "uniform", "normal", or "" for none.
		Kind   string  `yaml:"kind"`
		Seed   int64   `yaml:"seed"`
		Min    float32 `yaml:"min"`
		Max    float32 `yaml:"max"`
		Mean   float32 `yaml:"mean"`
		Stddev float32 `yaml:"stddev"`
	} `yaml:"initializer"`

	Data struct {
		// TestCSV is the path of the label+features CSV to evaluate.
		TestCSV    string  `yaml:"test_csv"`
		Classes    int     `yaml:"classes"`
		Scale      float32 `yaml:"scale"`
		SkipHeader bool    `yaml:"skip_header"`
		MaxRows    int     `yaml:"max_rows"`
	} `yaml:"data"`

	Store struct {
		// Backend is "memory" (default) or "sqlite".
		Backend string `yaml:"backend"`
		Path    string `yaml:"path"`
	} `yaml:"store"`

	// ProgressEvery logs progress every N samples; 0 disables interval
	// logging.
	ProgressEvery int `yaml:"progress_every"`
}

// Load reads and validates an experiment file.
func Load(path string) (*Experiment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read experiment file: %w", err)
	}

	var exp Experiment
	if err := yaml.Unmarshal(raw, &exp); err != nil {
		return nil, fmt.Errorf("parse experiment file: %w", err)
	}
	if err := exp.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &exp, nil
}

// Validate checks the experiment for consistency.
func (e *Experiment) Validate() error {
	if len(e.Network.Layers) < 2 {
		return fmt.Errorf("network needs at least an input and an output layer, got %d", len(e.Network.Layers))
	}
	for i, w := range e.Network.Layers {
		if w <= 0 {
			return fmt.Errorf("layer %d has invalid width %d", i, w)
		}
	}

	switch e.Metric {
	case "mae", "mse":
	case "":
		return fmt.Errorf("metric is required")
	default:
		return fmt.Errorf("unknown metric: %s", e.Metric)
	}

	switch e.Initializer.Kind {
	case "", "xavier", "uniform", "normal":
	default:
		return fmt.Errorf("unknown initializer: %s", e.Initializer.Kind)
	}

	if e.Data.TestCSV == "" {
		return fmt.Errorf("data.test_csv is required")
	}
	if e.Data.Classes <= 0 {
		return fmt.Errorf("data.classes must be positive, got %d", e.Data.Classes)
	}
	if e.Data.Classes != e.Network.Layers[len(e.Network.Layers)-1] {
		return fmt.Errorf("data.classes (%d) must match the output layer width (%d)",
			e.Data.Classes, e.Network.Layers[len(e.Network.Layers)-1])
	}

	switch e.Store.Backend {
	case "", "memory":
	case "sqlite":
		if e.Store.Path == "" {
			return fmt.Errorf("store.path is required for the sqlite backend")
		}
	default:
		return fmt.Errorf("unknown store backend: %s", e.Store.Backend)
	}

	return nil
}
