// Package config loads run configuration for the rcpsp command.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for a batch of solver runs.
type Config struct {
	// Instances is a list of .data instance file paths to solve.
	Instances []string `yaml:"instances"`

	// NodeLimit caps the number of search node expansions per instance.
	// 0 means unbounded.
	NodeLimit uint64 `yaml:"node_limit"`

	// TimeLimit is the per-instance wall-clock budget, in Go duration
	// syntax (e.g. "10s", "2m"). Empty means unbounded.
	TimeLimit string `yaml:"time_limit"`

	// Workers is the number of parallel search workers per instance.
	Workers int `yaml:"workers"`

	// UseKnownBound passes an instance file's known-optimal bound to the
	// solver as a target makespan to prove or refute.
	UseKnownBound bool `yaml:"use_known_bound"`

	// ResultsCSV is the path the per-instance result rows are written to.
	// Empty disables the CSV report.
	ResultsCSV string `yaml:"results_csv"`

	// Bucket, when set, is the Cloud Storage bucket the results CSV is
	// uploaded to after the run.
	Bucket string `yaml:"bucket"`

	// ObjectPrefix prefixes the uploaded object name (e.g. "results/").
	ObjectPrefix string `yaml:"object_prefix"`
}

// Load reads a YAML config file from the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParsedTimeLimit returns the time limit as a duration, 0 when unset.
func (c *Config) ParsedTimeLimit() time.Duration {
	if c.TimeLimit == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.TimeLimit)
	return d
}

// validate checks that all config values are usable.
func (c *Config) validate() error {
	if c.TimeLimit != "" {
		if _, err := time.ParseDuration(c.TimeLimit); err != nil {
			return fmt.Errorf("time_limit: %w", err)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Bucket != "" && c.ResultsCSV == "" {
		return fmt.Errorf("bucket is set but results_csv is empty")
	}
	return nil
}
