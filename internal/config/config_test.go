package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
instances:
  - data/j301_1.data
  - data/j301_2.data
node_limit: 500000
time_limit: 30s
workers: 4
use_known_bound: true
results_csv: results.csv
bucket: rcpsp-results-bucket
object_prefix: runs/
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Instances) != 2 {
		t.Errorf("parsed %d instances, want 2", len(cfg.Instances))
	}
	if cfg.NodeLimit != 500000 {
		t.Errorf("node_limit = %d, want 500000", cfg.NodeLimit)
	}
	if got := cfg.ParsedTimeLimit(); got != 30*time.Second {
		t.Errorf("time limit = %v, want 30s", got)
	}
	if cfg.Workers != 4 || !cfg.UseKnownBound {
		t.Errorf("workers/use_known_bound = %d/%v, want 4/true", cfg.Workers, cfg.UseKnownBound)
	}
	if cfg.Bucket != "rcpsp-results-bucket" || cfg.ObjectPrefix != "runs/" {
		t.Errorf("bucket/prefix = %q/%q", cfg.Bucket, cfg.ObjectPrefix)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "instances: [a.data]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ParsedTimeLimit() != 0 {
		t.Error("empty time_limit should parse as unbounded")
	}
	if cfg.NodeLimit != 0 || cfg.Workers != 0 {
		t.Error("unset limits should stay zero")
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"bad duration", "time_limit: 10 parsecs\n"},
		{"negative workers", "workers: -2\n"},
		{"bucket without csv", "bucket: b\n"},
		{"not yaml", ": : :\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, c.body)); err == nil {
				t.Errorf("accepted %q", c.body)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
