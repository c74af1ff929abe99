package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleData = `5 2 14
4 3
0 0 0 2 2 3
3 2 1 1 4
2 1 2 1 4
4 2 2 1 5
0 0 0 0
`

func TestParse(t *testing.T) {
	inst, err := Parse(strings.NewReader(sampleData))
	if err != nil {
		t.Fatal(err)
	}

	if len(inst.Activities) != 5 {
		t.Fatalf("parsed %d activities, want 5", len(inst.Activities))
	}
	if len(inst.Resources) != 2 {
		t.Fatalf("parsed %d resources, want 2", len(inst.Resources))
	}
	if inst.KnownBound != 14 {
		t.Errorf("known bound = %d, want 14", inst.KnownBound)
	}
	if inst.Resources[0].Capacity != 4 || inst.Resources[1].Capacity != 3 {
		t.Errorf("capacities = %d,%d, want 4,3", inst.Resources[0].Capacity, inst.Resources[1].Capacity)
	}

	a := inst.ActivityByID(2)
	if a.Duration != 3 {
		t.Errorf("activity 2 duration = %d, want 3", a.Duration)
	}
	if a.Demands[0] != 2 || a.Demands[1] != 1 {
		t.Errorf("activity 2 demands = %v, want [2 1]", a.Demands)
	}
	if len(a.Successors) != 1 || a.Successors[0] != 4 {
		t.Errorf("activity 2 successors = %v, want [4]", a.Successors)
	}

	if !inst.ActivityByID(1).IsDummy() || !inst.ActivityByID(5).IsDummy() {
		t.Error("boundary activities should parse as dummies")
	}
}

func TestParse_NoBound(t *testing.T) {
	data := `2 1
3
2 1 1 2
1 2 0
`
	inst, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if inst.KnownBound != 0 {
		t.Errorf("known bound = %d, want 0 when absent", inst.KnownBound)
	}
}

func TestParse_NoResources(t *testing.T) {
	data := `2 0
1 1 2
2 0
`
	inst, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(inst.Resources) != 0 {
		t.Fatalf("parsed %d resources, want 0", len(inst.Resources))
	}
	if len(inst.ActivityByID(1).Demands) != 0 {
		t.Error("expected empty demand vectors")
	}
}

func TestParse_SkipsBlankLines(t *testing.T) {
	padded := strings.ReplaceAll(sampleData, "\n", "\n\n")
	if _, err := Parse(strings.NewReader(padded)); err != nil {
		t.Fatalf("blank lines should be ignored: %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty input", ""},
		{"truncated header", "5\n"},
		{"oversized header", "5 2 14 9\n"},
		{"zero tasks", "0 1\n2\n"},
		{"capacity count mismatch", "2 2\n4\n1 0 0 0\n1 0 0 0\n"},
		{"missing task row", "2 1 5\n3\n2 1 1 2\n"},
		{"successor count mismatch", "2 1\n3\n2 1 2 2\n1 2 0\n"},
		{"successor out of range", "2 1\n3\n2 1 1 7\n1 2 0\n"},
		{"not a number", "2 1\n3\nx 1 0\n1 2 0\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(c.data)); err == nil {
				t.Errorf("accepted malformed input %q", c.data)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.data")
	if err := os.WriteFile(path, []byte(sampleData), 0o644); err != nil {
		t.Fatal(err)
	}

	inst, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(inst.Activities) != 5 {
		t.Errorf("loaded %d activities, want 5", len(inst.Activities))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.data")); err == nil {
		t.Error("expected error for missing file")
	}
}
