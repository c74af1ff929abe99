package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NguyenTanUET/rcpsp-research/internal/algo"
	"github.com/NguyenTanUET/rcpsp-research/internal/core"
)

func TestWriteCSV(t *testing.T) {
	rows := []Row{
		{
			Instance: "j301_1.data",
			Result: &algo.Result{
				Status:        algo.StatusOptimal,
				Makespan:      43,
				Schedule:      core.Schedule{1: 0},
				LowerBound:    43,
				NodesExplored: 1234,
				Elapsed:       1500 * time.Microsecond,
			},
		},
		{
			Instance: "j301_2.data",
			Result: &algo.Result{
				Status:     algo.StatusInfeasible,
				LowerBound: 48,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "results.csv")
	if err := WriteCSV(path, rows); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	recs, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want header plus 2 rows", len(recs))
	}

	want := []string{"instance", "status", "makespan", "lower_bound", "nodes", "elapsed_ms"}
	for i, col := range want {
		if recs[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, recs[0][i], col)
		}
	}

	if recs[1][1] != "Optimal" || recs[1][2] != "43" || recs[1][4] != "1234" {
		t.Errorf("unexpected optimal row: %v", recs[1])
	}
	if recs[1][5] != "1.500" {
		t.Errorf("elapsed = %q, want 1.500", recs[1][5])
	}

	// No schedule means no makespan cell.
	if recs[2][1] != "Infeasible" || recs[2][2] != "" || recs[2][3] != "48" {
		t.Errorf("unexpected infeasible row: %v", recs[2])
	}
}

func TestWriteCSV_BadPath(t *testing.T) {
	err := WriteCSV(filepath.Join(t.TempDir(), "no", "such", "dir.csv"), nil)
	if err == nil {
		t.Error("expected error for unwritable path")
	}
}
