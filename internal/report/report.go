// Package report writes solver results as CSV and optionally uploads the
// file to a Cloud Storage bucket.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/NguyenTanUET/rcpsp-research/internal/algo"
)

// Row is one instance's outcome.
type Row struct {
	Instance string
	Result   *algo.Result
}

// WriteCSV writes the result rows with a header to the given path.
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"instance", "status", "makespan", "lower_bound", "nodes", "elapsed_ms",
	}); err != nil {
		return err
	}
	for _, row := range rows {
		r := row.Result
		makespan := ""
		if r.Schedule != nil {
			makespan = strconv.Itoa(r.Makespan)
		}
		rec := []string{
			row.Instance,
			r.Status.String(),
			makespan,
			strconv.Itoa(r.LowerBound),
			strconv.FormatUint(r.NodesExplored, 10),
			strconv.FormatFloat(float64(r.Elapsed.Microseconds())/1000.0, 'f', 3, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
