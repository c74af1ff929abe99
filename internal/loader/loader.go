// Package loader reads the flat RCPSP instance format: a header line with
// task count, resource count and an optional known-optimal bound, a line
// of resource capacities, then one line per task holding its duration,
// per-resource demands, successor count and successor list (1-based).
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/NguyenTanUET/rcpsp-research/internal/core"
)

// Load reads an instance file from disk.
func Load(path string) (*core.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening instance file: %w", err)
	}
	defer f.Close()

	inst, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return inst, nil
}

// Parse reads an instance from a reader.
func Parse(r io.Reader) (*core.Instance, error) {
	lines := newLineReader(r)

	header, err := lines.ints("header")
	if err != nil {
		return nil, err
	}
	if len(header) < 2 || len(header) > 3 {
		return nil, fmt.Errorf("header must be \"tasks resources [bound]\", got %d values", len(header))
	}
	nTasks, nRes := header[0], header[1]
	if nTasks < 1 {
		return nil, fmt.Errorf("task count must be >= 1, got %d", nTasks)
	}
	if nRes < 0 {
		return nil, fmt.Errorf("resource count must be >= 0, got %d", nRes)
	}

	inst := core.NewInstance()
	if len(header) == 3 {
		inst.KnownBound = header[2]
	}

	if nRes > 0 {
		caps, err := lines.ints("capacities")
		if err != nil {
			return nil, err
		}
		if len(caps) != nRes {
			return nil, fmt.Errorf("expected %d capacities, got %d", nRes, len(caps))
		}
		inst.Resources = make([]core.Resource, nRes)
		for r, c := range caps {
			inst.Resources[r] = core.Resource{ID: r, Capacity: c}
		}
	}

	inst.Activities = make([]*core.Activity, nTasks)
	for i := 0; i < nTasks; i++ {
		row, err := lines.ints(fmt.Sprintf("task %d", i+1))
		if err != nil {
			return nil, err
		}
		if len(row) < nRes+2 {
			return nil, fmt.Errorf("task %d: expected at least %d values, got %d", i+1, nRes+2, len(row))
		}
		a := &core.Activity{
			ID:       core.ActivityID(i + 1),
			Duration: row[0],
			Demands:  row[1 : nRes+1],
		}
		nSucc := row[nRes+1]
		succ := row[nRes+2:]
		if len(succ) != nSucc {
			return nil, fmt.Errorf("task %d: declared %d successors, got %d", i+1, nSucc, len(succ))
		}
		a.Successors = make([]core.ActivityID, nSucc)
		for k, s := range succ {
			a.Successors[k] = core.ActivityID(s)
		}
		inst.Activities[i] = a
	}

	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// lineReader yields non-empty lines as integer slices.
type lineReader struct {
	sc *bufio.Scanner
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	return &lineReader{sc: sc}
}

func (l *lineReader) ints(what string) ([]int, error) {
	for l.sc.Scan() {
		fields := strings.Fields(l.sc.Text())
		if len(fields) == 0 {
			continue
		}
		out := make([]int, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", what, err)
			}
			out[i] = v
		}
		return out, nil
	}
	if err := l.sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", what, err)
	}
	return nil, fmt.Errorf("unexpected end of input reading %s", what)
}
