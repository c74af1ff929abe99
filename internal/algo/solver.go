package algo

import (
	"context"
	"fmt"
	"time"

	"github.com/NguyenTanUET/rcpsp-research/internal/core"
	"github.com/NguyenTanUET/rcpsp-research/internal/graph"
)

// Options configures one solve call.
type Options struct {
	// NodeLimit stops the search after this many node expansions.
	// 0 means unbounded.
	NodeLimit uint64

	// TimeLimit stops the search after this wall-clock budget.
	// 0 means unbounded.
	TimeLimit time.Duration

	// TargetMakespan, when positive, switches the search from optimizing
	// to proving or refuting this value: the result is Optimal when a
	// schedule with makespan <= target is found and proven best
	// achievable, Infeasible when the search exhausts without one.
	TargetMakespan int

	// Workers is the number of concurrent search workers. Values <= 1
	// run the search serially. Parallelism never changes the reported
	// makespan, only how fast it is found.
	Workers int
}

// Status classifies the outcome of a solve call.
type Status int

const (
	// StatusOptimal: the returned schedule is proven optimal (or proves
	// the requested target).
	StatusOptimal Status = iota
	// StatusFeasibleBound: a feasible schedule was found but the budget
	// ran out before optimality was proven; LowerBound brackets it.
	StatusFeasibleBound
	// StatusInfeasible: no schedule meeting the request exists (only
	// reachable when a target makespan was supplied, since every
	// demand-feasible instance has some schedule).
	StatusInfeasible
	// StatusCancelled: the context was cancelled; the best incumbent
	// found so far, if any, is returned.
	StatusCancelled
)

func (s Status) String() string {
	return [...]string{"Optimal", "FeasibleBound", "Infeasible", "Cancelled"}[s]
}

// Result is the outcome of one solve call.
type Result struct {
	Status        Status
	Makespan      int           // 0 and meaningless when Schedule is nil
	Schedule      core.Schedule // nil when no feasible schedule was found
	LowerBound    int           // best proven lower bound at termination
	NodesExplored uint64
	Elapsed       time.Duration
}

// Solve computes start times for every activity of the instance,
// minimizing the makespan within the configured budgets.
//
// Malformed instances (validation failures, cyclic precedence) and
// instances with no feasible schedule at all surface as errors; budget
// exhaustion is a normal termination carrying the best incumbent.
// Each call starts from fresh state; nothing persists across calls.
func Solve(ctx context.Context, inst *core.Instance, opts Options) (*Result, error) {
	begin := time.Now()

	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instance: %w", err)
	}
	g, err := graph.Build(inst)
	if err != nil {
		return nil, err
	}
	if err := inst.CheckDemands(); err != nil {
		return nil, err
	}

	sh := newShared(ctx, inst, g, opts)
	if opts.Workers > 1 {
		runParallel(sh, opts.Workers)
	} else {
		w := newSearch(sh)
		w.run()
	}

	res := sh.result()
	res.Elapsed = time.Since(begin)
	if sh.invariantErr != nil {
		return nil, sh.invariantErr
	}
	return res, nil
}
