package algo

import (
	"fmt"

	"github.com/NguyenTanUET/rcpsp-research/internal/core"
	"github.com/NguyenTanUET/rcpsp-research/internal/graph"
)

// Generate runs the serial schedule generation scheme: activities are
// processed strictly in the given order, each assigned the earliest start
// that respects both its predecessors' finish times and the resource
// capacities.
//
// For every precedence-consistent order this produces exactly one
// complete feasible schedule, which is what makes the ordering space an
// exhaustive encoding of candidate schedules. Orders that violate
// precedence are rejected with an error.
func Generate(inst *core.Instance, g *graph.Graph, order []core.ActivityID) (core.Schedule, error) {
	if len(order) != len(inst.Activities) {
		return nil, fmt.Errorf("order covers %d of %d activities", len(order), len(inst.Activities))
	}

	profile := NewProfile(inst, inst.Horizon())
	starts := make([]int, len(inst.Activities))
	for i := range starts {
		starts[i] = -1
	}

	for _, id := range order {
		a := inst.ActivityByID(id)
		if a == nil {
			return nil, fmt.Errorf("unknown activity %d in order", id)
		}
		if starts[int(id)-1] >= 0 {
			return nil, fmt.Errorf("activity %d appears twice in order", id)
		}

		floor, err := precedenceFloor(inst, g, starts, id)
		if err != nil {
			return nil, err
		}
		start := profile.EarliestFeasibleStart(a, floor)
		if start < 0 {
			return nil, fmt.Errorf("activity %d does not fit the horizon: %w", id, core.ErrInfeasible)
		}
		profile.Place(a, start)
		starts[int(id)-1] = start
	}

	sched := make(core.Schedule, len(starts))
	for i, start := range starts {
		sched[core.ActivityID(i+1)] = start
	}
	return sched, nil
}

// precedenceFloor returns the earliest precedence-feasible start of an
// activity: the max finish time over its already-scheduled predecessors.
// All predecessors must be scheduled, otherwise the order was not
// topological.
func precedenceFloor(inst *core.Instance, g *graph.Graph, starts []int, id core.ActivityID) (int, error) {
	floor := 0
	for _, p := range g.Predecessors(id) {
		ps := starts[int(p)-1]
		if ps < 0 {
			return 0, fmt.Errorf("activity %d ordered before its predecessor %d", id, p)
		}
		if end := ps + inst.ActivityByID(p).Duration; end > floor {
			floor = end
		}
	}
	return floor, nil
}
