package algo

import (
	"github.com/NguyenTanUET/rcpsp-research/internal/core"
	"github.com/NguyenTanUET/rcpsp-research/internal/graph"
)

// rootLowerBound combines the precedence-only critical path with the
// per-resource energy bound (total duration*demand over capacity, rounded
// up). Both are valid for any schedule of the instance.
func rootLowerBound(inst *core.Instance, g *graph.Graph) int {
	lb := g.CriticalPathLength()
	for r, res := range inst.Resources {
		e := inst.TotalEnergy(r)
		if e == 0 {
			continue
		}
		if b := ceilDiv(e, res.Capacity); b > lb {
			lb = b
		}
	}
	return lb
}

// RootLowerBound exposes the instance-level bound for reporting.
func RootLowerBound(inst *core.Instance) (int, error) {
	g, err := graph.Build(inst)
	if err != nil {
		return 0, err
	}
	return rootLowerBound(inst, g), nil
}

// lowerBound computes an admissible bound for the current node given its
// ready set. Three parts, the max wins:
//
//   - the latest finish among already-placed activities (their starts are
//     fixed within this subtree),
//   - for each ready activity, its earliest feasible start plus the
//     longest duration chain hanging off it (covers every unscheduled
//     activity, since each lies downstream of some ready one),
//   - per resource, the earliest ready start plus the remaining energy
//     over capacity (no unscheduled activity can start earlier).
//
// The bound never exceeds the best makespan reachable from the node and
// never shrinks as the prefix grows.
func (w *search) lowerBound(cands []cand) int {
	lb := w.maxFinish
	if len(cands) == 0 {
		return lb
	}

	minStart := cands[0].start
	for _, c := range cands {
		if c.start < minStart {
			minStart = c.start
		}
		if b := c.start + w.g.Tail(core.ActivityID(c.idx+1)); b > lb {
			lb = b
		}
	}

	for r, e := range w.remEnergy {
		if e <= 0 {
			continue
		}
		if b := minStart + ceilDiv(e, w.inst.Resources[r].Capacity); b > lb {
			lb = b
		}
	}
	return lb
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
