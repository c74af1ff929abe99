// Package graph derives the precedence DAG from an instance and provides
// topological ordering, critical-path times and reachability queries.
package graph

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/NguyenTanUET/rcpsp-research/internal/core"
)

// Graph is the precedence structure of an instance. It is built once and
// read-only afterwards. Activity IDs are 1-based; internally nodes are the
// 0-based indices into Instance.Activities.
type Graph struct {
	inst  *core.Instance
	succ  [][]int // adjacency by node index
	pred  [][]int // reverse adjacency
	order []int   // topological order, deterministic

	earliest []int  // CPM earliest starts (resource-free)
	tail     []int  // longest duration path from activity start to project end
	reach    []bits64 // reach[i] has bit j set iff j is a descendant of i
	critical int      // precedence-only critical path length
}

// Build constructs the precedence graph, failing with
// core.ErrCyclicPrecedence if the successor relation is not acyclic.
func Build(inst *core.Instance) (*Graph, error) {
	n := len(inst.Activities)
	g := &Graph{
		inst: inst,
		succ: make([][]int, n),
		pred: make([][]int, n),
	}

	for i, a := range inst.Activities {
		for _, s := range a.Successors {
			j := int(s) - 1
			g.succ[i] = append(g.succ[i], j)
			g.pred[j] = append(g.pred[j], i)
		}
	}

	order, err := g.topoSort()
	if err != nil {
		return nil, err
	}
	g.order = order

	g.computeEarliest()
	g.computeTails()
	g.computeReach()
	return g, nil
}

// topoSort runs Kahn's algorithm, breaking ties by activity ID so the
// order is deterministic.
func (g *Graph) topoSort() ([]int, error) {
	n := len(g.succ)
	inDegree := make([]int, n)
	for i := range g.pred {
		inDegree[i] = len(g.pred[i])
	}

	var queue []int
	for i := 0; i < n; i++ {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}

	order := make([]int, 0, n)
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		var ready []int
		for _, s := range g.succ[node] {
			inDegree[s]--
			if inDegree[s] == 0 {
				ready = append(ready, s)
			}
		}
		sort.Ints(ready)
		queue = append(queue, ready...)
	}

	if len(order) != n {
		return nil, fmt.Errorf("%d of %d activities sorted: %w",
			len(order), n, core.ErrCyclicPrecedence)
	}
	return order, nil
}

// computeEarliest runs the CPM forward pass assuming unlimited resources.
// Multiple roots and sinks are allowed; the virtual project start/end of
// the standard formulation are implicit.
func (g *Graph) computeEarliest() {
	n := len(g.succ)
	g.earliest = make([]int, n)
	g.critical = 0
	for _, i := range g.order {
		finish := g.earliest[i] + g.inst.Activities[i].Duration
		if finish > g.critical {
			g.critical = finish
		}
		for _, s := range g.succ[i] {
			if finish > g.earliest[s] {
				g.earliest[s] = finish
			}
		}
	}
}

// computeTails runs the backward pass: tail[i] is the longest duration
// chain from the start of i to the project end, i's own duration
// included. earliest[i] + tail[i] lower-bounds the makespan of any
// schedule in which i starts at earliest[i] or later.
func (g *Graph) computeTails() {
	n := len(g.succ)
	g.tail = make([]int, n)
	for k := n - 1; k >= 0; k-- {
		i := g.order[k]
		best := 0
		for _, s := range g.succ[i] {
			if g.tail[s] > best {
				best = g.tail[s]
			}
		}
		g.tail[i] = best + g.inst.Activities[i].Duration
	}
}

// computeReach fills per-node descendant bitsets in reverse topological
// order: reach(i) = union over successors s of reach(s) plus s itself.
func (g *Graph) computeReach() {
	n := len(g.succ)
	g.reach = make([]bits64, n)
	for i := range g.reach {
		g.reach[i] = newBits64(n)
	}
	for k := n - 1; k >= 0; k-- {
		i := g.order[k]
		for _, s := range g.succ[i] {
			g.reach[i].set(s)
			g.reach[i].or(g.reach[s])
		}
	}
}

// Len returns the number of activities.
func (g *Graph) Len() int { return len(g.succ) }

// TopologicalOrder returns one valid topological ordering of activity IDs,
// deterministic for a given instance.
func (g *Graph) TopologicalOrder() []core.ActivityID {
	out := make([]core.ActivityID, len(g.order))
	for k, i := range g.order {
		out[k] = core.ActivityID(i + 1)
	}
	return out
}

// EarliestStart returns the CPM earliest start of an activity, ignoring
// resources. This is a precedence-only bound, never a feasible start per se.
func (g *Graph) EarliestStart(id core.ActivityID) int {
	return g.earliest[int(id)-1]
}

// LatestStart returns the CPM latest start of an activity against the
// given horizon, ignoring resources.
func (g *Graph) LatestStart(id core.ActivityID, horizon int) int {
	i := int(id) - 1
	return horizon - g.tail[i]
}

// Tail returns the longest-duration chain from the start of the activity
// to the project end, own duration included.
func (g *Graph) Tail(id core.ActivityID) int {
	return g.tail[int(id)-1]
}

// CriticalPathLength returns the precedence-only lower bound on the
// makespan: the longest duration chain through the DAG.
func (g *Graph) CriticalPathLength() int { return g.critical }

// IsPredecessor reports whether a precedes b, directly or transitively.
func (g *Graph) IsPredecessor(a, b core.ActivityID) bool {
	return g.reach[int(a)-1].has(int(b) - 1)
}

// IsSuccessor reports whether a follows b, directly or transitively.
func (g *Graph) IsSuccessor(a, b core.ActivityID) bool {
	return g.IsPredecessor(b, a)
}

// Descendants returns the number of transitive successors of an activity,
// the "total work downstream" used by the branching heuristic.
func (g *Graph) Descendants(id core.ActivityID) int {
	return g.reach[int(id)-1].count()
}

// Predecessors returns the direct predecessor IDs of an activity.
func (g *Graph) Predecessors(id core.ActivityID) []core.ActivityID {
	preds := g.pred[int(id)-1]
	out := make([]core.ActivityID, len(preds))
	for k, p := range preds {
		out[k] = core.ActivityID(p + 1)
	}
	return out
}

// bits64 is a fixed-size bitset over node indices.
type bits64 []uint64

func newBits64(n int) bits64 {
	return make(bits64, (n+63)/64)
}

func (b bits64) set(i int)      { b[i/64] |= 1 << (i % 64) }
func (b bits64) has(i int) bool { return b[i/64]&(1<<(i%64)) != 0 }

func (b bits64) or(other bits64) {
	for w := range b {
		b[w] |= other[w]
	}
}

func (b bits64) count() int {
	c := 0
	for _, w := range b {
		c += bits.OnesCount64(w)
	}
	return c
}
