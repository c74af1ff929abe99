package algo

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NguyenTanUET/rcpsp-research/internal/core"
	"github.com/NguyenTanUET/rcpsp-research/internal/graph"
)

// unsetBest marks "no incumbent yet". Any real makespan is smaller.
const unsetBest = int64(1) << 62

type stopReason int32

const (
	stopNone   stopReason = iota // search ran to exhaustion
	stopBudget                   // node or time budget hit
	stopCancel                   // context cancelled
	stopTarget                   // target makespan reached
	stopProven                   // incumbent met the proven lower bound
)

// shared is the state all workers of one solve call see: the instance,
// the incumbent, counters and termination flags. The incumbent is the
// only mutable cell shared across workers; readers take the stale atomic
// value for prune thresholds, which can only weaken pruning, never
// correctness.
type shared struct {
	inst *core.Instance
	g    *graph.Graph
	opts Options

	ctx         context.Context
	deadline    time.Time
	hasDeadline bool

	rootLB int

	nodes atomic.Uint64
	stop  atomic.Int32
	best  atomic.Int64

	mu           sync.Mutex
	bestStarts   []int
	invariantErr error
}

func newShared(ctx context.Context, inst *core.Instance, g *graph.Graph, opts Options) *shared {
	sh := &shared{
		inst: inst,
		g:    g,
		opts: opts,
		ctx:  ctx,
	}
	sh.best.Store(unsetBest)
	if opts.TimeLimit > 0 {
		sh.deadline = time.Now().Add(opts.TimeLimit)
		sh.hasDeadline = true
	}
	if d, ok := ctx.Deadline(); ok && (!sh.hasDeadline || d.Before(sh.deadline)) {
		sh.deadline = d
		sh.hasDeadline = true
	}
	sh.rootLB = rootLowerBound(inst, g)
	return sh
}

func (sh *shared) stopped() bool {
	return stopReason(sh.stop.Load()) != stopNone
}

func (sh *shared) halt(r stopReason) {
	sh.stop.CompareAndSwap(int32(stopNone), int32(r))
}

// countNode charges one expansion against the budgets. Wall-clock and
// cancellation are polled every 256 expansions to keep the hot path off
// the clock.
func (sh *shared) countNode() bool {
	n := sh.nodes.Add(1)
	if sh.opts.NodeLimit > 0 && n > sh.opts.NodeLimit {
		sh.halt(stopBudget)
		return false
	}
	if n%256 == 0 {
		if sh.hasDeadline && time.Now().After(sh.deadline) {
			sh.halt(stopBudget)
			return false
		}
		select {
		case <-sh.ctx.Done():
			sh.halt(stopCancel)
			return false
		default:
		}
	}
	return true
}

// pruneThreshold returns the bound above which (inclusive) a node cannot
// contribute: the incumbent makespan, tightened to target+1 when a target
// was supplied since nothing beyond the target needs exploring.
func (sh *shared) pruneThreshold() int64 {
	th := sh.best.Load()
	if t := sh.opts.TargetMakespan; t > 0 && int64(t)+1 < th {
		th = int64(t) + 1
	}
	return th
}

// offer installs a complete schedule as the incumbent if strictly better.
// The new incumbent is validated against the instance; a violation means
// a feasibility check was bypassed somewhere and aborts the solve.
func (sh *shared) offer(makespan int, starts []int) {
	if int64(makespan) >= sh.best.Load() {
		return
	}
	sh.mu.Lock()
	if int64(makespan) < sh.best.Load() {
		if sh.bestStarts == nil {
			sh.bestStarts = make([]int, len(starts))
		}
		copy(sh.bestStarts, starts)
		sh.best.Store(int64(makespan))

		if err := startsToSchedule(sh.bestStarts).Validate(sh.inst); err != nil {
			sh.invariantErr = err
			sh.halt(stopCancel)
		}
	}
	sh.mu.Unlock()

	best := sh.best.Load()
	if t := sh.opts.TargetMakespan; t > 0 && best <= int64(t) {
		sh.halt(stopTarget)
	}
	if best <= int64(sh.rootLB) {
		sh.halt(stopProven)
	}
}

func (sh *shared) result() *Result {
	res := &Result{
		NodesExplored: sh.nodes.Load(),
		LowerBound:    sh.rootLB,
	}
	reason := stopReason(sh.stop.Load())
	exhausted := reason == stopNone
	best := sh.best.Load()
	target := sh.opts.TargetMakespan

	if best == unsetBest {
		switch {
		case exhausted && target > 0:
			// Every branch that could reach the target was refuted.
			res.Status = StatusInfeasible
			if target+1 > res.LowerBound {
				res.LowerBound = target + 1
			}
		case reason == stopCancel:
			res.Status = StatusCancelled
		default:
			res.Status = StatusFeasibleBound
		}
		return res
	}

	res.Makespan = int(best)
	sh.mu.Lock()
	res.Schedule = startsToSchedule(sh.bestStarts)
	sh.mu.Unlock()

	if target > 0 && res.Makespan > target {
		if exhausted {
			// The target itself is refuted even though a (worse)
			// schedule exists.
			res.Status = StatusInfeasible
			res.Makespan = 0
			res.Schedule = nil
			if target+1 > res.LowerBound {
				res.LowerBound = target + 1
			}
			return res
		}
		if reason == stopCancel {
			res.Status = StatusCancelled
		} else {
			res.Status = StatusFeasibleBound
		}
		return res
	}

	proven := exhausted || reason == stopProven || res.Makespan == sh.rootLB
	switch {
	case proven:
		res.Status = StatusOptimal
		res.LowerBound = res.Makespan
	case reason == stopCancel:
		res.Status = StatusCancelled
	default:
		res.Status = StatusFeasibleBound
	}
	return res
}

func startsToSchedule(starts []int) core.Schedule {
	s := make(core.Schedule, len(starts))
	for i, t := range starts {
		s[core.ActivityID(i+1)] = t
	}
	return s
}

// cand is one branching choice at a node: a ready activity and the start
// the profile would assign it.
type cand struct {
	idx   int // node index (activity ID - 1)
	start int
}

// search is one worker's private view of the branch-and-bound tree: its
// own profile and prefix state, backtracked in place. Nothing here is
// shared; disjoint subtrees touch only the incumbent through sh.
type search struct {
	sh   *shared
	inst *core.Instance
	g    *graph.Graph

	prof       *Profile
	starts     []int
	remPred    []int
	remEnergy  []int
	maxFinish  int
	nScheduled int
}

func newSearch(sh *shared) *search {
	n := len(sh.inst.Activities)
	w := &search{
		sh:        sh,
		inst:      sh.inst,
		g:         sh.g,
		prof:      NewProfile(sh.inst, sh.inst.Horizon()),
		starts:    make([]int, n),
		remPred:   make([]int, n),
		remEnergy: make([]int, len(sh.inst.Resources)),
	}
	for i := range w.starts {
		w.starts[i] = -1
		w.remPred[i] = len(sh.g.Predecessors(core.ActivityID(i + 1)))
	}
	for r := range w.remEnergy {
		w.remEnergy[r] = sh.inst.TotalEnergy(r)
	}
	return w
}

func (w *search) run() {
	w.dfs()
}

// dfs expands the current node: collect the ready set, bound, branch in
// heuristic order, backtrack. The profile and prefix arrays are restored
// in place on the way out.
func (w *search) dfs() {
	if w.sh.stopped() || !w.sh.countNode() {
		return
	}

	if w.nScheduled == len(w.starts) {
		w.sh.offer(w.maxFinish, w.starts)
		return
	}

	cands := w.candidates()
	if int64(w.lowerBound(cands)) >= w.sh.pruneThreshold() {
		return
	}

	for _, c := range cands {
		if w.sh.stopped() {
			return
		}
		// Sibling-level re-prune: the incumbent may have improved
		// while earlier children were explored.
		tail := w.g.Tail(core.ActivityID(c.idx + 1))
		if int64(c.start+tail) >= w.sh.pruneThreshold() {
			continue
		}
		prevMax := w.place(c)
		w.dfs()
		w.unplace(c, prevMax)
	}
}

// candidates returns the ready set (all predecessors scheduled) with each
// activity's earliest feasible start, ordered by the branching heuristic:
// earliest start first, ties to the activity with the most transitive
// successors, then by ID for determinism.
func (w *search) candidates() []cand {
	var cands []cand
	for i := range w.starts {
		if w.starts[i] >= 0 || w.remPred[i] != 0 {
			continue
		}
		a := w.inst.Activities[i]
		floor := 0
		for _, p := range w.g.Predecessors(a.ID) {
			pi := int(p) - 1
			if end := w.starts[pi] + w.inst.Activities[pi].Duration; end > floor {
				floor = end
			}
		}
		start := w.prof.EarliestFeasibleStart(a, floor)
		cands = append(cands, cand{idx: i, start: start})
	}

	sort.Slice(cands, func(x, y int) bool {
		a, b := cands[x], cands[y]
		if a.start != b.start {
			return a.start < b.start
		}
		da := w.g.Descendants(core.ActivityID(a.idx + 1))
		db := w.g.Descendants(core.ActivityID(b.idx + 1))
		if da != db {
			return da > db
		}
		return a.idx < b.idx
	})
	return cands
}

func (w *search) place(c cand) (prevMax int) {
	a := w.inst.Activities[c.idx]
	w.prof.Place(a, c.start)
	w.starts[c.idx] = c.start
	for _, s := range a.Successors {
		w.remPred[int(s)-1]--
	}
	for r := range w.remEnergy {
		w.remEnergy[r] -= a.Energy(r)
	}
	prevMax = w.maxFinish
	if f := c.start + a.Duration; f > w.maxFinish {
		w.maxFinish = f
	}
	w.nScheduled++
	return prevMax
}

func (w *search) unplace(c cand, prevMax int) {
	a := w.inst.Activities[c.idx]
	w.prof.Remove(a, c.start)
	w.starts[c.idx] = -1
	for _, s := range a.Successors {
		w.remPred[int(s)-1]++
	}
	for r := range w.remEnergy {
		w.remEnergy[r] += a.Energy(r)
	}
	w.maxFinish = prevMax
	w.nScheduled--
}
