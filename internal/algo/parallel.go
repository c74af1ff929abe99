package algo

import (
	"sync"
	"sync/atomic"
)

// runParallel splits the root ready set across workers. Each worker owns
// a private search state (profile included) and claims root branches from
// a shared counter; the subtrees are disjoint, so the only cross-worker
// traffic is the incumbent. The reported makespan does not depend on
// worker interleaving: incumbent updates are strictly-better only and
// stale prune thresholds can only delay pruning.
func runParallel(sh *shared, workers int) {
	w0 := newSearch(sh)
	if !sh.countNode() {
		return
	}
	cands := w0.candidates()
	if int64(w0.lowerBound(cands)) >= sh.pruneThreshold() {
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	for k := 0; k < workers; k++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := newSearch(sh)
			for {
				if w.sh.stopped() {
					return
				}
				i := int(next.Add(1)) - 1
				if i >= len(cands) {
					return
				}
				// The root profile is empty in every worker, so the
				// starts computed once at the root stay valid here.
				c := cands[i]
				prevMax := w.place(c)
				w.dfs()
				w.unplace(c, prevMax)
			}
		}()
	}
	wg.Wait()
}
