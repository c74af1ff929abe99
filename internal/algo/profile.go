// Package algo implements the RCPSP solving engine: resource profiles,
// schedule generation, bounding and branch-and-bound search.
package algo

import (
	"github.com/NguyenTanUET/rcpsp-research/internal/core"
)

// Profile tracks the time-indexed cumulative usage of every resource for
// a partial schedule over [0, horizon).
//
// Place honors a caller contract: feasibility must be established with
// CanPlace (or EarliestFeasibleStart) first. The hot path does not
// re-validate and never allocates; a bypassed check corrupts the profile,
// which the solver treats as an invariant failure
// (core.ErrCapacityExceeded) when it validates an incumbent.
type Profile struct {
	caps    []int
	usage   [][]int // [resource][time]
	horizon int
}

// NewProfile creates an empty profile for the instance's resources over
// the given horizon.
func NewProfile(inst *core.Instance, horizon int) *Profile {
	p := &Profile{
		caps:    make([]int, len(inst.Resources)),
		usage:   make([][]int, len(inst.Resources)),
		horizon: horizon,
	}
	for r, res := range inst.Resources {
		p.caps[r] = res.Capacity
		p.usage[r] = make([]int, horizon)
	}
	return p
}

// Horizon returns the profile's time horizon.
func (p *Profile) Horizon() int { return p.horizon }

// Usage returns the current usage of a resource at a time unit.
func (p *Profile) Usage(resource, t int) int {
	return p.usage[resource][t]
}

// CanPlace reports whether the activity's demands fit every resource over
// [start, start+duration).
func (p *Profile) CanPlace(a *core.Activity, start int) bool {
	if start+a.Duration > p.horizon {
		return false
	}
	for r, d := range a.Demands {
		if d == 0 {
			continue
		}
		limit := p.caps[r] - d
		row := p.usage[r]
		for t := start; t < start+a.Duration; t++ {
			if row[t] > limit {
				return false
			}
		}
	}
	return true
}

// Place adds the activity's demands over its interval. The caller must
// have checked feasibility; Place does not.
func (p *Profile) Place(a *core.Activity, start int) {
	for r, d := range a.Demands {
		if d == 0 {
			continue
		}
		row := p.usage[r]
		for t := start; t < start+a.Duration; t++ {
			row[t] += d
		}
	}
}

// Remove is the inverse of Place, used on backtrack.
func (p *Profile) Remove(a *core.Activity, start int) {
	for r, d := range a.Demands {
		if d == 0 {
			continue
		}
		row := p.usage[r]
		for t := start; t < start+a.Duration; t++ {
			row[t] -= d
		}
	}
}

// EarliestFeasibleStart scans forward from lowerBound for the first start
// at which the activity fits. On a violation the scan jumps to the time
// unit after the violating one instead of re-checking from the floor,
// which makes this the profile's only non-trivial cost. Returns -1 if
// nothing fits within the horizon (cannot happen for instances that pass
// CheckDemands, since the horizon covers a fully serial schedule).
func (p *Profile) EarliestFeasibleStart(a *core.Activity, lowerBound int) int {
	start := lowerBound
	if a.Duration == 0 {
		return start
	}

scan:
	for start+a.Duration <= p.horizon {
		for r, d := range a.Demands {
			if d == 0 {
				continue
			}
			limit := p.caps[r] - d
			row := p.usage[r]
			// Check back-to-front so the jump lands past the latest
			// violation in the window.
			for t := start + a.Duration - 1; t >= start; t-- {
				if row[t] > limit {
					start = t + 1
					continue scan
				}
			}
		}
		return start
	}
	return -1
}

// Clone returns an independent copy of the profile. Parallel workers each
// carry their own copy; profiles are never shared.
func (p *Profile) Clone() *Profile {
	c := &Profile{
		caps:    p.caps,
		usage:   make([][]int, len(p.usage)),
		horizon: p.horizon,
	}
	for r, row := range p.usage {
		c.usage[r] = make([]int, len(row))
		copy(c.usage[r], row)
	}
	return c
}

// Reset zeroes all usage, returning the profile to the empty state.
func (p *Profile) Reset() {
	for _, row := range p.usage {
		for t := range row {
			row[t] = 0
		}
	}
}
