// Package core defines domain models for RCPSP instances and schedules.
package core

// ActivityID is a unique activity identifier (1..N).
type ActivityID int

// Activity represents a unit of work with a fixed duration and
// per-resource demands. Successors are the activities that may not start
// before this one finishes.
type Activity struct {
	ID         ActivityID
	Duration   int
	Demands    []int // One entry per resource, same order as Instance.Resources
	Successors []ActivityID
}

// IsDummy reports whether the activity is a zero-duration, zero-demand
// marker (project start/end in the standard file format).
func (a *Activity) IsDummy() bool {
	if a.Duration != 0 {
		return false
	}
	for _, d := range a.Demands {
		if d != 0 {
			return false
		}
	}
	return true
}

// Energy returns duration * demand for the given resource index, the
// total capacity-units the activity consumes on that resource.
func (a *Activity) Energy(resource int) int {
	if resource >= len(a.Demands) {
		return 0
	}
	return a.Duration * a.Demands[resource]
}

// Resource is a renewable resource: its full capacity is available anew
// every time unit.
type Resource struct {
	ID       int
	Capacity int
}
