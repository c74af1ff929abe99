package core

import "fmt"

// Instance represents an RCPSP problem instance: activities with durations
// and demands, renewable resources with capacities, and a precedence
// relation given by each activity's successor list.
//
// Instances are treated as immutable once validated; the solver never
// mutates one.
type Instance struct {
	Activities []*Activity
	Resources  []Resource

	// KnownBound is an optimal makespan supplied by the instance file
	// (0 when absent). It is informational: callers may pass it to the
	// solver as a target to prove, it is never forced onto the model.
	KnownBound int
}

// NewInstance creates an empty instance.
func NewInstance() *Instance {
	return &Instance{}
}

// ActivityByID finds an activity by identifier, nil if absent.
// IDs are 1-based and dense, so this is an index lookup.
func (inst *Instance) ActivityByID(id ActivityID) *Activity {
	i := int(id) - 1
	if i < 0 || i >= len(inst.Activities) {
		return nil
	}
	return inst.Activities[i]
}

// Horizon returns the sum of all durations, an upper bound on the
// makespan of any schedule a serial generation scheme can produce.
func (inst *Instance) Horizon() int {
	h := 0
	for _, a := range inst.Activities {
		h += a.Duration
	}
	return h
}

// Validate checks instance consistency: at least one activity, demand
// vectors matching the resource count, non-negative durations and
// demands, successor IDs in range, and positive capacities.
func (inst *Instance) Validate() error {
	if len(inst.Activities) == 0 {
		return fmt.Errorf("instance has no activities")
	}
	for i, r := range inst.Resources {
		if r.Capacity <= 0 {
			return fmt.Errorf("resource %d: capacity must be positive, got %d", i, r.Capacity)
		}
	}
	for i, a := range inst.Activities {
		if a == nil {
			return fmt.Errorf("activity %d is nil", i+1)
		}
		if a.ID != ActivityID(i+1) {
			return fmt.Errorf("activity %d: ID %d out of sequence", i+1, a.ID)
		}
		if a.Duration < 0 {
			return fmt.Errorf("activity %d: negative duration %d", a.ID, a.Duration)
		}
		if len(a.Demands) != len(inst.Resources) {
			return fmt.Errorf("activity %d: %d demands for %d resources",
				a.ID, len(a.Demands), len(inst.Resources))
		}
		for r, d := range a.Demands {
			if d < 0 {
				return fmt.Errorf("activity %d: negative demand %d on resource %d", a.ID, d, r)
			}
		}
		for _, s := range a.Successors {
			if inst.ActivityByID(s) == nil {
				return fmt.Errorf("activity %d: successor %d does not exist", a.ID, s)
			}
		}
	}
	return nil
}

// CheckDemands verifies that every activity fits the capacities on its
// own. An activity whose demand exceeds a capacity makes the whole
// instance infeasible regardless of ordering.
func (inst *Instance) CheckDemands() error {
	for _, a := range inst.Activities {
		if a.Duration == 0 {
			continue
		}
		for r, d := range a.Demands {
			if d > inst.Resources[r].Capacity {
				return fmt.Errorf("activity %d demands %d of resource %d (capacity %d): %w",
					a.ID, d, r, inst.Resources[r].Capacity, ErrInfeasible)
			}
		}
	}
	return nil
}

// TotalEnergy returns the summed duration*demand over all activities for
// the given resource index.
func (inst *Instance) TotalEnergy(resource int) int {
	e := 0
	for _, a := range inst.Activities {
		e += a.Energy(resource)
	}
	return e
}
