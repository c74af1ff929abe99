package core

import "fmt"

// Schedule maps activities to assigned start times.
type Schedule map[ActivityID]int

// Clone returns a copy of the schedule.
func (s Schedule) Clone() Schedule {
	c := make(Schedule, len(s))
	for id, t := range s {
		c[id] = t
	}
	return c
}

// Makespan returns the latest finish time over all scheduled activities.
func (s Schedule) Makespan(inst *Instance) int {
	maxC := 0
	for id, start := range s {
		a := inst.ActivityByID(id)
		if a == nil {
			continue
		}
		if c := start + a.Duration; c > maxC {
			maxC = c
		}
	}
	return maxC
}

// Validate checks that the schedule is complete, precedence-feasible and
// resource-feasible for the instance. Capacity violations wrap
// ErrCapacityExceeded.
func (s Schedule) Validate(inst *Instance) error {
	for _, a := range inst.Activities {
		start, ok := s[a.ID]
		if !ok {
			return fmt.Errorf("activity %d is unscheduled", a.ID)
		}
		if start < 0 {
			return fmt.Errorf("activity %d: negative start %d", a.ID, start)
		}
		for _, succ := range a.Successors {
			succStart, ok := s[succ]
			if !ok {
				return fmt.Errorf("activity %d is unscheduled", succ)
			}
			if succStart < start+a.Duration {
				return fmt.Errorf("activity %d starts at %d before predecessor %d finishes at %d",
					succ, succStart, a.ID, start+a.Duration)
			}
		}
	}

	horizon := s.Makespan(inst)
	for r, res := range inst.Resources {
		usage := make([]int, horizon)
		for _, a := range inst.Activities {
			d := a.Demands[r]
			if d == 0 {
				continue
			}
			start := s[a.ID]
			for t := start; t < start+a.Duration; t++ {
				usage[t] += d
				if usage[t] > res.Capacity {
					return fmt.Errorf("resource %d over capacity at time %d (%d > %d): %w",
						r, t, usage[t], res.Capacity, ErrCapacityExceeded)
				}
			}
		}
	}
	return nil
}
