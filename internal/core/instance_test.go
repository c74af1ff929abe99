package core

import (
	"errors"
	"testing"
)

func twoTaskInstance() *Instance {
	return &Instance{
		Activities: []*Activity{
			{ID: 1, Duration: 3, Demands: []int{1}, Successors: []ActivityID{2}},
			{ID: 2, Duration: 4, Demands: []int{2}},
		},
		Resources: []Resource{{ID: 0, Capacity: 2}},
	}
}

func TestValidate(t *testing.T) {
	if err := twoTaskInstance().Validate(); err != nil {
		t.Fatalf("valid instance rejected: %v", err)
	}

	t.Run("id out of sequence", func(t *testing.T) {
		inst := twoTaskInstance()
		inst.Activities[1].ID = 5
		if err := inst.Validate(); err == nil {
			t.Error("expected error for out-of-sequence ID")
		}
	})

	t.Run("demand vector mismatch", func(t *testing.T) {
		inst := twoTaskInstance()
		inst.Activities[0].Demands = []int{1, 1}
		if err := inst.Validate(); err == nil {
			t.Error("expected error for mismatched demand vector")
		}
	})

	t.Run("unknown successor", func(t *testing.T) {
		inst := twoTaskInstance()
		inst.Activities[0].Successors = []ActivityID{9}
		if err := inst.Validate(); err == nil {
			t.Error("expected error for unknown successor")
		}
	})

	t.Run("non-positive capacity", func(t *testing.T) {
		inst := twoTaskInstance()
		inst.Resources[0].Capacity = 0
		if err := inst.Validate(); err == nil {
			t.Error("expected error for zero capacity")
		}
	})
}

func TestCheckDemands(t *testing.T) {
	inst := twoTaskInstance()
	if err := inst.CheckDemands(); err != nil {
		t.Fatalf("fitting demands rejected: %v", err)
	}

	inst.Activities[1].Demands = []int{3}
	err := inst.CheckDemands()
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("expected ErrInfeasible, got %v", err)
	}

	// Zero-duration activities never occupy the profile, so an oversized
	// demand on one is harmless.
	inst.Activities[1].Duration = 0
	if err := inst.CheckDemands(); err != nil {
		t.Errorf("zero-duration activity rejected: %v", err)
	}
}

func TestHorizonAndEnergy(t *testing.T) {
	inst := twoTaskInstance()
	if got := inst.Horizon(); got != 7 {
		t.Errorf("Horizon() = %d, want 7", got)
	}
	if got := inst.TotalEnergy(0); got != 11 {
		t.Errorf("TotalEnergy(0) = %d, want 11", got)
	}
}

func TestScheduleMakespan(t *testing.T) {
	inst := twoTaskInstance()
	s := Schedule{1: 0, 2: 3}
	if got := s.Makespan(inst); got != 7 {
		t.Errorf("Makespan() = %d, want 7", got)
	}
}

func TestScheduleValidate(t *testing.T) {
	inst := twoTaskInstance()

	t.Run("valid", func(t *testing.T) {
		s := Schedule{1: 0, 2: 3}
		if err := s.Validate(inst); err != nil {
			t.Errorf("valid schedule rejected: %v", err)
		}
	})

	t.Run("precedence violation", func(t *testing.T) {
		s := Schedule{1: 0, 2: 1}
		if err := s.Validate(inst); err == nil {
			t.Error("expected precedence violation")
		}
	})

	t.Run("missing activity", func(t *testing.T) {
		s := Schedule{1: 0}
		if err := s.Validate(inst); err == nil {
			t.Error("expected error for unscheduled activity")
		}
	})

	t.Run("capacity violation", func(t *testing.T) {
		over := &Instance{
			Activities: []*Activity{
				{ID: 1, Duration: 3, Demands: []int{1}},
				{ID: 2, Duration: 4, Demands: []int{2}},
			},
			Resources: []Resource{{ID: 0, Capacity: 2}},
		}
		s := Schedule{1: 0, 2: 0}
		err := s.Validate(over)
		if !errors.Is(err, ErrCapacityExceeded) {
			t.Errorf("expected ErrCapacityExceeded, got %v", err)
		}
	})
}

func TestIsDummy(t *testing.T) {
	a := &Activity{ID: 1, Duration: 0, Demands: []int{0}}
	if !a.IsDummy() {
		t.Error("zero-duration zero-demand activity should be a dummy")
	}
	a.Duration = 2
	if a.IsDummy() {
		t.Error("activity with work should not be a dummy")
	}
}
