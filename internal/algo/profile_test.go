package algo

import (
	"testing"

	"github.com/NguyenTanUET/rcpsp-research/internal/core"
)

func TestProfile_PlaceRemove(t *testing.T) {
	inst := buildInstance([]int{2},
		taskSpec{dur: 3, demands: []int{2}},
		taskSpec{dur: 2, demands: []int{1}},
	)
	p := NewProfile(inst, 10)
	a := inst.Activities[0]

	if !p.CanPlace(a, 0) {
		t.Fatal("empty profile should accept the activity")
	}
	p.Place(a, 0)

	b := inst.Activities[1]
	if p.CanPlace(b, 0) {
		t.Error("resource is saturated over [0,3), CanPlace should refuse")
	}
	if !p.CanPlace(b, 3) {
		t.Error("CanPlace should accept a start after the saturation")
	}

	p.Remove(a, 0)
	for tu := 0; tu < 10; tu++ {
		if got := p.Usage(0, tu); got != 0 {
			t.Fatalf("usage at %d = %d after remove, want 0", tu, got)
		}
	}
}

func TestProfile_EarliestFeasibleStart(t *testing.T) {
	inst := buildInstance([]int{2},
		taskSpec{dur: 3, demands: []int{2}},
		taskSpec{dur: 2, demands: []int{1}},
		taskSpec{dur: 2, demands: []int{2}},
		taskSpec{dur: 3, demands: []int{2}},
	)
	p := NewProfile(inst, 20)
	p.Place(inst.Activities[0], 0) // saturates [0,3)
	p.Place(inst.Activities[2], 5) // saturates [5,7)

	t.Run("skips past saturation", func(t *testing.T) {
		if got := p.EarliestFeasibleStart(inst.Activities[1], 0); got != 3 {
			t.Errorf("start = %d, want 3", got)
		}
	})

	t.Run("gap too small forces a later start", func(t *testing.T) {
		// Duration 3 does not fit the [3,5) gap, so the scan must land
		// after the second block.
		if got := p.EarliestFeasibleStart(inst.Activities[3], 0); got != 7 {
			t.Errorf("start = %d, want 7", got)
		}
	})

	t.Run("respects the floor", func(t *testing.T) {
		if got := p.EarliestFeasibleStart(inst.Activities[1], 8); got != 8 {
			t.Errorf("start = %d, want 8", got)
		}
	})

	t.Run("zero duration starts at the floor", func(t *testing.T) {
		dummy := &core.Activity{ID: 5, Duration: 0, Demands: []int{2}}
		if got := p.EarliestFeasibleStart(dummy, 1); got != 1 {
			t.Errorf("start = %d, want 1", got)
		}
	})

	t.Run("nothing fits the horizon", func(t *testing.T) {
		tight := NewProfile(inst, 2)
		if got := tight.EarliestFeasibleStart(inst.Activities[0], 0); got != -1 {
			t.Errorf("start = %d, want -1", got)
		}
	})
}

func TestProfile_CloneIsIndependent(t *testing.T) {
	inst := buildInstance([]int{2},
		taskSpec{dur: 3, demands: []int{2}},
	)
	p := NewProfile(inst, 10)
	p.Place(inst.Activities[0], 0)

	c := p.Clone()
	c.Remove(inst.Activities[0], 0)

	if got := p.Usage(0, 1); got != 2 {
		t.Errorf("original usage at 1 = %d after clone mutation, want 2", got)
	}
	if got := c.Usage(0, 1); got != 0 {
		t.Errorf("clone usage at 1 = %d, want 0", got)
	}
}

func TestProfile_Reset(t *testing.T) {
	inst := buildInstance([]int{2},
		taskSpec{dur: 3, demands: []int{2}},
	)
	p := NewProfile(inst, 10)
	p.Place(inst.Activities[0], 4)
	p.Reset()
	if got := p.Usage(0, 5); got != 0 {
		t.Errorf("usage at 5 = %d after reset, want 0", got)
	}
}
