// Package vis implements a Gio-based viewer for solved schedules: a Gantt
// panel of activity intervals and one load panel per resource showing
// cumulative usage against capacity.
package vis

import (
	"image/color"
	"sort"

	"github.com/NguyenTanUET/rcpsp-research/internal/core"
)

// Bar is one activity interval prepared for rendering.
type Bar struct {
	ID    core.ActivityID
	Start int
	End   int
	Row   int
}

// Load is one resource's usage curve.
type Load struct {
	Resource int
	Capacity int
	Usage    []int // one entry per time unit over [0, makespan)
}

// View is the render model derived from a solved instance. It is
// immutable once built.
type View struct {
	Instance *core.Instance
	Schedule core.Schedule
	Makespan int
	Bars     []Bar
	Loads    []Load
}

// NewView prepares the bars and load curves for a schedule. Dummy
// activities are skipped: they carry no duration or demand.
func NewView(inst *core.Instance, sched core.Schedule) *View {
	v := &View{
		Instance: inst,
		Schedule: sched,
		Makespan: sched.Makespan(inst),
	}

	for _, a := range inst.Activities {
		if a.IsDummy() {
			continue
		}
		start := sched[a.ID]
		v.Bars = append(v.Bars, Bar{ID: a.ID, Start: start, End: start + a.Duration})
	}
	sort.Slice(v.Bars, func(i, j int) bool {
		if v.Bars[i].Start != v.Bars[j].Start {
			return v.Bars[i].Start < v.Bars[j].Start
		}
		return v.Bars[i].ID < v.Bars[j].ID
	})
	for i := range v.Bars {
		v.Bars[i].Row = i
	}

	horizon := v.Makespan
	for r, res := range inst.Resources {
		load := Load{Resource: r, Capacity: res.Capacity, Usage: make([]int, horizon)}
		for _, a := range inst.Activities {
			d := a.Demands[r]
			if d == 0 {
				continue
			}
			start := sched[a.ID]
			for t := start; t < start+a.Duration && t < horizon; t++ {
				load.Usage[t] += d
			}
		}
		v.Loads = append(v.Loads, load)
	}
	return v
}

// Activity colors cycle through a small palette keyed by ID.
var palette = []color.NRGBA{
	{R: 100, G: 200, B: 255, A: 255},
	{R: 255, G: 150, B: 100, A: 255},
	{R: 150, G: 230, B: 140, A: 255},
	{R: 230, G: 140, B: 230, A: 255},
	{R: 255, G: 215, B: 120, A: 255},
	{R: 140, G: 160, B: 255, A: 255},
}

// BarColor returns the fill color for an activity bar.
func BarColor(id core.ActivityID) color.NRGBA {
	return palette[int(id)%len(palette)]
}
