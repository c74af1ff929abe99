package vis

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
)

var (
	colorBackground = color.NRGBA{R: 25, G: 27, B: 30, A: 255}
	colorPanel      = color.NRGBA{R: 35, G: 38, B: 42, A: 255}
	colorGrid       = color.NRGBA{R: 60, G: 65, B: 70, A: 255}
	colorCapacity   = color.NRGBA{R: 255, G: 100, B: 100, A: 255}
	colorLoad       = color.NRGBA{R: 100, G: 180, B: 255, A: 180}
	colorText       = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
)

// App renders a solved schedule.
type App struct {
	view  *View
	theme *material.Theme
	title string
}

// NewApp creates a viewer for the given render model.
func NewApp(view *View, title string) *App {
	return &App{
		view:  view,
		theme: material.NewTheme(),
		title: title,
	}
}

// Run starts the application event loop.
func (a *App) Run(w *app.Window) error {
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			a.layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (a *App) layout(gtx layout.Context) {
	width := gtx.Constraints.Max.X
	height := gtx.Constraints.Max.Y
	paint.FillShape(gtx.Ops, colorBackground, clip.Rect(image.Rect(0, 0, width, height)).Op())

	headerH := 40
	a.drawHeader(gtx, width, headerH)

	// Split the remainder: Gantt on top, one load panel per resource
	// below, each a third of the Gantt's height at most.
	body := height - headerH
	loadH := 0
	if n := len(a.view.Loads); n > 0 {
		loadH = body / (n + 3)
	}
	ganttH := body - loadH*len(a.view.Loads)

	a.drawGantt(gtx, headerH, width, ganttH)
	for i := range a.view.Loads {
		top := headerH + ganttH + i*loadH
		a.drawLoad(gtx, &a.view.Loads[i], top, width, loadH)
	}
}

func (a *App) drawHeader(gtx layout.Context, width, height int) {
	paint.FillShape(gtx.Ops, colorPanel, clip.Rect(image.Rect(0, 0, width, height)).Op())
	label := material.Label(a.theme, unit.Sp(16),
		fmt.Sprintf("%s  makespan %d", a.title, a.view.Makespan))
	label.Color = colorText
	layout.Inset{Top: unit.Dp(8), Left: unit.Dp(12)}.Layout(gtx, label.Layout)
}

// drawGantt renders one row per activity, x mapped over [0, makespan].
func (a *App) drawGantt(gtx layout.Context, top, width, height int) {
	margin := 20
	if len(a.view.Bars) == 0 || a.view.Makespan == 0 {
		return
	}
	plotW := width - 2*margin
	rowH := (height - 2*margin) / len(a.view.Bars)
	if rowH < 2 {
		rowH = 2
	}
	scale := float64(plotW) / float64(a.view.Makespan)

	// Time grid.
	step := gridStep(a.view.Makespan)
	for t := 0; t <= a.view.Makespan; t += step {
		x := margin + int(float64(t)*scale)
		paint.FillShape(gtx.Ops, colorGrid,
			clip.Rect(image.Rect(x, top+margin, x+1, top+height-margin)).Op())
	}

	for _, bar := range a.view.Bars {
		y := top + margin + bar.Row*rowH
		x0 := margin + int(float64(bar.Start)*scale)
		x1 := margin + int(float64(bar.End)*scale)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		paint.FillShape(gtx.Ops, BarColor(bar.ID),
			clip.Rect(image.Rect(x0, y+1, x1, y+rowH-1)).Op())
	}
}

// drawLoad renders a resource's usage as filled bars under its capacity line.
func (a *App) drawLoad(gtx layout.Context, load *Load, top, width, height int) {
	margin := 20
	if a.view.Makespan == 0 || height <= 2*margin/3 {
		return
	}
	plotW := width - 2*margin
	plotH := height - 12
	scale := float64(plotW) / float64(a.view.Makespan)

	// Scale against the larger of capacity and peak usage so contract
	// violations, should they ever render, stick out above the line.
	peak := load.Capacity
	for _, u := range load.Usage {
		if u > peak {
			peak = u
		}
	}

	for t, u := range load.Usage {
		if u == 0 {
			continue
		}
		x0 := margin + int(float64(t)*scale)
		x1 := margin + int(float64(t+1)*scale)
		h := plotH * u / peak
		paint.FillShape(gtx.Ops, colorLoad,
			clip.Rect(image.Rect(x0, top+plotH-h, x1, top+plotH)).Op())
	}

	capY := top + plotH - plotH*load.Capacity/peak
	paint.FillShape(gtx.Ops, colorCapacity,
		clip.Rect(image.Rect(margin, capY, margin+plotW, capY+1)).Op())

	label := material.Label(a.theme, unit.Sp(11),
		fmt.Sprintf("R%d cap %d", load.Resource+1, load.Capacity))
	label.Color = colorText
	layout.Inset{Top: unit.Dp(float32(top) / gtx.Metric.PxPerDp), Left: unit.Dp(2)}.Layout(gtx, label.Layout)
}

func gridStep(makespan int) int {
	step := 1
	for makespan/step > 40 {
		step *= 5
	}
	return step
}
