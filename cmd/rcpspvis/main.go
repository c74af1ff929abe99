// Command rcpspvis solves an instance and opens a schedule viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/NguyenTanUET/rcpsp-research/internal/algo"
	"github.com/NguyenTanUET/rcpsp-research/internal/loader"
	"github.com/NguyenTanUET/rcpsp-research/internal/vis"
)

func main() {
	timeLimit := flag.Duration("time-limit", 10*time.Second, "solver wall-clock budget")
	workers := flag.Int("workers", 1, "parallel search workers")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: rcpspvis [flags] instance.data")
		os.Exit(2)
	}
	path := flag.Arg(0)

	inst, err := loader.Load(path)
	if err != nil {
		log.Fatal(err)
	}
	res, err := algo.Solve(context.Background(), inst, algo.Options{
		TimeLimit: *timeLimit,
		Workers:   *workers,
	})
	if err != nil {
		log.Fatal(err)
	}
	if res.Schedule == nil {
		log.Fatalf("no schedule found (%s)", res.Status)
	}
	fmt.Printf("%s: %s makespan=%d bound=%d nodes=%d\n",
		path, res.Status, res.Makespan, res.LowerBound, res.NodesExplored)

	view := vis.NewView(inst, res.Schedule)

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("RCPSP Schedule Viewer"),
			app.Size(unit.Dp(1200), unit.Dp(800)),
		)

		viewer := vis.NewApp(view, filepath.Base(path))
		if err := viewer.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
