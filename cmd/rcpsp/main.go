// Command rcpsp solves resource-constrained project scheduling instances.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/NguyenTanUET/rcpsp-research/internal/algo"
	"github.com/NguyenTanUET/rcpsp-research/internal/config"
	"github.com/NguyenTanUET/rcpsp-research/internal/core"
	"github.com/NguyenTanUET/rcpsp-research/internal/loader"
	"github.com/NguyenTanUET/rcpsp-research/internal/report"
)

var (
	flagConfig        string
	flagTimeLimit     time.Duration
	flagNodeLimit     uint64
	flagWorkers       int
	flagTarget        int
	flagUseKnownBound bool
	flagCSV           string
	flagBucket        string
	flagPrefix        string
	flagVerbose       bool
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
)

func main() {
	root := &cobra.Command{
		Use:   "rcpsp [instance.data ...]",
		Short: "Branch-and-bound solver for resource-constrained project scheduling",
		Long: `rcpsp computes start times for every activity of an RCPSP instance,
minimizing the makespan under precedence and renewable-resource
constraints. Instances use the flat .data format (header, capacities,
one line per task).`,
		RunE: run,
	}

	root.Flags().StringVarP(&flagConfig, "config", "c", "", "YAML run configuration")
	root.Flags().DurationVar(&flagTimeLimit, "time-limit", 0, "wall-clock budget per instance (0 = unbounded)")
	root.Flags().Uint64Var(&flagNodeLimit, "node-limit", 0, "search node budget per instance (0 = unbounded)")
	root.Flags().IntVarP(&flagWorkers, "workers", "w", 1, "parallel search workers")
	root.Flags().IntVar(&flagTarget, "target", 0, "target makespan to prove or refute (0 = minimize)")
	root.Flags().BoolVar(&flagUseKnownBound, "use-known-bound", false, "use the instance file's bound as the target")
	root.Flags().StringVar(&flagCSV, "csv", "", "write per-instance results to this CSV file")
	root.Flags().StringVar(&flagBucket, "bucket", "", "upload the results CSV to this Cloud Storage bucket")
	root.Flags().StringVar(&flagPrefix, "prefix", "results/", "object name prefix for the upload")
	root.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print the full schedule")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("error:"), err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	instances := args
	if flagConfig != "" {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		instances = append(cfg.Instances, instances...)
		if flagTimeLimit == 0 {
			flagTimeLimit = cfg.ParsedTimeLimit()
		}
		if flagNodeLimit == 0 {
			flagNodeLimit = cfg.NodeLimit
		}
		if flagWorkers <= 1 && cfg.Workers > 1 {
			flagWorkers = cfg.Workers
		}
		if !flagUseKnownBound {
			flagUseKnownBound = cfg.UseKnownBound
		}
		if flagCSV == "" {
			flagCSV = cfg.ResultsCSV
		}
		if flagBucket == "" {
			flagBucket = cfg.Bucket
		}
		if cfg.ObjectPrefix != "" {
			flagPrefix = cfg.ObjectPrefix
		}
	}
	if len(instances) == 0 {
		return errors.New("no instances given (pass .data files or --config)")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var rows []report.Row
	for _, path := range instances {
		inst, err := loader.Load(path)
		if err != nil {
			return err
		}

		opts := algo.Options{
			NodeLimit: flagNodeLimit,
			TimeLimit: flagTimeLimit,
			Workers:   flagWorkers,
		}
		if flagTarget > 0 {
			opts.TargetMakespan = flagTarget
		} else if flagUseKnownBound && inst.KnownBound > 0 {
			opts.TargetMakespan = inst.KnownBound
		}

		fmt.Printf("%s %s  %s\n", bold("solving"), path,
			dim(fmt.Sprintf("(%d activities, %d resources)", len(inst.Activities), len(inst.Resources))))

		res, err := algo.Solve(ctx, inst, opts)
		if err != nil {
			if errors.Is(err, core.ErrInfeasible) || errors.Is(err, core.ErrCyclicPrecedence) {
				fmt.Printf("  %s %v\n", red("infeasible:"), err)
				rows = append(rows, report.Row{Instance: path, Result: &algo.Result{Status: algo.StatusInfeasible}})
				continue
			}
			return err
		}

		printResult(inst, res)
		rows = append(rows, report.Row{Instance: path, Result: res})
	}

	if flagCSV != "" {
		if err := report.WriteCSV(flagCSV, rows); err != nil {
			return err
		}
		fmt.Printf("%s %s\n", bold("results:"), flagCSV)
		if flagBucket != "" {
			url, err := report.Upload(ctx, flagBucket, flagPrefix, flagCSV)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", bold("uploaded:"), url)
		}
	}
	return nil
}

func printResult(inst *core.Instance, res *algo.Result) {
	status := res.Status.String()
	switch res.Status {
	case algo.StatusOptimal:
		status = green(status)
	case algo.StatusFeasibleBound:
		status = yellow(status)
	default:
		status = red(status)
	}

	if res.Schedule != nil {
		fmt.Printf("  %s  makespan=%d  bound=%d  nodes=%d  %s\n",
			status, res.Makespan, res.LowerBound, res.NodesExplored, dim(res.Elapsed.String()))
	} else {
		fmt.Printf("  %s  bound=%d  nodes=%d  %s\n",
			status, res.LowerBound, res.NodesExplored, dim(res.Elapsed.String()))
	}

	if flagVerbose && res.Schedule != nil {
		for _, a := range inst.Activities {
			start := res.Schedule[a.ID]
			fmt.Printf("    T%-4d start=%-5d end=%d\n", a.ID, start, start+a.Duration)
		}
	}
}
