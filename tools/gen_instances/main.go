// Package main generates deterministic random RCPSP instances in the
// flat .data format used by the solver.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

// Params defines parameters for instance generation.
type Params struct {
	Seed        int64
	Tasks       int // real activities, dummies added on top
	Resources   int
	MaxDuration int
	MaxDemand   int
	Capacity    int
	EdgeProb    float64 // probability of a precedence edge between ordered pairs
}

func main() {
	var p Params
	count := flag.Int("count", 5, "number of instances to generate")
	outDir := flag.String("out", "data", "output directory")
	flag.Int64Var(&p.Seed, "seed", 42, "random seed")
	flag.IntVar(&p.Tasks, "tasks", 30, "activities per instance (excluding dummies)")
	flag.IntVar(&p.Resources, "resources", 4, "renewable resources")
	flag.IntVar(&p.MaxDuration, "max-duration", 10, "maximum activity duration")
	flag.IntVar(&p.MaxDemand, "max-demand", 6, "maximum per-resource demand")
	flag.IntVar(&p.Capacity, "capacity", 10, "capacity of every resource")
	flag.Float64Var(&p.EdgeProb, "edge-prob", 0.12, "precedence edge probability")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(p.Seed))
	for i := 0; i < *count; i++ {
		name := fmt.Sprintf("rcpsp_%dx%d_%03d.data", p.Tasks, p.Resources, i)
		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, []byte(generate(&p, rng)), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(path)
	}
}

// generate emits one instance: dummy start (task 1), p.Tasks real
// activities, dummy end (task N). Every real activity is reachable from
// the start and reaches the end, so the precedence graph has the
// conventional single source and sink.
func generate(p *Params, rng *rand.Rand) string {
	n := p.Tasks + 2
	durations := make([]int, n)
	demands := make([][]int, n)
	succ := make([][]int, n)
	for i := range demands {
		demands[i] = make([]int, p.Resources)
	}

	for i := 1; i <= p.Tasks; i++ {
		durations[i] = 1 + rng.Intn(p.MaxDuration)
		for r := 0; r < p.Resources; r++ {
			demands[i][r] = rng.Intn(p.MaxDemand + 1)
		}
	}

	// Forward edges between real activities keep the graph acyclic.
	hasPred := make([]bool, n)
	hasSucc := make([]bool, n)
	for i := 1; i <= p.Tasks; i++ {
		for j := i + 1; j <= p.Tasks; j++ {
			if rng.Float64() < p.EdgeProb {
				succ[i] = append(succ[i], j+1) // 1-based task numbers
				hasPred[j] = true
				hasSucc[i] = true
			}
		}
	}

	// Tie roots to the dummy start and sinks to the dummy end.
	for i := 1; i <= p.Tasks; i++ {
		if !hasPred[i] {
			succ[0] = append(succ[0], i+1)
		}
		if !hasSucc[i] {
			succ[i] = append(succ[i], n)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d %d\n", n, p.Resources)
	for r := 0; r < p.Resources; r++ {
		if r > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", p.Capacity)
	}
	b.WriteByte('\n')

	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d", durations[i])
		for r := 0; r < p.Resources; r++ {
			fmt.Fprintf(&b, " %d", demands[i][r])
		}
		fmt.Fprintf(&b, " %d", len(succ[i]))
		for _, s := range succ[i] {
			fmt.Fprintf(&b, " %d", s)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
