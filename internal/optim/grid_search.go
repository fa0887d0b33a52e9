// Package optim sweeps displacement tuning parameters over a grid of values
// and ranks the runs by a metric.
package optim

import (
	"context"
	"fmt"
	"maps"
	"sort"

	"github.com/san-kum/etchsim/internal/sim"
	"github.com/san-kum/etchsim/internal/vmath"
)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64, workers int) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d parameters but %d value ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("parameter %s has no values", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges, workers: workers}, nil
}

// Trial is one point of the grid and the run it produced.
type Trial struct {
	Params map[string]float64
	Value  float64
	Result *sim.Result
}

// Builder prepares a runner, on its own screen, for one parameter set.
type Builder func(params map[string]float64) (*sim.Runner, []vmath.Vec2, error)

// Combinations enumerates the grid with the last parameter varying fastest.
func (g *GridSearch) Combinations() []map[string]float64 {
	var out []map[string]float64
	g.collect(0, make(map[string]float64), &out)
	return out
}

func (g *GridSearch) collect(depth int, current map[string]float64, out *[]map[string]float64) {
	if depth == len(g.paramNames) {
		*out = append(*out, maps.Clone(current))
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		g.collect(depth+1, current, out)
	}
	delete(current, paramName)
}

// Search runs every combination concurrently and returns the trials sorted
// by the named metric, smallest first.
func (g *GridSearch) Search(ctx context.Context, build Builder, metricName string) ([]Trial, error) {
	combos := g.Combinations()
	batch := sim.NewBatch(g.workers)
	for i, params := range combos {
		runner, targets, err := build(params)
		if err != nil {
			return nil, fmt.Errorf("trial %d %v: %w", i, params, err)
		}
		batch.Add(sim.Job{Name: fmt.Sprintf("trial-%d", i), Runner: runner, Targets: targets})
	}

	results, err := batch.Run(ctx, sim.Config{})
	if err != nil {
		return nil, err
	}

	trials := make([]Trial, len(combos))
	for i, res := range results {
		val, ok := res.Metrics[metricName]
		if !ok {
			return nil, fmt.Errorf("metric %q not observed", metricName)
		}
		trials[i] = Trial{Params: combos[i], Value: val, Result: res}
	}

	sort.SliceStable(trials, func(a, b int) bool { return trials[a].Value < trials[b].Value })
	return trials, nil
}
