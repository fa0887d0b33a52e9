package sim

import (
	"context"
	"sync"

	"github.com/san-kum/etchsim/internal/vmath"
)

// Job is one independent run of a batch.
type Job struct {
	Name    string
	Runner  *Runner
	Targets []vmath.Vec2
}

// Batch runs independent jobs concurrently, each on its own screen.
type Batch struct {
	jobs    []Job
	workers int
}

func NewBatch(workers int) *Batch {
	if workers < 1 {
		workers = 1
	}
	return &Batch{workers: workers}
}

func (b *Batch) Add(j Job) { b.jobs = append(b.jobs, j) }

// Run executes every job and returns results in job order. The first error,
// in job order, is returned alongside the results that did complete.
func (b *Batch) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(b.jobs))
	errs := make([]error, len(b.jobs))

	sem := make(chan struct{}, b.workers)
	var wg sync.WaitGroup
	for i := range b.jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			j := b.jobs[idx]
			j.Runner.SetLogger(j.Runner.logger.With("job", j.Name))
			results[idx], errs[idx] = j.Runner.Run(ctx, j.Targets, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
