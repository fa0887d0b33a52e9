// Package sim replays a command sequence on an etch screen, observing
// metrics along the way.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/etchsim/internal/etch"
	"github.com/san-kum/etchsim/internal/vmath"
)

type Runner struct {
	screen  *etch.Screen
	metrics []Metric
	logger  *slog.Logger
	sample  Sample
}

func New(screen *etch.Screen) *Runner {
	return &Runner{
		screen:  screen,
		metrics: make([]Metric, 0),
		logger:  slog.Default(),
	}
}

func (r *Runner) AddMetric(m Metric)       { r.metrics = append(r.metrics, m) }
func (r *Runner) SetLogger(l *slog.Logger) { r.logger = l }
func (r *Runner) Screen() *etch.Screen     { return r.screen }

// Run moves the stylus through targets in order. Cancellation is checked
// between commands; a cancelled run returns the partial result together
// with the context error.
func (r *Runner) Run(ctx context.Context, targets []vmath.Vec2, cfg Config) (*Result, error) {
	if cfg.SampleEvery < 0 {
		return nil, fmt.Errorf("sample interval must not be negative, got %d", cfg.SampleEvery)
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	start := time.Now()
	total := len(targets)
	stepsBefore := r.screen.Steps()
	r.observe(0, total)

	var runErr error
	done := 0
	for i, target := range targets {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		n := r.screen.MoveTo(target)
		done = i + 1
		r.logger.Debug("command", "index", done, "total", total, "steps", n, "target", target)
		if cfg.SampleEvery > 0 && done%cfg.SampleEvery == 0 && done != total {
			r.observe(done, total)
			r.logger.Info("progress", "command", done, "total", total, "steps", r.screen.Steps()-stepsBefore)
		}
	}
	if done > 0 {
		r.observe(done, total)
	}

	res := &Result{
		Grid:     r.screen.Grid(),
		Pointer:  r.screen.Pointer(),
		Steps:    r.screen.Steps() - stepsBefore,
		Commands: done,
		Metrics:  make(map[string]float64, len(r.metrics)),
		Elapsed:  time.Since(start),
	}
	for _, m := range r.metrics {
		res.Metrics[m.Name()] = m.Value()
	}

	r.logger.Info("run finished",
		"commands", res.Commands,
		"steps", res.Steps,
		"elapsed", res.Elapsed.Round(time.Millisecond),
	)
	return res, runErr
}

func (r *Runner) observe(command, total int) {
	if len(r.metrics) == 0 {
		return
	}
	s := &r.sample
	s.Command = command
	s.Total = total
	s.Steps = r.screen.Steps()
	s.Pointer = r.screen.Pointer()
	s.Size = r.screen.Size()
	s.Thickness = r.screen.Thickness()
	s.Cells = r.screen.Snapshot(s.Cells)
	for _, m := range r.metrics {
		m.Observe(s)
	}
}
