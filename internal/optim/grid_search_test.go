package optim

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/san-kum/etchsim/internal/etch"
	"github.com/san-kum/etchsim/internal/sim"
	"github.com/san-kum/etchsim/internal/vmath"
)

type productMetric struct {
	value float64
}

func (p *productMetric) Name() string         { return "product" }
func (p *productMetric) Observe(s *sim.Sample) {}
func (p *productMetric) Value() float64       { return p.value }
func (p *productMetric) Reset()               {}

func TestCombinations(t *testing.T) {
	g, err := NewGridSearch([]string{"a", "b"}, [][]float64{{1, 2, 3}, {10, 20}}, 1)
	if err != nil {
		t.Fatal(err)
	}

	combos := g.Combinations()
	if len(combos) != 6 {
		t.Fatalf("expected 6 combinations, got %d", len(combos))
	}
	if combos[0]["a"] != 1 || combos[0]["b"] != 10 || combos[1]["b"] != 20 || combos[5]["a"] != 3 {
		t.Errorf("unexpected order %v", combos)
	}
}

func TestNewGridSearchErrors(t *testing.T) {
	if _, err := NewGridSearch([]string{"a"}, nil, 1); err == nil {
		t.Error("expected error for mismatched ranges")
	}
	if _, err := NewGridSearch([]string{"a"}, [][]float64{{}}, 1); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestSearchRanksTrials(t *testing.T) {
	g, err := NewGridSearch([]string{"a", "b"}, [][]float64{{3, 1, 2}, {2, 0.5}}, 2)
	if err != nil {
		t.Fatal(err)
	}

	build := func(params map[string]float64) (*sim.Runner, []vmath.Vec2, error) {
		s, err := etch.New(etch.Params{
			Thickness: 0.01,
			Extent:    vmath.V(1, 1),
			Density:   20,
			Start:     vmath.V(0.5, 0.5),
			Radius:    0.1,
		})
		if err != nil {
			return nil, nil, err
		}
		r := sim.New(s)
		r.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
		r.AddMetric(&productMetric{value: params["a"] * params["b"]})
		return r, []vmath.Vec2{vmath.V(0.6, 0.5)}, nil
	}

	trials, err := g.Search(context.Background(), build, "product")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(trials) != 6 {
		t.Fatalf("expected 6 trials, got %d", len(trials))
	}
	best := trials[0]
	if best.Value != 0.5 || best.Params["a"] != 1 || best.Params["b"] != 0.5 {
		t.Errorf("unexpected best trial %+v", best)
	}
	for i := 1; i < len(trials); i++ {
		if trials[i].Value < trials[i-1].Value {
			t.Fatalf("trials not sorted: %v then %v", trials[i-1].Value, trials[i].Value)
		}
	}

	if _, err := g.Search(context.Background(), build, "missing"); err == nil {
		t.Error("expected error for an unknown metric")
	}
}
