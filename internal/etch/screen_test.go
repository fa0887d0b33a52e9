package etch

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/etchsim/internal/vmath"
)

func smallParams() Params {
	return Params{
		Thickness: 0.01,
		Extent:    vmath.V(2, 2),
		Density:   100,
		Start:     vmath.V(1, 1),
		Radius:    0.05,
	}
}

func newSmall(t *testing.T) *Screen {
	t.Helper()
	s, err := New(smallParams())
	if err != nil {
		t.Fatalf("new screen: %v", err)
	}
	return s
}

func TestNew_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
	}{
		{"zero width", func(p *Params) { p.Extent.X = 0 }},
		{"negative height", func(p *Params) { p.Extent.Y = -1 }},
		{"NaN extent", func(p *Params) { p.Extent.X = math.NaN() }},
		{"zero radius", func(p *Params) { p.Radius = 0 }},
		{"zero density", func(p *Params) { p.Density = 0 }},
		{"negative thickness", func(p *Params) { p.Thickness = -0.1 }},
		{"infinite start", func(p *Params) { p.Start.X = math.Inf(1) }},
		{"single column", func(p *Params) { p.Density = 0.5 }},
		{"too many cells", func(p *Params) { p.Density = 1e6 }},
		{"attenuation one", func(p *Params) { p.Tuning = DefaultTuning(); p.Tuning.DragAttenuation = 1 }},
		{"friction above one", func(p *Params) { p.Tuning = DefaultTuning(); p.Tuning.PointerFriction = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := smallParams()
			tt.mutate(&p)
			_, err := New(p)
			if !errors.Is(err, ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestNew_GridAndFootprint(t *testing.T) {
	s := newSmall(t)

	if got := s.Size(); got != vmath.I(200, 200) {
		t.Fatalf("size = %v, want 200x200", got)
	}
	if s.Pointer() != vmath.V(1, 1) {
		t.Errorf("pointer = %v", s.Pointer())
	}
	if s.Params().Tuning != DefaultTuning() {
		t.Errorf("zero tuning should select defaults, got %+v", s.Params().Tuning)
	}

	for x := 0; x < s.nx; x++ {
		for y := 0; y < s.ny; y++ {
			d := s.ToReal(vmath.I(x, y)).Dist(vmath.V(1, 1))
			want := 0.01
			if d <= 0.05 {
				want = 0
			}
			if s.cols[x][y] != want {
				t.Fatalf("cell (%d,%d) at distance %g = %g, want %g", x, y, d, s.cols[x][y], want)
			}
		}
	}
}

func TestMapping(t *testing.T) {
	s := newSmall(t)
	max := vmath.I(199, 199)

	if got := s.ToReal(vmath.I(0, 0)); got != vmath.V(0, 0) {
		t.Errorf("ToReal(0,0) = %v", got)
	}
	if got := s.ToReal(max); got != vmath.V(2, 2) {
		t.Errorf("ToReal(max) = %v", got)
	}
	if got := s.CellWidth(); math.Abs(got-2.0/199) > 1e-15 {
		t.Errorf("CellWidth = %v", got)
	}

	p := vmath.V(1.003, 0.5)
	lo, hi := s.LowerLeft(p), s.UpperRight(p)
	if s.ToReal(lo).X > p.X || s.ToReal(hi).X < p.X || s.ToReal(lo).Y > p.Y || s.ToReal(hi).Y < p.Y {
		t.Errorf("bounds %v..%v do not bracket %v", lo, hi, p)
	}
	if hi.X-lo.X != 1 {
		t.Errorf("expected adjacent x bounds, got %v..%v", lo, hi)
	}

	tests := []struct {
		in, want vmath.Index2
	}{
		{vmath.I(-5, 3), vmath.I(0, 3)},
		{vmath.I(250, -1), vmath.I(199, 0)},
		{vmath.I(12, 13), vmath.I(12, 13)},
	}
	for _, tt := range tests {
		if got := s.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	far := s.Clamp(s.UpperRight(vmath.V(1e300, -1e300)))
	if far != vmath.I(199, 0) {
		t.Errorf("far clamp = %v", far)
	}
}

func TestDiskQuery_Coverage(t *testing.T) {
	p := smallParams()
	p.Start = vmath.V(-5, -5)
	s, err := New(p)
	if err != nil {
		t.Fatal(err)
	}

	center := vmath.V(1, 1)
	radius := 0.05
	diag := math.Hypot(s.cellW, s.cellH)

	hits := s.DiskQuery(center, radius, nil)
	if len(hits) == 0 {
		t.Fatal("expected cells in disk")
	}

	seen := make(map[vmath.Index2]bool)
	for _, h := range hits {
		if seen[h.Index] {
			t.Fatalf("duplicate cell %v", h.Index)
		}
		seen[h.Index] = true

		d := s.ToReal(h.Index).Dist(center)
		if d > radius+diag/2 {
			t.Errorf("cell %v at %g outside reach", h.Index, d)
		}
		if h.Frac < 0 || h.Frac > 1 {
			t.Errorf("coverage %g out of [0,1]", h.Frac)
		}
		if d <= radius-diag && h.Frac != 1 {
			t.Errorf("inner cell %v has coverage %g", h.Index, h.Frac)
		}
	}

	// Every cell within reach must have been reported.
	for x := 0; x < s.nx; x++ {
		for y := 0; y < s.ny; y++ {
			i := vmath.I(x, y)
			if s.ToReal(i).Dist(center) <= radius+diag/2 && !seen[i] {
				t.Errorf("cell %v within reach missing", i)
			}
		}
	}
}

func TestDiskQuery_SkipsEmptyCells(t *testing.T) {
	s := newSmall(t)
	for _, h := range s.DiskQuery(vmath.V(1, 1), 0.08, nil) {
		if s.Mass(h.Index) <= 0 {
			t.Errorf("empty cell %v reported", h.Index)
		}
	}
	if hits := s.DiskQuery(vmath.V(1, 1), 0.02, nil); len(hits) != 0 {
		t.Errorf("expected nothing inside the initial footprint, got %d cells", len(hits))
	}
}

func TestDiskQuery_HintNeverDropsMass(t *testing.T) {
	s := newSmall(t)
	prev := s.Pointer()
	s.MoveTo(vmath.V(1.01, 1))

	// Put material back inside the hinted disk.
	for _, i := range []vmath.Index2{s.Nearest(prev), s.Nearest(prev.Add(vmath.V(0, 0.02))), s.Nearest(prev.Sub(vmath.V(0.01, 0.03)))} {
		s.cols[i.X][i.Y] = 0.5
	}

	cur := s.Pointer()
	plain := s.DiskQuery(cur, s.Radius(), nil)
	hinted := s.DiskQuery(cur, s.Radius(), &prev)
	if len(plain) != len(hinted) {
		t.Fatalf("hinted query returned %d cells, plain %d", len(hinted), len(plain))
	}
	for i := range plain {
		if plain[i] != hinted[i] {
			t.Fatalf("mismatch at %d: %v vs %v", i, plain[i], hinted[i])
		}
	}
}

func TestDiskQuery_NearBoundary(t *testing.T) {
	s := newSmall(t)
	for _, c := range []vmath.Vec2{vmath.V(0, 0), vmath.V(2, 2), vmath.V(-0.03, 1), vmath.V(1, 2.04), vmath.V(50, -50)} {
		for _, h := range s.DiskQuery(c, 0.1, nil) {
			if h.Index != s.Clamp(h.Index) {
				t.Errorf("out of range index %v for center %v", h.Index, c)
			}
		}
	}
}
