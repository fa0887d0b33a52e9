package pathgen

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/etchsim/internal/command"
	"github.com/san-kum/etchsim/internal/vmath"
)

func inside(t *testing.T, f *command.File) {
	t.Helper()
	for i, p := range f.Targets() {
		if p.X < 0 || p.Y < 0 || p.X > f.EtchWidth || p.Y > f.EtchHeight {
			t.Fatalf("command %d leaves the board: %v", i, p)
		}
	}
}

func TestPolarDefault(t *testing.T) {
	f, err := Polar(DefaultBoard(), DefaultRose, 0.01)
	if err != nil {
		t.Fatalf("polar: %v", err)
	}

	if len(f.Commands) != 629 {
		t.Errorf("expected 629 commands, got %d", len(f.Commands))
	}
	if math.Abs(f.StartX-(1+0.5/1.5)) > 1e-12 || f.StartY != 1 {
		t.Errorf("unexpected start (%v, %v)", f.StartX, f.StartY)
	}
	if f.PointerRadius != 0.0025 || f.EtchWidth != 2 || f.EtchHeight != 2 {
		t.Errorf("unexpected board %+v", f)
	}
	if f.Start().Dist(f.Targets()[0]) > 1e-12 {
		t.Error("first command should sit on the start point")
	}
	inside(t, f)
}

func TestSpiral(t *testing.T) {
	f, err := Spiral(DefaultBoard(), 3, 0.9, 0.05)
	if err != nil {
		t.Fatalf("spiral: %v", err)
	}
	if f.Start() != vmath.V(1, 1) {
		t.Errorf("spiral should start at the center, got %v", f.Start())
	}

	prev := 0.0
	for i, p := range f.Targets() {
		r := p.Dist(vmath.V(1, 1))
		if r < prev-1e-12 {
			t.Fatalf("radius shrinks at command %d", i)
		}
		prev = r
	}
	if prev > 0.9+1e-9 {
		t.Errorf("spiral overshoots: %v", prev)
	}
	inside(t, f)
}

func TestPolygon(t *testing.T) {
	f, err := Polygon(DefaultBoard(), 4, 0.5, 0)
	if err != nil {
		t.Fatalf("polygon: %v", err)
	}

	want := []vmath.Vec2{vmath.V(1, 1.5), vmath.V(0.5, 1), vmath.V(1, 0.5), vmath.V(1.5, 1)}
	got := f.Targets()
	if len(got) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Dist(want[i]) > 1e-12 {
			t.Errorf("vertex %d = %v, want %v", i, got[i], want[i])
		}
	}
	if f.Start().Dist(vmath.V(1.5, 1)) > 1e-12 {
		t.Errorf("unexpected start %v", f.Start())
	}
}

func TestGeneratorErrors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (*command.File, error)
	}{
		{"polar zero step", func() (*command.File, error) { return Polar(DefaultBoard(), DefaultRose, 0) }},
		{"spiral no turns", func() (*command.File, error) { return Spiral(DefaultBoard(), 0, 1, 0.1) }},
		{"polygon two sides", func() (*command.File, error) { return Polygon(DefaultBoard(), 2, 1, 0) }},
		{"polygon no radius", func() (*command.File, error) { return Polygon(DefaultBoard(), 5, 0, 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.fn(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestBadBoard(t *testing.T) {
	b := Board{Extent: vmath.V(2, 2), Radius: 0}
	if _, err := Polygon(b, 3, 0.5, 0); !errors.Is(err, command.ErrInvalidFile) {
		t.Errorf("expected ErrInvalidFile, got %v", err)
	}
}
