package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/etchsim/internal/etch"
	"github.com/san-kum/etchsim/internal/vmath"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(1, 1) {
		t.Error("IsSet disagrees with Set")
	}

	c.Clear()
	if strings.TrimRight(c.String(), "\n") != "⠀⠀" {
		t.Errorf("expected blank canvas, got %q", c.String())
	}
}

func TestCanvasDrawGrid(t *testing.T) {
	// 4x8 cells map one to one onto a 2x2 canvas; only cell (0,0) is bare.
	grid := make([][]float64, 4)
	for x := range grid {
		grid[x] = make([]float64, 8)
		for y := range grid[x] {
			grid[x][y] = 0.01
		}
	}
	grid[0][0] = 0

	c := NewCanvas(2, 2)
	c.DrawGrid(grid, 0.005)

	w, h := c.Dots()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			want := x == 0 && y == h-1
			if c.IsSet(x, y) != want {
				t.Errorf("dot (%d,%d): set=%v, want %v", x, y, c.IsSet(x, y), want)
			}
		}
	}
}

func TestCanvasDrawPath(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawPath([]vmath.Vec2{vmath.V(0, 0), vmath.V(1, 0)}, vmath.V(1, 1))

	w, h := c.Dots()
	for x := 0; x < w; x++ {
		if !c.IsSet(x, h-1) {
			t.Fatalf("bottom row dot %d not drawn", x)
		}
	}
	if c.IsSet(0, 0) {
		t.Error("top row should stay empty")
	}
}

func TestProfile(t *testing.T) {
	grid := [][]float64{{0.01, 0.02}, {0, 0.01}, {0.02, 0.03}}

	out, err := Profile(grid, 0, 30, 5)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if !strings.Contains(out, "mass along row 0") {
		t.Errorf("missing caption:\n%s", out)
	}

	if _, err := Profile(grid, 2, 30, 5); err == nil {
		t.Error("expected error for row out of range")
	}
	if _, err := Profile(nil, 0, 30, 5); err == nil {
		t.Error("expected error for empty grid")
	}
}

func TestDownsample(t *testing.T) {
	got := downsample([]float64{1, 3, 5, 7, 9, 11}, 3)
	want := []float64{2, 6, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
	if len(downsample([]float64{1, 2}, 10)) != 2 {
		t.Error("short input should pass through")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 1}, 10); got != "▁█" {
		t.Errorf("got %q", got)
	}
	if got := []rune(Sparkline([]float64{1, 2, 3, 4, 5}, 3)); len(got) != 3 {
		t.Errorf("expected 3 runes, got %d", len(got))
	}
}

func TestLiveModelAdvance(t *testing.T) {
	s, err := etch.New(etch.Params{
		Thickness: 0.01,
		Extent:    vmath.V(1, 1),
		Density:   60,
		Start:     vmath.V(0.5, 0.5),
		Radius:    0.04,
	})
	if err != nil {
		t.Fatal(err)
	}
	targets := []vmath.Vec2{vmath.V(0.6, 0.5), vmath.V(0.6, 0.6), vmath.V(0.5, 0.6)}

	m := NewLiveModel(s, targets, "square")
	m.Init()

	if n := m.Advance(2); n != 2 {
		t.Errorf("expected 2 commands, got %d", n)
	}
	if m.Done() {
		t.Error("replay should not be done yet")
	}
	if n := m.Advance(5); n != 1 || !m.Done() {
		t.Errorf("expected the last command to finish the replay, ran %d", n)
	}

	view := m.View()
	for _, want := range []string{"SQUARE", "FINISHED", "3 / 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}); cmd == nil {
		t.Error("expected quit command")
	}
}

func TestLiveModelSpeedIsCapped(t *testing.T) {
	s, err := etch.New(etch.Params{
		Thickness: 0.01,
		Extent:    vmath.V(1, 1),
		Density:   20,
		Start:     vmath.V(0.5, 0.5),
		Radius:    0.04,
	})
	if err != nil {
		t.Fatal(err)
	}
	targets := []vmath.Vec2{vmath.V(0.6, 0.5), vmath.V(0.6, 0.6), vmath.V(0.5, 0.6), vmath.V(0.5, 0.5), vmath.V(0.55, 0.55)}
	m := NewLiveModel(s, targets, "speed")

	faster := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}}
	for range 100 {
		m.Update(faster)
	}
	if m.perFrame != len(targets) {
		t.Errorf("perFrame = %d after speeding up, want %d", m.perFrame, len(targets))
	}

	slower := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'-'}}
	for range 100 {
		m.Update(slower)
	}
	if m.perFrame != 1 {
		t.Errorf("perFrame = %d after slowing down, want 1", m.perFrame)
	}
}
