package vmath

import (
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(4, 6)

	if got := a.Add(b); got != V(5, 8) {
		t.Errorf("Add = %v", got)
	}
	if got := b.Sub(a); got != V(3, 4) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(3); got != V(3, 6) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 16 {
		t.Errorf("Dot = %v", got)
	}
	if got := b.Sub(a).Len(); got != 5 {
		t.Errorf("Len = %v", got)
	}
	if got := a.Dist(b); got != 5 {
		t.Errorf("Dist = %v", got)
	}
	if got := a.Mid(b); got != V(2.5, 4) {
		t.Errorf("Mid = %v", got)
	}
}

func TestVec2_ValueSemantics(t *testing.T) {
	a := V(1, 1)
	_ = a.Add(V(5, 5))
	_ = a.Scale(10)
	_ = a.Normalize()
	if a != V(1, 1) {
		t.Errorf("receiver mutated: %v", a)
	}
}

func TestVec2_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"zero", Vec2{}, Vec2{}},
		{"axis", V(0, 3), V(0, 1)},
		{"diagonal", V(3, 4), V(0.6, 0.8)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVec2_WithLen(t *testing.T) {
	if got := V(3, 4).WithLen(10); math.Abs(got.Len()-10) > 1e-12 {
		t.Errorf("WithLen length = %v", got.Len())
	}
	if got := (Vec2{}).WithLen(10); got != (Vec2{}) {
		t.Errorf("WithLen of zero = %v", got)
	}
}

func TestVec2_CrossAndBounds(t *testing.T) {
	if got := V(1, 0).Cross(V(0, 1)); got != 1 {
		t.Errorf("Cross = %v", got)
	}
	if got := V(0, 1).Cross(V(1, 0)); got != -1 {
		t.Errorf("Cross reversed = %v", got)
	}
	if got := V(2, 2).Cross(V(-3, -3)); got != 0 {
		t.Errorf("Cross of parallel = %v", got)
	}
	if got := V(3, 4).LenSq(); got != 25 {
		t.Errorf("LenSq = %v", got)
	}
	if got := V(1, 5).Min(V(2, -1)); got != V(1, -1) {
		t.Errorf("Min = %v", got)
	}
	if got := V(1, 5).Max(V(2, -1)); got != V(2, 5) {
		t.Errorf("Max = %v", got)
	}
}

func TestIndex2(t *testing.T) {
	a := I(2, 7)
	b := I(5, 3)

	if got := a.Min(b); got != I(2, 3) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); got != I(5, 7) {
		t.Errorf("Max = %v", got)
	}
}

func TestRect(t *testing.T) {
	r := EmptyRect()
	if !r.Empty() {
		t.Fatal("EmptyRect should be empty")
	}

	r = r.Extend(I(4, 4)).Extend(I(1, 9))
	if r.Empty() {
		t.Fatal("extended rect should not be empty")
	}
	if r.Min != I(1, 4) || r.Max != I(4, 9) {
		t.Errorf("rect = %+v", r)
	}
	if !r.Contains(I(2, 5)) || r.Contains(I(0, 5)) {
		t.Error("Contains mismatch")
	}
}
