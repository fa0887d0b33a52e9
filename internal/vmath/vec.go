// Package vmath provides the small value types shared by the etch engine:
// continuous 2D vectors ([Vec2]) and discrete grid indices ([Index2]).
//
// All operations return new values; nothing mutates its receiver.
package vmath

import "math"

// Vec2 is a point or displacement in continuous (real) space.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(w Vec2) Vec2 { return Vec2{v.X + w.X, v.Y + w.Y} }
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2{v.X - w.X, v.Y - w.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(w Vec2) float64 { return v.X*w.X + v.Y*w.Y }

func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Dist returns the Euclidean distance between v and w.
func (v Vec2) Dist(w Vec2) float64 { return v.Sub(w).Len() }

// Normalize returns the unit vector along v, or the zero vector when v has
// zero length.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// WithLen returns v rescaled to length l. A zero vector stays zero.
func (v Vec2) WithLen(l float64) Vec2 { return v.Normalize().Scale(l) }

// Cross returns the z component of the 3D cross product of v and w. It is
// positive when w lies counter-clockwise of v.
func (v Vec2) Cross(w Vec2) float64 { return v.X*w.Y - v.Y*w.X }

// Mid returns the unweighted average of v and w.
func (v Vec2) Mid(w Vec2) Vec2 { return v.Add(w).Scale(0.5) }

// Min returns the componentwise minimum.
func (v Vec2) Min(w Vec2) Vec2 { return Vec2{math.Min(v.X, w.X), math.Min(v.Y, w.Y)} }

// Max returns the componentwise maximum.
func (v Vec2) Max(w Vec2) Vec2 { return Vec2{math.Max(v.X, w.X), math.Max(v.Y, w.Y)} }

// Index2 identifies a grid cell.
type Index2 struct {
	X, Y int
}

func I(x, y int) Index2 { return Index2{X: x, Y: y} }

// Min returns the componentwise minimum.
func (a Index2) Min(b Index2) Index2 { return Index2{min(a.X, b.X), min(a.Y, b.Y)} }

// Max returns the componentwise maximum.
func (a Index2) Max(b Index2) Index2 { return Index2{max(a.X, b.X), max(a.Y, b.Y)} }

// Rect is an inclusive rectangle of grid indices. The zero value is not
// empty; use [EmptyRect] for an accumulator.
type Rect struct {
	Min, Max Index2
}

// EmptyRect returns a rectangle that contains nothing and grows to fit the
// first index passed to Extend.
func EmptyRect() Rect {
	return Rect{
		Min: Index2{math.MaxInt, math.MaxInt},
		Max: Index2{math.MinInt, math.MinInt},
	}
}

func (r Rect) Empty() bool { return r.Min.X > r.Max.X || r.Min.Y > r.Max.Y }

// Extend grows r to include p.
func (r Rect) Extend(p Index2) Rect { return Rect{r.Min.Min(p), r.Max.Max(p)} }

func (r Rect) Contains(p Index2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}
