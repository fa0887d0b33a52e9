package etch

import (
	"math"

	"github.com/san-kum/etchsim/internal/vmath"
)

// Screen is the coated glass of the toy together with its stylus.
type Screen struct {
	params Params
	tuning Tuning

	nx, ny int
	cells  []float64   // column-major backing array
	cols   [][]float64 // cols[x][y] views into cells
	cellW  float64     // real distance between horizontally adjacent cells
	cellH  float64

	pointer vmath.Vec2
	steps   int

	observers []Observer
	scratch   scratch
}

// New builds a screen coated uniformly with p.Thickness, except for the
// stylus footprint around p.Start which starts empty.
func New(p Params) (*Screen, error) {
	p = p.withDefaults()
	if err := p.validate(); err != nil {
		return nil, err
	}

	size := p.GridSize()
	s := &Screen{
		params:  p,
		tuning:  p.Tuning,
		nx:      size.X,
		ny:      size.Y,
		cells:   make([]float64, size.X*size.Y),
		cols:    make([][]float64, size.X),
		cellW:   p.Extent.X / float64(size.X-1),
		cellH:   p.Extent.Y / float64(size.Y-1),
		pointer: p.Start,
		scratch: newScratch(),
	}
	for x := range s.cols {
		s.cols[x] = s.cells[x*s.ny : (x+1)*s.ny : (x+1)*s.ny]
	}
	for i := range s.cells {
		s.cells[i] = p.Thickness
	}

	s.clearDisk(p.Start, p.Radius)
	return s, nil
}

// clearDisk empties every cell whose center lies within radius of center.
func (s *Screen) clearDisk(center vmath.Vec2, radius float64) {
	r := vmath.V(radius, radius)
	lo := s.Clamp(s.LowerLeft(center.Sub(r)))
	hi := s.Clamp(s.UpperRight(center.Add(r)))
	for x := lo.X; x <= hi.X; x++ {
		for y := lo.Y; y <= hi.Y; y++ {
			if s.ToReal(vmath.I(x, y)).Dist(center) <= radius {
				s.cols[x][y] = 0
			}
		}
	}
}

// ToReal maps a grid index to its position in real space. Index (0,0) sits at
// the origin and the last index sits at the extent.
func (s *Screen) ToReal(i vmath.Index2) vmath.Vec2 {
	return vmath.V(
		float64(i.X)/float64(s.nx-1)*s.params.Extent.X,
		float64(i.Y)/float64(s.ny-1)*s.params.Extent.Y,
	)
}

// LowerLeft returns the nearest index at or below p on both axes. The
// result is not clamped.
func (s *Screen) LowerLeft(p vmath.Vec2) vmath.Index2 {
	return vmath.I(
		toIndex(math.Floor(p.X/s.params.Extent.X*float64(s.nx-1)), s.nx),
		toIndex(math.Floor(p.Y/s.params.Extent.Y*float64(s.ny-1)), s.ny),
	)
}

// UpperRight returns the nearest index at or above p on both axes. The
// result is not clamped.
func (s *Screen) UpperRight(p vmath.Vec2) vmath.Index2 {
	return vmath.I(
		toIndex(math.Ceil(p.X/s.params.Extent.X*float64(s.nx-1)), s.nx),
		toIndex(math.Ceil(p.Y/s.params.Extent.Y*float64(s.ny-1)), s.ny),
	)
}

// Nearest returns the clamped index of the cell closest to p.
func (s *Screen) Nearest(p vmath.Vec2) vmath.Index2 {
	return s.Clamp(vmath.I(
		toIndex(math.Round(p.X/s.params.Extent.X*float64(s.nx-1)), s.nx),
		toIndex(math.Round(p.Y/s.params.Extent.Y*float64(s.ny-1)), s.ny),
	))
}

// Clamp clips i into the valid index range.
func (s *Screen) Clamp(i vmath.Index2) vmath.Index2 {
	return vmath.I(clampInt(i.X, 0, s.nx-1), clampInt(i.Y, 0, s.ny-1))
}

// toIndex converts a floored or ceiled coordinate to int, saturating far
// outside the grid so the conversion never overflows.
func toIndex(f float64, n int) int {
	switch {
	case math.IsNaN(f), f < -1:
		return -1
	case f > float64(n):
		return n
	}
	return int(f)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Grid returns a copy of the mass field indexed [x][y].
func (s *Screen) Grid() [][]float64 {
	out := make([][]float64, s.nx)
	backing := make([]float64, len(s.cells))
	copy(backing, s.cells)
	for x := range out {
		out[x] = backing[x*s.ny : (x+1)*s.ny : (x+1)*s.ny]
	}
	return out
}

// Snapshot copies the mass field, column by column, into dst and returns
// it. dst is grown when too small.
func (s *Screen) Snapshot(dst []float64) []float64 {
	if cap(dst) < len(s.cells) {
		dst = make([]float64, len(s.cells))
	}
	dst = dst[:len(s.cells)]
	copy(dst, s.cells)
	return dst
}

// Mass returns the mass of the cell at i, clamped into range.
func (s *Screen) Mass(i vmath.Index2) float64 {
	i = s.Clamp(i)
	return s.cols[i.X][i.Y]
}

// MassAt returns the mass of the cell nearest p.
func (s *Screen) MassAt(p vmath.Vec2) float64 {
	i := s.Nearest(p)
	return s.cols[i.X][i.Y]
}

// TotalMass sums every cell of the grid.
func (s *Screen) TotalMass() float64 {
	sum := 0.0
	for _, v := range s.cells {
		sum += v
	}
	return sum
}

func (s *Screen) Pointer() vmath.Vec2    { return s.pointer }
func (s *Screen) Size() vmath.Index2     { return vmath.I(s.nx, s.ny) }
func (s *Screen) Extent() vmath.Vec2     { return s.params.Extent }
func (s *Screen) CellWidth() float64     { return s.cellW }
func (s *Screen) Thickness() float64     { return s.params.Thickness }
func (s *Screen) Radius() float64        { return s.params.Radius }
func (s *Screen) Params() Params         { return s.params }
func (s *Screen) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Steps returns the number of micro-steps taken since construction.
func (s *Screen) Steps() int { return s.steps }
