package etch

import (
	"math"

	"github.com/san-kum/etchsim/internal/vmath"
)

// Coverage is a grid cell together with the approximate fraction of its
// area inside a disk.
type Coverage struct {
	Index vmath.Index2
	Frac  float64
}

// DiskQuery returns every cell with positive mass whose footprint
// intersects the disk of the given center and radius.
//
// hint, when non-nil, is a previous stylus position whose disk of the same
// radius is known to have been emptied. It only speeds up the scan; cells
// with mass are reported whether or not they lie in the hinted disk.
func (s *Screen) DiskQuery(center vmath.Vec2, radius float64, hint *vmath.Vec2) []Coverage {
	return s.scanDisk(nil, center, radius, hint, false)
}

// scanDisk appends the cells intersecting the disk to dst. With withEmpty
// set, cells without mass are reported too.
func (s *Screen) scanDisk(dst []Coverage, center vmath.Vec2, radius float64, hint *vmath.Vec2, withEmpty bool) []Coverage {
	r := vmath.V(radius, radius)
	lo := s.Clamp(s.LowerLeft(center.Sub(r)))
	hi := s.Clamp(s.UpperRight(center.Add(r)))

	diag := math.Hypot(s.cellW, s.cellH)
	reach := radius + diag/2
	inner := radius - diag

	for x := lo.X; x <= hi.X; x++ {
		col := s.cols[x]
		skipLo, skipHi := -1, -1
		if hint != nil && inner > 0 {
			skipLo, skipHi = s.hintedRun(x, *hint, inner, lo.Y, hi.Y)
		}

		for y := lo.Y; y <= hi.Y; y++ {
			if y == skipLo && allZero(col[skipLo:skipHi+1]) {
				y = skipHi
				continue
			}
			m := col[y]
			if !withEmpty && m <= 0 {
				continue
			}

			d := s.ToReal(vmath.I(x, y)).Dist(center)
			if d > reach {
				continue
			}
			frac := 1.0
			if d > inner {
				frac = math.Min(1, math.Max(0, 0.5+(radius-d)/(1.2*s.cellW)))
			}
			dst = append(dst, Coverage{Index: vmath.I(x, y), Frac: frac})
		}
	}
	return dst
}

// hintedRun returns the run of rows in column x whose cell centers lie
// strictly inside the disk of radius inner around hint, limited to
// [ylo, yhi]. It returns (-1, -1) when the run is shorter than two cells.
func (s *Screen) hintedRun(x int, hint vmath.Vec2, inner float64, ylo, yhi int) (int, int) {
	dx := s.ToReal(vmath.I(x, 0)).X - hint.X
	rem := inner*inner - dx*dx
	if rem <= 0 {
		return -1, -1
	}
	half := math.Sqrt(rem)
	scale := float64(s.ny-1) / s.params.Extent.Y
	a := clampInt(toIndex(math.Floor((hint.Y-half)*scale)+1, s.ny), ylo, yhi)
	b := clampInt(toIndex(math.Ceil((hint.Y+half)*scale)-1, s.ny), ylo, yhi)
	if b-a < 1 {
		return -1, -1
	}
	return a, b
}

func allZero(vs []float64) bool {
	for _, v := range vs {
		if v > 0 {
			return false
		}
	}
	return true
}
