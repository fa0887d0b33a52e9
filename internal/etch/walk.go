package etch

import "github.com/san-kum/etchsim/internal/vmath"

// MoveTo drags the stylus in a straight line to target, one cell width at a
// time, and returns the number of micro-steps taken. Moving to the current
// position, or to a non-finite target, does nothing.
func (s *Screen) MoveTo(target vmath.Vec2) int {
	if !finite(target) {
		return 0
	}

	n := 0
	for {
		d := target.Sub(s.pointer)
		dist := d.Len()
		if dist <= Epsilon {
			return n
		}
		if dist <= s.cellW {
			s.step(d)
		} else {
			s.step(d.Scale(s.cellW / dist))
		}
		n++
	}
}

// Follow moves the stylus through every target in order and returns the
// total number of micro-steps.
func (s *Screen) Follow(targets []vmath.Vec2) int {
	n := 0
	for _, t := range targets {
		n += s.MoveTo(t)
	}
	return n
}
