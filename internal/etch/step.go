package etch

import (
	"math"

	"github.com/san-kum/etchsim/internal/vmath"
)

// StepEvent describes one completed micro-step.
type StepEvent struct {
	Step    int
	Pointer vmath.Vec2
	Layers  int        // propagation layers processed, the initial one included
	Moved   float64    // total mass lifted from cells
	Dirty   vmath.Rect // cells whose mass may have changed
}

// Observer is notified after every micro-step.
type Observer interface {
	OnStep(ev StepEvent)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ev StepEvent)

func (f ObserverFunc) OnStep(ev StepEvent) { f(ev) }

// step moves the stylus by offset, whose length is at most one cell width,
// and displaces the material it runs into.
func (s *Screen) step(offset vmath.Vec2) {
	sc := &s.scratch
	prev := s.pointer
	s.pointer = prev.Add(offset)

	ev := StepEvent{Pointer: s.pointer}
	dirty := vmath.EmptyRect()

	layer := s.seed(prev, offset)
	next := sc.next[:0]
	for len(layer) > 0 {
		ev.Layers++
		var moved float64
		next, moved, dirty = s.propagate(layer, next[:0], dirty)
		ev.Moved += moved
		layer, next = next, layer
	}
	sc.layer, sc.next = layer[:0], next[:0]
	sc.reset()

	s.steps++
	ev.Step = s.steps
	ev.Dirty = dirty
	for _, o := range s.observers {
		o.OnStep(ev)
	}
}

// seed records layer 0: everything now under the stylus gets pushed
// forward and out. prev is the stylus position before offset was applied.
func (s *Screen) seed(prev, offset vmath.Vec2) []vmath.Index2 {
	sc := &s.scratch
	fwd := offset.Normalize()
	pushLen := offset.Len() * 1.5
	friction := s.tuning.PointerFriction

	sc.hits = s.scanDisk(sc.hits[:0], s.pointer, s.params.Radius, &prev, false)
	layer := sc.layer[:0]
	for _, c := range sc.hits {
		out := s.ToReal(c.Index).Sub(s.pointer).Normalize()
		dir := fwd.Scale(friction).Add(out.Scale(1 - friction)).WithLen(pushLen)
		sc.put(c.Index, pending{
			dir:     dir,
			mass:    s.cols[c.Index.X][c.Index.Y] * c.Frac,
			visited: true,
		})
		layer = append(layer, c.Index)
	}
	return layer
}

// propagate processes one layer: every proposal is made against the grid as
// it was before any transfer of the layer, then the layer's cells transfer
// their mass. Cells reached for the first time are appended to next and
// belong to the following layer only.
func (s *Screen) propagate(layer, next []vmath.Index2, dirty vmath.Rect) ([]vmath.Index2, float64, vmath.Rect) {
	sc := &s.scratch
	next = s.propose(layer, next)

	moved := 0.0
	for _, i := range layer {
		m, d := s.transfer(i)
		moved += m
		dirty = dirty.Extend(i)
		if !d.Empty() {
			dirty = dirty.Extend(d.Min).Extend(d.Max)
		}
	}
	for _, i := range next {
		p, _ := sc.lookup(i)
		p.visited = true
	}
	return next, moved, dirty
}

// propose records the motion the cells of layer pass on to their unvisited
// neighbours and appends newly reached neighbours to next. It only reads the
// grid, so the whole layer sees the same pre-transfer state.
func (s *Screen) propose(layer, next []vmath.Index2) []vmath.Index2 {
	sc := &s.scratch
	t := s.tuning
	minMass := t.MinDragTransfer * s.params.Thickness
	minDir := 0.2 * s.cellW

	for _, src := range layer {
		from, _ := sc.lookup(src)
		srcDir, srcMass := from.dir, from.mass
		srcPos := s.ToReal(src)
		along := srcDir.Normalize().Scale(t.DragDirection)

		sc.nbrs = s.scanDisk(sc.nbrs[:0], srcPos, 1.5*s.cellW, nil, false)
		for _, n := range sc.nbrs {
			rec, seen := sc.lookup(n.Index)
			if seen && rec.visited {
				continue
			}

			out := s.ToReal(n.Index).Sub(srcPos).Normalize()
			dir := along.Add(out.Scale(1 - t.DragDirection)).WithLen(t.DragAttenuation * srcDir.Len())
			mass := t.DragAttenuation * srcMass * n.Frac
			if mass < minMass || dir.Len() < minDir {
				continue
			}

			avail := s.cols[n.Index.X][n.Index.Y]
			mass = math.Min(avail, mass)
			if !seen {
				sc.put(n.Index, pending{dir: dir, mass: mass})
				next = append(next, n.Index)
				continue
			}
			// Reached from another source of the same layer: masses add up,
			// directions are averaged without weighting.
			rec.mass = math.Min(avail, rec.mass+mass)
			rec.dir = rec.dir.Mid(dir)
		}
	}
	return next
}

// transfer lifts the recorded mass off cell i and spreads it over the cells
// around the destination i + direction, proportional to their coverage.
// Mass whose destination disk lies entirely off the grid is lost.
func (s *Screen) transfer(i vmath.Index2) (float64, vmath.Rect) {
	sc := &s.scratch
	p, _ := sc.lookup(i)
	dirty := vmath.EmptyRect()

	cell := &s.cols[i.X][i.Y]
	mass := math.Min(p.mass, *cell)
	if mass <= 0 {
		return 0, dirty
	}
	*cell -= mass

	dest := s.ToReal(i).Add(p.dir)
	sc.dsts = s.scanDisk(sc.dsts[:0], dest, s.cellW, nil, true)
	total := 0.0
	for _, d := range sc.dsts {
		total += d.Frac
	}
	if total <= 0 {
		return mass, dirty
	}
	for _, d := range sc.dsts {
		if d.Frac == 0 {
			continue
		}
		s.cols[d.Index.X][d.Index.Y] += mass * d.Frac / total
		dirty = dirty.Extend(d.Index)
	}
	return mass, dirty
}
