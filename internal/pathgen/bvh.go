package pathgen

import (
	"math"
	"sort"

	"github.com/san-kum/etchsim/internal/vmath"
)

// Segment is one straight piece of a path.
type Segment struct{ A, B vmath.Vec2 }

func (s Segment) Len() float64 { return s.A.Dist(s.B) }

// closest returns the point of s nearest to p.
func (s Segment) closest(p vmath.Vec2) vmath.Vec2 {
	ab := s.B.Sub(s.A)
	l2 := ab.LenSq()
	if l2 == 0 {
		return s.A
	}
	t := p.Sub(s.A).Dot(ab) / l2
	switch {
	case t <= 0:
		return s.A
	case t >= 1:
		return s.B
	}
	return s.A.Add(ab.Scale(t))
}

// crossing returns the point where s and o cross, if they do. Parallel
// segments never cross here; overlapping ones are caught by the endpoint
// distances in Connect.
func (s Segment) crossing(o Segment) (vmath.Vec2, bool) {
	d1, d2 := s.B.Sub(s.A), o.B.Sub(o.A)
	den := d1.Cross(d2)
	if den == 0 {
		return vmath.Vec2{}, false
	}
	w := o.A.Sub(s.A)
	t := w.Cross(d2) / den
	u := w.Cross(d1) / den
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return vmath.Vec2{}, false
	}
	return s.A.Add(d1.Scale(t)), true
}

// Connect returns the shortest segment joining s to o, starting on s and
// ending on o. Crossing segments are joined by a zero-length segment at
// the crossing point.
func (s Segment) Connect(o Segment) Segment {
	if p, ok := s.crossing(o); ok {
		return Segment{p, p}
	}
	best := Segment{s.A, o.closest(s.A)}
	d := best.Len()
	try := func(c Segment) {
		if l := c.Len(); l < d {
			best, d = c, l
		}
	}
	try(Segment{s.B, o.closest(s.B)})
	try(Segment{s.closest(o.A), o.A})
	try(Segment{s.closest(o.B), o.B})
	return best
}

type bounds struct{ min, max vmath.Vec2 }

func (s Segment) bounds() bounds { return bounds{s.A.Min(s.B), s.A.Max(s.B)} }

func (b bounds) union(o bounds) bounds { return bounds{b.min.Min(o.min), b.max.Max(o.max)} }

func (b bounds) center() vmath.Vec2 { return b.min.Mid(b.max) }

// dist is the gap between two boxes, zero when they touch or overlap.
func (b bounds) dist(o bounds) float64 {
	dx := math.Max(0, math.Max(o.min.X-b.max.X, b.min.X-o.max.X))
	dy := math.Max(0, math.Max(o.min.Y-b.max.Y, b.min.Y-o.max.Y))
	return math.Hypot(dx, dy)
}

// bvhNode is a node of a bounding volume hierarchy over segments. Leaves
// hold one segment each. joined and free record whether the subtree holds
// any segment already in the spanning tree, and any not yet in it.
type bvhNode struct {
	box         bounds
	seg         int
	parent      *bvhNode
	left, right *bvhNode
	joined      bool
	free        bool
}

func (n *bvhNode) leaf() bool { return n.left == nil }

type bvh struct {
	segs   []Segment
	root   *bvhNode
	leaves []*bvhNode
}

func newBVH(segs []Segment) *bvh {
	t := &bvh{segs: segs, leaves: make([]*bvhNode, len(segs))}
	idx := make([]int, len(segs))
	for i := range idx {
		idx[i] = i
	}
	t.root = t.build(idx, nil)
	return t
}

// build splits idx at the median segment center along the axis where the
// centers spread widest.
func (t *bvh) build(idx []int, parent *bvhNode) *bvhNode {
	n := &bvhNode{seg: -1, parent: parent, free: true}
	n.box = t.segs[idx[0]].bounds()
	spread := bounds{n.box.center(), n.box.center()}
	for _, i := range idx[1:] {
		b := t.segs[i].bounds()
		n.box = n.box.union(b)
		spread = spread.union(bounds{b.center(), b.center()})
	}
	if len(idx) == 1 {
		n.seg = idx[0]
		t.leaves[idx[0]] = n
		return n
	}

	key := func(i int) float64 { return t.segs[i].bounds().center().X }
	if spread.max.Y-spread.min.Y > spread.max.X-spread.min.X {
		key = func(i int) float64 { return t.segs[i].bounds().center().Y }
	}
	sort.SliceStable(idx, func(a, b int) bool { return key(idx[a]) < key(idx[b]) })

	mid := len(idx) / 2
	n.left = t.build(idx[:mid], n)
	n.right = t.build(idx[mid:], n)
	return n
}

// join moves segment i into the spanning tree.
func (t *bvh) join(i int) {
	n := t.leaves[i]
	n.joined, n.free = true, false
	for p := n.parent; p != nil; p = p.parent {
		p.joined = p.left.joined || p.right.joined
		p.free = p.left.free || p.right.free
	}
}

// link is the shortest connection found from a joined segment to a free one.
type link struct {
	from, to int
	conn     Segment
	dist     float64
}

// nearest finds the free segment closest to any joined one. Subtrees whose
// boxes lie farther apart than the best link so far are skipped.
func (t *bvh) nearest() (link, bool) {
	best := link{from: -1, to: -1, dist: math.Inf(1)}
	t.search(t.root, t.root, &best)
	return best, best.to >= 0
}

func (t *bvh) search(free, joined *bvhNode, best *link) {
	switch {
	case free.leaf() && joined.leaf():
		c := t.segs[joined.seg].Connect(t.segs[free.seg])
		if d := c.Len(); d < best.dist {
			*best = link{from: joined.seg, to: free.seg, conn: c, dist: d}
		}
	case free.leaf():
		for _, c := range [2]*bvhNode{joined.left, joined.right} {
			if c.joined && free.box.dist(c.box) < best.dist {
				t.search(free, c, best)
			}
		}
	default:
		for _, c := range [2]*bvhNode{free.left, free.right} {
			if c.free && c.box.dist(joined.box) < best.dist {
				t.search(c, joined, best)
			}
		}
	}
}
