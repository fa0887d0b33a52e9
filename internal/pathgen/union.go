package pathgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/etchsim/internal/command"
	"github.com/san-kum/etchsim/internal/vmath"
)

// ErrNoSegments is returned by Union when the paths hold nothing to draw.
var ErrNoSegments = errors.New("paths have no segments")

// moveEps is the shortest stylus move Union emits.
const moveEps = 1e-7

// Segments splits polylines into their straight pieces. Paths with fewer
// than two points contribute nothing.
func Segments(paths [][]vmath.Vec2) []Segment {
	var segs []Segment
	for _, p := range paths {
		for i := 1; i < len(p); i++ {
			segs = append(segs, Segment{p[i-1], p[i]})
		}
	}
	return segs
}

type spanNode struct {
	seg      int
	in       Segment
	children []*spanNode
}

// Union draws every segment of paths in one continuous stroke. The segments
// are joined by a minimum spanning tree, each edge being the shortest link
// between two segments, and the tree is walked depth first so that every
// link is retraced on the way back. Crossing segments are linked at their
// crossing point and cost no extra travel.
func Union(b Board, paths [][]vmath.Vec2) (*command.File, error) {
	segs := Segments(paths)
	if len(segs) == 0 {
		return nil, ErrNoSegments
	}
	for i, s := range segs {
		if !finite(s.A) || !finite(s.B) {
			return nil, fmt.Errorf("segment %d has a non-finite point", i)
		}
	}

	t := newBVH(segs)
	nodes := make([]*spanNode, len(segs))
	start := segs[0].A
	nodes[0] = &spanNode{seg: 0, in: Segment{start, start}}
	t.join(0)
	for joined := 1; joined < len(segs); joined++ {
		l, ok := t.nearest()
		if !ok {
			return nil, fmt.Errorf("spanning tree stalled at %d of %d segments", joined, len(segs))
		}
		n := &spanNode{seg: l.to, in: l.conn}
		nodes[l.from].children = append(nodes[l.from].children, n)
		nodes[l.to] = n
		t.join(l.to)
	}

	w := walker{head: start}
	w.walk(nodes[0], segs, true)
	return b.file(start, w.points)
}

type walker struct {
	head   vmath.Vec2
	points []vmath.Vec2
}

func (w *walker) moveTo(p vmath.Vec2) {
	if w.head.Dist(p) > moveEps {
		w.points = append(w.points, p)
	}
	w.head = p
}

// walk enters n along its link, draws its subtree and its own segment and
// returns along the link. The root has nowhere to return to.
func (w *walker) walk(n *spanNode, segs []Segment, root bool) {
	w.moveTo(n.in.A)
	w.moveTo(n.in.B)
	for _, c := range n.children {
		w.walk(c, segs, false)
	}
	s := segs[n.seg]
	if w.head.Dist(s.A) < w.head.Dist(s.B) {
		w.moveTo(s.A)
		w.moveTo(s.B)
	} else {
		w.moveTo(s.B)
		w.moveTo(s.A)
	}
	if root {
		return
	}
	w.moveTo(n.in.B)
	w.moveTo(n.in.A)
}

func finite(v vmath.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// pathsFile is the on-disk form of a set of polylines.
type pathsFile struct {
	Paths [][]command.Point `json:"paths" yaml:"paths"`
}

// LoadPaths reads polylines from a JSON or YAML file of the form
// {"paths": [[{"x": 0, "y": 0}, ...], ...]}.
func LoadPaths(path string) ([][]vmath.Vec2, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf pathsFile
	if command.FormatOf(path) == command.YAML {
		err = yaml.Unmarshal(data, &pf)
	} else {
		err = json.Unmarshal(data, &pf)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	out := make([][]vmath.Vec2, len(pf.Paths))
	for i, p := range pf.Paths {
		out[i] = make([]vmath.Vec2, len(p))
		for j, q := range p {
			out[i][j] = q.Vec()
		}
	}
	return out, nil
}
