package etch

import "github.com/san-kum/etchsim/internal/vmath"

// pending is the transfer recorded for one cell during a micro-step.
type pending struct {
	dir     vmath.Vec2
	mass    float64
	visited bool // the cell already belongs to a processed or current layer
}

// scratch holds the per-step records. Records live in a slice keyed through
// a sparse index, so a step never touches memory proportional to the grid.
type scratch struct {
	slot    map[vmath.Index2]int32
	records []pending

	layer []vmath.Index2
	next  []vmath.Index2
	hits  []Coverage
	nbrs  []Coverage
	dsts  []Coverage
}

// maxRetainedRecords is the record capacity kept across steps when a step
// used far fewer records than the one that grew the buffers.
const maxRetainedRecords = 1 << 14

func newScratch() scratch {
	return scratch{
		slot:    make(map[vmath.Index2]int32, 256),
		records: make([]pending, 0, 256),
	}
}

func (sc *scratch) lookup(i vmath.Index2) (*pending, bool) {
	k, ok := sc.slot[i]
	if !ok {
		return nil, false
	}
	return &sc.records[k], true
}

func (sc *scratch) put(i vmath.Index2, p pending) {
	sc.slot[i] = int32(len(sc.records))
	sc.records = append(sc.records, p)
}

func (sc *scratch) reset() {
	// A map that grew for one long propagation keeps its buckets, and
	// clear walks all of them, so oversized maps are dropped instead.
	if len(sc.records) < cap(sc.records)/4 && cap(sc.records) > maxRetainedRecords {
		sc.slot = make(map[vmath.Index2]int32, 256)
		sc.records = make([]pending, 0, 256)
		return
	}
	clear(sc.slot)
	sc.records = sc.records[:0]
}
