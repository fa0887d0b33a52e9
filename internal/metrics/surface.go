package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/etchsim/internal/sim"
)

// DefaultClearedLevel is the fraction of the coating thickness below which
// a cell counts as scraped clean.
const DefaultClearedLevel = 0.1

// Cleared is the fraction of cells holding less than level*thickness.
type Cleared struct {
	name     string
	level    float64
	fraction float64
}

func NewCleared(level float64) *Cleared {
	if level <= 0 {
		level = DefaultClearedLevel
	}
	return &Cleared{name: "cleared", level: level}
}

func (c *Cleared) Name() string { return c.name }

func (c *Cleared) Observe(s *sim.Sample) {
	if len(s.Cells) == 0 {
		c.fraction = 0
		return
	}
	limit := c.level * s.Thickness
	n := 0
	for _, v := range s.Cells {
		if v < limit {
			n++
		}
	}
	c.fraction = float64(n) / float64(len(s.Cells))
}

func (c *Cleared) Value() float64 { return c.fraction }

func (c *Cleared) Reset() {
	c.fraction = 0
}

// RidgePeak is the tallest cell in units of the coating thickness, the
// height of the material heaped up beside the stylus path.
type RidgePeak struct {
	name string
	peak float64
}

func NewRidgePeak() *RidgePeak {
	return &RidgePeak{name: "ridge_peak"}
}

func (r *RidgePeak) Name() string { return r.name }

func (r *RidgePeak) Observe(s *sim.Sample) {
	if len(s.Cells) == 0 || s.Thickness <= 0 {
		r.peak = 0
		return
	}
	r.peak = floats.Max(s.Cells) / s.Thickness
}

func (r *RidgePeak) Value() float64 { return r.peak }

func (r *RidgePeak) Reset() {
	r.peak = 0
}

// Roughness is the standard deviation of the mass field relative to the
// coating thickness. An untouched screen is close to zero.
type Roughness struct {
	name  string
	value float64
}

func NewRoughness() *Roughness {
	return &Roughness{name: "roughness"}
}

func (r *Roughness) Name() string { return r.name }

func (r *Roughness) Observe(s *sim.Sample) {
	if len(s.Cells) < 2 || s.Thickness <= 0 {
		r.value = 0
		return
	}
	_, std := stat.MeanStdDev(s.Cells, nil)
	r.value = std / s.Thickness
}

func (r *Roughness) Value() float64 { return r.value }

func (r *Roughness) Reset() {
	r.value = 0
}
