package etch

import (
	"fmt"
	"math"

	"github.com/san-kum/etchsim/internal/vmath"
)

// MaxCells bounds the grid allocation.
const MaxCells = 1 << 28

// Epsilon is the distance below which the stylus counts as arrived.
const Epsilon = 0.0001

// Tuning holds the constants of the displacement heuristic.
type Tuning struct {
	// PointerFriction weighs the stylus direction against the outward
	// direction when material is pushed out from under the stylus.
	PointerFriction float64
	// DragDirection weighs the source cell's direction against the outward
	// direction when motion is passed to a neighbour.
	DragDirection float64
	// DragAttenuation scales mass and direction from one layer to the next.
	DragAttenuation float64
	// MinDragTransfer is the smallest transfer, as a fraction of the initial
	// coating thickness, that keeps propagating.
	MinDragTransfer float64
}

func DefaultTuning() Tuning {
	return Tuning{
		PointerFriction: 0.3,
		DragDirection:   0.5,
		DragAttenuation: 0.5,
		MinDragTransfer: 0.01,
	}
}

// Params describes a freshly shaken toy.
type Params struct {
	Thickness float64    // initial coating thickness
	Extent    vmath.Vec2 // physical width and height
	Density   float64    // grid points per unit length
	Start     vmath.Vec2 // initial stylus position
	Radius    float64    // stylus radius
	Tuning    Tuning     // zero value selects DefaultTuning
}

// GridSize returns the grid dimensions the parameters produce.
func (p Params) GridSize() vmath.Index2 {
	return vmath.I(
		int(math.Ceil(p.Extent.X*p.Density)),
		int(math.Ceil(p.Extent.Y*p.Density)),
	)
}

func (p Params) withDefaults() Params {
	if p.Tuning == (Tuning{}) {
		p.Tuning = DefaultTuning()
	}
	return p
}

func (p Params) validate() error {
	if !(p.Extent.X > 0) || !(p.Extent.Y > 0) || math.IsInf(p.Extent.X, 0) || math.IsInf(p.Extent.Y, 0) {
		return fmt.Errorf("%w: extent must be positive, got %v", ErrParameterBounds, p.Extent)
	}
	if !(p.Radius > 0) {
		return fmt.Errorf("%w: radius must be positive, got %g", ErrParameterBounds, p.Radius)
	}
	if !(p.Density > 0) || math.IsInf(p.Density, 0) {
		return fmt.Errorf("%w: density must be positive, got %g", ErrParameterBounds, p.Density)
	}
	if !(p.Thickness >= 0) || math.IsInf(p.Thickness, 0) {
		return fmt.Errorf("%w: thickness must be non-negative, got %g", ErrParameterBounds, p.Thickness)
	}
	if !finite(p.Start) {
		return fmt.Errorf("%w: start must be finite, got %v", ErrParameterBounds, p.Start)
	}

	w := math.Ceil(p.Extent.X * p.Density)
	h := math.Ceil(p.Extent.Y * p.Density)
	if w < 2 || h < 2 {
		return fmt.Errorf("%w: grid must be at least 2x2, got %gx%g", ErrParameterBounds, w, h)
	}
	if w*h > MaxCells {
		return fmt.Errorf("%w: grid of %gx%g cells exceeds %d", ErrParameterBounds, w, h, MaxCells)
	}

	t := p.Tuning
	if t.PointerFriction < 0 || t.PointerFriction > 1 || t.DragDirection < 0 || t.DragDirection > 1 {
		return fmt.Errorf("%w: direction weights must lie in [0,1]", ErrParameterBounds)
	}
	if !(t.DragAttenuation > 0) || t.DragAttenuation >= 1 {
		return fmt.Errorf("%w: drag attenuation must lie in (0,1), got %g", ErrParameterBounds, t.DragAttenuation)
	}
	if !(t.MinDragTransfer >= 0) {
		return fmt.Errorf("%w: min drag transfer must be non-negative, got %g", ErrParameterBounds, t.MinDragTransfer)
	}
	return nil
}

func finite(v vmath.Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
