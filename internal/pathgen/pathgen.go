// Package pathgen generates command files for test drawings: polar plots,
// spirals, regular polygons and single-stroke unions of arbitrary paths.
package pathgen

import (
	"fmt"
	"math"

	"github.com/san-kum/etchsim/internal/command"
	"github.com/san-kum/etchsim/internal/vmath"
)

// Board describes the toy the generated file is drawn on.
type Board struct {
	Extent vmath.Vec2
	Radius float64
}

// DefaultBoard is a 2x2 screen with a fine stylus.
func DefaultBoard() Board {
	return Board{Extent: vmath.V(2, 2), Radius: 0.0025}
}

func (b Board) Center() vmath.Vec2 { return b.Extent.Scale(0.5) }

func (b Board) file(start vmath.Vec2, points []vmath.Vec2) (*command.File, error) {
	f := &command.File{
		StartX:        start.X,
		StartY:        start.Y,
		EtchWidth:     b.Extent.X,
		EtchHeight:    b.Extent.Y,
		PointerRadius: b.Radius,
		Commands:      make([]command.Command, 0, len(points)),
	}
	for _, p := range points {
		f.Commands = append(f.Commands, command.LineTo(p))
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Func gives the polar radius at angle theta.
type Func func(theta float64) float64

// Rose is r = (sin(k*theta) + offset) / scale.
func Rose(k, offset, scale float64) Func {
	return func(theta float64) float64 {
		return (math.Sin(k*theta) + offset) / scale
	}
}

// DefaultRose is the five-petal test figure.
var DefaultRose = Rose(5, 0.5, 1.5)

// Polar samples fn for theta in [0, 2π] every step radians around the
// board center. The stylus starts on the curve at theta = 0.
func Polar(b Board, fn Func, step float64) (*command.File, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("angle step must be positive, got %g", step)
	}
	center := b.Center()
	at := func(theta float64) vmath.Vec2 {
		r := fn(theta)
		return center.Add(vmath.V(r*math.Cos(theta), r*math.Sin(theta)))
	}

	var points []vmath.Vec2
	for theta := 0.0; theta <= 2*math.Pi; theta += step {
		points = append(points, at(theta))
	}
	return b.file(at(0), points)
}

// Spiral draws an Archimedean spiral out from the board center, reaching
// maxR after the given number of turns.
func Spiral(b Board, turns, maxR, step float64) (*command.File, error) {
	if !(step > 0) || !(turns > 0) || !(maxR > 0) {
		return nil, fmt.Errorf("spiral needs positive turns, radius and step, got %g, %g, %g", turns, maxR, step)
	}
	center := b.Center()
	end := 2 * math.Pi * turns

	var points []vmath.Vec2
	for theta := step; theta <= end; theta += step {
		r := maxR * theta / end
		points = append(points, center.Add(vmath.V(r*math.Cos(theta), r*math.Sin(theta))))
	}
	return b.file(center, points)
}

// Polygon draws a closed regular polygon with the given circumradius,
// starting and ending on its first vertex.
func Polygon(b Board, sides int, radius, rotation float64) (*command.File, error) {
	if sides < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 sides, got %d", sides)
	}
	if !(radius > 0) {
		return nil, fmt.Errorf("polygon radius must be positive, got %g", radius)
	}
	center := b.Center()
	vertex := func(i int) vmath.Vec2 {
		a := rotation + 2*math.Pi*float64(i)/float64(sides)
		return center.Add(vmath.V(radius*math.Cos(a), radius*math.Sin(a)))
	}

	points := make([]vmath.Vec2, 0, sides)
	for i := 1; i <= sides; i++ {
		points = append(points, vertex(i%sides))
	}
	return b.file(vertex(0), points)
}
