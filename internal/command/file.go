// Package command reads and writes the command files that drive a run: the
// toy's dimensions, the stylus, and the ordered list of line segments.
package command

import (
	"errors"
	"fmt"

	"github.com/san-kum/etchsim/internal/vmath"
)

var (
	// ErrInvalidFile indicates a command file that is malformed or violates
	// the schema.
	ErrInvalidFile = errors.New("command: invalid command file")

	// ErrUnknownCommand indicates a command type the engine cannot draw.
	ErrUnknownCommand = errors.New("command: unknown command type")
)

type Type string

const Line Type = "LINE"

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Vec() vmath.Vec2 { return vmath.V(p.X, p.Y) }

// Command is a single motion of the stylus.
type Command struct {
	Type    Type  `json:"type"`
	LineEnd Point `json:"lineEnd"`
}

// LineTo returns a straight-line command ending at p.
func LineTo(p vmath.Vec2) Command {
	return Command{Type: Line, LineEnd: Point{X: p.X, Y: p.Y}}
}

// File is the decoded form of a command file.
type File struct {
	StartX        float64   `json:"startX"`
	StartY        float64   `json:"startY"`
	EtchWidth     float64   `json:"etchWidth"`
	EtchHeight    float64   `json:"etchHeight"`
	PointerRadius float64   `json:"pointerRadius"`
	Commands      []Command `json:"commands"`
}

func (f *File) Start() vmath.Vec2  { return vmath.V(f.StartX, f.StartY) }
func (f *File) Extent() vmath.Vec2 { return vmath.V(f.EtchWidth, f.EtchHeight) }

// Targets returns the end point of every command in order.
func (f *File) Targets() []vmath.Vec2 {
	out := make([]vmath.Vec2, 0, len(f.Commands))
	for _, c := range f.Commands {
		out = append(out, c.LineEnd.Vec())
	}
	return out
}

// Validate checks the constraints the schema cannot express.
func (f *File) Validate() error {
	if !(f.EtchWidth > 0) || !(f.EtchHeight > 0) {
		return fmt.Errorf("%w: etch size must be positive, got %gx%g", ErrInvalidFile, f.EtchWidth, f.EtchHeight)
	}
	if !(f.PointerRadius > 0) {
		return fmt.Errorf("%w: pointer radius must be positive, got %g", ErrInvalidFile, f.PointerRadius)
	}
	for i, c := range f.Commands {
		if c.Type != Line {
			return fmt.Errorf("%w: command %d has type %q", ErrUnknownCommand, i, c.Type)
		}
	}
	return nil
}
