package sim

import (
	"time"

	"github.com/san-kum/etchsim/internal/vmath"
)

// Sample is a view of the screen taken between two commands.
type Sample struct {
	Command   int // commands completed so far
	Total     int // commands in the run
	Steps     int // micro-steps completed so far
	Pointer   vmath.Vec2
	Size      vmath.Index2
	Thickness float64
	Cells     []float64 // column-major mass field; reused between samples
}

type Metric interface {
	Name() string
	Observe(s *Sample)
	Value() float64
	Reset()
}

type Config struct {
	// SampleEvery observes the metrics after every n-th command. The first
	// and the last state are always observed.
	SampleEvery int
}

type Result struct {
	Grid     [][]float64
	Pointer  vmath.Vec2
	Steps    int
	Commands int
	Metrics  map[string]float64
	Elapsed  time.Duration
}
