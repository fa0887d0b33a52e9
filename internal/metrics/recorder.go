package metrics

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/etchsim/internal/sim"
)

// Row is one observed sample, as written to the CSV report.
type Row struct {
	Command   int     `csv:"command"`
	Steps     int     `csv:"steps"`
	PointerX  float64 `csv:"pointer_x"`
	PointerY  float64 `csv:"pointer_y"`
	TotalMass float64 `csv:"total_mass"`
	Peak      float64 `csv:"peak"`
	Mean      float64 `csv:"mean"`
	StdDev    float64 `csv:"std_dev"`
}

// Recorder keeps a row per observed sample. Its value is the number of
// rows recorded.
type Recorder struct {
	rows []Row
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Name() string { return "samples" }

func (r *Recorder) Observe(s *sim.Sample) {
	row := Row{
		Command:  s.Command,
		Steps:    s.Steps,
		PointerX: s.Pointer.X,
		PointerY: s.Pointer.Y,
	}
	if len(s.Cells) > 0 {
		row.TotalMass = floats.Sum(s.Cells)
		row.Peak = floats.Max(s.Cells)
		row.Mean = stat.Mean(s.Cells, nil)
	}
	if len(s.Cells) > 1 {
		row.StdDev = stat.StdDev(s.Cells, nil)
	}
	r.rows = append(r.rows, row)
}

func (r *Recorder) Value() float64 { return float64(len(r.rows)) }
func (r *Recorder) Reset()         { r.rows = r.rows[:0] }
func (r *Recorder) Rows() []Row    { return r.rows }

func (r *Recorder) WriteCSV(w io.Writer) error {
	if err := gocsv.Marshal(r.rows, w); err != nil {
		return fmt.Errorf("writing samples: %w", err)
	}
	return nil
}

// Standard returns the metrics the CLI attaches to every run.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewTotalMass(),
		NewMassDrift(),
		NewCleared(DefaultClearedLevel),
		NewRidgePeak(),
		NewRoughness(),
	}
}
