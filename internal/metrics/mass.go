package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/etchsim/internal/sim"
)

// TotalMass reports the coating mass of the last observed sample.
type TotalMass struct {
	name  string
	total float64
}

func NewTotalMass() *TotalMass {
	return &TotalMass{name: "total_mass"}
}

func (m *TotalMass) Name() string { return m.name }

func (m *TotalMass) Observe(s *sim.Sample) {
	m.total = floats.Sum(s.Cells)
}

func (m *TotalMass) Value() float64 { return m.total }

func (m *TotalMass) Reset() {
	m.total = 0
}

// MassDrift tracks the largest relative deviation of the total mass from
// the first observed sample. Displacement only moves coating, so drift
// comes from mass pushed off the grid.
type MassDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewMassDrift() *MassDrift {
	return &MassDrift{name: "mass_drift"}
}

func (m *MassDrift) Name() string { return m.name }

func (m *MassDrift) Observe(s *sim.Sample) {
	total := floats.Sum(s.Cells)
	if m.samples == 0 {
		m.initial = total
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(total-m.initial) / m.initial
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *MassDrift) Value() float64 {
	return m.maxDrift
}

func (m *MassDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}
