package etch_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/etchsim/internal/etch"
	"github.com/san-kum/etchsim/internal/vmath"
)

var _ = Describe("Screen", Ordered, func() {
	const (
		thickness = 0.01
		radius    = 0.0025
	)

	var (
		scr   *etch.Screen
		start = vmath.V(1, 1)
		mass0 float64
	)

	BeforeAll(func() {
		var err error
		scr, err = etch.New(etch.Params{
			Thickness: thickness,
			Extent:    vmath.V(2, 2),
			Density:   2000,
			Start:     start,
			Radius:    radius,
		})
		Expect(err).NotTo(HaveOccurred())
		mass0 = scr.TotalMass()
	})

	Context("right after construction", func() {
		It("has ceil(extent*density) cells per axis", func() {
			Expect(scr.Size()).To(Equal(vmath.I(4000, 4000)))
		})

		It("leaves the stylus footprint empty", func() {
			Expect(scr.MassAt(start)).To(BeZero())
			Expect(scr.MassAt(start.Add(vmath.V(radius/2, -radius/2)))).To(BeZero())
		})

		It("keeps the coating away from the stylus", func() {
			Expect(scr.MassAt(start.Add(vmath.V(0, 3*radius)))).To(BeNumerically("~", thickness, 1e-12))
			Expect(scr.MassAt(vmath.V(0.2, 1.7))).To(BeNumerically("~", thickness, 1e-12))
		})
	})

	Context("moving to its own position", func() {
		It("takes no micro-steps", func() {
			Expect(scr.MoveTo(start)).To(BeZero())
			Expect(scr.Pointer()).To(Equal(start))
			Expect(scr.TotalMass()).To(Equal(mass0))
		})
	})

	Context("after a horizontal move of 0.1", func() {
		var steps int

		BeforeAll(func() {
			steps = scr.MoveTo(vmath.V(1.1, 1))
		})

		It("takes ceil(0.1/cellWidth) micro-steps", func() {
			Expect(steps).To(Equal(int(math.Ceil(0.1 / scr.CellWidth()))))
			Expect(scr.Steps()).To(Equal(steps))
		})

		It("ends at the target", func() {
			Expect(scr.Pointer().Dist(vmath.V(1.1, 1))).To(BeNumerically("<=", etch.Epsilon))
		})

		It("depletes the swept band", func() {
			for _, x := range []float64{1.02, 1.05, 1.08} {
				Expect(scr.MassAt(vmath.V(x, 1))).To(BeNumerically("<", thickness/2), "x=%g", x)
			}
		})

		It("piles material up just outside the band", func() {
			w := scr.CellWidth()
			for _, x := range []float64{1.03, 1.06} {
				ridge := 0.0
				for k := 0; k <= 8; k++ {
					for _, side := range []float64{-1, 1} {
						ridge = math.Max(ridge, scr.MassAt(vmath.V(x, 1+side*(radius+float64(k)*w))))
					}
				}
				Expect(ridge).To(BeNumerically(">=", thickness), "x=%g", x)
			}
		})

		It("conserves the total mass", func() {
			Expect(scr.TotalMass()).To(BeNumerically("~", mass0, mass0*1e-6))
		})

		It("never holds negative mass", func() {
			w := scr.CellWidth()
			for x := 0.99; x <= 1.12; x += w {
				for y := 0.98; y <= 1.02; y += w {
					Expect(scr.MassAt(vmath.V(x, y))).To(BeNumerically(">=", 0))
				}
			}
		})
	})
})

var _ = Describe("Params", func() {
	DescribeTable("rejects invalid construction parameters",
		func(p etch.Params) {
			_, err := etch.New(p)
			Expect(err).To(MatchError(etch.ErrParameterBounds))
		},
		Entry("zero extent", etch.Params{Thickness: 0.01, Extent: vmath.V(0, 2), Density: 10, Radius: 0.1}),
		Entry("negative radius", etch.Params{Thickness: 0.01, Extent: vmath.V(2, 2), Density: 10, Radius: -1}),
		Entry("zero density", etch.Params{Thickness: 0.01, Extent: vmath.V(2, 2), Density: 0, Radius: 0.1}),
	)
})
