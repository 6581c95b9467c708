package dynamo_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hapticsim/internal/dynamo"
	"github.com/san-kum/hapticsim/internal/friction"
	"github.com/san-kum/hapticsim/internal/profile"
	"github.com/san-kum/hapticsim/internal/shape"
)

func trapezoidScenario(pit bool) *dynamo.Simulation {
	prof, err := profile.New(profile.Entry{Shape: shape.NewTrapezoid(300, 500, 100, 30, pit)})
	Expect(err).NotTo(HaveOccurred())

	p := dynamo.DefaultParams()
	p.Bounds = dynamo.Bounds{Min: 50, Max: 550}
	p.Mass = 5
	p.Damping = 2
	sim, err := dynamo.New(p, prof)
	Expect(err).NotTo(HaveOccurred())
	return sim
}

var _ = Describe("Simulation", func() {
	var sim *dynamo.Simulation

	Context("with global friction 7/5 on a flat surface", func() {
		BeforeEach(func() {
			prof, err := profile.New()
			Expect(err).NotTo(HaveOccurred())
			sim, err = dynamo.New(dynamo.DefaultParams(), prof)
			Expect(err).NotTo(HaveOccurred())
			sim.EnableFriction(true)
			Expect(sim.SetFriction(7, 5)).To(Succeed())
			sim.StartDrag()
		})

		It("stays at rest under a sub-threshold drive", func() {
			Expect(sim.SetCursor(0.3)).To(Succeed()) // 6 N
			for iter := 0; iter < 50; iter++ {
				sim.Step()
				Expect(sim.Velocity()).To(BeZero())
			}
			Expect(sim.Position()).To(BeZero())
			Expect(sim.Forces().Phase).To(Equal(friction.Stuck))
		})

		It("breaks away in the direction of a 10 N drive", func() {
			Expect(sim.SetCursor(-0.5)).To(Succeed())
			for iter := 0; iter < 5; iter++ {
				sim.Step()
			}
			Expect(sim.Velocity()).To(BeNumerically("<", 0))
			Expect(sim.Position()).To(BeNumerically("<", 0))
		})
	})

	Context("driven into a wall", func() {
		BeforeEach(func() {
			sim = trapezoidScenario(false)
			Expect(sim.SetState(500, 0)).To(Succeed())
			sim.StartDrag()
			Expect(sim.SetCursor(600)).To(Succeed())
		})

		It("pins the object at x_max with zero velocity", func() {
			crossed := false
			for iter := 0; iter < 500; iter++ {
				sim.Step()
				if sim.Position() == 550 {
					crossed = true
					Expect(sim.Velocity()).To(BeZero())
				}
			}
			Expect(crossed).To(BeTrue())
			Expect(sim.Position()).To(Equal(550.0))
		})
	})

	Context("with the trapezoid hill x0=300 h=500 base_a=100 base_b=30", func() {
		BeforeEach(func() {
			sim = trapezoidScenario(false)
		})

		It("starts clamped to x_min outside the hill and feels no force", func() {
			Expect(sim.Position()).To(Equal(50.0))
			for iter := 0; iter < 100; iter++ {
				fh, fd := sim.Step()
				Expect(fh).To(BeZero())
				Expect(fd).To(BeZero())
			}
			Expect(sim.Position()).To(Equal(50.0))
		})

		It("pushes an object released on the left shoulder away from the top", func() {
			Expect(sim.SetState(240, 0)).To(Succeed())
			sim.Step()
			Expect(sim.Velocity()).To(BeNumerically("<", 0))
		})
	})

	Context("with the trapezoid as a pit", func() {
		BeforeEach(func() {
			sim = trapezoidScenario(true)
			Expect(sim.SetState(240, 0)).To(Succeed())
		})

		It("falls toward x0 and settles on the flat bottom", func() {
			prev := math.Abs(sim.Position() - 300)
			settled := false
			for iter := 0; iter < 5000; iter++ {
				sim.Step()
				d := math.Abs(sim.Position() - 300)
				Expect(d).To(BeNumerically("<=", prev))
				prev = d
				if sim.Velocity() == 0 && sim.Steps() > 1 {
					settled = true
					break
				}
			}
			Expect(settled).To(BeTrue())
			Expect(sim.Position()).To(BeNumerically("~", 300, 50))
		})

		It("is held in the pit by impedance control toward x0", func() {
			Expect(sim.SetTargetPosition(300)).To(Succeed())
			Expect(sim.SetMode(dynamo.ModeImpedance)).To(Succeed())
			for iter := 0; iter < 3000; iter++ {
				sim.Step()
			}
			Expect(sim.Position()).To(BeNumerically("~", 300, 1))
		})
	})
})
