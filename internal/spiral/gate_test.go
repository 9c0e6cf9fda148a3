package spiral_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"spiralsim/internal/spiral"
)

var _ = Describe("TanhGate", func() {
	var gate spiral.Gate

	BeforeEach(func() {
		var err error
		gate, err = spiral.NewGate(spiral.GateTanh, 1.0)
		Expect(err).NotTo(HaveOccurred())
	})

	It("fixes zero", func() {
		Expect(gate.Apply(0)).To(BeZero())
	})

	It("is odd-symmetric", func() {
		for _, x := range []float64{0.1, 0.5, 1, 3, 10} {
			Expect(gate.Apply(-x)).To(BeNumerically("~", -gate.Apply(x), 1e-12))
		}
	})

	It("is bounded by the unit interval", func() {
		for _, x := range []float64{-1e6, -50, -1, 0, 1, 50, 1e6} {
			y := gate.Apply(x)
			Expect(y).To(BeNumerically(">=", -1))
			Expect(y).To(BeNumerically("<=", 1))
		}
	})

	It("preserves sign", func() {
		for _, x := range []float64{-5, -0.3, 0.3, 5} {
			Expect(math.Signbit(gate.Apply(x))).To(Equal(math.Signbit(x)))
		}
	})

	It("is monotone increasing", func() {
		prev := gate.Apply(-4)
		for x := -3.5; x <= 4; x += 0.5 {
			y := gate.Apply(x)
			Expect(y).To(BeNumerically(">", prev))
			prev = y
		}
	})

	Context("with lambda zero", func() {
		It("degenerates to the zero gate", func() {
			flat, err := spiral.NewGate(spiral.GateTanh, 0)
			Expect(err).NotTo(HaveOccurred())
			for _, x := range []float64{-10, -1, 0, 1, 10} {
				Expect(flat.Apply(x)).To(BeZero())
			}
		})
	})

	Context("with larger lambda", func() {
		It("responds more steeply near zero", func() {
			steep, err := spiral.NewGate(spiral.GateTanh, 5.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(steep.Apply(0.2)).To(BeNumerically(">", gate.Apply(0.2)))
		})
	})
})

var _ = Describe("DampedSineGate", func() {
	var gate spiral.Gate

	BeforeEach(func() {
		var err error
		gate, err = spiral.NewGate(spiral.GateDampedSine, 1.0)
		Expect(err).NotTo(HaveOccurred())
	})

	It("fixes zero", func() {
		Expect(gate.Apply(0)).To(BeZero())
	})

	It("is odd-symmetric", func() {
		for _, x := range []float64{0.5, 1, 2, 5} {
			Expect(gate.Apply(-x)).To(BeNumerically("~", -gate.Apply(x), 1e-12))
		}
	})

	It("decays for large inputs", func() {
		Expect(math.Abs(gate.Apply(20))).To(BeNumerically("<", 1e-6))
	})
})

var _ = Describe("SincGate", func() {
	var gate spiral.Gate

	BeforeEach(func() {
		var err error
		gate, err = spiral.NewGate(spiral.GateSinc, 1.0)
		Expect(err).NotTo(HaveOccurred())
	})

	It("is one at zero", func() {
		Expect(gate.Apply(0)).To(Equal(1.0))
	})

	It("is even-symmetric", func() {
		for _, x := range []float64{0.5, 1, 2, 5} {
			Expect(gate.Apply(-x)).To(BeNumerically("~", gate.Apply(x), 1e-12))
		}
	})

	It("is bounded by one in magnitude", func() {
		for x := -20.0; x <= 20; x += 0.25 {
			Expect(math.Abs(gate.Apply(x))).To(BeNumerically("<=", 1))
		}
	})
})

var _ = Describe("NewGate", func() {
	It("rejects unknown names", func() {
		_, err := spiral.NewGate("bogus", 1.0)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("unknown gate"))
	})

	It("lists the registered archetypes sorted", func() {
		Expect(spiral.Gates()).To(Equal([]string{
			spiral.GateDampedSine, spiral.GateSinc, spiral.GateTanh,
		}))
	})

	It("reports known names", func() {
		Expect(spiral.Known(spiral.GateTanh)).To(BeTrue())
		Expect(spiral.Known("bogus")).To(BeFalse())
	})
})

var _ = Describe("Ratio", func() {
	var ratio *spiral.Ratio

	BeforeEach(func() {
		ratio = spiral.NewRatio(1.6180339887, 0.05, 0.1, 0)
	})

	It("starts on the target", func() {
		Expect(ratio.At(0)).To(BeNumerically("~", 1.6180339887, 1e-12))
	})

	It("stays within epsilon of the target", func() {
		for t := 0.0; t <= 40; t += 0.05 {
			Expect(math.Abs(ratio.At(t) - 1.6180339887)).To(BeNumerically("<=", 0.05+1e-12))
		}
	})

	It("peaks coherence on the target", func() {
		Expect(ratio.Coherence(1.6180339887)).To(Equal(1.0))
		Expect(ratio.Coherence(1.7)).To(BeNumerically("<", 1.0))
		Expect(ratio.Coherence(1.5)).To(BeNumerically("<", 1.0))
	})

	It("is symmetric in coherence around the target", func() {
		Expect(ratio.Coherence(1.7)).To(BeNumerically("~", ratio.Coherence(1.6180339887*2-1.7), 1e-12))
	})
})
