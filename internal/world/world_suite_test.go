package world

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestWorldSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "World Suite")
}

var _ = Describe("a populated world", func() {
	var (
		w    *World
		opts Options
	)

	BeforeEach(func() {
		opts = Options{
			Radius:   1,
			Span:     10000,
			NActin:   5,
			NActinin: 20,
			NMotors:  10,
			Seed:     7,
		}
		var err error
		w, err = Build(opts)
		Expect(err).NotTo(HaveOccurred())
	})

	It("conserves the protein population across steps", func() {
		before := len(w.Proteins())
		w.StepN(100)
		Expect(w.Proteins()).To(HaveLen(before))
	})

	It("keeps every protein inside its tract", func() {
		w.StepN(100)
		for _, p := range w.Proteins() {
			Expect(p.X()).To(BeNumerically(">=", 0), "protein %d", p.ID())
			Expect(p.X()+p.Length()).To(BeNumerically("<=", opts.Span+1e-9), "protein %d", p.ID())
		}
	})

	It("maintains reciprocal binding topology", func() {
		for i := 0; i < 100; i++ {
			w.StepDt(w.Options().Dt)
			Expect(w.Arena().CheckReciprocity()).To(Succeed())
		}
	})

	It("forms crosslinks and motor attachments over time", func() {
		var binds int
		for i := 0; i < 500; i++ {
			rep := w.StepDt(w.Options().Dt)
			binds += rep.Binds
		}
		Expect(binds).To(BeNumerically(">", 0))
	})

	It("reports identical trajectories from identical seeds", func() {
		other, err := Build(opts)
		Expect(err).NotTo(HaveOccurred())
		w.StepN(50)
		other.StepN(50)
		a, b := w.Snapshot(), other.Snapshot()
		Expect(a.Proteins).To(Equal(b.Proteins))
		Expect(a.Sites).To(Equal(b.Sites))
	})
})
