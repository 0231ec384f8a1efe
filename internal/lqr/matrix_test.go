package lqr_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/lqrplan/internal/lqr"
	"gonum.org/v1/gonum/mat"
)

var _ = Describe("PseudoInverse", func() {
	It("inverts a non-singular matrix", func() {
		m := mat.NewDense(2, 2, []float64{4, 7, 2, 6})
		var prod mat.Dense
		prod.Mul(m, lqr.PseudoInverse(m))
		Expect(mat.EqualApprox(&prod, eye(2), 1e-12)).To(BeTrue())
	})

	It("returns zeros for the zero matrix", func() {
		pinv := lqr.PseudoInverse(mat.NewDense(2, 3, nil))
		r, c := pinv.Dims()
		Expect([]int{r, c}).To(Equal([]int{3, 2}))
		Expect(mat.Norm(pinv, 1)).To(BeZero())
	})

	It("satisfies the Penrose condition on a singular matrix", func() {
		m := mat.NewDense(2, 2, []float64{1, 2, 2, 4})
		pinv := lqr.PseudoInverse(m)

		var mp, mpm mat.Dense
		mp.Mul(m, pinv)
		mpm.Mul(&mp, m)
		Expect(mat.EqualApprox(&mpm, m, 1e-12)).To(BeTrue())
	})
})

var _ = Describe("definiteness tests", func() {
	DescribeTable("classify matrices",
		func(data []float64, sym, psd, pd bool) {
			m := mat.NewDense(2, 2, data)
			Expect(lqr.IsSymmetric(m)).To(Equal(sym))
			Expect(lqr.IsPositiveSemiDefinite(m)).To(Equal(psd))
			Expect(lqr.IsPositiveDefinite(m)).To(Equal(pd))
		},
		Entry("identity", []float64{1, 0, 0, 1}, true, true, true),
		Entry("rank one", []float64{1, 1, 1, 1}, true, true, false),
		Entry("zero", []float64{0, 0, 0, 0}, true, true, false),
		Entry("indefinite", []float64{1, 2, 2, 1}, true, false, false),
		Entry("asymmetric", []float64{2, 1, 0, 2}, false, false, false),
		Entry("rounding noise", []float64{1, 1e-12, 0, -1e-10}, true, true, false),
		Entry("tiny scale identity", []float64{1e-9, 0, 0, 1e-9}, true, true, true),
		Entry("tiny scale asymmetric", []float64{1e-9, 5e-9, 0, 1e-9}, false, false, false),
		Entry("huge scale rounding noise", []float64{1e9, 1e-3, 0, 1e9}, true, true, true),
		Entry("huge scale asymmetric", []float64{1e9, 1e3, 0, 1e9}, false, false, false),
	)
})
