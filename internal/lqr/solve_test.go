package lqr_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/lqrplan/internal/lqr"
	"gonum.org/v1/gonum/mat"
)

func eye(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}

// doubleIntegrator is position/velocity with dt = 0.1 and a force input.
func doubleIntegrator(horizon int) lqr.Problem {
	return lqr.Problem{
		State:   []float64{1, 0},
		Q:       eye(2),
		R:       mat.NewDense(1, 1, []float64{0.1}),
		A:       mat.NewDense(2, 2, []float64{1, 0.1, 0, 1}),
		B:       mat.NewDense(2, 1, []float64{0.005, 0.1}),
		Horizon: horizon,
	}
}

var _ = Describe("Solve", func() {
	It("matches the scalar closed form", func() {
		one := func() *mat.Dense { return mat.NewDense(1, 1, []float64{1}) }
		plan, err := lqr.Solve(lqr.Problem{
			State:   []float64{5},
			Q:       one(),
			R:       one(),
			A:       one(),
			B:       one(),
			Qf:      one(),
			Horizon: 1,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Actions()).To(Equal([][]float64{{-2.5}}))
		Expect(plan.Gains[0].At(0, 0)).To(Equal(-0.5))
	})

	It("gives the same controls when every cost is scaled down", func() {
		tiny := func() *mat.Dense { return mat.NewDense(1, 1, []float64{1e-9}) }
		one := func() *mat.Dense { return mat.NewDense(1, 1, []float64{1}) }
		plan, err := lqr.Solve(lqr.Problem{
			State:   []float64{5},
			Q:       tiny(),
			R:       tiny(),
			A:       one(),
			B:       one(),
			Qf:      tiny(),
			Horizon: 1,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(plan.Actions()).To(HaveLen(1))
		Expect(plan.Actions()[0][0]).To(BeNumerically("~", -2.5, 1e-12))
	})

	It("accepts a small but positive definite R", func() {
		p := doubleIntegrator(5)
		p.R = mat.NewDense(1, 1, []float64{1e-9})
		Expect(p.Validate()).To(Succeed())
	})

	DescribeTable("returns exactly horizon controls",
		func(horizon int) {
			plan, err := lqr.Solve(doubleIntegrator(horizon))
			Expect(err).NotTo(HaveOccurred())
			Expect(plan.Controls).To(HaveLen(horizon))
			Expect(plan.Gains).To(HaveLen(horizon))
			Expect(plan.CostToGo).To(HaveLen(horizon + 1))
			Expect(plan.States).To(HaveLen(horizon + 1))
			for _, u := range plan.Controls {
				Expect(u.Len()).To(Equal(1))
			}
		},
		Entry("one step", 1),
		Entry("ten steps", 10),
		Entry("two hundred steps", 200),
	)

	It("keeps the terminal cost-to-go bit-for-bit", func() {
		p := doubleIntegrator(25)
		p.Qf = mat.NewDense(2, 2, []float64{3.0000000001, 0.1, 0.1, 7})
		plan, err := lqr.Solve(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(plan.CostToGo[25], p.Qf)).To(BeTrue())
	})

	It("defaults the terminal cost to Q", func() {
		p := doubleIntegrator(5)
		plan, err := lqr.Solve(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(mat.Equal(plan.CostToGo[5], p.Q)).To(BeTrue())
	})

	It("produces symmetric cost-to-go matrices", func() {
		p := doubleIntegrator(50)
		p.A = mat.NewDense(2, 2, []float64{1.1, 0.3, -0.2, 0.95})
		plan, err := lqr.Solve(p)
		Expect(err).NotTo(HaveOccurred())
		for _, P := range plan.CostToGo {
			Expect(mat.EqualApprox(P, P.T(), 1e-9)).To(BeTrue())
			Expect(lqr.IsPositiveSemiDefinite(P)).To(BeTrue())
		}
	})

	It("drives the state towards the origin", func() {
		plan, err := lqr.Solve(doubleIntegrator(100))
		Expect(err).NotTo(HaveOccurred())
		x0 := mat.Norm(plan.States[0], 2)
		xT := mat.Norm(plan.States[100], 2)
		Expect(xT).To(BeNumerically("<", 0.1*x0))
	})

	It("predicts a cost equal to x0'P0x0", func() {
		plan, err := lqr.Solve(doubleIntegrator(40))
		Expect(err).NotTo(HaveOccurred())
		want := mat.Inner(plan.States[0], plan.CostToGo[0], plan.States[0])
		Expect(plan.Cost()).To(BeNumerically("~", want, 1e-9))
	})

	It("leaves the caller's state untouched", func() {
		p := doubleIntegrator(10)
		plan, err := lqr.Solve(p)
		Expect(err).NotTo(HaveOccurred())
		plan.States[0].SetVec(0, 42)
		Expect(p.State).To(Equal([]float64{1, 0}))
	})

	It("ignores the target state", func() {
		p := doubleIntegrator(10)
		base, err := lqr.Solve(p)
		Expect(err).NotTo(HaveOccurred())

		p.Target = []float64{3, -1}
		shifted, err := lqr.Solve(p)
		Expect(err).NotTo(HaveOccurred())
		Expect(shifted.Actions()).To(Equal(base.Actions()))
	})

	Context("with a degenerate action channel", func() {
		It("returns zero gains and replays the free dynamics", func() {
			a := mat.NewDense(2, 2, []float64{0.9, 0.2, 0, 0.8})
			plan, err := lqr.Solve(lqr.Problem{
				State:   []float64{1, -2},
				Q:       eye(2),
				R:       eye(2),
				A:       a,
				B:       mat.NewDense(2, 2, nil),
				Horizon: 6,
			})
			Expect(err).NotTo(HaveOccurred())
			for t := 0; t < 6; t++ {
				Expect(mat.Norm(plan.Gains[t], 1)).To(BeZero())
				Expect(mat.Norm(plan.Controls[t], 1)).To(BeZero())

				var free mat.VecDense
				free.MulVec(a, plan.States[t])
				Expect(mat.EqualApprox(&free, plan.States[t+1], 1e-12)).To(BeTrue())
			}
		})
	})

	Context("with a rank-deficient action channel", func() {
		It("stays finite", func() {
			plan, err := lqr.Solve(lqr.Problem{
				State:   []float64{1, 1},
				Q:       eye(2),
				R:       mat.NewDense(2, 2, []float64{1e-6, 0, 0, 1e-6}),
				A:       eye(2),
				B:       mat.NewDense(2, 2, []float64{1, 1, 1, 1}),
				Horizon: 8,
			})
			Expect(err).NotTo(HaveOccurred())
			for _, u := range plan.Actions() {
				for _, v := range u {
					Expect(math.IsNaN(v) || math.IsInf(v, 0)).To(BeFalse())
				}
			}
		})
	})

	It("exposes the trajectory as plain vectors", func() {
		plan, err := lqr.Solve(doubleIntegrator(3))
		Expect(err).NotTo(HaveOccurred())
		tr := plan.Trajectory()
		Expect(tr.States).To(HaveLen(4))
		Expect(tr.Controls).To(HaveLen(3))
		Expect(tr.Validate()).To(Succeed())
	})
})
