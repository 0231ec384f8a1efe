package lqr_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/lqrplan/internal/lqr"
	"gonum.org/v1/gonum/mat"
)

var _ = Describe("Validate", func() {
	var p lqr.Problem

	BeforeEach(func() {
		p = doubleIntegrator(10)
	})

	It("accepts a well-formed problem", func() {
		Expect(p.Validate()).To(Succeed())
	})

	DescribeTable("rejects ill-formed problems",
		func(mutate func(*lqr.Problem), want error, arg string) {
			mutate(&p)
			err := p.Validate()
			Expect(err).To(MatchError(want))

			var ve *lqr.ValidationError
			Expect(errors.As(err, &ve)).To(BeTrue())
			Expect(ve.Arg).To(Equal(arg))

			_, solveErr := lqr.Solve(p)
			Expect(solveErr).To(MatchError(want))
		},
		Entry("empty state", func(p *lqr.Problem) { p.State = nil },
			lqr.ErrInvalidType, lqr.ArgCurrentState),
		Entry("NaN in state", func(p *lqr.Problem) { p.State = []float64{math.NaN(), 0} },
			lqr.ErrInvalidType, lqr.ArgCurrentState),
		Entry("target of wrong length", func(p *lqr.Problem) { p.Target = []float64{0} },
			lqr.ErrShapeMismatch, lqr.ArgTargetState),
		Entry("missing Q", func(p *lqr.Problem) { p.Q = nil },
			lqr.ErrInvalidType, lqr.ArgStateCost),
		Entry("typed nil Q", func(p *lqr.Problem) { var d *mat.Dense; p.Q = d },
			lqr.ErrInvalidType, lqr.ArgStateCost),
		Entry("Q not symmetric at tiny scale", func(p *lqr.Problem) { p.Q = mat.NewDense(2, 2, []float64{1e-9, 5e-9, 0, 1e-9}) },
			lqr.ErrNotPositiveSemiDefinite, lqr.ArgStateCost),
		Entry("typed nil vector as Q", func(p *lqr.Problem) { var v *mat.VecDense; p.Q = v },
			lqr.ErrInvalidType, lqr.ArgStateCost),
		Entry("Q of wrong size", func(p *lqr.Problem) { p.Q = eye(3) },
			lqr.ErrShapeMismatch, lqr.ArgStateCost),
		Entry("Q not symmetric", func(p *lqr.Problem) { p.Q = mat.NewDense(2, 2, []float64{1, 0.5, 0, 1}) },
			lqr.ErrNotPositiveSemiDefinite, lqr.ArgStateCost),
		Entry("Q indefinite", func(p *lqr.Problem) { p.Q = mat.NewDense(2, 2, []float64{1, 0, 0, -1}) },
			lqr.ErrNotPositiveSemiDefinite, lqr.ArgStateCost),
		Entry("Q with Inf", func(p *lqr.Problem) { p.Q = mat.NewDense(2, 2, []float64{math.Inf(1), 0, 0, 1}) },
			lqr.ErrInvalidType, lqr.ArgStateCost),
		Entry("missing R", func(p *lqr.Problem) { p.R = nil },
			lqr.ErrInvalidType, lqr.ArgActionCost),
		Entry("R only semi-definite", func(p *lqr.Problem) { p.R = mat.NewDense(1, 1, []float64{0}) },
			lqr.ErrNotPositiveDefinite, lqr.ArgActionCost),
		Entry("typed nil triangular R", func(p *lqr.Problem) { var tri *mat.TriDense; p.R = tri },
			lqr.ErrInvalidType, lqr.ArgActionCost),
		Entry("typed nil diagonal R", func(p *lqr.Problem) { var d *mat.DiagDense; p.R = d },
			lqr.ErrInvalidType, lqr.ArgActionCost),
		Entry("R not square", func(p *lqr.Problem) { p.R = mat.NewDense(1, 2, []float64{1, 1}) },
			lqr.ErrShapeMismatch, lqr.ArgActionCost),
		Entry("A of wrong size", func(p *lqr.Problem) { p.A = eye(3) },
			lqr.ErrShapeMismatch, lqr.ArgStateTransition),
		Entry("A not square", func(p *lqr.Problem) { p.A = mat.NewDense(2, 3, nil) },
			lqr.ErrShapeMismatch, lqr.ArgStateTransition),
		Entry("transpose of typed nil A", func(p *lqr.Problem) { var d *mat.Dense; p.A = mat.Transpose{Matrix: d} },
			lqr.ErrInvalidType, lqr.ArgStateTransition),
		Entry("missing B", func(p *lqr.Problem) { p.B = nil },
			lqr.ErrInvalidType, lqr.ArgActionTransition),
		Entry("B with wrong row count", func(p *lqr.Problem) { p.B = mat.NewDense(3, 1, nil) },
			lqr.ErrShapeMismatch, lqr.ArgActionTransition),
		Entry("B columns disagree with R", func(p *lqr.Problem) { p.B = mat.NewDense(2, 2, nil) },
			lqr.ErrShapeMismatch, lqr.ArgActionTransition),
		Entry("zero horizon", func(p *lqr.Problem) { p.Horizon = 0 },
			lqr.ErrInvalidHorizon, lqr.ArgTimeHorizon),
		Entry("negative horizon", func(p *lqr.Problem) { p.Horizon = -3 },
			lqr.ErrInvalidHorizon, lqr.ArgTimeHorizon),
		Entry("Qf of wrong size", func(p *lqr.Problem) { p.Qf = eye(1) },
			lqr.ErrShapeMismatch, lqr.ArgFinalStateCost),
		Entry("Qf indefinite", func(p *lqr.Problem) { p.Qf = mat.NewDense(2, 2, []float64{0, 1, 1, 0}) },
			lqr.ErrNotPositiveSemiDefinite, lqr.ArgFinalStateCost),
	)

	It("reports the first failure in argument order", func() {
		p.Q = nil
		p.Horizon = 0
		Expect(p.Validate()).To(MatchError(lqr.ErrInvalidType))
	})

	It("names the argument in the message", func() {
		p.Horizon = 0
		Expect(p.Validate().Error()).To(ContainSubstring(lqr.ArgTimeHorizon))
	})
})
