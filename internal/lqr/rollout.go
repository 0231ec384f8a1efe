package lqr

import "gonum.org/v1/gonum/mat"

// Rollout turns the cost-to-go sequence P0..PT into per-step gains and
// applies them open-loop from x0:
//
//	K(t)   = -(R + B'P(t+1)B)^+ B'P(t+1)A
//	u(t)   = K(t) x(t)
//	x(t+1) = A x(t) + B u(t)
//
// It returns T gains, T controls and the T+1 predicted states x0..xT.
func Rollout(r, a, b mat.Matrix, costToGo []*mat.Dense, x0 mat.Vector) (gains []*mat.Dense, controls, states []*mat.VecDense) {
	horizon := len(costToGo) - 1
	n, m := b.Dims()

	gains = make([]*mat.Dense, horizon)
	controls = make([]*mat.VecDense, horizon)
	states = make([]*mat.VecDense, horizon+1)

	states[0] = mat.VecDenseCopyOf(x0)
	for t := 0; t < horizon; t++ {
		gains[t] = Gain(r, a, b, costToGo[t+1])

		u := mat.NewVecDense(m, nil)
		u.MulVec(gains[t], states[t])
		controls[t] = u

		var bu mat.VecDense
		bu.MulVec(b, u)
		next := mat.NewVecDense(n, nil)
		next.MulVec(a, states[t])
		next.AddVec(next, &bu)
		states[t+1] = next
	}
	return gains, controls, states
}

// Gain returns K = -(R + B'PB)^+ B'PA for the cost-to-go P of the next step.
func Gain(r, a, b mat.Matrix, p *mat.Dense) *mat.Dense {
	var btp, btpa mat.Dense
	btp.Mul(b.T(), p)
	btpa.Mul(&btp, a)

	var k mat.Dense
	k.Mul(PseudoInverse(gram(r, b, p)), &btpa)
	k.Scale(-1, &k)
	return &k
}
