package lqr

import "gonum.org/v1/gonum/mat"

// Riccati runs the backward recursion
//
//	P(t-1) = Q + A'P(t)A - (A'P(t)B) (R + B'P(t)B)^+ (B'P(t)A)
//
// from P(T) = Qf down to P(0) and returns the whole sequence P0..PT.
// P(T) is a verbatim copy of qf. Every other P(t) is symmetrised after the
// update so the sequence stays exactly symmetric. Inputs are assumed to
// have passed validation.
func Riccati(q, r, a, b, qf mat.Matrix, horizon int) []*mat.Dense {
	p := make([]*mat.Dense, horizon+1)
	p[horizon] = mat.DenseCopyOf(qf)
	for t := horizon; t > 0; t-- {
		p[t-1] = riccatiStep(q, r, a, b, p[t])
	}
	return p
}

func riccatiStep(q, r, a, b mat.Matrix, next *mat.Dense) *mat.Dense {
	var atp, atpa, atpb mat.Dense
	atp.Mul(a.T(), next)
	atpa.Mul(&atp, a)
	atpb.Mul(&atp, b)

	var btp, btpa mat.Dense
	btp.Mul(b.T(), next)
	btpa.Mul(&btp, a)

	var left, corr mat.Dense
	left.Mul(&atpb, PseudoInverse(gram(r, b, next)))
	corr.Mul(&left, &btpa)

	var out mat.Dense
	out.Add(q, &atpa)
	out.Sub(&out, &corr)
	return mat.DenseCopyOf(symmetrize(&out))
}

// gram returns R + B'PB.
func gram(r, b mat.Matrix, p *mat.Dense) *mat.Dense {
	var btp, btpb mat.Dense
	btp.Mul(b.T(), p)
	btpb.Mul(&btp, b)

	var out mat.Dense
	out.Add(r, &btpb)
	return &out
}
