package control

import (
	"github.com/san-kum/lqrplan/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

var _ dynamo.Controller = (*Feedback)(nil)

// Feedback applies time-varying gains u = K(t)*x to the observed state. It
// uses the gains of a single solve and does not re-plan; past the last gain
// it returns zero actions.
type Feedback struct {
	K []*mat.Dense
}

func NewFeedback(gains []*mat.Dense) *Feedback {
	return &Feedback{K: gains}
}

func (f *Feedback) Compute(x dynamo.State, t float64) dynamo.Control {
	if len(f.K) == 0 {
		return dynamo.Control{}
	}
	m, n := f.K[0].Dims()
	step := int(t)
	if step < 0 || step >= len(f.K) || len(x) != n {
		return make(dynamo.Control, m)
	}

	var u mat.VecDense
	u.MulVec(f.K[step], mat.NewVecDense(n, x.Clone()))
	out := make(dynamo.Control, m)
	for i := range out {
		out[i] = u.AtVec(i)
	}
	return out
}
