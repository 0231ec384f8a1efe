package metrics

import (
	"github.com/san-kum/lqrplan/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// QuadraticCost accumulates x'Qx + u'Ru per step. An observation without an
// action is the terminal state and is charged x'Qf x instead.
type QuadraticCost struct {
	q, r, qf mat.Matrix
	sum      float64
}

func NewQuadraticCost(q, r, qf mat.Matrix) *QuadraticCost {
	if qf == nil {
		qf = q
	}
	return &QuadraticCost{q: q, r: r, qf: qf}
}

func (c *QuadraticCost) Name() string {
	return "cost"
}

func (c *QuadraticCost) Observe(x dynamo.State, u dynamo.Control, t float64) {
	xv := mat.NewVecDense(len(x), x.Clone())
	if len(u) == 0 {
		c.sum += mat.Inner(xv, c.qf, xv)
		return
	}
	uv := mat.NewVecDense(len(u), u.Clone())
	c.sum += mat.Inner(xv, c.q, xv) + mat.Inner(uv, c.r, uv)
}

func (c *QuadraticCost) Value() float64 {
	return c.sum
}

func (c *QuadraticCost) Reset() {
	c.sum = 0
}

// TerminalNorm is the Euclidean norm of the last observed state.
type TerminalNorm struct {
	last float64
}

func NewTerminalNorm() *TerminalNorm {
	return &TerminalNorm{}
}

func (n *TerminalNorm) Name() string {
	return "terminal_norm"
}

func (n *TerminalNorm) Observe(x dynamo.State, u dynamo.Control, t float64) {
	n.last = x.Norm()
}

func (n *TerminalNorm) Value() float64 {
	return n.last
}

func (n *TerminalNorm) Reset() {
	n.last = 0
}
