package metrics

import (
	"github.com/san-kum/lqrplan/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// ControlEffort is the action share of the plan cost, Σ u'Ru. The terminal
// observation carries no action and adds nothing.
type ControlEffort struct {
	r   mat.Matrix
	sum float64
}

func NewControlEffort(r mat.Matrix) *ControlEffort {
	return &ControlEffort{r: r}
}

func (c *ControlEffort) Name() string {
	return "control_effort"
}

func (c *ControlEffort) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(u) == 0 {
		return
	}
	uv := mat.NewVecDense(len(u), u.Clone())
	c.sum += mat.Inner(uv, c.r, uv)
}

func (c *ControlEffort) Value() float64 {
	return c.sum
}

func (c *ControlEffort) Reset() {
	c.sum = 0
}
