package lqr

import (
	"github.com/san-kum/lqrplan/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// Problem is a finite-horizon LQR problem. Matrices are read, never
// modified.
type Problem struct {
	// State is the current state x0 (length n).
	State []float64
	// Target is reserved. The regulator drives the state to the origin;
	// a non-nil Target must have length n and is otherwise ignored.
	Target []float64

	Q mat.Matrix // n×n state cost, symmetric PSD
	R mat.Matrix // m×m action cost, symmetric PD
	A mat.Matrix // n×n state transition
	B mat.Matrix // n×m action transition

	// Qf is the n×n terminal state cost, symmetric PSD. Nil means Q.
	Qf mat.Matrix

	// Horizon is the number of control steps T.
	Horizon int
}

// FinalCost returns Qf, or Q when Qf is not set.
func (p *Problem) FinalCost() mat.Matrix {
	if p.Qf == nil {
		return p.Q
	}
	return p.Qf
}

// Plan is the result of a solve. All sequences are indexed by time step.
type Plan struct {
	// Controls holds u0..u(T-1).
	Controls []*mat.VecDense
	// Gains holds K0..K(T-1).
	Gains []*mat.Dense
	// CostToGo holds P0..PT. CostToGo[T] is a copy of Qf.
	CostToGo []*mat.Dense
	// States holds the predicted trajectory x0..xT.
	States []*mat.VecDense

	q, r, qf mat.Matrix
}

// Solve validates p and computes its optimal open-loop plan. On a
// validation failure no arithmetic is performed and the returned error
// wraps one of the package's sentinel errors.
func Solve(p Problem) (*Plan, error) {
	if _, _, err := p.dims(); err != nil {
		return nil, err
	}

	qf := p.FinalCost()
	costToGo := Riccati(p.Q, p.R, p.A, p.B, qf, p.Horizon)
	gains, controls, states := Rollout(p.R, p.A, p.B, costToGo, mat.NewVecDense(len(p.State), dynamo.State(p.State).Clone()))

	return &Plan{
		Controls: controls,
		Gains:    gains,
		CostToGo: costToGo,
		States:   states,
		q:        p.Q,
		r:        p.R,
		qf:       qf,
	}, nil
}

// Horizon returns T.
func (pl *Plan) Horizon() int {
	return len(pl.Controls)
}

// Actions returns the control sequence as plain slices.
func (pl *Plan) Actions() [][]float64 {
	out := make([][]float64, len(pl.Controls))
	for t, u := range pl.Controls {
		out[t] = vecSlice(u)
	}
	return out
}

// Trajectory returns the predicted states and controls.
func (pl *Plan) Trajectory() dynamo.Trajectory {
	tr := dynamo.Trajectory{
		States:   make([]dynamo.State, len(pl.States)),
		Controls: make([]dynamo.Control, len(pl.Controls)),
	}
	for t, x := range pl.States {
		tr.States[t] = vecSlice(x)
	}
	for t, u := range pl.Controls {
		tr.Controls[t] = vecSlice(u)
	}
	return tr
}

// StageCost returns x(t)'Q x(t) + u(t)'R u(t) for t < T.
func (pl *Plan) StageCost(t int) float64 {
	return mat.Inner(pl.States[t], pl.q, pl.States[t]) + mat.Inner(pl.Controls[t], pl.r, pl.Controls[t])
}

// TerminalCost returns x(T)'Qf x(T).
func (pl *Plan) TerminalCost() float64 {
	xT := pl.States[len(pl.States)-1]
	return mat.Inner(xT, pl.qf, xT)
}

// Cost returns the total predicted cost of the plan. For well-posed
// problems it equals x0'P0 x0.
func (pl *Plan) Cost() float64 {
	total := pl.TerminalCost()
	for t := range pl.Controls {
		total += pl.StageCost(t)
	}
	return total
}

func vecSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}
