package dynamo

import (
	"math"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

type Control []float64

func (u Control) Clone() Control {
	c := make(Control, len(u))
	copy(c, u)
	return c
}

// Controller maps an observed state at step t to a control action.
type Controller interface {
	Compute(x State, t float64) Control
}

type Metric interface {
	Name() string
	Observe(x State, u Control, t float64)
	Value() float64
	Reset()
}

// Trajectory is a state sequence x0..xT with the controls u0..u(T-1) that
// produced it.
type Trajectory struct {
	States   []State
	Controls []Control
}

// Validate checks that every state is finite and that the sequence lengths
// line up (one more state than controls).
func (tr *Trajectory) Validate() error {
	if len(tr.States) != len(tr.Controls)+1 {
		return ErrDimensionMismatch
	}
	for i, x := range tr.States {
		if !x.IsValid() {
			return &StepError{Step: i, State: x, Wrapped: ErrInvalidState}
		}
	}
	return nil
}
