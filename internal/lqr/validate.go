package lqr

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Argument names used in validation errors.
const (
	ArgCurrentState     = "current_state"
	ArgTargetState      = "target_state"
	ArgStateCost        = "state_cost_matrix"
	ArgActionCost       = "action_cost_matrix"
	ArgStateTransition  = "state_transition_matrix"
	ArgActionTransition = "action_transition_matrix"
	ArgTimeHorizon      = "time_horizon"
	ArgFinalStateCost   = "final_state_cost_matrix"
)

// Validate checks every precondition of the problem and returns the first
// violation as a *ValidationError. Checks run in a fixed order: current
// state, target, Q, R, A, B, horizon, Qf. No arithmetic beyond the
// definiteness tests is performed.
func (p *Problem) Validate() error {
	_, _, err := p.dims()
	return err
}

// dims validates p and returns the state and action dimensions.
func (p *Problem) dims() (n, m int, err error) {
	n = len(p.State)
	if n == 0 {
		return 0, 0, invalid(ArgCurrentState, ErrInvalidType, "must be a non-empty vector")
	}
	for _, v := range p.State {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, 0, invalid(ArgCurrentState, ErrInvalidType, "must hold finite values")
		}
	}

	if p.Target != nil && len(p.Target) != n {
		return 0, 0, invalid(ArgTargetState, ErrShapeMismatch, "expected length %d, got %d", n, len(p.Target))
	}

	if err := checkCost(ArgStateCost, p.Q, n); err != nil {
		return 0, 0, err
	}

	if err := checkMatrix(ArgActionCost, p.R); err != nil {
		return 0, 0, err
	}
	if r, c := p.R.Dims(); r != c {
		return 0, 0, invalid(ArgActionCost, ErrShapeMismatch, "must be square, got %dx%d", r, c)
	}
	if !IsPositiveDefinite(p.R) {
		return 0, 0, invalid(ArgActionCost, ErrNotPositiveDefinite, "")
	}

	if err := checkMatrix(ArgStateTransition, p.A); err != nil {
		return 0, 0, err
	}
	if r, c := p.A.Dims(); r != n || c != n {
		return 0, 0, invalid(ArgStateTransition, ErrShapeMismatch, "expected %dx%d, got %dx%d", n, n, r, c)
	}

	if err := checkMatrix(ArgActionTransition, p.B); err != nil {
		return 0, 0, err
	}
	br, bc := p.B.Dims()
	if br != n {
		return 0, 0, invalid(ArgActionTransition, ErrShapeMismatch, "expected %d rows, got %d", n, br)
	}
	m = bc
	if rr, _ := p.R.Dims(); rr != m {
		return 0, 0, invalid(ArgActionTransition, ErrShapeMismatch,
			"has %d columns but %s is %dx%d", m, ArgActionCost, rr, rr)
	}

	if p.Horizon <= 0 {
		return 0, 0, invalid(ArgTimeHorizon, ErrInvalidHorizon, "got %d", p.Horizon)
	}

	if p.Qf != nil {
		if err := checkCost(ArgFinalStateCost, p.Qf, n); err != nil {
			return 0, 0, err
		}
	}

	return n, m, nil
}

func checkMatrix(arg string, m mat.Matrix) error {
	if isEmpty(m) {
		return invalid(arg, ErrInvalidType, "must be a non-empty matrix")
	}
	if !isFinite(m) {
		return invalid(arg, ErrInvalidType, "must hold finite values")
	}
	return nil
}

// checkCost validates an n×n symmetric PSD cost matrix.
func checkCost(arg string, m mat.Matrix, n int) error {
	if err := checkMatrix(arg, m); err != nil {
		return err
	}
	if r, c := m.Dims(); r != n || c != n {
		return invalid(arg, ErrShapeMismatch, "expected %dx%d, got %dx%d", n, n, r, c)
	}
	if !IsPositiveSemiDefinite(m) {
		return invalid(arg, ErrNotPositiveSemiDefinite, "")
	}
	return nil
}
