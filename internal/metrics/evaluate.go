package metrics

import (
	"github.com/san-kum/lqrplan/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// Evaluate resets every metric, feeds it the trajectory step by step and
// returns the values keyed by metric name. The terminal state is observed
// with a nil action at t = len(Controls).
func Evaluate(tr dynamo.Trajectory, ms ...dynamo.Metric) (map[string]float64, error) {
	if err := tr.Validate(); err != nil {
		return nil, err
	}

	for _, m := range ms {
		m.Reset()
	}
	for t, u := range tr.Controls {
		for _, m := range ms {
			m.Observe(tr.States[t], u, float64(t))
		}
	}
	last := len(tr.States) - 1
	for _, m := range ms {
		m.Observe(tr.States[last], nil, float64(last))
	}

	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out, nil
}

// Default returns the metrics reported for every plan: total quadratic
// cost, its action share u'Ru, the terminal norm and the settling step for
// ±bound.
func Default(q, r, qf mat.Matrix, bound float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewQuadraticCost(q, r, qf),
		NewControlEffort(r),
		NewTerminalNorm(),
		NewSettling(bound),
	}
}
