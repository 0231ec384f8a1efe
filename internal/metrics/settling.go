package metrics

import (
	"math"

	"github.com/san-kum/lqrplan/internal/dynamo"
)

// Settling reports the first step from which every later observed state
// keeps all of its components within ±bound. A trajectory that is inside
// the bound from the start settles at 0. One whose last state is still
// outside reports that step + 1, i.e. it does not settle within the horizon.
type Settling struct {
	bound   float64
	outside float64
}

func NewSettling(bound float64) *Settling {
	return &Settling{bound: bound, outside: -1}
}

func (s *Settling) Name() string {
	return "settling_step"
}

func (s *Settling) Observe(x dynamo.State, u dynamo.Control, t float64) {
	for _, v := range x {
		if math.Abs(v) > s.bound {
			s.outside = math.Max(s.outside, t)
			return
		}
	}
}

func (s *Settling) Value() float64 {
	return s.outside + 1
}

func (s *Settling) Reset() {
	s.outside = -1
}
