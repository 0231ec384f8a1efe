package control

import (
	"github.com/san-kum/lqrplan/internal/dynamo"
)

var _ dynamo.Controller = (*Schedule)(nil)

// Schedule replays a precomputed action sequence. Past the end of the
// sequence it returns zero actions.
type Schedule struct {
	actions []dynamo.Control
	dim     int
	next    int
}

func NewSchedule(actions [][]float64) *Schedule {
	s := &Schedule{actions: make([]dynamo.Control, len(actions))}
	for i, u := range actions {
		s.actions[i] = dynamo.Control(u).Clone()
	}
	if len(actions) > 0 {
		s.dim = len(actions[0])
	}
	return s
}

// Len returns the number of planned steps.
func (s *Schedule) Len() int {
	return len(s.actions)
}

// Compute returns the action planned for step int(t). The observed state is
// ignored.
func (s *Schedule) Compute(x dynamo.State, t float64) dynamo.Control {
	step := int(t)
	if step < 0 || step >= len(s.actions) {
		return make(dynamo.Control, s.dim)
	}
	return s.actions[step].Clone()
}

// Next returns the next planned action and advances the cursor. ok is false
// once the plan is exhausted.
func (s *Schedule) Next() (u dynamo.Control, ok bool) {
	if s.next >= len(s.actions) {
		return nil, false
	}
	u = s.actions[s.next].Clone()
	s.next++
	return u, true
}

// Remaining returns the number of actions Next has not yet returned.
func (s *Schedule) Remaining() int {
	return len(s.actions) - s.next
}

// Reset rewinds the Next cursor.
func (s *Schedule) Reset() {
	s.next = 0
}
