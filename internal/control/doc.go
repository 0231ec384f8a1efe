// Package control applies a solved LQR plan to a system one step at a time.
//
// Controllers implement the [dynamo.Controller] interface; the time argument
// is the zero-based control step:
//
//   - [Schedule]: open-loop playback of the planned actions
//   - [Feedback]: applies the plan's time-varying gains to observed states
//
// Neither controller re-solves the problem. Callers that want
// receding-horizon behaviour solve again from the new state.
//
// # Usage
//
//	plan, _ := lqr.Solve(problem)
//	sched := control.NewSchedule(plan.Actions())
//	for u, ok := sched.Next(); ok; u, ok = sched.Next() {
//		apply(u)
//	}
package control
