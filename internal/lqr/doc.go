// Package lqr solves finite-horizon, discrete-time linear-quadratic
// regulation problems.
//
// Given a current state x0, dynamics x(t+1) = A*x(t) + B*u(t) and quadratic
// costs Q (states), R (actions) and Qf (terminal state), [Solve] returns the
// open-loop action sequence u0..u(T-1) minimising
//
//	sum_{t<T} x(t)'Q x(t) + u(t)'R u(t)  +  x(T)'Qf x(T)
//
// Every call runs three stages in order:
//
//   - validation of shapes and definiteness ([Problem.Validate])
//   - backward Riccati recursion producing P0..PT ([Riccati])
//   - forward gain computation and rollout from x0 ([Rollout])
//
// The regulator always drives the state towards the origin. [Problem.Target]
// is accepted for interface compatibility, checked for length and otherwise
// ignored; callers that want to regulate around another operating point must
// shift their coordinates before calling.
//
// # Numerics
//
// (R + B'PB) is inverted with an SVD-based Moore-Penrose pseudo-inverse, so a
// rank-deficient B or an ill-conditioned gram matrix never fails the solve.
// Definiteness is tested on eigenvalues with tolerance [DefiniteTol] scaled
// by the largest eigenvalue magnitude.
//
// # Thread Safety
//
// The package holds no state. Concurrent calls with independent inputs need
// no coordination.
package lqr
