// Package dynamo provides the core vector types shared by the planner.
//
//   - [State]: vector representing system state
//   - [Control]: vector representing a control action
//   - [Controller]: maps an observed state to a control action
//   - [Metric]: accumulates a scalar over a state/control trajectory
//
// The linear-quadratic solver itself lives in package lqr; the types here
// are what its consumers (controllers, metrics, storage) exchange.
package dynamo
