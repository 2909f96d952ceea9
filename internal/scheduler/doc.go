// Package scheduler orders a set of tasks so that every task comes after the
// tasks it depends on.
//
// The order is a topological sort of the dependency graph computed with
// Kahn's algorithm. Whenever several tasks are ready at the same time the one
// due earliest is emitted first, then the one with fewer estimated hours, then
// the one that appeared first in the request.
//
// A request fails as a whole. It is rejected when two tasks share a title,
// when a task names a dependency that is not part of the request, or when the
// dependencies form a cycle. No partial order is ever returned.
//
// Example usage:
//
//	result, err := scheduler.ComputeSchedule(req)
//	switch {
//	case errors.Is(err, scheduler.ErrUnknownDependency):
//		// fix the dependency list and resubmit
//	case errors.Is(err, scheduler.ErrCircularDependency):
//		// break the cycle and resubmit
//	}
//
// Scheduling holds no state between calls and is safe for concurrent use.
package scheduler
