package scheduler

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownDependency indicates a task references a title that is not in the request.
	ErrUnknownDependency = errors.New("unknown dependency")
	// ErrCircularDependency indicates the dependencies contain at least one cycle.
	ErrCircularDependency = errors.New("circular dependency detected in tasks")
	// ErrDuplicateTitle indicates two tasks in one request share a title.
	ErrDuplicateTitle = errors.New("duplicate task title")
)

// UnknownDependencyError names the task and the missing dependency title.
type UnknownDependencyError struct {
	Task       string
	Dependency string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("task '%s' has unknown dependency '%s'", e.Task, e.Dependency)
}

func (e *UnknownDependencyError) Unwrap() error { return ErrUnknownDependency }

// CycleError reports a circular dependency. Unresolved lists, in request
// order, the tasks that could not be scheduled; it includes the tasks on a
// cycle and every task that transitively depends on one.
type CycleError struct {
	Unresolved []string
}

func (e *CycleError) Error() string {
	if len(e.Unresolved) == 0 {
		return ErrCircularDependency.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCircularDependency.Error(), strings.Join(e.Unresolved, ", "))
}

func (e *CycleError) Unwrap() error { return ErrCircularDependency }

// DuplicateTitleError names the title that appears more than once.
type DuplicateTitleError struct {
	Title string
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("task title '%s' appears more than once", e.Title)
}

func (e *DuplicateTitleError) Unwrap() error { return ErrDuplicateTitle }

// IsRequestError reports whether err was caused by the request contents
// rather than by a fault in the caller.
func IsRequestError(err error) bool {
	return errors.Is(err, ErrUnknownDependency) ||
		errors.Is(err, ErrCircularDependency) ||
		errors.Is(err, ErrDuplicateTitle)
}
