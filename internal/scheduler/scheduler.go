package scheduler

import (
	"container/heap"

	"github.com/nishant152030/Project-manager-2/pkg/models"
)

// Scheduler computes recommended execution orders.
// The zero value is not usable; create one with New.
type Scheduler struct {
	// debugLog is an optional logging function.
	debugLog func(format string, args ...interface{})
}

// New creates a Scheduler with logging disabled.
func New() *Scheduler {
	return &Scheduler{
		debugLog: func(format string, args ...interface{}) {},
	}
}

// SetDebugLog sets the debug logging function.
func (s *Scheduler) SetDebugLog(fn func(format string, args ...interface{})) {
	if fn != nil {
		s.debugLog = fn
	}
}

// ComputeSchedule returns every task title in an order that respects all
// dependencies, choosing among ready tasks by earliest due date, then fewest
// estimated hours, then request position.
//
// The request is not modified. Errors wrap ErrDuplicateTitle,
// ErrUnknownDependency or ErrCircularDependency.
func (s *Scheduler) ComputeSchedule(req models.ScheduleRequest) (models.ScheduleResult, error) {
	tasks := req.Tasks
	s.debugLog("[scheduler.ComputeSchedule] scheduling %d tasks", len(tasks))

	g, err := buildGraph(tasks)
	if err != nil {
		s.debugLog("[scheduler.ComputeSchedule] rejected: %v", err)
		return models.ScheduleResult{}, err
	}
	s.debugLog("[scheduler.ComputeSchedule] graph has %d edges", g.edgeCount())

	ready := make(readyQueue, 0, len(tasks))
	for i, t := range tasks {
		if g.inDegree[i] == 0 {
			ready = append(ready, readyItem{index: i, due: t.DueDate, hours: t.EstimatedHours})
		}
	}
	heap.Init(&ready)

	order := make([]string, 0, len(tasks))
	for ready.Len() > 0 {
		item := heap.Pop(&ready).(readyItem)
		order = append(order, g.titles[item.index])

		for _, d := range g.dependents[item.index] {
			g.inDegree[d]--
			if g.inDegree[d] == 0 {
				t := tasks[d]
				heap.Push(&ready, readyItem{index: d, due: t.DueDate, hours: t.EstimatedHours})
			}
		}
	}

	if len(order) != len(tasks) {
		unresolved := make([]string, 0, len(tasks)-len(order))
		for i, deg := range g.inDegree {
			if deg > 0 {
				unresolved = append(unresolved, g.titles[i])
			}
		}
		s.debugLog("[scheduler.ComputeSchedule] cycle: %d tasks unresolved", len(unresolved))
		return models.ScheduleResult{}, &CycleError{Unresolved: unresolved}
	}

	s.debugLog("[scheduler.ComputeSchedule] order: %v", order)
	return models.ScheduleResult{RecommendedOrder: order}, nil
}

// ComputeSchedule schedules req with a default Scheduler.
func ComputeSchedule(req models.ScheduleRequest) (models.ScheduleResult, error) {
	return New().ComputeSchedule(req)
}
