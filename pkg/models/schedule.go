package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// dueDateLayouts are the accepted JSON forms of TaskSpec.DueDate. Layouts
// without a zone are read as UTC.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// TaskSpec describes one task in a scheduling request. Title is the key that
// other specs in the same request use to reference it.
type TaskSpec struct {
	// Title identifies the task within one request.
	Title string `json:"title" yaml:"title" validate:"required"`
	// EstimatedHours is the expected effort and must be positive.
	EstimatedHours float64 `json:"estimatedHours" yaml:"estimatedHours" validate:"gt=0"`
	// DueDate is when the task should be finished.
	DueDate time.Time `json:"dueDate" yaml:"dueDate" validate:"required"`
	// Dependencies lists titles that must be scheduled before this task.
	Dependencies []string `json:"dependencies" yaml:"dependencies"`
}

// UnmarshalJSON accepts a due date in RFC 3339, without a zone, or as a bare
// date. A null due date leaves the zero time for validation to reject.
func (s *TaskSpec) UnmarshalJSON(data []byte) error {
	type plain TaskSpec
	aux := struct {
		*plain
		DueDate json.RawMessage `json:"dueDate"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.DueDate = time.Time{}
	if len(aux.DueDate) == 0 || bytes.Equal(aux.DueDate, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(aux.DueDate, &raw); err != nil {
		return fmt.Errorf("dueDate must be a string: %w", err)
	}
	due, err := parseDueDate(raw)
	if err != nil {
		return err
	}
	s.DueDate = due
	return nil
}

func parseDueDate(s string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("dueDate %q is not a date (want YYYY-MM-DD or RFC 3339)", s)
}

// ScheduleRequest is an ordered set of task specs to be scheduled together.
type ScheduleRequest struct {
	Tasks []TaskSpec `json:"tasks" yaml:"tasks" validate:"required,dive"`
}

// Normalize fills defaults left out by the client: a missing dependency list
// becomes an empty one.
func (r *ScheduleRequest) Normalize() {
	for i := range r.Tasks {
		if r.Tasks[i].Dependencies == nil {
			r.Tasks[i].Dependencies = []string{}
		}
	}
}

// Validate checks field-level constraints. Referential integrity of
// dependencies is left to the scheduler.
func (r *ScheduleRequest) Validate() error {
	return validate.Struct(r)
}

// ScheduleResult is a computed execution order.
type ScheduleResult struct {
	// RecommendedOrder holds every input title exactly once.
	RecommendedOrder []string `json:"recommendedOrder"`
}
