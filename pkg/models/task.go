package models

import "time"

// User is an account that owns projects.
type User struct {
	// ID is the database identifier of the user.
	ID int64 `json:"id"`
	// Username is the unique login name.
	Username string `json:"username"`
	// PasswordHash is the bcrypt hash of the password. Never serialized.
	PasswordHash string `json:"-"`
	// CreatedAt is when the account was registered.
	CreatedAt time.Time `json:"createdAt"`
}

// Project groups tasks for a single owner.
type Project struct {
	// ID is the database identifier of the project.
	ID int64 `json:"id"`
	// UserID is the owning user.
	UserID int64 `json:"-"`
	// Title is the short name of the project.
	Title string `json:"title"`
	// Description provides detailed information about the project, if any.
	Description *string `json:"description"`
	// CreatedAt is when the project was created.
	CreatedAt time.Time `json:"createdAt"`
}

// Task is a stored unit of work inside a project.
type Task struct {
	// ID is the database identifier of the task.
	ID int64 `json:"id"`
	// ProjectID is the project this task belongs to.
	ProjectID int64 `json:"projectId"`
	// Title is the short description of the task.
	Title string `json:"title"`
	// DueDate is when the task should be finished, if set.
	DueDate *time.Time `json:"dueDate"`
	// IsCompleted reports whether the task has been marked done.
	IsCompleted bool `json:"isCompleted"`
	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"createdAt"`
}

// Apply merges the non-nil fields of an update into the task.
func (t *Task) Apply(u UpdateTaskRequest) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.DueDate != nil {
		due := *u.DueDate
		t.DueDate = &due
	}
	if u.IsCompleted != nil {
		t.IsCompleted = *u.IsCompleted
	}
}
