package models

import "time"

// RegisterRequest is the body of an account registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Validate checks field-level constraints.
func (r *RegisterRequest) Validate() error {
	return validate.Struct(r)
}

// LoginRequest is the body of a login attempt.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Validate checks field-level constraints.
func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

// AuthResponse carries an issued access token.
type AuthResponse struct {
	Token string `json:"token"`
}

// CreateProjectRequest is the body for creating a project.
type CreateProjectRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// Validate checks field-level constraints.
func (r *CreateProjectRequest) Validate() error {
	return validate.Struct(r)
}

// CreateTaskRequest is the body for adding a task to a project.
type CreateTaskRequest struct {
	Title   string     `json:"title" validate:"required"`
	DueDate *time.Time `json:"dueDate"`
}

// Validate checks field-level constraints.
func (r *CreateTaskRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateTaskRequest is a partial update; nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	DueDate     *time.Time `json:"dueDate"`
	IsCompleted *bool      `json:"isCompleted"`
}

// Validate checks field-level constraints.
func (r *UpdateTaskRequest) Validate() error {
	return validate.Struct(r)
}
