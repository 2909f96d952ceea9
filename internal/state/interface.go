package state

import (
	"context"
	"io"

	"github.com/nishant152030/Project-manager-2/pkg/models"
)

// UserStore handles account persistence.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// ProjectStore handles owner-scoped project persistence.
type ProjectStore interface {
	CreateProject(ctx context.Context, p *models.Project) error
	ListProjects(ctx context.Context, userID int64) ([]models.Project, error)
	GetProject(ctx context.Context, userID, id int64) (*models.Project, error)
	ProjectExists(ctx context.Context, userID, id int64) (bool, error)
	DeleteProject(ctx context.Context, userID, id int64) error
}

// TaskStore handles task persistence. Reads and deletes by task ID are
// scoped to the owner of the enclosing project.
type TaskStore interface {
	CreateTask(ctx context.Context, t *models.Task) error
	ListTasks(ctx context.Context, projectID int64) ([]models.Task, error)
	UpdateTaskForUser(ctx context.Context, userID, id int64, apply func(*models.Task)) (*models.Task, error)
	DeleteTaskForUser(ctx context.Context, userID, id int64) error
}

// Migrator handles database schema migrations.
// Separating this allows clients to depend only on migration functionality.
type Migrator interface {
	// Migrate applies all pending schema migrations.
	Migrate() error
}

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is the full persistence surface used by the HTTP API.
// It composes focused sub-interfaces so handlers can depend on less.
type Store interface {
	io.Closer
	Pinger
	Migrator
	UserStore
	ProjectStore
	TaskStore
}

// Compile-time verification that DB implements all interfaces.
var (
	_ Store        = (*DB)(nil)
	_ Pinger       = (*DB)(nil)
	_ Migrator     = (*DB)(nil)
	_ UserStore    = (*DB)(nil)
	_ ProjectStore = (*DB)(nil)
	_ TaskStore    = (*DB)(nil)
)
