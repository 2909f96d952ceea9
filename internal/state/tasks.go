package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nishant152030/Project-manager-2/pkg/models"
)

const taskColumns = "t.id, t.project_id, t.title, t.due_date, t.is_completed, t.created_at"

// CreateTask inserts a task and sets its ID and CreatedAt.
// The caller is responsible for checking project ownership first.
func (db *DB) CreateTask(ctx context.Context, t *models.Task) error {
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	res, err := db.Exec(ctx, `
		INSERT INTO tasks (project_id, title, due_date, is_completed, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, t.ProjectID, t.Title, formatNullableTime(t.DueDate), t.IsCompleted, formatTime(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get task id: %w", err)
	}
	t.ID = id
	return nil
}

// ListTasks returns the tasks of a project in creation order.
func (db *DB) ListTasks(ctx context.Context, projectID int64) ([]models.Task, error) {
	rows, err := db.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t WHERE t.project_id = ?
		ORDER BY t.id
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTaskForUser loads a task whose project is owned by userID, passes it
// to apply, and writes back the mutable fields in one transaction. It returns
// the stored result, or ErrNotFound when the task is missing or not visible.
func (db *DB) UpdateTaskForUser(ctx context.Context, userID, id int64, apply func(*models.Task)) (*models.Task, error) {
	var task *models.Task
	err := db.Transaction(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			SELECT `+taskColumns+`
			FROM tasks t JOIN projects p ON p.id = t.project_id
			WHERE t.id = ? AND p.user_id = ?
		`, id, userID)

		var err error
		task, err = scanTask(row)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get task: %w", err)
		}

		apply(task)

		res, err := tx.ExecContext(ctx, `
			UPDATE tasks SET title = ?, due_date = ?, is_completed = ?
			WHERE id = ?
		`, task.Title, formatNullableTime(task.DueDate), task.IsCompleted, task.ID)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		return requireAffected(res, "update task")
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTaskForUser removes a task whose project is owned by userID.
func (db *DB) DeleteTaskForUser(ctx context.Context, userID, id int64) error {
	res, err := db.Exec(ctx, `
		DELETE FROM tasks
		WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE user_id = ?)
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireAffected(res, "delete task")
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (*models.Task, error) {
	var t models.Task
	var dueDate sql.NullString
	var createdAt string
	if err := r.Scan(&t.ID, &t.ProjectID, &t.Title, &dueDate, &t.IsCompleted, &createdAt); err != nil {
		return nil, err
	}

	t.DueDate = parseNullableTime(dueDate)
	t.CreatedAt, _ = parseTime(createdAt)
	return &t, nil
}
