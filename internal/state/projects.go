package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nishant152030/Project-manager-2/pkg/models"
)

// Projects are always read through their owner. A project that exists but
// belongs to someone else is reported as ErrNotFound.

// CreateProject inserts a project and sets its ID and CreatedAt.
func (db *DB) CreateProject(ctx context.Context, p *models.Project) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	res, err := db.Exec(ctx, `
		INSERT INTO projects (user_id, title, description, created_at)
		VALUES (?, ?, ?, ?)
	`, p.UserID, p.Title, nullString(p.Description), formatTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get project id: %w", err)
	}
	p.ID = id
	return nil
}

// ListProjects returns the user's projects in creation order.
func (db *DB) ListProjects(ctx context.Context, userID int64) ([]models.Project, error) {
	rows, err := db.Query(ctx, `
		SELECT id, user_id, title, description, created_at
		FROM projects WHERE user_id = ?
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var p models.Project
		var description sql.NullString
		var createdAt string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &description, &createdAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.Description = nullableString(description)
		p.CreatedAt, _ = parseTime(createdAt)
		projects = append(projects, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves one of the user's projects.
func (db *DB) GetProject(ctx context.Context, userID, id int64) (*models.Project, error) {
	row := db.QueryRow(ctx, `
		SELECT id, user_id, title, description, created_at
		FROM projects WHERE id = ? AND user_id = ?
	`, id, userID)

	var p models.Project
	var description sql.NullString
	var createdAt string
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &description, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	p.Description = nullableString(description)
	p.CreatedAt, _ = parseTime(createdAt)
	return &p, nil
}

// ProjectExists reports whether the user owns a project with the given ID.
func (db *DB) ProjectExists(ctx context.Context, userID, id int64) (bool, error) {
	var n int
	err := db.QueryRow(ctx, `
		SELECT COUNT(*) FROM projects WHERE id = ? AND user_id = ?
	`, id, userID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check project: %w", err)
	}
	return n > 0, nil
}

// DeleteProject removes one of the user's projects and, by cascade, its tasks.
func (db *DB) DeleteProject(ctx context.Context, userID, id int64) error {
	res, err := db.Exec(ctx, `
		DELETE FROM projects WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return requireAffected(res, "delete project")
}

// requireAffected converts a zero-row write into ErrNotFound.
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected: %w", op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
