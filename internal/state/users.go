package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nishant152030/Project-manager-2/pkg/models"
)

// CreateUser inserts a user and sets its ID and CreatedAt.
// Returns ErrConflict if the username is taken.
func (db *DB) CreateUser(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	res, err := db.Exec(ctx, `
		INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
	`, u.Username, u.PasswordHash, formatTime(u.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %q: %w", u.Username, ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("get user id: %w", err)
	}
	u.ID = id
	return nil
}

// GetUserByUsername retrieves a user by login name.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	row := db.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users WHERE username = ?
	`, username)
	return scanUser(row)
}

// GetUser retrieves a user by ID.
func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	row := db.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM users WHERE id = ?
	`, id)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var createdAt string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	u.CreatedAt, _ = parseTime(createdAt)
	return &u, nil
}

// isUniqueViolation reports whether err is an SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
