// ABOUTME: User record persistence for the settings store
// ABOUTME: Upserts users by username; ids are assigned once and kept across saves

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveUser creates or updates the user with user.Username.
// On the first save a new ID is assigned; later saves keep the existing ID and
// CreatedAt. user.ID, CreatedAt and UpdatedAt are set from the stored row.
func (s *SQLiteStore) SaveUser(ctx context.Context, user *User) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	id := user.ID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()

	query := `
		INSERT INTO users (id, username, password, is_admin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			password = excluded.password,
			is_admin = excluded.is_admin,
			updated_at = excluded.updated_at
		RETURNING id, created_at
	`

	var storedID, createdAt string
	err = s.db.QueryRowContext(ctx, query,
		id,
		user.Username,
		user.Password,
		boolToInt(user.IsAdmin),
		now.Format(time.RFC3339Nano),
		now.Format(time.RFC3339Nano),
	).Scan(&storedID, &createdAt)
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}

	user.ID = storedID
	user.UpdatedAt = now
	if parsed, err := time.Parse(time.RFC3339Nano, createdAt); err != nil {
		s.logger.Warn("failed to parse user created_at", "username", user.Username, "error", err)
	} else {
		user.CreatedAt = parsed
	}

	s.logger.Debug("saved user", "id", user.ID, "username", user.Username, "is_admin", user.IsAdmin)
	return nil
}

// GetUser retrieves a user by username.
// Returns ErrNotFound if the user doesn't exist.
func (s *SQLiteStore) GetUser(ctx context.Context, username string) (*User, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	query := `
		SELECT id, username, password, is_admin, created_at, updated_at
		FROM users
		WHERE username = ?
	`

	var user User
	var isAdmin int
	var createdAt, updatedAt string

	err = s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&isAdmin,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	user.IsAdmin = isAdmin != 0
	user.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	user.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	return &user, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
