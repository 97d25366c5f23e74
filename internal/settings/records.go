// ABOUTME: User record operations on the settings store
// ABOUTME: Upsert by username; passwords are stored exactly as supplied

package settings

import (
	"context"
	"errors"
	"time"

	"github.com/2389/coven-settings/internal/store"
)

// UserRecord is an account known to the host application. Password is opaque
// to this package: hash it before saving if it must not be stored in clear.
type UserRecord struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveUser inserts rec, or overwrites the record with the same username.
// rec.ID and the timestamps are filled in from the stored row.
func (s *Store) SaveUser(ctx context.Context, rec *UserRecord) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	if rec == nil {
		return &ValidationError{Field: "user", Reason: "record is required"}
	}
	if err := requireNonEmpty("username", rec.Username); err != nil {
		return err
	}

	u := &store.User{
		ID:       rec.ID,
		Username: rec.Username,
		Password: rec.Password,
		IsAdmin:  rec.IsAdmin,
	}
	if err := s.backend.SaveUser(ctx, u); err != nil {
		return err
	}

	rec.ID = u.ID
	rec.CreatedAt = u.CreatedAt
	rec.UpdatedAt = u.UpdatedAt

	s.logger.Debug("saved user record", "username", rec.Username, "is_admin", rec.IsAdmin)
	return nil
}

// GetUser returns the record saved under username. found is false if there is none.
func (s *Store) GetUser(ctx context.Context, username string) (*UserRecord, bool, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, false, err
	}
	defer release()

	if username == "" {
		return nil, false, nil
	}

	u, err := s.backend.GetUser(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &UserRecord{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.Password,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}, true, nil
}
