// ABOUTME: Per-user-per-skill settings operations
// ABOUTME: Values addressed by (skill, user, key); unknown users or skills read as absent

package settings

import (
	"context"
	"errors"

	"github.com/2389/coven-settings/internal/keys"
)

// UserEntry is one per-user setting. UserID is the normalised identifier.
type UserEntry struct {
	SkillID string `json:"skill_id"`
	UserID  string `json:"user_id"`
	Key     string `json:"key"`
	Value   any    `json:"value"`
}

// GetValue returns the value user stores under key for skillID. found is false
// when any identifier is missing or the tuple was never written.
func (s *Store) GetValue(ctx context.Context, skillID string, user User, key string) (any, bool, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, false, err
	}
	defer release()

	userID, ok := user.key()
	if skillID == "" || key == "" || !ok {
		return nil, false, nil
	}
	return s.get(ctx, keys.User(skillID, userID, key))
}

// ListValues returns every setting user has for skillID.
func (s *Store) ListValues(ctx context.Context, skillID string, user User) ([]UserEntry, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	userID, ok := user.key()
	if skillID == "" || !ok {
		return []UserEntry{}, nil
	}

	rows, err := s.scan(ctx, keys.UserPrefix(skillID, userID))
	if err != nil {
		return nil, err
	}

	entries := make([]UserEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, UserEntry{
			SkillID: r.tuple.SkillID,
			UserID:  r.tuple.UserID,
			Key:     r.tuple.Key,
			Value:   r.value,
		})
	}
	return entries, nil
}

// SetValue stores value under (skillID, user, key), replacing any previous
// value. A nil value stores null.
func (s *Store) SetValue(ctx context.Context, skillID string, user User, key string, value any) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	userID, err := validateUserTuple(skillID, user, key)
	if err != nil {
		return err
	}
	if err := s.put(ctx, keys.User(skillID, userID, key), value); err != nil {
		return err
	}

	s.logger.Debug("set user value", "skill_id", skillID, "user_id", userID, "key", key)
	return nil
}

// DeleteValue removes (skillID, user, key). Removing a tuple that was never
// written is a no-op.
func (s *Store) DeleteValue(ctx context.Context, skillID string, user User, key string) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	userID, err := validateUserTuple(skillID, user, key)
	if err != nil {
		return err
	}
	return s.backend.Delete(ctx, keys.User(skillID, userID, key))
}

func validateUserTuple(skillID string, user User, key string) (string, error) {
	userID, ok := user.key()
	var userErr error
	if !ok {
		userErr = &ValidationError{Field: "user_id", Reason: "user must carry a non-empty string or integer identifier"}
	}
	if err := errors.Join(requireNonEmpty("skill_id", skillID), userErr, requireNonEmpty("key", key)); err != nil {
		return "", err
	}
	return userID, nil
}
