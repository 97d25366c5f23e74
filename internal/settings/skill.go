// ABOUTME: Skill-scope settings operations
// ABOUTME: Settings owned by one skill, enumerable per skill or across all skills

package settings

import (
	"context"
	"errors"

	"github.com/2389/coven-settings/internal/keys"
)

// SkillEntry is one skill-scoped setting.
type SkillEntry struct {
	SkillID string `json:"skill_id"`
	Key     string `json:"key"`
	Value   any    `json:"value"`
}

// GetSkill returns the value skillID stores under key. found is false if either
// identifier is empty or the pair was never written.
func (s *Store) GetSkill(ctx context.Context, skillID, key string) (any, bool, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, false, err
	}
	defer release()

	if skillID == "" || key == "" {
		return nil, false, nil
	}
	return s.get(ctx, keys.Skill(skillID, key))
}

// ListSkill returns every setting of one skill. An empty skillID matches nothing.
func (s *Store) ListSkill(ctx context.Context, skillID string) ([]SkillEntry, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	if skillID == "" {
		return []SkillEntry{}, nil
	}
	return s.listSkill(ctx, keys.SkillPrefix(skillID))
}

// ListAllSkills returns the settings of every skill.
func (s *Store) ListAllSkills(ctx context.Context) ([]SkillEntry, error) {
	release, err := s.acquire()
	if err != nil {
		return nil, err
	}
	defer release()

	return s.listSkill(ctx, keys.SkillPrefix(""))
}

func (s *Store) listSkill(ctx context.Context, prefix []byte) ([]SkillEntry, error) {
	rows, err := s.scan(ctx, prefix)
	if err != nil {
		return nil, err
	}

	entries := make([]SkillEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, SkillEntry{SkillID: r.tuple.SkillID, Key: r.tuple.Key, Value: r.value})
	}
	return entries, nil
}

// SetSkill stores value under (skillID, key), replacing any previous value.
// A nil value stores null.
func (s *Store) SetSkill(ctx context.Context, skillID, key string, value any) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	if err := errors.Join(requireNonEmpty("skill_id", skillID), requireNonEmpty("key", key)); err != nil {
		return err
	}
	if err := s.put(ctx, keys.Skill(skillID, key), value); err != nil {
		return err
	}

	s.logger.Debug("set skill value", "skill_id", skillID, "key", key)
	return nil
}

// DeleteSkill removes (skillID, key). Removing a pair that was never written is a no-op.
func (s *Store) DeleteSkill(ctx context.Context, skillID, key string) error {
	release, err := s.acquire()
	if err != nil {
		return err
	}
	defer release()

	if err := errors.Join(requireNonEmpty("skill_id", skillID), requireNonEmpty("key", key)); err != nil {
		return err
	}
	return s.backend.Delete(ctx, keys.Skill(skillID, key))
}
