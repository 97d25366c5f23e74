// ABOUTME: Physical key encoding for the three settings scopes (global, skill, user)
// ABOUTME: Length-prefixed components keep keys collision-free and prefix-scannable

package keys

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrMalformedKey is returned when a physical key cannot be decoded into a Tuple.
var ErrMalformedKey = errors.New("malformed key")

// Scope identifies the namespace level a key is stored at.
type Scope byte

// Scope tags are the first byte of every physical key.
const (
	ScopeGlobal Scope = 'g'
	ScopeSkill  Scope = 's'
	ScopeUser   Scope = 'u'
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopeSkill:
		return "skill"
	case ScopeUser:
		return "user"
	default:
		return fmt.Sprintf("scope(%#x)", byte(s))
	}
}

// Tuple is the logical identity of a stored setting.
// SkillID is empty for global keys; UserID is empty unless Scope is ScopeUser.
type Tuple struct {
	Scope   Scope
	SkillID string
	UserID  string
	Key     string
}

// Global encodes a global-scope key.
func Global(key string) []byte {
	return appendComponents([]byte{byte(ScopeGlobal)}, key)
}

// Skill encodes a skill-scope key.
func Skill(skillID, key string) []byte {
	return appendComponents([]byte{byte(ScopeSkill)}, skillID, key)
}

// User encodes a user-scope key.
func User(skillID, userID, key string) []byte {
	return appendComponents([]byte{byte(ScopeUser)}, skillID, userID, key)
}

// GlobalPrefix matches every global key.
func GlobalPrefix() []byte {
	return []byte{byte(ScopeGlobal)}
}

// SkillPrefix matches every key of one skill, or of all skills when skillID is empty.
// An empty skill ID is never a valid stored component, so the two cases cannot overlap.
func SkillPrefix(skillID string) []byte {
	p := []byte{byte(ScopeSkill)}
	if skillID == "" {
		return p
	}
	return appendComponents(p, skillID)
}

// UserPrefix matches every key one user has for one skill.
func UserPrefix(skillID, userID string) []byte {
	return appendComponents([]byte{byte(ScopeUser)}, skillID, userID)
}

// PrefixEnd returns the smallest key greater than every key with the given prefix,
// or nil if no such key exists (the prefix is empty or all 0xff bytes).
func PrefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// Decode parses a physical key back into its Tuple.
func Decode(b []byte) (Tuple, error) {
	if len(b) == 0 {
		return Tuple{}, fmt.Errorf("%w: empty", ErrMalformedKey)
	}

	var want int
	scope := Scope(b[0])
	switch scope {
	case ScopeGlobal:
		want = 1
	case ScopeSkill:
		want = 2
	case ScopeUser:
		want = 3
	default:
		return Tuple{}, fmt.Errorf("%w: unknown scope tag %#x", ErrMalformedKey, b[0])
	}

	parts, err := splitComponents(b[1:])
	if err != nil {
		return Tuple{}, err
	}
	if len(parts) != want {
		return Tuple{}, fmt.Errorf("%w: %s key has %d components, want %d", ErrMalformedKey, scope, len(parts), want)
	}

	t := Tuple{Scope: scope}
	switch scope {
	case ScopeGlobal:
		t.Key = parts[0]
	case ScopeSkill:
		t.SkillID, t.Key = parts[0], parts[1]
	case ScopeUser:
		t.SkillID, t.UserID, t.Key = parts[0], parts[1], parts[2]
	}
	return t, nil
}

func appendComponents(dst []byte, parts ...string) []byte {
	for _, p := range parts {
		dst = binary.AppendUvarint(dst, uint64(len(p)))
		dst = append(dst, p...)
	}
	return dst
}

func splitComponents(b []byte) ([]string, error) {
	var parts []string
	for len(b) > 0 {
		n, size := binary.Uvarint(b)
		if size <= 0 {
			return nil, fmt.Errorf("%w: bad length prefix", ErrMalformedKey)
		}
		b = b[size:]
		if n > uint64(len(b)) {
			return nil, fmt.Errorf("%w: component length %d exceeds remaining %d bytes", ErrMalformedKey, n, len(b))
		}
		parts = append(parts, string(b[:n]))
		b = b[n:]
	}
	return parts, nil
}
