// ABOUTME: User object handed in by hosts to address per-user settings
// ABOUTME: Normalises string and integer identifiers to one key component

package settings

import (
	"encoding/json"
	"strconv"
)

// User identifies the user a per-user setting belongs to. ID may be a non-empty
// string, any integer type, or a json.Number; integers are keyed by their decimal
// form, so User{ID: 7} and User{ID: "7"} address the same settings.
type User struct {
	ID any `json:"user_id"`
}

// key returns the normalised identifier, or false if the user lacks one.
func (u User) key() (string, bool) {
	var s string
	switch id := u.ID.(type) {
	case string:
		s = id
	case json.Number:
		s = id.String()
	case int:
		s = strconv.FormatInt(int64(id), 10)
	case int8:
		s = strconv.FormatInt(int64(id), 10)
	case int16:
		s = strconv.FormatInt(int64(id), 10)
	case int32:
		s = strconv.FormatInt(int64(id), 10)
	case int64:
		s = strconv.FormatInt(id, 10)
	case uint:
		s = strconv.FormatUint(uint64(id), 10)
	case uint8:
		s = strconv.FormatUint(uint64(id), 10)
	case uint16:
		s = strconv.FormatUint(uint64(id), 10)
	case uint32:
		s = strconv.FormatUint(uint64(id), 10)
	case uint64:
		s = strconv.FormatUint(id, 10)
	default:
		return "", false
	}
	return s, s != ""
}
