// Package settings is the scoped key/value settings store used by skill hosts.
//
// # Scopes
//
// Every setting lives in exactly one scope:
//
//   - global: (key)
//   - skill: (skill_id, key)
//   - user: (skill_id, user_id, key)
//
// Writing to a tuple that already exists replaces its value. User records
// (username, password, is_admin) are kept alongside and upserted by username.
//
// # Absent, null and value
//
// Point reads return (value, found, err):
//
//	v, found, err := s.GetGlobal(ctx, "theme")
//	// found == false            never written
//	// found == true, v == nil   written with a nil value
//	// found == true, v != nil   written with v
//
// Values are JSON-shaped: objects decode as map[string]any, arrays as []any and
// numbers as json.Number.
//
// # Errors
//
// Writes with a missing identifier fail with a *ValidationError
// (errors.Is(err, ErrValidation)) and leave the store unchanged. Reads never
// fail validation; a missing identifier simply reads as absent. Corrupt stored
// bytes surface as ErrDecode, and every call after Close returns ErrClosed.
// Backend errors are returned as-is, without retry.
//
// # Lifecycle
//
//	s, err := settings.Setup(ctx, settings.Config{File: path})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
// Setup may be called repeatedly on the same path as long as each handle is
// closed before the next is opened. Overlapping handles on one file are not
// supported.
package settings
