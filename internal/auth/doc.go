// Package auth provides password hashing for coven-settings user records.
//
// # Passwords
//
// The settings store persists whatever password string it is given. Hosts
// are expected to hash before saving:
//
//	hash, err := auth.HashPassword(plain)
//	if err != nil {
//	    return err
//	}
//	err = store.SaveUser(ctx, &settings.UserRecord{Username: name, Password: hash})
//
// Hashes are bcrypt with the default cost. CheckPassword compares a stored
// hash against a candidate and returns ErrPasswordMismatch on failure.
package auth
