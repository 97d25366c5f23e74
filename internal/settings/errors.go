// ABOUTME: Error values returned by the settings store
// ABOUTME: Validation failures, closed handles and re-exported decode failures

package settings

import (
	"errors"
	"fmt"

	"github.com/2389/coven-settings/internal/codec"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrClosed is returned by every operation on a Store after Close.
	ErrClosed = errors.New("settings store is closed")

	// ErrDecode is matched when a stored value cannot be decoded.
	ErrDecode = codec.ErrDecode
)

// ValidationError reports a missing or empty identifying argument to a write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func requireNonEmpty(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "must be a non-empty string"}
	}
	return nil
}
