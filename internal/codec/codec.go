// ABOUTME: Value codec for stored settings, distinguishes stored null from a JSON value
// ABOUTME: Absence is never encoded; it is the backend key not existing

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
)

// ErrDecode is matched by every error returned from Decode.
var ErrDecode = errors.New("decoding stored value")

// Tag bytes prefix every encoded value.
const (
	tagNull byte = 0x00
	tagJSON byte = 0x01
)

// DecodeError reports stored bytes that could not be turned back into a value.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrDecode, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrDecode, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDecode) match.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Encode serializes v. A nil value, or a typed nil pointer/map/slice/interface, encodes as null.
func Encode(v any) ([]byte, error) {
	if isNil(v) {
		return []byte{tagNull}, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding value: %w", err)
	}
	if bytes.Equal(data, []byte("null")) {
		// json.Marshaler implementations may still produce null.
		return []byte{tagNull}, nil
	}

	out := make([]byte, 0, len(data)+1)
	out = append(out, tagJSON)
	return append(out, data...), nil
}

// Decode inverts Encode. Numbers come back as json.Number so no precision is lost;
// objects come back as map[string]any and arrays as []any.
func Decode(b []byte) (any, error) {
	if len(b) == 0 {
		return nil, &DecodeError{Reason: "empty payload"}
	}

	switch b[0] {
	case tagNull:
		if len(b) != 1 {
			return nil, &DecodeError{Reason: fmt.Sprintf("null marker followed by %d bytes", len(b)-1)}
		}
		return nil, nil
	case tagJSON:
		return decodeJSON(b[1:])
	default:
		return nil, &DecodeError{Reason: fmt.Sprintf("unknown tag %#x", b[0])}
	}
}

// DecodeInto decodes b into the value pointed to by dst. A stored null leaves dst untouched.
func DecodeInto(b []byte, dst any) error {
	if len(b) == 0 {
		return &DecodeError{Reason: "empty payload"}
	}
	switch b[0] {
	case tagNull:
		if len(b) != 1 {
			return &DecodeError{Reason: fmt.Sprintf("null marker followed by %d bytes", len(b)-1)}
		}
		return nil
	case tagJSON:
		if err := json.Unmarshal(b[1:], dst); err != nil {
			return &DecodeError{Reason: "invalid json", Err: err}
		}
		return nil
	default:
		return &DecodeError{Reason: fmt.Sprintf("unknown tag %#x", b[0])}
	}
}

func decodeJSON(payload []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &DecodeError{Reason: "invalid json", Err: err}
	}
	if v == nil {
		// A JSON null under the value tag is never written by Encode.
		return nil, &DecodeError{Reason: "json null under value tag"}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &DecodeError{Reason: "trailing data after value"}
	}
	return v, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
