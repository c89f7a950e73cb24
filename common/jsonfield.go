package common

import (
	"errors"
	"fmt"

	"github.com/valyala/fastjson"
)

// ErrInvalidDocument is returned when a reference data document does not match its schema.
var ErrInvalidDocument = errors.New("invalid reference document")

// RequiredFloat returns the number stored under key.
func RequiredFloat(v *fastjson.Value, key string) (float64, error) {
	f := v.Get(key)
	if f == nil {
		return 0, fmt.Errorf("%w: missing field %q", ErrInvalidDocument, key)
	}
	n, err := f.Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: field %q: %v", ErrInvalidDocument, key, err)
	}
	return n, nil
}

// OptionalFloat returns the number stored under key, or def when the key is absent.
func OptionalFloat(v *fastjson.Value, key string, def float64) (float64, error) {
	if v.Get(key) == nil {
		return def, nil
	}
	return RequiredFloat(v, key)
}

// RequiredString returns the non-empty string stored under key.
func RequiredString(v *fastjson.Value, key string) (string, error) {
	s := v.Get(key)
	if s == nil {
		return "", fmt.Errorf("%w: missing field %q", ErrInvalidDocument, key)
	}
	b, err := s.StringBytes()
	if err != nil {
		return "", fmt.Errorf("%w: field %q: %v", ErrInvalidDocument, key, err)
	}
	if len(b) == 0 {
		return "", fmt.Errorf("%w: field %q is empty", ErrInvalidDocument, key)
	}
	return string(b), nil
}

// OptionalString returns the string stored under key, or "" when absent or not a string.
func OptionalString(v *fastjson.Value, key string) string {
	return string(v.GetStringBytes(key))
}
