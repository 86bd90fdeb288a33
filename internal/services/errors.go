package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")

	// ErrForbidden marks authorization failures. Wrapped with a
	// human-readable reason via forbiddenf; match with errors.Is.
	ErrForbidden = errors.New("forbidden")

	// ErrUserHasTasks is returned when deleting a user that tasks still
	// reference.
	ErrUserHasTasks = errors.New("user still has tasks assigned or created")
)

func forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

// ValidationError carries every violated field, not just the first.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// fieldErrors accumulates field-level validation failures.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	f[field] = msg
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
