package shortpath

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched (via errors.Is) by every error returned when a path can't be validated.
	ErrNotFound = errors.New("path not found")

	// ErrInvalidPattern is returned when a shortcut name filter can't be compiled.
	ErrInvalidPattern = errors.New("invalid shortcut pattern")
)

// NotFoundError is returned when a path could not be resolved or registered.
type NotFoundError struct {
	// Path as originally requested by the caller (before any resolution).
	Path string
	// Stale is true when the path resolved but its target no longer exists on disk. This reflects
	// the filesystem at canonicalization time, not at registration time.
	Stale bool
	// Cause is the underlying filesystem error, if any.
	Cause error
}

var _ error = (*NotFoundError)(nil)

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("could not locate %q", e.Path)
	if e.Stale {
		msg += " (target no longer exists)"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Is implements errors.Is.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Unwrap implements errors.Unwrap.
func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

func notFound(path string) error {
	return &NotFoundError{Path: path}
}
