package domain

import (
	"errors"
	"strings"
)

var (
	// ErrValidation indicates caller input validation failure.
	ErrValidation = errors.New("validation")
	// ErrNotFound indicates the referenced record or session does not exist.
	// Authorization mismatches map to this on purpose so existence never leaks.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a rejected status transition or a lost
	// compare-and-swap race.
	ErrConflict = errors.New("conflict")
)

// ValidationError tags an error as validation failure.
func ValidationError(msg string) error {
	return errors.Join(ErrValidation, errors.New(strings.TrimSpace(msg)))
}

// NotFoundError tags an error as a missing record.
func NotFoundError(msg string) error {
	return errors.Join(ErrNotFound, errors.New(strings.TrimSpace(msg)))
}

// ConflictError tags an error as a conflict failure.
func ConflictError(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}
