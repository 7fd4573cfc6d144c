package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds. Every error returned by this package wraps exactly one of them,
// so callers can map failures with errors.Is without knowing each sentinel.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func validationf(format string, args ...interface{}) error {
	return newError(ErrValidation, fmt.Sprintf(format, args...))
}

var (
	ErrUserNotFound    = newError(ErrNotFound, "user not found")
	ErrProjectNotFound = newError(ErrNotFound, "project not found")
	ErrTaskNotFound    = newError(ErrNotFound, "task not found")
	ErrLogNotFound     = newError(ErrNotFound, "log entry not found")

	ErrUsernameTaken        = newError(ErrConflict, "username already exists")
	ErrTaskAlreadyAssigned  = newError(ErrConflict, "task is already assigned to another project")
	ErrTaskAlreadyInProject = newError(ErrConflict, "task is already added to this project")
	ErrUserAlreadyInProject = newError(ErrConflict, "user is already added to the project")
	ErrTaskCompleted        = newError(ErrConflict, "task is already completed")
	ErrLogCompleted         = newError(ErrConflict, "log entry is already completed")

	ErrPasswordTooShort   = newError(ErrValidation, "password too short")
	ErrInvalidTaskStatus  = newError(ErrValidation, "invalid task status")
	ErrStatusRegression   = newError(ErrValidation, "task status can only move forward")
	ErrTaskNotInProject   = newError(ErrValidation, "task is not part of this project")
	ErrHoursExceedPlanned = newError(ErrValidation, "spent hours exceed the remaining hours of the task")

	ErrNotProjectMember = newError(ErrForbidden, "user is not a member of this project")
	ErrNotLogOwner      = newError(ErrForbidden, "log entry belongs to another user")

	ErrInvalidCredentials = newError(ErrUnauthorized, "wrong credentials")
	ErrInvalidToken       = newError(ErrUnauthorized, "invalid or expired token")
)

// notFound translates gorm.ErrRecordNotFound into the given sentinel and wraps any
// other error with the action that failed.
func notFound(err error, sentinel error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// conflict translates gorm.ErrDuplicatedKey into the given sentinel and wraps any
// other error with the action that failed.
func conflict(err error, sentinel error, action string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return sentinel
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
