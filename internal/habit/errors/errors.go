package errors

import (
	"errors"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	return errors.As(err, &validationError)
}

var ErrInvalidCategory = NewValidationError("Invalid habit category")

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrLogNotFound   = errors.New("habit log not found")
	// ErrDuplicateLog maps the (habit_id, user_id, log_date) unique
	// constraint violation raised by the database.
	ErrDuplicateLog = errors.New("habit already logged for this date")
)
