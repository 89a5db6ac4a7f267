package models

import (
	"errors"
	"fmt"
)

// Custom errors
var (
	// ErrInvalidRecord is the parent of every record-level invariant violation.
	// Use errors.Is(err, ErrInvalidRecord) to detect any of them.
	ErrInvalidRecord = errors.New("invalid game record")

	ErrUnknownFavorite          = fmt.Errorf("%w: unrecognized favorite", ErrInvalidRecord)
	ErrContradictoryTotalsFlags = fmt.Errorf("%w: exactly one of over/under/push must be set", ErrInvalidRecord)
	ErrTotalRunsMismatch        = fmt.Errorf("%w: total runs must equal home plus away score", ErrInvalidRecord)

	// ErrEmptyInput is returned when an aggregation pass receives no records
	ErrEmptyInput = errors.New("no game records to aggregate")

	ErrDuplicateGameID = errors.New("duplicate game id")
	ErrNotFound        = errors.New("record not found")
)

// ValidationError carries a machine-readable code alongside the message.
// The loader uses these for per-field parse failures.
type ValidationError struct {
	Code    string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError creates a coded validation error
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}
