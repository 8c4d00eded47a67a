package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")

	// ErrExtractionFailed means the extraction collaborator returned no
	// parseable JSON order. Expected during ordinary chat; callers treat it
	// as "no order yet" rather than unwinding.
	ErrExtractionFailed = errors.New("order extraction failed")

	// ErrLedgerCommitFailed means the order ledger rejected or could not
	// receive a confirmed order. The confirmation stands; the failure is
	// reported to the customer, not retried.
	ErrLedgerCommitFailed = errors.New("ledger commit failed")

	// ErrReplyFailed means the conversational collaborator call failed.
	ErrReplyFailed = errors.New("reply generation failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
