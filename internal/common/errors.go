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

// Extraction error taxonomy. Every failure an extractor or the orchestrator can
// surface wraps one of these, so callers match with errors.Is.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrExtractionFailed    = errors.New("extraction failed")
	ErrPersistenceFailed   = errors.New("persistence failed")
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidInput        = errors.New("invalid input")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// UnsupportedFileTypef reports a tag outside the enumerated format set.
func UnsupportedFileTypef(format string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedFileType, format)
}

// ExtractionFailedf wraps an underlying engine error (corrupt file, unreadable
// encoding, OCR failure) so the cause stays inspectable.
func ExtractionFailedf(cause error) error {
	return fmt.Errorf("%w: %w", ErrExtractionFailed, cause)
}

// PersistenceFailedf wraps a durable-store write error.
func PersistenceFailedf(cause error) error {
	return fmt.Errorf("%w: %w", ErrPersistenceFailed, cause)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
