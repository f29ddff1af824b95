// Package errors defines the error taxonomy shared by the taxicli tools.
//
// The tools are deterministic batch programs, so the taxonomy is small:
// a missing input file, an invariant violation found by the validator, and
// missing or empty reference data needed by a downstream tool. Individual
// timestamp parse failures are not errors at all; they degrade to null
// values inside the dataset.
package errors

import (
	"fmt"
)

// ErrorType classifies an application error.
type ErrorType string

const (
	ErrTypeMissingInput ErrorType = "MISSING_INPUT"
	ErrTypeInvariant    ErrorType = "INVARIANT"
	ErrTypeConfig       ErrorType = "CONFIG"
	ErrTypeParsing      ErrorType = "PARSING"
	ErrTypeStorage      ErrorType = "STORAGE"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// MissingInputError reports that a source path does not exist. It is fatal
// and is surfaced before any processing begins.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

// NewMissingInput creates a MissingInputError for the given path.
func NewMissingInput(path string) *MissingInputError {
	return &MissingInputError{Path: path}
}

// InvariantViolationError reports that a sampled row violates a bound the
// curation pipeline was supposed to enforce. Rule names the specific check
// that failed, Line is the 1-based data row number in the sampled file.
type InvariantViolationError struct {
	Rule   string
	Line   int
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("invariant %q violated at row %d: %s", e.Rule, e.Line, e.Detail)
}

// NewInvariantViolation creates an InvariantViolationError.
func NewInvariantViolation(rule string, line int, detail string) *InvariantViolationError {
	return &InvariantViolationError{Rule: rule, Line: line, Detail: detail}
}

// ConfigurationError reports that reference data required by a tool is
// absent or empty. It is raised before any output is written.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// NewConfiguration creates a ConfigurationError.
func NewConfiguration(reason string) *ConfigurationError {
	return &ConfigurationError{Reason: reason}
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}
