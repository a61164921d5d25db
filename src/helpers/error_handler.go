package helpers

import (
	"fmt"
	"strings"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type StocksError struct {
	Message string
	Cause   error
}

func (e *StocksError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StocksError) Unwrap() error {
	return e.Cause
}

// Distinct error types for errors.As checks
type ConfigurationError struct{ StocksError }
type DatabaseError struct{ StocksError }

// ValidationError lists every field that failed validation, by JSON name.
type ValidationError struct {
	StocksError
	Fields []string
}

// -----------------------------------------------------------------------------

func NewConfigurationError(message string, cause error) *ConfigurationError {
	return &ConfigurationError{StocksError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------

func NewDatabaseError(message string, cause error) *DatabaseError {
	return &DatabaseError{StocksError{Message: message, Cause: cause}}
}

// -----------------------------------------------------------------------------

func NewValidationError(fields []string) *ValidationError {
	return &ValidationError{
		StocksError: StocksError{
			Message: fmt.Sprintf("validation failed for fields: %s", strings.Join(fields, ", ")),
		},
		Fields: fields,
	}
}
