package apperrors

import (
	"errors"
	"fmt"
	"io"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess      = 0 // Indicates successful execution.
	ExitErrorGeneric = 1 // Indicates a generic error.
	ExitErrorConfig  = 4 // Indicates a configuration error.
)

// Sentinel errors for the coordinator lifecycle.
var (
	// ErrNoWorkers is returned when an aggregate is requested from a
	// coordinator that owns zero workers.
	ErrNoWorkers = errors.New("no workers to select from")
	// ErrNotRun is returned when results are read before the join barrier.
	ErrNotRun = errors.New("workers have not been run")
	// ErrAlreadyRun is returned when RunAll is invoked a second time.
	ErrAlreadyRun = errors.New("workers have already been run")
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsConfigError reports whether err is, or wraps, a configuration or
// validation error.
func IsConfigError(err error) bool {
	var cfgErr ConfigError
	var valErr ValidationError
	return errors.As(err, &cfgErr) || errors.As(err, &valErr)
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case IsConfigError(err):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleError prints err to out and returns the matching exit code.
// A nil error prints nothing.
func HandleError(err error, out io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	if IsConfigError(err) {
		fmt.Fprintf(out, "Configuration error: %v\n", err)
	} else {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return ExitCodeFor(err)
}
