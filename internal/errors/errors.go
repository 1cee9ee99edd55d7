package errors

import (
	"errors"
	"fmt"
)

// Exit codes for edge-launcher
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitLookupFailed     = 2
	ExitIndexAPI         = 3
	ExitConfigError      = 4
	ExitDockerError      = 5
	ExitEdgeCLIError     = 6
	ExitChecksumMismatch = 7
	ExitRequirements     = 8
)

// LauncherError is the base error type for edge-launcher
type LauncherError struct {
	Code    int
	Message string
	Cause   error
}

func (e *LauncherError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *LauncherError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code for this error
func (e *LauncherError) ExitCode() int {
	return e.Code
}

// New creates a new LauncherError
func New(code int, message string) *LauncherError {
	return &LauncherError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a LauncherError
func Wrap(code int, message string, cause error) *LauncherError {
	return &LauncherError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// LookupFailed returns an error for a key path that could not be resolved
func LookupFailed(path string, cause error) *LauncherError {
	return Wrap(ExitLookupFailed, fmt.Sprintf("could not look up %q", path), cause)
}

// IndexAPI returns an error for index API requests
func IndexAPI(op string, cause error) *LauncherError {
	return Wrap(ExitIndexAPI, fmt.Sprintf("index API %s failed", op), cause)
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *LauncherError {
	return Wrap(ExitConfigError, message, cause)
}

// DockerError returns an error for docker operations
func DockerError(op string, cause error) *LauncherError {
	return Wrap(ExitDockerError, fmt.Sprintf("docker %s failed", op), cause)
}

// EdgeCLIError returns an error for Edge CLI download or invocation
func EdgeCLIError(message string, cause error) *LauncherError {
	return Wrap(ExitEdgeCLIError, message, cause)
}

// ChecksumMismatch returns an error for a downloaded binary that fails verification
func ChecksumMismatch(cause error) *LauncherError {
	return Wrap(ExitChecksumMismatch, "Edge CLI not correctly downloaded", cause)
}

// RequirementsFailed returns an error when system checks do not pass
func RequirementsFailed(summary string) *LauncherError {
	return New(ExitRequirements, fmt.Sprintf("system checks must pass before running the Edge CLI: %s", summary))
}

// ValidationError returns an error for input validation failures
func ValidationError(message string) *LauncherError {
	return New(ExitGeneralError, message)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	var launcherErr *LauncherError
	if errors.As(err, &launcherErr) {
		return launcherErr.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
