package util

import (
	"errors"
	"fmt"
)

// ErrorKind classifies generator failures for exit-code mapping.
type ErrorKind string

const (
	// KindEnvironment marks failures detected before any token work:
	// missing or unusable signing configuration.
	KindEnvironment ErrorKind = "ENVIRONMENT"
	// KindSigning marks failures while producing or persisting tokens.
	KindSigning ErrorKind = "SIGNING"
)

// RunError standardizes generator errors.
type RunError struct {
	Kind    ErrorKind
	Message string
	Remedy  string
	Err     error
}

func (e *RunError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for the error kind.
func (e *RunError) ExitCode() int {
	if e.Kind == KindEnvironment {
		return 2
	}
	return 1
}

// NewEnvironmentError reports an unusable runtime environment along
// with remediation guidance for the operator.
func NewEnvironmentError(message, remedy string) error {
	return &RunError{Kind: KindEnvironment, Message: message, Remedy: remedy}
}

// NewSigningError wraps a failure during token production.
func NewSigningError(message string, err error) error {
	return &RunError{Kind: KindSigning, Message: message, Err: err}
}

// ToRunError converts generic errors to RunError.
func ToRunError(err error) *RunError {
	if err == nil {
		return nil
	}
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr
	}
	return &RunError{Kind: KindSigning, Message: "token generation failed", Err: err}
}
