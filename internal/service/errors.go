package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the Orchestrator. Callers check them with
// errors.Is.
var (
	// ErrNoSourceImage indicates a retry was requested before any photo was submitted.
	ErrNoSourceImage = errors.New("no source image submitted")

	// ErrUnknownTask indicates the task id names neither a style nor the copy task.
	ErrUnknownTask = errors.New("unknown task id")

	// ErrTaskInFlight indicates a retry was requested while the task is still pending.
	ErrTaskInFlight = errors.New("task is already pending")

	// ErrInvalidSource indicates the submitted photo was rejected.
	ErrInvalidSource = errors.New("invalid source image")

	// ErrClosed indicates the orchestrator has been closed.
	ErrClosed = errors.New("orchestrator is closed")

	// ErrNilDependency indicates a required constructor argument was nil.
	ErrNilDependency = errors.New("required dependency is nil")
)

// OrchestratorError wraps errors from the orchestrator with context.
type OrchestratorError struct {
	// Operation is the operation that failed (e.g., "submit_source_image", "retry_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for OrchestratorError.
func (e *OrchestratorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("orchestrator %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("orchestrator %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *OrchestratorError) Unwrap() error {
	return e.Err
}

// NewOrchestratorError creates a new OrchestratorError.
// It returns the package sentinel errors directly without wrapping.
func NewOrchestratorError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{ErrNoSourceImage, ErrUnknownTask, ErrTaskInFlight, ErrClosed} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	return &OrchestratorError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
