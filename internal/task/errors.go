package task

import "errors"

var (
	// ErrTaskPanicked is returned to the settle callback when Execute panics.
	ErrTaskPanicked = errors.New("task panicked")

	// ErrDispatcherClosed is returned by Dispatch after Shutdown.
	ErrDispatcherClosed = errors.New("dispatcher is shut down")

	// ErrNilTask is returned by Dispatch when the task is nil.
	ErrNilTask = errors.New("task cannot be nil")
)
