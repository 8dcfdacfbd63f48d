package task

import "context"

// Task represents a unit of asynchronous work.
type Task interface {
	// ID returns the task identifier used in logs
	ID() string

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// Func adapts a closure to the Task interface.
type Func struct {
	TaskID   string
	TaskType string
	Fn       func(ctx context.Context) error
}

var _ Task = (*Func)(nil)

// NewFunc creates a Func task.
func NewFunc(id, taskType string, fn func(ctx context.Context) error) *Func {
	return &Func{TaskID: id, TaskType: taskType, Fn: fn}
}

// ID returns the task identifier.
func (f *Func) ID() string {
	return f.TaskID
}

// Type returns the task type identifier.
func (f *Func) Type() string {
	return f.TaskType
}

// Execute calls Fn.
func (f *Func) Execute(ctx context.Context) error {
	return f.Fn(ctx)
}
