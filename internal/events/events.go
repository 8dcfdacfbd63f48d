package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/listing-studio/internal/domain"
)

// Task types carried by TaskStateEvent.TaskType.
const (
	TaskTypeImage = "styled_image"
	TaskTypeCopy  = "listing_copy"
)

// TaskStateEvent describes one status transition of one task.
type TaskStateEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// SessionID identifies the source submission the task belongs to
	SessionID uuid.UUID `json:"session_id"`

	// TaskID is the style slug or "copy"
	TaskID string `json:"task_id"`

	// TaskType is TaskTypeImage or TaskTypeCopy
	TaskType string `json:"task_type"`

	// Status is the status the task has just entered
	Status domain.TaskStatus `json:"status"`

	// Attempt counts dispatches of this task within the session, starting at 1
	Attempt int `json:"attempt"`

	// Processing is the aggregate flag right after the transition
	Processing bool `json:"processing"`

	// Err holds the failure text when Status is failed
	Err string `json:"error,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewTaskStateEvent creates a TaskStateEvent with a fresh id and timestamp.
func NewTaskStateEvent(
	sessionID uuid.UUID,
	taskID, taskType string,
	status domain.TaskStatus,
	attempt int,
	processing bool,
) *TaskStateEvent {
	return &TaskStateEvent{
		ID:         uuid.New(),
		SessionID:  sessionID,
		TaskID:     taskID,
		TaskType:   taskType,
		Status:     status,
		Attempt:    attempt,
		Processing: processing,
		CreatedAt:  time.Now().UTC(),
	}
}

// Settled reports whether the event marks the end of a dispatch.
func (e *TaskStateEvent) Settled() bool {
	return e.Status.Settled()
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskStateEvent) error
}

// HandlerFunc adapts an ordinary function to EventHandler.
type HandlerFunc func(ctx context.Context, event *TaskStateEvent) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *TaskStateEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows the orchestrator to publish transitions without direct
// knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskStateEvent) error
}
