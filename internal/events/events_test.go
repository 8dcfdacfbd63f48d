package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/listing-studio/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskStateEvent(t *testing.T) {
	t.Parallel()

	session := uuid.New()
	event := NewTaskStateEvent(session, "lifestyle", TaskTypeImage, domain.TaskStatusPending, 2, true)

	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, session, event.SessionID)
	assert.Equal(t, "lifestyle", event.TaskID)
	assert.Equal(t, TaskTypeImage, event.TaskType)
	assert.Equal(t, domain.TaskStatusPending, event.Status)
	assert.Equal(t, 2, event.Attempt)
	assert.True(t, event.Processing)
	assert.False(t, event.Settled())
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	other := NewTaskStateEvent(session, "lifestyle", TaskTypeImage, domain.TaskStatusPending, 2, true)
	assert.NotEqual(t, event.ID, other.ID)
}

func TestTaskStateEventJSON(t *testing.T) {
	t.Parallel()

	event := NewTaskStateEvent(uuid.New(), domain.CopyTaskID, TaskTypeCopy, domain.TaskStatusFailed, 1, false)
	event.Err = "generation failed: provider error"

	raw, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "copy", decoded["task_id"])
	assert.Equal(t, "failed", decoded["status"])
	assert.Equal(t, "generation failed: provider error", decoded["error"])
	assert.True(t, event.Settled())
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *TaskStateEvent
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *TaskStateEvent) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestHandlerFunc(t *testing.T) {
	t.Parallel()

	var got *TaskStateEvent
	var handler EventHandler = HandlerFunc(func(_ context.Context, e *TaskStateEvent) error {
		got = e
		return errors.New("boom")
	})

	event := NewTaskStateEvent(uuid.New(), "main", TaskTypeImage, domain.TaskStatusSucceeded, 1, false)
	err := handler.HandleEvent(context.Background(), event)

	assert.EqualError(t, err, "boom")
	assert.Same(t, event, got)
}
