package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/listing-studio/internal/events"
)

// EventRecorder implements events.EventHandler and keeps every event it sees.
type EventRecorder struct {
	// Err is returned from every HandleEvent call
	Err error

	mu     sync.Mutex
	events []events.TaskStateEvent
}

var _ events.EventHandler = (*EventRecorder)(nil)

// HandleEvent implements events.EventHandler
func (r *EventRecorder) HandleEvent(_ context.Context, event *events.TaskStateEvent) error {
	r.mu.Lock()
	r.events = append(r.events, *event)
	r.mu.Unlock()
	return r.Err
}

// Events returns a copy of the recorded events in arrival order.
func (r *EventRecorder) Events() []events.TaskStateEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.TaskStateEvent, len(r.events))
	copy(out, r.events)
	return out
}

// ForTask returns the recorded events of one task in arrival order.
func (r *EventRecorder) ForTask(taskID string) []events.TaskStateEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []events.TaskStateEvent
	for _, e := range r.events {
		if e.TaskID == taskID {
			out = append(out, e)
		}
	}
	return out
}
