package domain

import "github.com/google/uuid"

// SessionSnapshot is an immutable copy of the session state for rendering.
type SessionSnapshot struct {
	ID         uuid.UUID        `json:"id"`
	HasSource  bool             `json:"has_source"`
	SourceMIME string           `json:"source_mime,omitempty"`
	SourceSize int              `json:"source_size,omitempty"`
	Images     []ImageTaskState `json:"images"`
	Copy       CopyTaskState    `json:"copy"`
	Processing bool             `json:"processing"`
}

// Image returns the state of the task with the given id.
func (s SessionSnapshot) Image(id string) (ImageTaskState, bool) {
	for _, img := range s.Images {
		if img.ID == id {
			return img, true
		}
	}
	return ImageTaskState{}, false
}

// SucceededImages counts image tasks in the succeeded state.
func (s SessionSnapshot) SucceededImages() int {
	n := 0
	for _, img := range s.Images {
		if img.Status == TaskStatusSucceeded {
			n++
		}
	}
	return n
}

// PendingCount counts every task, image or copy, that is still pending.
func (s SessionSnapshot) PendingCount() int {
	n := 0
	for _, img := range s.Images {
		if img.Status == TaskStatusPending {
			n++
		}
	}
	if s.Copy.Status == TaskStatusPending {
		n++
	}
	return n
}

// FailedTaskIDs returns the ids of failed tasks, images first, then "copy".
func (s SessionSnapshot) FailedTaskIDs() []string {
	var ids []string
	for _, img := range s.Images {
		if img.Status == TaskStatusFailed {
			ids = append(ids, img.ID)
		}
	}
	if s.Copy.Status == TaskStatusFailed {
		ids = append(ids, CopyTaskID)
	}
	return ids
}

// Settled reports whether a photo was submitted and no task is pending.
func (s SessionSnapshot) Settled() bool {
	return s.HasSource && s.PendingCount() == 0
}
