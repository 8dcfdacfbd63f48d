package domain

import "time"

// TaskStatus is the lifecycle state of a generation task.
type TaskStatus string

// Possible task status values.
//
//	idle --submit--> pending --success--> succeeded
//	pending --failure--> failed
//	succeeded|failed --retry--> pending
const (
	TaskStatusIdle      TaskStatus = "idle"
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusSucceeded TaskStatus = "succeeded"
	TaskStatusFailed    TaskStatus = "failed"
)

// CopyTaskID identifies the listing copy task wherever a task id is accepted.
const CopyTaskID = "copy"

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusIdle, TaskStatusPending, TaskStatusSucceeded, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// Settled reports whether s is a final-for-now state.
func (s TaskStatus) Settled() bool {
	return s == TaskStatusSucceeded || s == TaskStatusFailed
}

// Retryable reports whether a task in state s may be retried.
func (s TaskStatus) Retryable() bool {
	return s.Settled()
}

// ListingCopy is the SEO copy for a listing. Its fields only travel together.
type ListingCopy struct {
	Title       string   `json:"title"`
	Bullets     []string `json:"bullets"`
	Description string   `json:"description"`
}

// Clone returns a deep copy.
func (c ListingCopy) Clone() ListingCopy {
	bullets := make([]string, len(c.Bullets))
	copy(bullets, c.Bullets)
	return ListingCopy{Title: c.Title, Bullets: bullets, Description: c.Description}
}

// ImageTaskState is a point-in-time view of one styled image task.
// Image is non-nil only when Status is TaskStatusSucceeded.
type ImageTaskState struct {
	ID        string          `json:"id"`
	Style     StyleKind       `json:"style"`
	Status    TaskStatus      `json:"status"`
	Image     *GeneratedImage `json:"image,omitempty"`
	Err       string          `json:"error,omitempty"`
	Attempt   int             `json:"attempt"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CopyTaskState is a point-in-time view of the listing copy task.
// Copy is non-nil only when Status is TaskStatusSucceeded.
type CopyTaskState struct {
	Status    TaskStatus   `json:"status"`
	Copy      *ListingCopy `json:"copy,omitempty"`
	Err       string       `json:"error,omitempty"`
	Attempt   int          `json:"attempt"`
	UpdatedAt time.Time    `json:"updated_at"`
}
