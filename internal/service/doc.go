// Package service contains the listing generation use case.
//
// The Orchestrator owns one session: the current source photo, five styled
// image tasks and one listing copy task. Submitting a photo puts all six
// tasks into the pending state before returning and dispatches six
// independent provider calls. Each call settles only its own task, so one
// failure never blocks or discards the results of the others. Any settled
// task can be retried on its own against the same photo.
//
// State is guarded by a single mutex; a task's status and its result are
// always written together. Observers receive events.TaskStateEvent values
// after the lock is released and never see mutable state.
package service
