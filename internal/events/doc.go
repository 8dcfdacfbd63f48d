// Package events provides the observer contract between the orchestrator and
// whatever presents its state.
//
// The orchestrator emits a TaskStateEvent after every task status transition.
// Observers implement EventHandler and register with an emitter; they never
// receive mutable session state, only the event value.
//
// The primary components are:
// - TaskStateEvent: describes one transition of one task
// - EventHandler: interface for components that can handle events
// - EventEmitter: interface for components that can emit events
package events
