// Package task runs independent units of asynchronous work.
//
// A Dispatcher starts one goroutine per dispatched Task. There is no queue
// and no worker cap: every dispatched task runs immediately. Each task gets
// its own context (optionally bounded by a timeout), panics are contained
// and reported as errors, and the settle callback is called exactly once
// per dispatch whatever the outcome.
package task
