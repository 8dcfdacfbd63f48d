package task

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

// DispatcherConfig holds configuration for the dispatcher
type DispatcherConfig struct {
	// Timeout bounds every single Execute call. Zero means no timeout.
	Timeout time.Duration
}

// SettleFunc receives the outcome of one dispatch.
type SettleFunc func(task Task, err error)

// Dispatcher runs each dispatched task on its own goroutine.
type Dispatcher struct {
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	config     DispatcherConfig
	logger     *slog.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(config DispatcherConfig, logger *slog.Logger) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())

	return &Dispatcher{
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger.With("component", "task_dispatcher"),
	}
}

// Dispatch starts t on a new goroutine and returns immediately. The task
// context is derived from ctx and is also cancelled by Shutdown. onSettle,
// when non-nil, is called exactly once with the result of Execute; a panic
// inside Execute is reported as ErrTaskPanicked.
func (d *Dispatcher) Dispatch(ctx context.Context, t Task, onSettle SettleFunc) error {
	if t == nil {
		return ErrNilTask
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDispatcherClosed
	}
	d.wg.Add(1)
	d.mu.Unlock()

	runCtx, cancel := d.taskContext(ctx)

	go func() {
		defer d.wg.Done()
		defer cancel()

		err := d.execute(runCtx, t)
		if onSettle != nil {
			onSettle(t, err)
		}
	}()

	return nil
}

// Wait blocks until every dispatched task has settled. It does not
// short-circuit on failures. Wait must not race with a Dispatch that
// starts from an idle dispatcher; callers that keep dispatching should
// track completion themselves.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Shutdown stops accepting tasks, cancels the running ones and waits for
// them to settle or for ctx to be done.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	d.cancelFunc()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("dispatcher shutdown interrupted: %w", ctx.Err())
	}
}

// taskContext derives the per-task context from ctx, the dispatcher
// lifetime and the configured timeout.
func (d *Dispatcher) taskContext(ctx context.Context) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(d.ctx, cancel)

	if d.config.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		runCtx, cancelTimeout = context.WithTimeout(runCtx, d.config.Timeout)
		return runCtx, func() {
			cancelTimeout()
			stop()
			cancel()
		}
	}

	return runCtx, func() {
		stop()
		cancel()
	}
}

// execute handles execution of a single task
func (d *Dispatcher) execute(ctx context.Context, t Task) (err error) {
	logger := d.logger.With(
		"task_id", t.ID(),
		"task_type", t.Type(),
	)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("task panicked",
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		}
	}()

	start := time.Now()
	logger.Debug("processing task")

	err = t.Execute(ctx)

	if err != nil {
		logger.Warn("task execution failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return err
	}

	logger.Debug("task completed successfully",
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}
