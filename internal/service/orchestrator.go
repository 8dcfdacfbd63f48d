package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/listing-studio/internal/domain"
	"github.com/phrazzld/listing-studio/internal/events"
	"github.com/phrazzld/listing-studio/internal/generation"
	"github.com/phrazzld/listing-studio/internal/redact"
	"github.com/phrazzld/listing-studio/internal/task"
)

// Options configures an Orchestrator.
type Options struct {
	// RequestTimeout bounds each provider call. Zero means no timeout.
	RequestTimeout time.Duration
}

// slot is the mutable state of one task. It is only touched under
// Orchestrator.mu.
type slot struct {
	id      string
	style   domain.StyleKind
	status  domain.TaskStatus
	image   *domain.GeneratedImage
	listing *domain.ListingCopy
	err     string
	attempt int
	// token identifies the latest dispatch; completions carrying any other
	// token are stale and dropped.
	token   uuid.UUID
	updated time.Time
}

func (s *slot) taskType() string {
	if s.id == domain.CopyTaskID {
		return events.TaskTypeCopy
	}
	return events.TaskTypeImage
}

// dispatch is everything one provider call needs, captured under the lock.
type dispatch struct {
	ctx       context.Context
	sessionID uuid.UUID
	taskID    string
	taskType  string
	style     domain.StyleKind
	attempt   int
	token     uuid.UUID
	source    domain.SourceImage
}

// outcome carries the result of one provider call back to its slot.
type outcome struct {
	image   domain.GeneratedImage
	listing domain.ListingCopy
	err     error
}

// Orchestrator runs the six generation tasks of a listing session and
// tracks their status.
type Orchestrator struct {
	client     generation.Client
	emitter    events.EventEmitter
	dispatcher *task.Dispatcher
	logger     *slog.Logger
	now        func() time.Time

	mu          sync.Mutex
	sessionID   uuid.UUID
	source      domain.SourceImage
	hasSource   bool
	epochCtx    context.Context
	epochCancel context.CancelFunc
	slots       map[string]*slot
	order       []string
	pending     int
	// idle is closed whenever pending is zero.
	idle   chan struct{}
	closed bool
}

// NewOrchestrator creates an Orchestrator with all six tasks idle.
// emitter may be nil when nobody observes transitions.
func NewOrchestrator(
	client generation.Client,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts Options,
) (*Orchestrator, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: generation client", ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}

	dispatcher := task.NewDispatcher(task.DispatcherConfig{Timeout: opts.RequestTimeout}, logger)
	idle := make(chan struct{})
	close(idle)

	o := &Orchestrator{
		client:     client,
		emitter:    emitter,
		dispatcher: dispatcher,
		logger:     logger.With("component", "orchestrator"),
		now:        time.Now,
		slots:      make(map[string]*slot, len(domain.AllStyles())+1),
		idle:       idle,
	}

	for _, style := range domain.AllStyles() {
		id := style.TaskID()
		o.slots[id] = &slot{id: id, style: style, status: domain.TaskStatusIdle}
		o.order = append(o.order, id)
	}
	o.slots[domain.CopyTaskID] = &slot{id: domain.CopyTaskID, status: domain.TaskStatusIdle}
	o.order = append(o.order, domain.CopyTaskID)

	return o, nil
}

// SubmitSourceImage replaces the session photo and starts all six tasks.
// Every task is pending when this returns. Calls still in flight for a
// previous photo are cancelled and their results ignored.
func (o *Orchestrator) SubmitSourceImage(ctx context.Context, src domain.SourceImage) error {
	if err := generation.ValidateSource(src); err != nil {
		return NewOrchestratorError("submit_source_image", "source image rejected",
			fmt.Errorf("%w: %w", ErrInvalidSource, err))
	}

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrClosed
	}

	if o.epochCancel != nil {
		o.epochCancel()
	}
	o.epochCtx, o.epochCancel = context.WithCancel(context.Background())
	o.sessionID = uuid.New()
	o.source = src
	o.hasSource = true

	batch := make([]dispatch, 0, len(o.order))
	evts := make([]*events.TaskStateEvent, 0, len(o.order))
	for _, id := range o.order {
		s := o.slots[id]
		s.attempt = 0
		d, evt := o.beginLocked(s)
		batch = append(batch, d)
		evts = append(evts, evt)
	}
	sessionID := o.sessionID
	o.mu.Unlock()

	o.logger.InfoContext(ctx, "source image submitted",
		"session_id", sessionID,
		"mime_type", src.MIMEType(),
		"source_bytes", src.Size(),
		"task_count", len(batch))

	o.emit(ctx, evts...)
	for _, d := range batch {
		o.start(d)
	}
	return nil
}

// RetryTask re-dispatches one settled task against the current photo.
// id is a style slug or domain.CopyTaskID.
func (o *Orchestrator) RetryTask(ctx context.Context, id string) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrClosed
	}
	if !o.hasSource {
		o.mu.Unlock()
		return ErrNoSourceImage
	}
	s, ok := o.slots[id]
	if !ok {
		o.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownTask, id)
	}
	if s.status == domain.TaskStatusPending {
		o.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrTaskInFlight, id)
	}

	previous := s.status
	d, evt := o.beginLocked(s)
	o.mu.Unlock()

	o.logger.InfoContext(ctx, "retrying task",
		"session_id", d.sessionID,
		"task_id", d.taskID,
		"previous_status", previous,
		"attempt", d.attempt)

	o.emit(ctx, evt)
	o.start(d)
	return nil
}

// RetryImageTask retries the styled image task with the given style slug.
func (o *Orchestrator) RetryImageTask(ctx context.Context, id string) error {
	if id == domain.CopyTaskID {
		return fmt.Errorf("%w: %q is not an image task", ErrUnknownTask, id)
	}
	return o.RetryTask(ctx, id)
}

// RetryListingCopy retries the listing copy task.
func (o *Orchestrator) RetryListingCopy(ctx context.Context) error {
	return o.RetryTask(ctx, domain.CopyTaskID)
}

// Processing reports whether at least one task is pending.
func (o *Orchestrator) Processing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.pending > 0
}

// Snapshot returns a deep copy of the session state.
func (o *Orchestrator) Snapshot() domain.SessionSnapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := domain.SessionSnapshot{
		ID:         o.sessionID,
		HasSource:  o.hasSource,
		Processing: o.pending > 0,
		Images:     make([]domain.ImageTaskState, 0, len(o.order)-1),
	}
	if o.hasSource {
		snap.SourceMIME = o.source.MIMEType()
		snap.SourceSize = o.source.Size()
	}

	for _, id := range o.order {
		s := o.slots[id]

		if id == domain.CopyTaskID {
			snap.Copy = domain.CopyTaskState{
				Status:    s.status,
				Err:       s.err,
				Attempt:   s.attempt,
				UpdatedAt: s.updated,
			}
			if s.listing != nil {
				listing := s.listing.Clone()
				snap.Copy.Copy = &listing
			}
			continue
		}

		state := domain.ImageTaskState{
			ID:        s.id,
			Style:     s.style,
			Status:    s.status,
			Err:       s.err,
			Attempt:   s.attempt,
			UpdatedAt: s.updated,
		}
		if s.image != nil {
			state.Image = &domain.GeneratedImage{
				Data:     bytes.Clone(s.image.Data),
				MIMEType: s.image.MIMEType,
			}
		}
		snap.Images = append(snap.Images, state)
	}

	return snap
}

// Source returns the current photo and whether one was submitted.
func (o *Orchestrator) Source() (domain.SourceImage, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.source, o.hasSource
}

// Wait blocks until no task is pending or ctx is done.
func (o *Orchestrator) Wait(ctx context.Context) error {
	for {
		o.mu.Lock()
		if o.pending == 0 {
			o.mu.Unlock()
			return nil
		}
		idle := o.idle
		o.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close cancels in-flight calls and waits for them to settle. Submit and
// retry fail with ErrClosed afterwards.
func (o *Orchestrator) Close(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	o.closed = true
	if o.epochCancel != nil {
		o.epochCancel()
	}
	o.mu.Unlock()

	if err := o.dispatcher.Shutdown(ctx); err != nil {
		return NewOrchestratorError("close", "in-flight tasks did not settle", err)
	}
	return nil
}

// beginLocked moves s to pending, discards its previous result and issues
// a new dispatch token. Caller holds o.mu.
func (o *Orchestrator) beginLocked(s *slot) (dispatch, *events.TaskStateEvent) {
	if s.status != domain.TaskStatusPending {
		o.pending++
		if o.pending == 1 {
			o.idle = make(chan struct{})
		}
	}

	s.status = domain.TaskStatusPending
	s.image = nil
	s.listing = nil
	s.err = ""
	s.attempt++
	s.token = uuid.New()
	s.updated = o.now()

	d := dispatch{
		ctx:       o.epochCtx,
		sessionID: o.sessionID,
		taskID:    s.id,
		taskType:  s.taskType(),
		style:     s.style,
		attempt:   s.attempt,
		token:     s.token,
		source:    o.source,
	}
	return d, o.eventLocked(s)
}

func (o *Orchestrator) eventLocked(s *slot) *events.TaskStateEvent {
	evt := events.NewTaskStateEvent(o.sessionID, s.id, s.taskType(), s.status, s.attempt, o.pending > 0)
	evt.Err = s.err
	return evt
}

// start hands d to the dispatcher. A dispatch that cannot start settles as
// failed straight away.
func (o *Orchestrator) start(d dispatch) {
	var out outcome
	t := task.NewFunc(d.taskID, d.taskType, func(ctx context.Context) error {
		out = o.call(ctx, d)
		return out.err
	})

	err := o.dispatcher.Dispatch(d.ctx, t, func(_ task.Task, err error) {
		out.err = err
		o.settle(d, out)
	})
	if err != nil {
		o.settle(d, outcome{err: err})
	}
}

// call performs the provider request for d.
func (o *Orchestrator) call(ctx context.Context, d dispatch) outcome {
	var out outcome

	if d.taskID == domain.CopyTaskID {
		out.listing, out.err = o.client.RequestListingCopy(ctx, d.source)
	} else {
		out.image, out.err = o.client.RequestStyledImage(ctx, d.source, d.style)
		if out.err == nil && len(out.image.Data) == 0 {
			out.err = fmt.Errorf("%w: empty payload", generation.ErrNoImage)
		}
	}

	if out.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(out.err, generation.ErrTimeout) {
		out.err = fmt.Errorf("%w: %v", generation.ErrTimeout, out.err)
	}
	out.err = generation.Failure(out.err)
	return out
}

// settle applies out to the task of d unless a newer dispatch superseded it.
func (o *Orchestrator) settle(d dispatch, out outcome) {
	err := generation.Failure(out.err)

	o.mu.Lock()
	s := o.slots[d.taskID]
	if s.token != d.token {
		o.mu.Unlock()
		o.logger.Debug("dropping stale completion",
			"session_id", d.sessionID,
			"task_id", d.taskID,
			"attempt", d.attempt)
		return
	}

	s.updated = o.now()
	if err != nil {
		s.status = domain.TaskStatusFailed
		s.err = redact.Error(err)
	} else {
		s.status = domain.TaskStatusSucceeded
		if d.taskID == domain.CopyTaskID {
			listing := out.listing.Clone()
			s.listing = &listing
		} else {
			s.image = &domain.GeneratedImage{
				Data:     bytes.Clone(out.image.Data),
				MIMEType: out.image.MIMEType,
			}
		}
	}

	o.pending--
	if o.pending == 0 {
		close(o.idle)
	}
	evt := o.eventLocked(s)
	remaining := o.pending
	o.mu.Unlock()

	logger := o.logger.With(
		"session_id", d.sessionID,
		"task_id", d.taskID,
		"task_type", d.taskType,
		"attempt", d.attempt,
		"pending", remaining)
	if err != nil {
		logger.Warn("task failed", "error", err)
	} else {
		logger.Info("task succeeded")
	}

	o.emit(context.Background(), evt)
}

// emit hands events to the observers. Observer errors are logged and never
// change task state.
func (o *Orchestrator) emit(ctx context.Context, evts ...*events.TaskStateEvent) {
	if o.emitter == nil {
		return
	}
	for _, evt := range evts {
		if err := o.emitter.EmitEvent(ctx, evt); err != nil {
			o.logger.WarnContext(ctx, "observer failed to handle task event",
				"error", err,
				"task_id", evt.TaskID,
				"status", evt.Status)
		}
	}
}
