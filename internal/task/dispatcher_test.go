package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// settleRecorder collects settle callbacks.
type settleRecorder struct {
	mu      sync.Mutex
	results map[string][]error
}

func newSettleRecorder() *settleRecorder {
	return &settleRecorder{results: make(map[string][]error)}
}

func (r *settleRecorder) settle(t Task, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[t.ID()] = append(r.results[t.ID()], err)
}

func (r *settleRecorder) get(id string) []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error(nil), r.results[id]...)
}

func TestDispatcher_SettlesEveryTaskOnce(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(DispatcherConfig{}, testLogger())
	rec := newSettleRecorder()
	failure := errors.New("provider down")

	require.NoError(t, d.Dispatch(context.Background(), NewFunc("ok", "image", func(context.Context) error {
		return nil
	}), rec.settle))
	require.NoError(t, d.Dispatch(context.Background(), NewFunc("bad", "image", func(context.Context) error {
		return failure
	}), rec.settle))
	require.NoError(t, d.Dispatch(context.Background(), NewFunc("boom", "copy", func(context.Context) error {
		panic("nil map write")
	}), rec.settle))

	d.Wait()

	ok := rec.get("ok")
	require.Len(t, ok, 1)
	assert.NoError(t, ok[0])

	bad := rec.get("bad")
	require.Len(t, bad, 1)
	assert.ErrorIs(t, bad[0], failure)

	boom := rec.get("boom")
	require.Len(t, boom, 1)
	assert.ErrorIs(t, boom[0], ErrTaskPanicked)
	assert.Contains(t, boom[0].Error(), "nil map write")
}

func TestDispatcher_RunsTasksConcurrently(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(DispatcherConfig{}, testLogger())

	const n = 6
	var started sync.WaitGroup
	started.Add(n)
	release := make(chan struct{})
	var finished atomic.Int32

	for i := 0; i < n; i++ {
		require.NoError(t, d.Dispatch(context.Background(), NewFunc("t", "image", func(context.Context) error {
			started.Done()
			<-release
			finished.Add(1)
			return nil
		}), nil))
	}

	// All six must be running at once; a queue or worker cap would deadlock here.
	waitOrFail(t, started.Wait)
	assert.Equal(t, int32(0), finished.Load())

	close(release)
	d.Wait()
	assert.Equal(t, int32(n), finished.Load())
}

func TestDispatcher_Timeout(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(DispatcherConfig{Timeout: 20 * time.Millisecond}, testLogger())
	rec := newSettleRecorder()

	require.NoError(t, d.Dispatch(context.Background(), NewFunc("slow", "image", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}), rec.settle))

	d.Wait()

	got := rec.get("slow")
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], context.DeadlineExceeded)
}

func TestDispatcher_CallerCancellation(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(DispatcherConfig{}, testLogger())
	rec := newSettleRecorder()
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	require.NoError(t, d.Dispatch(ctx, NewFunc("cancelled", "copy", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}), rec.settle))

	<-started
	cancel()
	d.Wait()

	got := rec.get("cancelled")
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], context.Canceled)
}

func TestDispatcher_Shutdown(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(DispatcherConfig{}, testLogger())
	rec := newSettleRecorder()

	started := make(chan struct{})
	require.NoError(t, d.Dispatch(context.Background(), NewFunc("long", "image", func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	}), rec.settle))
	<-started

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Shutdown(shutdownCtx))

	got := rec.get("long")
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], context.Canceled)

	err := d.Dispatch(context.Background(), NewFunc("late", "image", func(context.Context) error { return nil }), rec.settle)
	assert.ErrorIs(t, err, ErrDispatcherClosed)
	assert.Empty(t, rec.get("late"))
}

func TestDispatcher_ShutdownInterrupted(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(DispatcherConfig{}, testLogger())
	release := make(chan struct{})
	defer close(release)

	require.NoError(t, d.Dispatch(context.Background(), NewFunc("stubborn", "image", func(context.Context) error {
		<-release
		return nil
	}), nil))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := d.Shutdown(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDispatcher_NilTask(t *testing.T) {
	t.Parallel()

	d := NewDispatcher(DispatcherConfig{}, testLogger())
	assert.ErrorIs(t, d.Dispatch(context.Background(), nil, nil), ErrNilTask)
}

func TestFunc(t *testing.T) {
	t.Parallel()

	called := false
	f := NewFunc("main", "styled_image", func(context.Context) error {
		called = true
		return nil
	})

	assert.Equal(t, "main", f.ID())
	assert.Equal(t, "styled_image", f.Type())
	require.NoError(t, f.Execute(context.Background()))
	assert.True(t, called)
}

func waitOrFail(t *testing.T, wait func()) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting")
	}
}
