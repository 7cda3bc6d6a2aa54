package playback

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopStopped is returned by Do when the loop stops before running fn.
var ErrLoopStopped = errors.New("event loop stopped")

// Dispatcher schedules fn on the goroutine that owns the engine.
type Dispatcher interface {
	Post(fn func())
}

// Loop runs posted functions one at a time, in order, on the goroutine that
// calls Run. The queue is unbounded so Post never blocks, including when
// called from inside a running task.
type Loop struct {
	mu    sync.Mutex
	queue []func()
	wake  chan struct{}

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a stopped loop; call Run to start it.
func NewLoop() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
	}
}

// Post enqueues fn. Tasks posted after Stop never run.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	l.Post(func() {
		fn()
		close(finished)
	})

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stop:
		return ErrLoopStopped
	}
}

// Call runs fn on the loop and returns its result. If ctx ends first, fn
// still runs later and its result is discarded.
func Call[T any](ctx context.Context, l *Loop, fn func() T) (T, error) {
	res := make(chan T, 1)
	if err := l.Do(ctx, func() { res <- fn() }); err != nil {
		var zero T
		return zero, err
	}
	return <-res, nil
}

// Run processes tasks until ctx is canceled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-l.stop:
			return nil
		default:
		}

		l.mu.Lock()
		batch := l.queue
		l.queue = nil
		l.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stop:
			return nil
		case <-l.wake:
		}
	}
}

// Stop ends Run after the task in progress.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
