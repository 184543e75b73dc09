package ws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// ErrDispatcherStopped is returned for jobs offered after the dispatcher exits
var ErrDispatcherStopped = errors.New("dispatcher stopped")

// Job is a unit of work that may touch game state
type Job func(ctx context.Context)

// Dispatcher runs every state-touching job on a single goroutine, in arrival order.
// A job runs to completion, broadcasts included, before the next one starts.
type Dispatcher struct {
	jobs   chan Job
	done   chan struct{}
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher with the given queue depth
func NewDispatcher(queueSize int, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		jobs:   make(chan Job, queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run executes jobs until ctx is cancelled. Call once.
func (d *Dispatcher) Run(ctx context.Context) {
	defer close(d.done)
	d.logger.Info("dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("dispatcher stopped", slog.Int("pending_jobs", len(d.jobs)))
			return
		case job := <-d.jobs:
			d.run(ctx, job)
		}
	}
}

// Submit queues a job without waiting for it. Blocks while the queue is full,
// which applies backpressure to the submitting connection.
func (d *Dispatcher) Submit(job Job) bool {
	if d.stopped() {
		return false
	}
	select {
	case d.jobs <- job:
		return true
	case <-d.done:
		return false
	}
}

// Do runs fn on the dispatcher and waits for its result
func (d *Dispatcher) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	result := make(chan error, 1)
	job := func(jobCtx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("job panicked: %v", r)
				panic(r)
			}
		}()
		result <- fn(jobCtx)
	}

	if d.stopped() {
		return ErrDispatcherStopped
	}
	select {
	case d.jobs <- job:
	case <-d.done:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-d.done:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) stopped() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// run executes one job, containing any panic to that job
func (d *Dispatcher) run(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("dispatcher job panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	job(ctx)
}
