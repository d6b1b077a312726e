package recurrent

import (
	"context"
	"sync"

	"github.com/rendezvous-go/coop/cond"
)

// UnhandledError is invoked, in a fresh goroutine, for any error returned
// by a Job's operation when the Job was constructed without an onError
// callback. Tests may override this package variable to observe failures
// instead of crashing.
var UnhandledError = func(err error) {
	go panic(err)
}

type state int

const (
	inert state = iota
	inProgress
	again
)

// A Job runs a single operation, coalescing any Request that arrives while
// a run is already in flight into at most one additional run once the
// current one finishes. The zero value is not ready to use; construct one
// with New.
type Job struct {
	op      func(context.Context) error
	onError func(error)

	mu    sync.Mutex
	st    state
	idle  cond.Condition
}

// New returns a Job that runs op on each triggering Request. If onError is
// non-nil, errors from op are routed there; otherwise they reach
// UnhandledError.
func New(op func(context.Context) error, onError func(error)) *Job {
	return &Job{op: op, onError: onError}
}

// Request asks the Job to run. If the Job is idle, it starts running
// immediately with ctx. If a run is already in flight, Request records
// that one more run is owed once the current one finishes — further
// Requests before that happens are no-ops. ctx is only used for the run
// Request itself starts; a run triggered by coalescing uses
// context.Background(), since no single caller's context can be said to
// own it.
func (j *Job) Request(ctx context.Context) {
	j.mu.Lock()
	switch j.st {
	case inert:
		j.st = inProgress
		j.mu.Unlock()
		j.runOnce(ctx)
		return
	case inProgress:
		j.st = again
	case again:
		// Already owed a re-run; nothing to do.
	}
	j.mu.Unlock()
}

// runOnce runs op in its own goroutine — a fresh task per run, not a loop
// within the current one, so an unhandled error from one run does not
// poison the task that runs the next.
func (j *Job) runOnce(ctx context.Context) {
	go func() {
		err := j.op(ctx)
		if err != nil {
			if j.onError != nil {
				j.onError(err)
			} else {
				UnhandledError(err)
			}
		}

		j.mu.Lock()
		switch j.st {
		case again:
			j.st = inProgress
			j.mu.Unlock()
			j.runOnce(context.Background())
		case inProgress:
			j.st = inert
			j.mu.Unlock()
			j.idle.NotifyAll()
		default:
			j.mu.Unlock()
		}
	}()
}

// Wait blocks until the Job is idle (no run in flight, none owed), or ctx
// is done, whichever comes first.
func (j *Job) Wait(ctx context.Context) bool {
	j.mu.Lock()
	for j.st != inert {
		t := j.idle.Enqueue()
		j.mu.Unlock()
		if !t.Wait(ctx) {
			return false
		}
		j.mu.Lock()
	}
	j.mu.Unlock()
	return true
}
