package limiter

import (
	"context"
	"sync"

	"github.com/rendezvous-go/coop/cond"
	"github.com/rendezvous-go/coop/semaphore"
)

// UnhandledError is invoked, in a fresh goroutine, for any error returned
// by an operation passed to Run that supplied no onError callback. The
// default panics, matching what an unhandled error in a detached task
// would do absent a handler. Tests may override this package variable to
// observe failures instead of crashing.
var UnhandledError = func(err error) {
	go panic(err)
}

// A ConcurrencyLimiter runs operations with at most limit of them executing
// at once. The zero value is not ready to use; construct one with New.
type ConcurrencyLimiter struct {
	sem *semaphore.Semaphore

	mu          sync.Mutex
	outstanding int
	drain       cond.Condition
}

// New returns a ConcurrencyLimiter that runs at most limit operations
// concurrently.
func New(limit int) *ConcurrencyLimiter {
	return &ConcurrencyLimiter{sem: semaphore.New(limit)}
}

// Run acquires a slot (blocking if the limiter is saturated) and then
// schedules op to run in its own goroutine, returning as soon as the slot
// is acquired — Run does not wait for op itself to finish. If ctx is done
// before a slot is available, Run returns false without scheduling op.
//
// If op returns an error, onError receives it when non-nil; otherwise the
// error is routed to UnhandledError. Either way, the slot is released and
// the outstanding count is decremented once op returns, and regardless of
// how op finishes.
func (l *ConcurrencyLimiter) Run(ctx context.Context, op func(context.Context) error, onError func(error)) bool {
	l.mu.Lock()
	l.outstanding++
	l.mu.Unlock()

	h, ok := l.sem.Acquire(ctx)
	if !ok {
		l.finish()
		return false
	}

	go func() {
		defer func() {
			l.sem.Release(h)
			l.finish()
		}()
		if err := op(ctx); err != nil {
			if onError != nil {
				onError(err)
			} else {
				UnhandledError(err)
			}
		}
	}()
	return true
}

func (l *ConcurrencyLimiter) finish() {
	l.mu.Lock()
	l.outstanding--
	drained := l.outstanding == 0
	l.mu.Unlock()
	if drained {
		l.drain.NotifyAll()
	}
}

// Wait blocks until every operation scheduled so far has finished running,
// or ctx is done, whichever comes first.
func (l *ConcurrencyLimiter) Wait(ctx context.Context) bool {
	l.mu.Lock()
	for l.outstanding > 0 {
		t := l.drain.Enqueue()
		l.mu.Unlock()
		if !t.Wait(ctx) {
			return false
		}
		l.mu.Lock()
	}
	l.mu.Unlock()
	return true
}

// Outstanding reports how many operations have been scheduled but not yet
// finished.
func (l *ConcurrencyLimiter) Outstanding() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.outstanding
}
