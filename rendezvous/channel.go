package rendezvous

import (
	"context"
	"iter"
	"sync"

	"github.com/rendezvous-go/coop/cond"
)

// A Channel is an unbuffered rendezvous point for a single value of type T.
// The zero value is a ready-to-use, open Channel.
type Channel[T any] struct {
	mu sync.Mutex

	readSerial, writeSerial int64

	readCond          cond.Condition // readers waiting for a value to arrive
	writeCompleteCond cond.Condition // writers waiting for their value to be consumed
	writeAdmitCond    cond.Condition // writers waiting for the single value slot to free up

	closed         bool
	valueInTransit bool
	value          T
}

// New returns a new, open Channel[T]. Equivalent to new(Channel[T]); T's
// zero value is always a valid starting point, so this constructor exists
// only for symmetry with the other primitives' New functions.
func New[T any]() *Channel[T] {
	return &Channel[T]{}
}

// Write blocks until a reader accepts v, the channel closes, or ctx is
// done. It returns ErrWriteCancelled if ctx fired before or during the
// handoff, or ErrClosed if the channel is (or becomes) closed before a
// reader shows up.
func (c *Channel[T]) Write(ctx context.Context, v T) error {
	c.mu.Lock()
	for c.valueInTransit && !c.closed {
		t := c.writeAdmitCond.Enqueue()
		c.mu.Unlock()
		if !t.Wait(ctx) {
			return ErrWriteCancelled
		}
		c.mu.Lock()
	}
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	c.valueInTransit = true
	c.value = v
	c.writeSerial++
	target := c.writeSerial
	c.mu.Unlock()
	c.readCond.NotifyOne()

	c.mu.Lock()
	var cancelled bool
	for c.readSerial < target && !c.closed {
		t := c.writeCompleteCond.Enqueue()
		c.mu.Unlock()
		if !t.Wait(ctx) {
			cancelled = true
			c.mu.Lock()
			break
		}
		c.mu.Lock()
	}
	closedNow := c.closed
	if cancelled {
		// The reader that was expected at this position never showed up.
		// Bump readSerial so the serial space stays aligned for whoever
		// reads next.
		c.readSerial++
	}

	// Unconditional epilogue: every exit path from this point clears the
	// slot and lets the next writer in, regardless of how we got here.
	var zero T
	c.value = zero
	c.valueInTransit = false
	c.mu.Unlock()
	c.writeAdmitCond.NotifyOne()

	switch {
	case cancelled:
		return ErrWriteCancelled
	case closedNow:
		return ErrClosed
	default:
		return nil
	}
}

// Read blocks until a writer's value is available, the channel closes, or
// ctx is done. It returns ErrReadCancelled on cancellation, ErrClosed once
// closed.
func (c *Channel[T]) Read(ctx context.Context) (T, error) {
	return c.read(ctx, nil)
}

// read is Read's implementation, parameterized by an optional decline hook
// used by Select to let exactly one of several racing reads claim the
// handoff. decline is consulted after the closed check and before the value
// is consumed; if it reports true, read backs out without touching
// readSerial or the stored value, leaving the pending write untouched for
// whichever read legitimately claims it.
func (c *Channel[T]) read(ctx context.Context, decline func() bool) (T, error) {
	var zero T

	c.mu.Lock()
	for c.readSerial >= c.writeSerial && !c.closed {
		t := c.readCond.Enqueue()
		c.mu.Unlock()
		if !t.Wait(ctx) {
			return zero, ErrReadCancelled
		}
		c.mu.Lock()
	}
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	if decline != nil && decline() {
		c.mu.Unlock()
		return zero, ErrReadCancelled
	}

	v := c.value
	c.readSerial++
	c.mu.Unlock()
	c.writeCompleteCond.NotifyOne()
	return v, nil
}

// Close idempotently closes the channel. Every pending Read and Write wakes
// with ErrClosed (after its own loop re-checks the closed flag); every
// subsequent Read or Write fails with ErrClosed immediately.
func (c *Channel[T]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.readCond.NotifyAll()
	c.writeCompleteCond.NotifyAll()
	c.writeAdmitCond.NotifyAll()
}

// IsClosed reports whether Close has been called.
func (c *Channel[T]) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Iterate returns a range-over-func iterator that yields values read from c
// until ctx is done, the channel closes, or the loop body stops early by
// returning false from yield. It never surfaces ErrReadCancelled or
// ErrClosed — both end the iteration normally, matching Read's error set
// exactly (Read can return no other kind of error).
func (c *Channel[T]) Iterate(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := c.Read(ctx)
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}
