package cond

import (
	"context"
	"math/rand/v2"
	"sync"
)

// A Condition holds an unordered set of pending waiters and lets a caller
// wake one (NotifyOne) or all of them (NotifyAll). It is safe for concurrent
// use; the zero value is ready to use and picks NotifyOne's waiter from the
// global, unseeded math/rand/v2 source.
//
// For tests that need NotifyOne's fairness to be reproducible, construct a
// Condition with New and an explicit rand.Source instead of using the zero
// value — the same seeded-source-for-reproducibility idiom used elsewhere in
// this module's property-style tests.
type Condition struct {
	mu      sync.Mutex
	waiters []*waiter
	rng     *rand.Rand // nil means use the package-level rand.IntN.
}

// New returns a Condition whose NotifyOne draws from src instead of the
// global source, so that which waiter gets woken is reproducible across
// runs given the same src.
func New(src rand.Source) *Condition {
	return &Condition{rng: rand.New(src)}
}

// waiter is a one-shot resumption record, resolved by closing done once a
// notify claims it.
type waiter struct {
	done chan struct{}
}

// Wait suspends the caller until a Notify{One,All} call resolves this
// waiter, or until ctx is done. It returns true if resumed by a notify,
// false if resumed by cancellation.
//
// If ctx is already done on entry, Wait still registers a waiter and
// resolves it cancelled through the same cleanup path used for a
// cancellation that arrives mid-wait, rather than special-casing the
// already-cancelled case.
//
// Wait is a standalone convenience for callers that do not also need to
// guard a predicate with their own lock; it is equivalent to
// c.Enqueue().Wait(ctx). Callers that compose Condition with external
// mutable state (as Mutex, Semaphore, and Channel do) should use Enqueue
// directly: see its doc comment for why.
func (c *Condition) Wait(ctx context.Context) bool {
	return c.Enqueue().Wait(ctx)
}

// Enqueue registers a new waiter in the wait-set and returns a Ticket for
// it. The waiter is pending — eligible to be chosen by NotifyOne or woken by
// NotifyAll — from the moment Enqueue returns, before the caller has done
// anything else.
//
// This split between registering (Enqueue) and blocking (Ticket.Wait) exists
// to close the classic condition-variable lost-wakeup race: a caller
// guarding a predicate with its own lock must register the waiter *before*
// releasing that lock, then block only after releasing it. For example,
// Mutex.Acquire does:
//
//	mu.Lock()
//	for locked {
//		t := cond.Enqueue()
//		mu.Unlock()
//		if !t.Wait(ctx) {
//			return zero, false
//		}
//		mu.Lock()
//	}
//
// Because the waiter is already in the wait-set before mu is released, a
// concurrent Release (which must itself acquire mu to flip locked and call
// NotifyOne) can never run between the predicate check and the wait
// registration — there is no gap in which its notification could be missed.
func (c *Condition) Enqueue() *Ticket {
	w := &waiter{done: make(chan struct{})}
	c.mu.Lock()
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()
	return &Ticket{c: c, w: w}
}

// A Ticket is a registered, not-yet-resolved waiter produced by Enqueue.
type Ticket struct {
	c *Condition
	w *waiter
}

// Wait blocks until this ticket's waiter is notified or ctx is done,
// cleaning up the wait-set entry on every exit path.
func (t *Ticket) Wait(ctx context.Context) bool {
	select {
	case <-t.w.done:
		return true
	case <-ctx.Done():
		t.c.mu.Lock()
		removed := t.c.remove(t.w)
		t.c.mu.Unlock()
		if !removed {
			// A notify already claimed this waiter between ctx firing and
			// our attempt to remove it. The notification must not be lost:
			// wait for the resolution that is already in flight.
			<-t.w.done
			return true
		}
		return false
	}
}

// NotifyOne wakes one pending waiter, chosen uniformly at random. If the
// wait-set is empty the notification is lost; Condition keeps no pending
// count.
func (c *Condition) NotifyOne() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.waiters) == 0 {
		return
	}
	i := c.intn(len(c.waiters))
	w := c.waiters[i]
	c.waiters[i] = c.waiters[len(c.waiters)-1]
	c.waiters = c.waiters[:len(c.waiters)-1]

	close(w.done)
}

// intn picks a random index in [0,n) from c.rng if one was set via New, or
// from the global source otherwise.
func (c *Condition) intn(n int) int {
	if c.rng != nil {
		return c.rng.IntN(n)
	}
	return rand.IntN(n)
}

// NotifyAll wakes every pending waiter. The wait-set is emptied before any
// waiter is resolved, so a continuation woken by this call observes an empty
// set rather than one that is still being drained.
func (c *Condition) NotifyAll() {
	c.mu.Lock()
	pending := c.waiters
	c.waiters = nil
	c.mu.Unlock()

	for _, w := range pending {
		close(w.done)
	}
}

// Waiting reports the number of waiters currently registered.
func (c *Condition) Waiting() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.waiters)
}

// remove deletes w from the wait-set by identity, swapping it with the last
// element and truncating. It reports whether w was found (and therefore
// removed by this call, rather than already claimed by a notify).
//
// Callers must hold c.mu.
func (c *Condition) remove(w *waiter) bool {
	for i, candidate := range c.waiters {
		if candidate == w {
			last := len(c.waiters) - 1
			c.waiters[i] = c.waiters[last]
			c.waiters = c.waiters[:last]
			return true
		}
	}
	return false
}
