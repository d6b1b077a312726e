package semaphore

import (
	"context"
	"fmt"
	"sync"

	"github.com/rendezvous-go/coop/cond"
)

// A Handle identifies a successful Acquire. The zero Handle never compares
// equal to one returned by Acquire and means "no handle" — for example, when
// Acquire was cancelled.
type Handle uint64

// A Semaphore is an N-slot counting lock. New returns a ready-to-use
// Semaphore; the zero value is a 0-slot Semaphore that always blocks.
type Semaphore struct {
	mu          sync.Mutex
	cond        cond.Condition
	slots       int
	nextHandle  Handle
	outstanding map[Handle]struct{}
}

// New returns a Semaphore with limit slots. A negative limit is treated as
// 0 slots rather than "unlimited" — unlike a bare channel, this Semaphore's
// contract is handle identity, and "unlimited" has no handles to be
// identified, so there is nothing sensible to validate a Release against.
// Callers that want an unlimited option should simply not guard with a
// Semaphore at all.
func New(limit int) *Semaphore {
	if limit < 0 {
		limit = 0
	}
	return &Semaphore{
		slots:       limit,
		outstanding: make(map[Handle]struct{}),
	}
}

// String reports the semaphore's current load, e.g. "Semaphore(2/5)".
func (s *Semaphore) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.slots + len(s.outstanding)
	return fmt.Sprintf("Semaphore(%v/%v)", len(s.outstanding), total)
}

// Acquire blocks until a slot is free, then takes it and returns a fresh
// Handle. If ctx is done before a slot frees up, Acquire returns the zero
// Handle and false.
func (s *Semaphore) Acquire(ctx context.Context) (Handle, bool) {
	s.mu.Lock()
	for s.slots < 1 {
		t := s.cond.Enqueue()
		s.mu.Unlock()
		if !t.Wait(ctx) {
			return 0, false
		}
		s.mu.Lock()
	}
	s.slots--
	s.nextHandle++
	h := s.nextHandle
	s.outstanding[h] = struct{}{}
	s.mu.Unlock()
	return h, true
}

// Release returns the slot identified by h. It is a no-op if h is the zero
// Handle or is not currently outstanding — in particular, releasing the same
// Handle twice only returns the slot once.
func (s *Semaphore) Release(h Handle) {
	if h == 0 {
		return
	}
	s.mu.Lock()
	if _, ok := s.outstanding[h]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.outstanding, h)
	s.slots++
	s.mu.Unlock()
	s.cond.NotifyOne()
}

// Waiting reports the number of goroutines currently blocked in Acquire.
func (s *Semaphore) Waiting() int {
	return s.cond.Waiting()
}

// Outstanding reports the number of slots currently held — i.e. acquired
// but not yet released.
func (s *Semaphore) Outstanding() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.outstanding)
}

// WithSlot acquires a slot, runs fn while holding it, and releases the slot
// before returning — including when fn panics, since the release is
// deferred and therefore runs during the panic's unwind.
//
// acquired reports whether fn ran at all.
func WithSlot[T any](ctx context.Context, s *Semaphore, fn func() (T, error)) (result T, acquired bool, err error) {
	h, ok := s.Acquire(ctx)
	if !ok {
		return result, false, nil
	}
	defer s.Release(h)
	result, err = fn()
	return result, true, err
}
