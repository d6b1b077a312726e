package mutex

import (
	"context"
	"sync"

	"github.com/rendezvous-go/coop/cond"
)

// A Handle identifies a successful Acquire. The zero Handle never compares
// equal to one returned by Acquire and is used to mean "no handle" (for
// example, when Acquire was cancelled).
type Handle uint64

// A Mutex is a non-reentrant exclusive lock. The zero value is an unlocked
// Mutex ready to use.
type Mutex struct {
	mu         sync.Mutex
	cond       cond.Condition
	locked     bool
	lockHandle Handle
}

// Acquire blocks until the lock is free, then locks it and returns a fresh
// Handle. If ctx is done before the lock becomes free, Acquire returns the
// zero Handle and false without having acquired anything.
func (m *Mutex) Acquire(ctx context.Context) (Handle, bool) {
	m.mu.Lock()
	for m.locked {
		t := m.cond.Enqueue()
		m.mu.Unlock()
		if !t.Wait(ctx) {
			return 0, false
		}
		m.mu.Lock()
	}
	m.locked = true
	m.lockHandle++
	h := m.lockHandle
	m.mu.Unlock()
	return h, true
}

// Release unlocks the Mutex if h is the handle of the current holder. It is
// a no-op if h is the zero Handle, if the Mutex is not locked, or if h does
// not match the handle most recently issued by Acquire — a stale handle from
// an earlier, already-superseded acquisition can never release the current
// holder's lock.
//
// Because lockHandle only advances on Acquire, every Release after the next
// Acquire is automatically stale.
func (m *Mutex) Release(h Handle) {
	if h == 0 {
		return
	}
	m.mu.Lock()
	if !m.locked || m.lockHandle != h {
		m.mu.Unlock()
		return
	}
	m.locked = false
	m.mu.Unlock()
	m.cond.NotifyOne()
}

// WithLock acquires m, runs fn while holding it, and releases m before
// returning — including when fn panics, since the release is deferred and
// therefore runs during the panic's unwind before it propagates further.
//
// acquired reports whether fn ran at all; when ctx is done before the lock
// becomes available, WithLock returns the zero T, false, and a nil error
// without calling fn.
func WithLock[T any](ctx context.Context, m *Mutex, fn func() (T, error)) (result T, acquired bool, err error) {
	h, ok := m.Acquire(ctx)
	if !ok {
		return result, false, nil
	}
	defer m.Release(h)
	result, err = fn()
	return result, true, err
}
