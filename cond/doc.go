// Package cond provides a context-aware condition variable for cooperative,
// single-flow-of-control code: a set of pending waiters that can be woken
// one at a time or all at once.
//
// Condition is the leaf synchronization primitive in this module. mutex.Mutex,
// semaphore.Semaphore, rendezvous.Channel, and recurrent.Job are all built
// directly on top of it.
//
// # Why not sync.Cond
//
// sync.Cond ties a condition variable to an externally-held sync.Locker and
// has no notion of cancellation: a waiter can only be woken by Signal,
// Broadcast, or a spurious wakeup it must itself filter. Composing sync.Cond
// with context cancellation requires a helper goroutine per wait (see, for
// instance, quota-pool style implementations that spawn a goroutine purely to
// bridge cond.Wait into a channel select). Condition instead represents each
// waiter as a one-shot channel it owns outright, so a single select between
// that channel and ctx.Done() is enough — no extra goroutine, no lock handed
// in from outside.
//
// Condition.Enqueue/Ticket.Wait split registration from blocking so a caller
// holding its own lock can register a waiter before releasing it, closing
// the lost-wakeup race that a naive "unlock, then wait" sequence leaves open.
// See Enqueue's doc comment for the full argument.
//
// # Fairness
//
// NotifyOne selects uniformly at random among pending waiters rather than in
// FIFO or LIFO order. This is deliberate: callers must not build ordering
// assumptions on top of Condition (see mutex and semaphore, neither of which
// guarantees acquisition order), and a random source is what makes fairness
// testable — run many trials and check the selection distribution, rather
// than asserting a specific order.
//
// The zero value draws from the global math/rand/v2 source. New accepts a
// rand.Source explicitly, for callers (chiefly tests) that need a given
// sequence of NotifyOne choices to be reproducible.
package cond
