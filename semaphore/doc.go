// Package semaphore provides a counting lock with handle identity: each
// successful Acquire returns a Handle that only it may Release.
//
// # Relationship to a channel-based semaphore
//
// A semaphore can be implemented as nothing more than a buffered channel:
// the buffer size is the slot count, and Acquire/Release are channel
// send/receive. That design is a genuine zero-cost abstraction, and a fine
// choice when tokens are fungible — nothing needs to know *which*
// acquisition is releasing, only that the count balances.
//
// This package cannot use that trick, because its contract requires handle
// identity: a Release must be rejected unless it presents the Handle its
// matching Acquire returned, so a goroutine that was cancelled after
// acquiring (and so never really "held" the slot from the caller's point of
// view) cannot later release a slot that has since been reassigned. A
// channel token carries no identity of its own, so this package instead
// tracks an explicit outstanding-handle set behind a mutex.Mutex-style
// Condition, mirroring mutex.Mutex one level up in concurrency — N slots
// instead of 1, each independently identified.
//
// # Primary use case
//
// Bounding concurrently active operations — goroutines, outbound requests,
// open files — with cancellable acquisition and scoped release via
// WithSlot, the same pattern mutex.WithLock uses for exclusive locks.
package semaphore
