// Package mutex provides a non-reentrant exclusive lock whose handle carries
// an identity: only the holder of the most recently issued handle may
// release it.
//
// Handle identity exists to catch a specific bug class: a goroutine that
// acquired the lock, was cancelled out of whatever it was doing with it, and
// later — mistakenly — tries to release a lock it no longer holds (because
// someone else acquired it in the meantime). Without identity, that Release
// would silently unlock someone else's critical section. With it, the stale
// handle is simply ignored.
package mutex
