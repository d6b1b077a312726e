package partialorder

import (
	"sync"

	"github.com/rendezvous-go/coop/ordering"
)

// PartialOrder serializes operations that share a key while letting
// operations under different keys run concurrently. It models a collection
// of independent TotalOrder chains, one per key, created lazily as keys are
// first seen.
//
// Calling HappensAfter(k) for the first time with a given key returns an
// Operation that is ready immediately; every later call with the same key
// returns an Operation that waits for the previous one (for that key) to
// call Complete. A chain for a key is forgotten once its most recent
// Operation completes and no newer one has replaced it, so long-lived
// PartialOrder values do not accumulate state for keys that have gone quiet.
//
// As with TotalOrder, only a single goroutine should call HappensAfter to
// establish the order for a given key; once established, the returned
// Operations may be waited on and completed from any goroutine.
//
// The zero value is ready to use.
type PartialOrder[K comparable] struct {
	mu    sync.Mutex
	tails map[K]chan struct{}
}

// HappensAfter returns an Operation that must run after every Operation
// previously obtained for the same key. Operations under distinct keys carry
// no ordering constraint between them.
//
// The returned Operation's Complete method must be called exactly once,
// whatever the outcome of the work it guards; skipping it blocks every later
// Operation queued under the same key.
func (o *PartialOrder[K]) HappensAfter(key K) ordering.Operation {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.tails == nil {
		o.tails = make(map[K]chan struct{})
	}

	wait, ok := o.tails[key]
	if !ok {
		wait = closedChan()
	}
	done := make(chan struct{})
	o.tails[key] = done

	return &keyedOp[K]{wait: wait, done: done, key: key, home: o}
}

// forget drops the chain for key if done is still its most recent link,
// meaning nothing has been queued after it.
func (o *PartialOrder[K]) forget(key K, done chan struct{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.tails[key] == done {
		delete(o.tails, key)
	}
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type keyedOp[K comparable] struct {
	wait <-chan struct{}
	done chan struct{}
	once sync.Once
	key  K
	home *PartialOrder[K]
}

func (o *keyedOp[K]) Ready() <-chan struct{}     { return o.wait }
func (o *keyedOp[K]) Completed() <-chan struct{} { return o.done }

func (o *keyedOp[K]) Complete() {
	o.once.Do(func() {
		close(o.done)
		o.home.forget(o.key, o.done)
	})
}
