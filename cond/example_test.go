package cond_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/rendezvous-go/coop/cond"
)

// This example shows the canonical shape every primitive in this module
// builds on Condition with: an external lock guards the predicate, a waiter
// is enqueued while that lock is still held, and only then is the lock
// released and the wait performed. The notifier flips the predicate under
// the lock and notifies after releasing it; because the waiter was already
// enqueued before it dropped the lock, that notification cannot fall into a
// gap between the waiter's predicate check and its wait.
func Example() {
	var (
		mu    sync.Mutex
		c     cond.Condition
		ready bool
	)

	go func() {
		mu.Lock()
		ready = true
		mu.Unlock()
		c.NotifyOne()
	}()

	mu.Lock()
	for !ready {
		t := c.Enqueue()
		mu.Unlock()
		t.Wait(context.Background())
		mu.Lock()
	}
	mu.Unlock()
	fmt.Println("ready:", ready)

	// Output:
	// ready: true
}
