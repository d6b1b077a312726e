package partialorder

import (
	"context"
	"fmt"
	"sync"

	"github.com/rendezvous-go/coop/ordering"
	"github.com/rendezvous-go/coop/semaphore"
)

// A Topic is a collection of goroutines working on tasks that maintain a partial
// order of execution based on their partition key. Each task blocks until all
// previously submitted tasks with the same partition key have completed.
//
// Unlike Queue, which blocks until all previous tasks are complete, Topic only
// blocks on tasks within the same partition, allowing unrelated operations to
// proceed without blocking on each other.
//
// A zero Topic is valid and has no limit on the number of active goroutines.
type Topic[K comparable] struct {
	wg       sync.WaitGroup
	sem      *semaphore.Semaphore
	ordering PartialOrder[K]
}

// Go calls the given function in a new goroutine. It blocks until the new
// goroutine can be added without the number of active goroutines in the group
// exceeding the configured limit.
//
// The new goroutine will block before calling f until all previously submitted
// tasks with the same partition key have completed. Tasks with different
// partition keys do not block on each other.
func (t *Topic[K]) Go(partition K, f func()) {
	op := t.ordering.HappensAfter(partition)
	var h semaphore.Handle
	if t.sem != nil {
		h, _ = t.sem.Acquire(context.Background())
	}
	t.wg.Add(1)
	go func() {
		defer t.done(op, h)
		<-op.Ready()
		f()
	}()
}

func (t *Topic[K]) done(op ordering.Operation, h semaphore.Handle) {
	op.Complete()
	if t.sem != nil {
		t.sem.Release(h)
	}
	t.wg.Done()
}

// Wait blocks until all function calls from the Go method have returned.
func (t *Topic[K]) Wait() {
	t.wg.Wait()
}

// SetLimit limits the number of active goroutines in this group to at most n. A
// negative value indicates no limit. A zero value will block any further calls
// to Go.
//
// The limit must not be modified while any goroutines in the group are active.
func (t *Topic[K]) SetLimit(n int) {
	if t.sem != nil && t.sem.Outstanding() != 0 {
		panic(fmt.Errorf("topic: modify limit while %v goroutines in the group are still active", t.sem.Outstanding()))
	}
	if n < 0 {
		t.sem = nil
		return
	}
	t.sem = semaphore.New(n)
}
