package totalorder

import (
	"context"
	"fmt"
	"sync"

	"github.com/rendezvous-go/coop/ordering"
	"github.com/rendezvous-go/coop/semaphore"
)

// A Queue is a collection of goroutines working on tasks that must maintain a
// strict total order. Each task blocks until all previously submitted tasks have
// completed their execution.
//
// A zero Queue is valid and has no limit on the number of active goroutines.
type Queue struct {
	wg       sync.WaitGroup
	sem      *semaphore.Semaphore
	ordering TotalOrder
}

// Go calls the given function in a new goroutine. It blocks until the new
// goroutine can be added without the number of active goroutines in the group
// exceeding the configured limit.
//
// The new goroutine will block before calling f until all previously submitted
// tasks have completed, ensuring a strict sequential execution order.
func (q *Queue) Go(f func()) {
	op := q.ordering.HappensNext()
	var h semaphore.Handle
	if q.sem != nil {
		h, _ = q.sem.Acquire(context.Background())
	}
	q.wg.Add(1)
	go func() {
		defer q.done(op, h)
		<-op.Ready()
		f()
	}()
}

func (q *Queue) done(op ordering.Operation, h semaphore.Handle) {
	op.Complete()
	if q.sem != nil {
		q.sem.Release(h)
	}
	q.wg.Done()
}

// Wait blocks until all function calls from the Go method have returned.
func (q *Queue) Wait() {
	q.wg.Wait()
}

// SetLimit limits the number of active goroutines in this group to at most n. A
// negative value indicates no limit. A zero value will block any further calls
// to Go.
//
// The limit must not be modified while any goroutines in the group are active.
func (q *Queue) SetLimit(n int) {
	if q.sem != nil && q.sem.Outstanding() != 0 {
		panic(fmt.Errorf("queue: modify limit while %v goroutines in the group are still active", q.sem.Outstanding()))
	}
	if n < 0 {
		q.sem = nil
		return
	}
	q.sem = semaphore.New(n)
}
