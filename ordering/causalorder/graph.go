package causalorder

import (
	"context"
	"fmt"
	"sync"

	"github.com/rendezvous-go/coop/ordering"
	"github.com/rendezvous-go/coop/semaphore"
)

// A Graph is a collection of goroutines working on tasks that maintain a
// complex order of execution based on multiple chains. Each task blocks until
// all previously submitted tasks with any of the same chain keys have completed.
//
// Unlike Topic, which blocks only on tasks with the exact same partition key,
// Graph blocks on tasks that share any common key, allowing for more complex
// dependency relationships while still permitting concurrent execution of
// completely independent operations.
//
// A zero Graph is valid and has no limit on the number of active goroutines.
type Graph[K comparable] struct {
	wg       sync.WaitGroup
	sem      *semaphore.Semaphore
	ordering CausalOrder[K]
}

// Go calls the given function in a new goroutine. It blocks until the new
// goroutine can be added without the number of active goroutines in the group
// exceeding the configured limit.
//
// The new goroutine will block before calling f until all previously submitted
// tasks that share any of the given chain keys have completed. Tasks that share
// no common keys can execute concurrently.
func (g *Graph[K]) Go(keys []K, f func()) {
	op := g.ordering.HappensAfter(keys...)
	var h semaphore.Handle
	if g.sem != nil {
		h, _ = g.sem.Acquire(context.Background())
	}
	g.wg.Add(1)
	go func() {
		defer g.done(op, h)
		<-op.Ready()
		f()
	}()
}

func (g *Graph[K]) done(op ordering.Operation, h semaphore.Handle) {
	op.Complete()
	if g.sem != nil {
		g.sem.Release(h)
	}
	g.wg.Done()
}

// Wait blocks until all function calls from the Go method have returned.
func (g *Graph[K]) Wait() {
	g.wg.Wait()
}

// SetLimit limits the number of active goroutines in this group to at most n. A
// negative value indicates no limit. A zero value will block any further calls
// to Go.
//
// The limit must not be modified while any goroutines in the group are active.
func (g *Graph[K]) SetLimit(n int) {
	if g.sem != nil && g.sem.Outstanding() != 0 {
		panic(fmt.Errorf("causalorder: modify limit while %v goroutines in the group are still active", g.sem.Outstanding()))
	}
	if n < 0 {
		g.sem = nil
		return
	}
	g.sem = semaphore.New(n)
}
