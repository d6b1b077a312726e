package totalorder

import (
	"sync"

	"github.com/rendezvous-go/coop/ordering"
)

// TotalOrder serializes every operation drawn from it into one strict
// sequence, regardless of any key or attribute the caller might otherwise
// group operations by.
//
// Calling HappensNext repeatedly produces a chain: the first link is ready
// immediately, and every later link waits for its immediate predecessor to
// call Complete. This is a degenerate case of the causal and partial
// orderings elsewhere in this package family — there is exactly one chain,
// shared by every operation.
//
// A TotalOrder only makes sense when a single goroutine decides the order by
// calling HappensNext in the order operations should run; nothing here
// synchronizes concurrent callers of HappensNext itself, nor would doing so
// be meaningful — if two goroutines raced to extend the chain, "the order"
// would no longer be well-defined.
//
// The zero value is ready to use.
type TotalOrder struct {
	// tail is the tail link of the chain: the channel the next operation added
	// via HappensNext must wait on. It is lazily set to a closed channel on
	// first use, so the first operation in any chain runs unblocked.
	tail chan struct{}
}

func (o *TotalOrder) lazyInit() {
	if o.tail == nil {
		o.tail = make(chan struct{})
		close(o.tail)
	}
}

// HappensNext returns an Operation that must run after every operation
// previously obtained from this TotalOrder. Operations run in exactly the
// order their HappensNext calls were made.
//
// The caller is responsible for calling Complete on the returned Operation
// once it finishes — whether it succeeded, failed, or was abandoned. An
// Operation that is never completed stalls every link added after it,
// forever; this package does not watch for cancellation on your behalf, so
// wire your own context handling around the call to Complete if you need it.
func (o *TotalOrder) HappensNext() ordering.Operation {
	o.lazyInit()
	link := &link{wait: o.tail, done: make(chan struct{})}
	o.tail = link.done
	return link
}

// link is one node of a TotalOrder's chain.
type link struct {
	wait <-chan struct{}
	done chan struct{}
	once sync.Once
}

func (l *link) Ready() <-chan struct{}     { return l.wait }
func (l *link) Completed() <-chan struct{} { return l.done }

func (l *link) Complete() {
	l.once.Do(func() { close(l.done) })
}
