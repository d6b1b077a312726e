package causalorder

import (
	"sync"

	"github.com/rendezvous-go/coop/ordering"
)

// CausalOrder generalizes PartialOrder from a single key per operation to any
// number of keys, letting an operation declare that it happens after the
// most recent operation on each of several chains at once. Together the
// chains and their fan-in operations form a directed acyclic graph: an
// operation with several keys is a join point that only becomes ready once
// every one of its dependency chains has caught up to it.
//
// Operations that share no key at all are unconstrained with respect to one
// another and may run concurrently; operations sharing even one key are
// ordered the same way PartialOrder would order them for that key alone.
//
// Only one goroutine should call HappensAfter to establish a given set of
// dependencies; the returned Operations themselves may be waited on and
// completed from any goroutine once obtained.
//
// The zero value is ready to use.
type CausalOrder[K comparable] struct {
	mu    sync.Mutex
	tails map[K]chan struct{}
}

// HappensAfter returns an Operation that must run after the most recently
// queued operation on every one of the given keys. Calling it with no keys
// at all returns an Operation with no dependencies, ready immediately and
// untracked by any chain.
//
// Complete must be called exactly once on the returned Operation regardless
// of outcome; failing to do so stalls every operation waiting on any of its
// keys.
func (o *CausalOrder[K]) HappensAfter(keys ...K) ordering.Operation {
	switch len(keys) {
	case 0:
		return &freeOp{}
	case 1:
		return o.singleDependency(keys[0])
	default:
		return o.joinDependencies(keys)
	}
}

func (o *CausalOrder[K]) advance(key K) <-chan struct{} {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.tails == nil {
		o.tails = make(map[K]chan struct{})
	}
	wait, ok := o.tails[key]
	if !ok {
		wait = closedChan()
	}
	return wait
}

func (o *CausalOrder[K]) setTail(key K, done chan struct{}) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.tails == nil {
		o.tails = make(map[K]chan struct{})
	}
	o.tails[key] = done
}

func (o *CausalOrder[K]) forget(key K, done chan struct{}) {
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

func (o *CausalOrder[K]) singleDependency(key K) ordering.Operation {
	wait := o.advance(key)
	done := make(chan struct{})
	o.setTail(key, done)
	return &singleDepOp[K]{wait: wait, done: done, key: key, home: o}
}

// joinDependencies builds an operation that fans in on several chains at
// once, sharing one completion channel across all of them: completing the
// operation advances every one of its keys' chains simultaneously.
func (o *CausalOrder[K]) joinDependencies(keys []K) ordering.Operation {
	done := make(chan struct{})
	waits := make(map[K]<-chan struct{}, len(keys))
	for _, key := range keys {
		waits[key] = o.advance(key)
		o.setTail(key, done)
	}
	return &joinOp[K]{home: o, waits: waits, done: done}
}

// freeOp is an Operation with no causal dependency at all. Completing it has
// no effect on any chain.
type freeOp struct {
	init     sync.Once
	ready    chan struct{}
	finished chan struct{}
	once     sync.Once
}

func (o *freeOp) lazyInit() {
	o.init.Do(func() {
		o.ready = closedChan()
		o.finished = make(chan struct{})
	})
}

func (o *freeOp) Ready() <-chan struct{} {
	o.lazyInit()
	return o.ready
}

func (o *freeOp) Completed() <-chan struct{} {
	o.lazyInit()
	return o.finished
}

func (o *freeOp) Complete() {
	o.lazyInit()
	o.once.Do(func() { close(o.finished) })
}

// singleDepOp depends on exactly one chain key.
type singleDepOp[K comparable] struct {
	wait <-chan struct{}
	done chan struct{}
	once sync.Once
	key  K
	home *CausalOrder[K]
}

func (o *singleDepOp[K]) Ready() <-chan struct{}     { return o.wait }
func (o *singleDepOp[K]) Completed() <-chan struct{} { return o.done }

func (o *singleDepOp[K]) Complete() {
	o.once.Do(func() {
		close(o.done)
		o.home.forget(o.key, o.done)
	})
}

// joinOp depends on two or more chain keys simultaneously and is only ready
// once all of them have caught up.
type joinOp[K comparable] struct {
	home  *CausalOrder[K]
	waits map[K]<-chan struct{}
	done  chan struct{}
	once  sync.Once

	readyInit sync.Once
	readyCh   chan struct{}
}

// Ready is built lazily so an operation nobody ever inspects the readiness
// of never spawns the background goroutine below.
func (o *joinOp[K]) Ready() <-chan struct{} {
	o.readyInit.Do(func() {
		o.readyCh = make(chan struct{})
		if o.allSatisfied() {
			close(o.readyCh)
			return
		}
		go func() {
			for _, wait := range o.waits {
				<-wait
			}
			close(o.readyCh)
		}()
	})
	return o.readyCh
}

func (o *joinOp[K]) allSatisfied() bool {
	for _, wait := range o.waits {
		select {
		case <-wait:
		default:
			return false
		}
	}
	return true
}

func (o *joinOp[K]) Completed() <-chan struct{} { return o.done }

func (o *joinOp[K]) Complete() {
	o.once.Do(func() {
		// Close done before reclaiming chain entries: a concurrent HappensAfter
		// call advancing one of these keys must see done already closed.
		close(o.done)
		for key := range o.waits {
			o.home.forget(key, o.done)
		}
	})
}
