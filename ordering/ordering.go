package ordering

// Operation is one slot in a happens-after chain: something that may have
// to wait for whatever came before it, and that unblocks whatever comes
// after it once it's done.
//
// totalorder, partialorder, and causalorder all hand out Operations rather
// than blocking their callers directly, so that a caller can fold the wait
// into a select, check it without blocking, or hand it off to a goroutine
// that runs the actual work. The three methods below are the whole contract;
// nothing else in this family cares how an Operation's readiness is computed
// internally.
//
// Operations are safe for concurrent use, but in practice one goroutine owns
// an Operation end to end: it waits on Ready, does its work, and calls
// Complete.
type Operation interface {
	// Ready closes once everything this operation is ordered after has
	// completed. An operation with nothing ahead of it — the first link in a
	// chain, or one constructed with no dependencies at all — has this
	// channel closed from the start.
	//
	// Closed exactly once; safe for any number of goroutines to wait on.
	Ready() <-chan struct{}

	// Completed closes the first time Complete is called on this operation.
	Completed() <-chan struct{}

	// Complete marks the operation done, which is what lets whatever depends
	// on it become Ready. Every Operation must have Complete called on every
	// exit path — success, error, or cancellation — or everything chained
	// after it blocks forever. defer op.Complete() right after obtaining the
	// operation is the usual way to guarantee that.
	//
	// A second or later call to Complete is a no-op; callers should still
	// aim to call it exactly once.
	Complete()
}

// Ready reports whether op's causal dependencies have all completed, without
// blocking.
func Ready(op Operation) bool {
	select {
	case <-op.Ready():
		return true
	default:
		return false
	}
}

// Completed reports whether op has been marked complete, without blocking.
func Completed(op Operation) bool {
	select {
	case <-op.Completed():
		return true
	default:
		return false
	}
}

// Await blocks until op is ready to execute, then returns a function that
// marks op complete. Callers should defer the returned function immediately
// so that op is marked complete no matter how the caller's work finishes,
// including via panic.
//
// Await is a convenience for the common case of "block until ready, run,
// mark complete" with no interest in timeouts or cancellation. Callers that
// need either should select on op.Ready() and a context themselves, calling
// op.Complete() on every exit path.
func Await(op Operation) (done func()) {
	<-op.Ready()
	return op.Complete
}
