// Package ordering provides the shared [Operation] contract and a small set
// of helpers (Ready, Completed, Await) that totalorder, partialorder, and
// causalorder build on to express "this must happen after that" without
// pinning the caller to any particular concurrency primitive.
//
// # Operation
//
// Every ordering strategy in this family hands back an Operation rather than
// blocking directly: Ready closes once the operation's dependencies are
// satisfied, Completed closes once the caller has called Complete, and
// Complete is what lets whatever comes next in the chain proceed. The
// pattern a worker goroutine follows is always the same:
//
//	op := order.Schedule(...) // HappensNext, HappensAfter, etc.
//	go func() {
//	    defer op.Complete()
//	    <-op.Ready()
//	    // do the work
//	}()
//
// [Await] collapses that into one call for the common case where the caller
// has no interest in timeouts:
//
//	done := ordering.Await(op)
//	defer done()
//	// do the work
//
// A worker that needs to honor cancellation selects on Ready and ctx.Done
// itself, but must still call Complete on every exit path — an Operation
// that is never completed stalls everything downstream of it indefinitely:
//
//	select {
//	case <-op.Ready():
//	    defer op.Complete()
//	    // do the work
//	    return nil
//	case <-ctx.Done():
//	    op.Complete() // still required, even on the abort path
//	    return ctx.Err()
//	}
//
// # Picking a strategy
//
// totalorder.TotalOrder serializes everything: useful when a stream of
// operations has one definite order and nothing about it can run out of
// sequence, such as applying a log of events in the order they were
// recorded.
//
//	var order totalorder.TotalOrder
//	for _, entry := range log {
//	    op := order.HappensNext()
//	    go apply(op, entry)
//	}
//
// partialorder.PartialOrder[K] relaxes that to "ordered within a key, free
// across keys" — the right fit when a stream of work is naturally
// partitioned and only same-partition operations actually conflict, such as
// per-account updates where different accounts can proceed independently.
//
//	var order partialorder.PartialOrder[string]
//	for _, update := range updates {
//	    op := order.HappensAfter(update.AccountID)
//	    go apply(op, update)
//	}
//
// causalorder.CausalOrder[K] generalizes partialorder further, to an
// operation that may depend on several keys' chains at once rather than
// exactly one — a join point in a dependency graph, such as a deployment
// step that can't start until more than one upstream build has finished.
//
// If operations carry no ordering requirement at all and the only thing you
// need is a cap on how many run concurrently, none of this package applies —
// reach for [github.com/rendezvous-go/coop/limiter.ConcurrencyLimiter]
// instead, which is this family with the ordering taken back out.
package ordering
