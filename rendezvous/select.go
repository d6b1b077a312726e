package rendezvous

import (
	"context"
	"errors"
	"sync"
)

// A Case pairs one channel with a handler to run on the value it delivers,
// for use with Select. Build one with Recv.
type Case interface {
	attempt(ctx context.Context, decline func() bool) error
}

type recvCase[T any] struct {
	ch     *Channel[T]
	handle func(T)
}

func (c recvCase[T]) attempt(ctx context.Context, decline func() bool) error {
	v, err := c.ch.read(ctx, decline)
	if err != nil {
		return err
	}
	c.handle(v)
	return nil
}

// Recv builds a Select case that reads from ch and, if it wins the race,
// calls handle with the delivered value.
func Recv[T any](ch *Channel[T], handle func(T)) Case {
	return recvCase[T]{ch: ch, handle: handle}
}

// Select waits for exactly one of cases to deliver a value, runs that
// case's handler to completion, and returns. At most one handler ever runs,
// even when several of the underlying channels are ready at once.
//
// Implementation: Select issues a read against every case concurrently,
// each guarded by a shared child context derived from ctx. A shared claim
// gates each read's decline hook, so whichever read is first to reach the
// point of actually consuming its channel's value wins the race atomically;
// every other read declines (reporting ErrReadCancelled, which Select
// ignores) so its paired writer is left untouched. Once a winner is known,
// the child context is cancelled to hasten the losing reads' exit. Select
// waits for every case to finish — win, lose, or error — before returning;
// it never shortcuts to the first case that finishes, because only once
// every case is quiescent is the shared claim guaranteed settled and the
// channels' serial counters guaranteed consistent.
//
// If ctx is done before any case wins, Select cancels every case's read and
// returns ctx.Err(); the ErrReadCancelled each cancelled read reports is
// swallowed like any other losing arm's.
//
// Any error other than ErrReadCancelled — most notably ErrClosed from a
// case whose channel closed mid-select — ends the whole Select, not just
// that one case: this implementation treats a closed arm the same as any
// other error, per the spec's explicit statement that Select "propagates
// all other errors including channel-closed."
func Select(ctx context.Context, cases ...Case) error {
	childCtx, cancelChildren := context.WithCancel(ctx)
	defer cancelChildren()

	var claimed claim
	results := make([]error, len(cases))

	var wg sync.WaitGroup
	wg.Add(len(cases))
	for i, c := range cases {
		go func(i int, c Case) {
			defer wg.Done()
			err := c.attempt(childCtx, claimed.decline)
			if err == nil || !errors.Is(err, ErrReadCancelled) {
				// Either this case won outright, or it hit an error that
				// ends the whole Select (e.g. ErrClosed) rather than just
				// this arm — either way the remaining arms should stop
				// waiting.
				cancelChildren()
			}
			results[i] = err
		}(i, c)
	}
	wg.Wait()

	var firstErr error
	var won bool
	for _, err := range results {
		if err == nil {
			won = true
			continue
		}
		if errors.Is(err, ErrReadCancelled) {
			continue
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if !won && firstErr == nil {
		// Nobody won and nothing else went wrong, so every case must have
		// declined because the parent ctx itself was cancelled — no case
		// cancels childCtx on its own unless it won.
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return firstErr
}

// claim is the shared "taken" flag described in Select's doc comment: the
// first call to decline wins (returns false, meaning "do not decline");
// every call after that loses (returns true, meaning "decline").
type claim struct {
	mu    sync.Mutex
	taken bool
}

func (c *claim) decline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.taken {
		return true
	}
	c.taken = true
	return false
}
