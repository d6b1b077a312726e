package rendezvous

import "errors"

// Three distinct, errors.Is-comparable failure kinds flow out of Channel.
// They are expected conditions — graceful termination, not bugs — and
// Iterate and Select recover from them locally rather than letting them
// surface as unexpected errors.
var (
	// ErrClosed is returned by Read or Write once the channel has been
	// closed, and by any Read or Write that was already blocked when Close
	// ran.
	ErrClosed = errors.New("rendezvous: channel closed")

	// ErrReadCancelled is returned by Read when its context is done before
	// a value becomes available, or when a losing Select arm declines a
	// read that another arm already claimed.
	ErrReadCancelled = errors.New("rendezvous: read cancelled")

	// ErrWriteCancelled is returned by Write when its context is done
	// before a value is accepted or before a matching reader completes the
	// handoff.
	ErrWriteCancelled = errors.New("rendezvous: write cancelled")
)
