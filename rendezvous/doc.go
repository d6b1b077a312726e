// Package rendezvous provides an unbuffered, two-party handoff channel:
// Channel[T]. A single Write blocks until a matching Read consumes the
// value, and vice versa — there is no internal queue, unlike Go's built-in
// buffered channels.
//
// Channel composes three cond.Condition instances (one for readers waiting
// on a value, one for writers waiting for their value to be consumed, one
// for writers waiting for the single value slot to free up) rather than a
// single built-in chan T, because the contract needs things a built-in
// channel cannot express cleanly alongside cancellation: a distinct error
// for "cancelled while writing" versus "cancelled while reading" versus
// "channel closed," and a Select that joins every losing arm before
// returning instead of racing to the first ready case the way a built-in
// select statement does.
//
// # Select semantics
//
// Select in this package deliberately does not behave like Go's built-in
// select statement. A built-in select races cases and returns as soon as
// one is ready, abandoning the rest. This package's Select instead waits
// for every losing arm to finish declining before it returns, because only
// then is the shared claim flag quiescent and the winning channel's serial
// counters are guaranteed consistent with the rest of the handoff protocol.
// Do not shortcut this to a first-of race — see the package's tests for
// what breaks if you do.
package rendezvous
