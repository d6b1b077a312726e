// Package ordertest drives a set of ordering.Operation values concurrently
// and checks that the dependencies declared for each one were actually
// honored — this is the harness the totalorder, partialorder, and
// causalorder packages share to test themselves, so a bug in one of those
// packages' HappensNext/HappensAfter implementations shows up here rather
// than in a hand-rolled check duplicated three times.
//
// A caller builds the dependency graph up front as a slice of [Event]
// values, each carrying the tokens it should happen after, then hands the
// slice to [Test]. Test spawns one goroutine per event — deliberately in
// reverse order, so that an implementation bug which only happens to work
// when goroutines start in declaration order does not go unnoticed — and
// records the order operations actually became ready in. Once every
// goroutine has run, Test checks each event's recorded position against its
// declared dependencies.
package ordertest

import (
	"slices"
	"sync"
	"testing"

	"github.com/rendezvous-go/coop/ordering"
)

// Event is one node in a dependency graph under test: a token identifying
// it, the tokens it must happen after, and the Operation that enforces that
// relationship.
type Event struct {
	Token        string
	HappensAfter []string
	Operation    ordering.Operation
}

// Check reports, via t, whether every one of e's declared dependencies
// appears before e.Token in the given execution trace. trace is the order in
// which events actually became ready, as recorded by [Test].
func (e Event) Check(t *testing.T, trace []string) {
	t.Helper()

	pos := slices.Index(trace, e.Token)
	if pos < 0 {
		t.Errorf("event %q never ran", e.Token)
		return
	}
	for _, dep := range e.HappensAfter {
		if !slices.Contains(trace[:pos], dep) {
			t.Errorf("event %q ran before its dependency %q", e.Token, dep)
		}
	}
}

// TestOperationInterface checks that first and second behave the way two
// consecutive links of the same chain must: first starts out ready and
// second does not, completing first is what makes second ready, and
// completing an Operation a second time is harmless.
//
// Every ordering strategy in this module produces operations with this
// shape, so each one's test suite calls this once per chain it exercises
// rather than re-deriving the same four checks by hand.
func TestOperationInterface(t *testing.T, first, second ordering.Operation) {
	t.Helper()

	if !ordering.Ready(first) {
		t.Errorf("first operation in the chain should be ready immediately")
	}
	if ordering.Ready(second) {
		t.Errorf("second operation should not be ready before first completes")
	}
	if ordering.Completed(first) {
		t.Errorf("first operation should not be completed yet")
	}

	first.Complete()
	first.Complete() // completing twice must be a no-op, not a panic.

	if !ordering.Completed(first) {
		t.Errorf("first operation should be completed after Complete")
	}
	if !ordering.Ready(second) {
		t.Errorf("second operation should become ready once first completes")
	}

	second.Complete()
}

// Test runs every event in events concurrently, each blocking on its own
// Operation's Ready channel before being recorded, then verifies that the
// resulting trace respects every event's declared dependencies.
//
// Events are launched in reverse declaration order specifically to stress
// implementations that might accidentally rely on goroutines starting in the
// same order their Operations were created.
func Test(t *testing.T, events []Event) {
	t.Helper()

	var (
		mu    sync.Mutex
		trace []string
	)

	var wg sync.WaitGroup
	for _, e := range slices.Backward(events) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer e.Operation.Complete()

			select {
			case <-e.Operation.Ready():
			case <-t.Context().Done():
				t.Errorf("event %q never became ready before the test was cancelled", e.Token)
				return
			}

			mu.Lock()
			trace = append(trace, e.Token)
			mu.Unlock()
		}()
	}
	wg.Wait()

	for _, e := range events {
		e.Check(t, trace)
	}
}
