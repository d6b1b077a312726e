package recurrent_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rendezvous-go/coop/recurrent"
)

// TestCoalescesOverlappingRequests exercises invariant 7: N overlapping
// Request calls while a run is in flight cause exactly one additional run,
// regardless of N.
func TestCoalescesOverlappingRequests(t *testing.T) {
	var runs atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	job := recurrent.New(func(ctx context.Context) error {
		n := runs.Add(1)
		if n == 1 {
			close(started)
			<-release
		}
		return nil
	}, nil)

	job.Request(context.Background())
	<-started

	const n = 10
	for range n {
		job.Request(context.Background())
	}

	close(release)
	if !job.Wait(context.Background()) {
		t.Fatalf("want Wait to succeed")
	}

	if got := runs.Load(); got != 2 {
		t.Fatalf("want exactly 2 runs (1 initial + 1 coalesced), got %d", got)
	}
}

func TestRequestWhileIdleStartsImmediately(t *testing.T) {
	ran := make(chan struct{}, 1)
	job := recurrent.New(func(ctx context.Context) error {
		ran <- struct{}{}
		return nil
	}, nil)

	job.Request(context.Background())
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatalf("want the operation to run")
	}
	if !job.Wait(context.Background()) {
		t.Fatalf("want Wait to succeed")
	}
}

func TestRunErrorsRouteToOnError(t *testing.T) {
	boom := errors.New("boom")
	got := make(chan error, 1)

	job := recurrent.New(func(ctx context.Context) error {
		return boom
	}, func(err error) { got <- err })

	job.Request(context.Background())
	if err := <-got; !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
	job.Wait(context.Background())
}

func TestRunErrorsRouteToUnhandledErrorWhenNoOnError(t *testing.T) {
	orig := recurrent.UnhandledError
	defer func() { recurrent.UnhandledError = orig }()

	boom := errors.New("boom")
	got := make(chan error, 1)
	recurrent.UnhandledError = func(err error) { got <- err }

	job := recurrent.New(func(ctx context.Context) error {
		return boom
	}, nil)

	job.Request(context.Background())
	if err := <-got; !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
	job.Wait(context.Background())
}

func TestWaitOnAlreadyIdleJobReturnsImmediately(t *testing.T) {
	job := recurrent.New(func(ctx context.Context) error { return nil }, nil)
	if !job.Wait(context.Background()) {
		t.Fatalf("want Wait on a never-started job to succeed immediately")
	}
}
