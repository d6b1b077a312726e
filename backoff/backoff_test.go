package backoff_test

import (
	"testing"
	"time"

	"github.com/rendezvous-go/coop/backoff"
)

// TestNextDelayGrowsWithAttempts exercises the spec's documented scenario:
// with basis 100ms, expected delay grows roughly as 100ms × n². We check
// order-of-magnitude growth across many samples rather than an exact mean,
// since each individual delay carries its own random jitter.
func TestNextDelayGrowsWithAttempts(t *testing.T) {
	const basis = 100 * time.Millisecond
	const trials = 500

	meanAt := func(n int) time.Duration {
		var total time.Duration
		for range trials {
			s := backoff.New(basis)
			var d time.Duration
			for range n {
				d = s.NextDelay()
			}
			total += d
		}
		return total / trials
	}

	first := meanAt(1)
	third := meanAt(3)

	if first <= 0 {
		t.Fatalf("want a positive delay, got %v", first)
	}
	// Expected growth factor between attempt 1 and attempt 3 is 9x; allow a
	// wide band since jitter is random per sample.
	if third < first*4 {
		t.Fatalf("want delay to grow substantially with attempts, got first=%v third=%v", first, third)
	}
}

func TestResetZeroesAttempts(t *testing.T) {
	s := backoff.New(10 * time.Millisecond)
	s.NextDelay()
	s.NextDelay()
	if s.Attempts() != 2 {
		t.Fatalf("want 2 attempts, got %d", s.Attempts())
	}

	s.Reset()
	if s.Attempts() != 0 {
		t.Fatalf("want 0 attempts after Reset, got %d", s.Attempts())
	}
}

func TestNextDelayNeverNegative(t *testing.T) {
	s := backoff.New(5 * time.Millisecond)
	for range 100 {
		if d := s.NextDelay(); d < 0 {
			t.Fatalf("want non-negative delay, got %v", d)
		}
	}
}
