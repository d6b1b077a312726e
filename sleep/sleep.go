package sleep

import (
	"context"
	"time"
)

// Sleep blocks for d, or until ctx is done, whichever comes first. It
// returns true if the full duration elapsed, false if ctx won the race. If
// ctx is already done on entry, Sleep returns false immediately without
// starting a timer.
func Sleep(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
