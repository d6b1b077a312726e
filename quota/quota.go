package quota

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rendezvous-go/coop/sleep"
)

// A Governor paces admission to at most a fixed number of callers per
// second. Concurrent callers queue by arrival: the n-th caller waiting
// alongside the current batch sleeps roughly n × waitPeriod longer than it
// otherwise would, so a burst of callers is spread evenly across the
// following seconds instead of released all at once.
type Governor struct {
	mu          sync.Mutex
	waitPeriod  time.Duration
	lastTime    time.Time // zero value means "no admission has completed yet"
	outstanding int
}

// New returns a Governor admitting at most ratePerSecond callers per
// second.
func New(ratePerSecond int) *Governor {
	return &Governor{waitPeriod: time.Second / time.Duration(ratePerSecond)}
}

// Wait blocks until the Governor admits the caller, then returns true. It
// returns false if ctx is done before admission completes.
func (g *Governor) Wait(ctx context.Context) bool {
	g.mu.Lock()
	prior := g.outstanding
	g.outstanding++

	var deltaFromLast time.Duration
	if g.lastTime.IsZero() {
		deltaFromLast = time.Duration(math.MaxInt64)
	} else {
		deltaFromLast = time.Since(g.lastTime)
	}
	g.mu.Unlock()

	sleepFor := g.waitPeriod - deltaFromLast
	if sleepFor < 0 {
		sleepFor = 0
	}
	sleepFor += g.waitPeriod * time.Duration(prior)

	ok := sleep.Sleep(ctx, sleepFor)

	g.mu.Lock()
	g.lastTime = time.Now()
	g.outstanding--
	g.mu.Unlock()

	return ok
}
