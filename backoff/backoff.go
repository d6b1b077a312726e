package backoff

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// maxUniform bounds the tail of the jitter's underlying uniform sample: a
// sample this close to 1 would otherwise produce an unboundedly large
// -log(1-u), occasionally stretching a single delay out to many times its
// expected size.
const maxUniform = 0.995

// A Session hands out successively longer, jittered delays for a single
// retrying caller. The zero value, given a positive basis via New, is
// ready to use; Session is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	basis    time.Duration
	attempts int
}

// New returns a Session whose delays grow on the scale of basis: the n-th
// call to NextDelay has an expected value near basis × n².
func New(basis time.Duration) *Session {
	return &Session{basis: basis}
}

// NextDelay increments the attempt counter and returns the next delay to
// wait before retrying. Successive calls grow roughly quadratically in the
// attempt count, each scaled by an independent exponential jitter factor.
func (s *Session) NextDelay() time.Duration {
	s.mu.Lock()
	s.attempts++
	n := s.attempts
	s.mu.Unlock()

	u := rand.Float64()
	if u > maxUniform {
		u = maxUniform
	}
	jitter := -math.Log(1 - u)

	delay := jitter * float64(s.basis) * float64(n) * float64(n)
	return time.Duration(delay)
}

// Reset zeroes the attempt counter, as if no attempts had yet been made.
func (s *Session) Reset() {
	s.mu.Lock()
	s.attempts = 0
	s.mu.Unlock()
}

// Attempts reports the number of times NextDelay has been called since
// construction or the last Reset.
func (s *Session) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}
