// Package backoff produces exponentially growing, jittered retry delays.
// A Session tracks how many attempts have been made and hands back a
// successively larger NextDelay each time, so that many independent
// sessions retrying the same failure superpose into something close to a
// Poisson process rather than a synchronized thundering herd.
package backoff
