// Package quota implements per-second admission pacing: a Governor admits
// at most a fixed rate of callers per second, queueing newcomers fairly by
// arrival order rather than letting a burst through all at once.
package quota
