// Package limiter bounds how many operations run concurrently. A
// ConcurrencyLimiter hands out work against a fixed-size semaphore and
// tracks how many operations are still outstanding, so a caller can later
// Wait for every scheduled operation to finish draining.
package limiter
