// Package recurrent coalesces overlapping requests for the same recurring
// piece of work into at most one extra run. A Job tracks whether a run is
// in flight and whether another has been requested since it started; N
// overlapping Request calls while a run is in flight always produce
// exactly one additional run, never N.
package recurrent
