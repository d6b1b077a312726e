// Package sleep provides a single cancellable timer function, the other
// suspension point (alongside cond.Condition.Wait) that every primitive in
// this module ultimately bottoms out on.
package sleep
