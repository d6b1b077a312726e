package partialorder_test

import (
	"fmt"

	"github.com/rendezvous-go/coop/ordering/partialorder"
)

// This example uses Topic to apply cart events in order per cart, while
// letting different carts' events apply concurrently with one another.
func ExampleTopic() {
	type event struct {
		cart   string
		action string
	}
	events := []event{
		{"cart-1", "add-item"},
		{"cart-2", "add-item"},
		{"cart-1", "apply-coupon"},
		{"cart-2", "checkout"},
		{"cart-1", "checkout"},
	}

	// The zero value of Topic has no limit on the number of active goroutines.
	var topic partialorder.Topic[string]

	// Two carts are processed concurrently, so we cannot predict the interleaving
	// between them, but each cart's own slice is only ever appended to by one
	// goroutine at a time — Topic guarantees the same-key events never overlap.
	applied := map[string][]string{}
	for _, e := range events {
		e := e
		topic.Go(e.cart, func() {
			applied[e.cart] = append(applied[e.cart], e.action)
		})
	}

	topic.Wait()
	fmt.Println("cart-1:", applied["cart-1"])
	fmt.Println("cart-2:", applied["cart-2"])

	// Output:
	// cart-1: [add-item apply-coupon checkout]
	// cart-2: [add-item checkout]
}
