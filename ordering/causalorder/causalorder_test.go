package causalorder_test

import (
	"fmt"
	"testing"

	"github.com/rendezvous-go/coop/ordering/causalorder"
	"github.com/rendezvous-go/coop/ordering/ordertest"
)

func TestOperationInterface(t *testing.T) {
	var deploy causalorder.CausalOrder[string]
	t.Run("frontend-chain", func(t *testing.T) {
		first := deploy.HappensAfter("frontend")
		second := deploy.HappensAfter("frontend")
		ordertest.TestOperationInterface(t, first, second)
	})
	t.Run("backend-chain", func(t *testing.T) {
		first := deploy.HappensAfter("backend")
		second := deploy.HappensAfter("backend")
		ordertest.TestOperationInterface(t, first, second)
	})
}

// TestJoinDependsOnEveryChainItTouches exercises an operation that depends on
// two services at once, and checks that such a join only becomes ready once
// both of its chains — including their own transitive history — have
// actually caught up to it.
func TestJoinDependsOnEveryChainItTouches(t *testing.T) {
	var deploy causalorder.CausalOrder[string]
	events := []ordertest.Event{
		{
			Token:     "frontend:build",
			Operation: deploy.HappensAfter("frontend"),
		},
		{
			Token:     "backend:build",
			Operation: deploy.HappensAfter("backend"),
		},
		{
			Token:        "frontend:deploy",
			HappensAfter: []string{"frontend:build", "backend:build"},
			Operation:    deploy.HappensAfter("frontend", "backend"),
		},
		{
			Token:        "backend:deploy",
			HappensAfter: []string{"frontend:build", "backend:build"},
			Operation:    deploy.HappensAfter("frontend", "backend"),
		},
		{
			Token: "smoke-test",
			HappensAfter: []string{
				"frontend:deploy", "backend:deploy", // direct
				"frontend:build", "backend:build", // transitive
			},
			Operation: deploy.HappensAfter("frontend", "backend"),
		},
	}
	ordertest.Test(t, events)
}

// TestManyIndependentServiceChains runs a larger graph representing several
// services each with their own release train, where every release depends on
// a shared "infra ready" chain plus its service's own previous release.
func TestManyIndependentServiceChains(t *testing.T) {
	type chain struct {
		Kind string // "infra" or "service"
		Name string
	}
	var deploy causalorder.CausalOrder[chain]

	services := []string{"billing", "search", "notifications", "reporting"}
	releases := 5

	var events []ordertest.Event
	infra := chain{Kind: "infra", Name: "shared"}
	infraToken := "infra:ready"
	events = append(events, ordertest.Event{
		Token:     infraToken,
		Operation: deploy.HappensAfter(infra),
	})

	for _, svc := range services {
		svcChain := chain{Kind: "service", Name: svc}
		for v := 1; v <= releases; v++ {
			token := fmt.Sprintf("%s:v%d", svc, v)
			deps := []string{infraToken}
			if v > 1 {
				deps = append(deps, fmt.Sprintf("%s:v%d", svc, v-1))
			}
			events = append(events, ordertest.Event{
				Token:        token,
				HappensAfter: deps,
				Operation:    deploy.HappensAfter(infra, svcChain),
			})
		}
	}

	t.Logf("exercising %d release events across %d services", len(events), len(services))
	ordertest.Test(t, events)
}
