package routing

import (
	"fmt"
	"sort"
)

// HubAdjacency records which hub routers can hear each other over the
// broadcast medium. It is built by the topology, injected into every
// routing engine, and never written afterward.
//
// Hubs are iterated in ascending ID order so that equal-cost hub
// pairs always resolve the same way and simulation traces stay
// reproducible.
type HubAdjacency struct {
	hubs      []int
	neighbors map[int][]int
}

// MakeHubAdjacency copies the given hub-to-neighbors mapping into an
// immutable HubAdjacency.
func MakeHubAdjacency(conns map[int][]int) HubAdjacency {
	a := HubAdjacency{
		neighbors: make(map[int][]int, len(conns)),
	}

	for hub, ns := range conns {
		a.hubs = append(a.hubs, hub)

		sorted := make([]int, len(ns))
		copy(sorted, ns)
		sort.Ints(sorted)
		a.neighbors[hub] = sorted
	}

	sort.Ints(a.hubs)

	for hub, ns := range a.neighbors {
		for _, n := range ns {
			if n == hub {
				panic(fmt.Sprintf("hub %d connects to itself", hub))
			}

			if _, found := a.neighbors[n]; !found {
				panic(fmt.Sprintf(
					"hub %d connects to %d, which is not a hub", hub, n))
			}
		}
	}

	return a
}

// IsHub reports whether the router terminates a wireless link.
func (a HubAdjacency) IsHub(id int) bool {
	_, found := a.neighbors[id]
	return found
}

// Hubs returns the hub router IDs in ascending order.
func (a HubAdjacency) Hubs() []int {
	return a.hubs
}

// NeighborsOf returns the hubs a hub can transmit to, in ascending
// order.
func (a HubAdjacency) NeighborsOf(hub int) []int {
	return a.neighbors[hub]
}
