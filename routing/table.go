// Package routing implements the per-router outport decision engine of
// the winoc network. A router owns one Engine. The engine picks the
// output port of every flit that arrives, either from a static weighted
// routing table, by dimension-order (XY) computation, or by a hybrid
// comparison against the wireless shortcut through the hub routers.
package routing

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/winoc/noc"
)

// Table is the static routing table of one router. Row v lists, for
// each output port that has a registered route on virtual network v,
// the set of terminals reachable through that port. The table is
// populated during topology construction and never written afterward.
//
// Routes are biased through per-port weights. Correct weight
// assignment is critical to provide deadlock avoidance.
type Table struct {
	rows    [][]noc.NetDest
	weights []int
}

// AddRoute registers the next output port. The entry holds one
// destination set per virtual network.
func (t *Table) AddRoute(entry []noc.NetDest) {
	for len(t.rows) < len(entry) {
		t.rows = append(t.rows, nil)
	}

	for v := range entry {
		t.rows[v] = append(t.rows[v], entry[v])
	}
}

// AddWeight registers the weight of the next output port. Lower
// weights are preferred.
func (t *Table) AddWeight(weight int) {
	t.weights = append(t.weights, weight)
}

// Lookup returns the output port for a destination set on a virtual
// network.
//
// All ports whose registered destination set intersects the packet's
// destination set are candidates. Among the candidates with the
// minimum weight, an ordered virtual network always takes the first
// one in table order, so that packets to the same destination never
// diverge. An unordered virtual network picks uniformly at random to
// spread load over equally weighted links.
//
// A lookup with no candidate means the topology offers no route at
// all, which is a construction error, not a runtime condition.
func (t *Table) Lookup(
	vnet int,
	dst noc.NetDest,
	ordered bool,
	rng *rand.Rand,
) int {
	t.mustBeConsistent(vnet)

	row := t.rows[vnet]

	minWeight := infiniteWeight
	for port := range row {
		if dst.IntersectsWith(row[port]) && t.weights[port] < minWeight {
			minWeight = t.weights[port]
		}
	}

	var candidates []int
	for port := range row {
		if dst.IntersectsWith(row[port]) && t.weights[port] == minWeight {
			candidates = append(candidates, port)
		}
	}

	if len(candidates) == 0 {
		panic(fmt.Sprintf(
			"no route exists for vnet %d toward %s", vnet, dst))
	}

	candidate := 0
	if !ordered {
		candidate = rng.Intn(len(candidates))
	}

	return candidates[candidate]
}

func (t *Table) mustBeConsistent(vnet int) {
	if vnet < 0 || vnet >= len(t.rows) {
		panic(fmt.Sprintf("vnet %d is not in the routing table", vnet))
	}

	if len(t.weights) < len(t.rows[vnet]) {
		panic("weight table is shorter than the routing table row")
	}
}

const infiniteWeight = int(^uint(0) >> 1)
