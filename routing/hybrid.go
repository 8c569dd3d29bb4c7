package routing

import (
	"math"

	"github.com/sarchlab/winoc/noc"
)

// computeHybrid compares the wired dimension-order path against the
// best path that takes exactly one wireless hop through the hub
// routers, and routes along the cheaper of the two. Ties go to the
// wired path, which is always available and needs no medium
// arbitration.
//
// The returned hub ID is the wireless exit hub when the shortcut is
// taken, or -1 on the wired path. Downstream routers reuse the hint
// instead of re-selecting a hub, so all routers along the path agree
// on the same shortcut.
func (e *Engine) computeHybrid(
	route noc.RouteInfo,
	inDir noc.Direction,
) (outport, shortcutHub int) {
	xyHops := e.mesh.Hops(e.routerID, route.DestRouter)

	hybridHops := math.MaxInt
	entryHub := -1
	exitHub := -1

	if e.hubs.IsHub(e.routerID) {
		// Already at a hub. One wireless hop, then wires to the
		// destination.
		for _, h := range e.hubs.NeighborsOf(e.routerID) {
			hops := e.mesh.Hops(h, route.DestRouter) + 1
			if hops < hybridHops {
				hybridHops = hops
				entryHub = e.routerID
				exitHub = h
			}
		}
	} else {
		// Wires to an entry hub, one wireless hop, then wires to the
		// destination.
		for _, h1 := range e.hubs.Hubs() {
			toHub := e.mesh.Hops(e.routerID, h1)

			for _, h2 := range e.hubs.NeighborsOf(h1) {
				hops := toHub + 1 + e.mesh.Hops(h2, route.DestRouter)
				if hops < hybridHops {
					hybridHops = hops
					entryHub = h1
					exitHub = h2
				}
			}
		}
	}

	if hybridHops >= xyHops {
		return e.computeXY(route, inDir), -1
	}

	if entryHub == e.routerID {
		return e.wirelessPortOf(exitHub), exitHub
	}

	outDir := e.mesh.StepToward(e.routerID, entryHub)

	return e.outPorts.PortOf(outDir), exitHub
}
