package routing

import (
	"fmt"

	"github.com/sarchlab/winoc/noc"
)

// computeXY implements dimension-order routing on the mesh. Packets
// first travel along the X axis to the destination column, then along
// the Y axis. The inbound direction is checked against U-turns, which
// can only be requested by a miswired topology.
func (e *Engine) computeXY(
	route noc.RouteInfo,
	inDir noc.Direction,
) int {
	myX, myY := e.mesh.Coord(e.routerID)
	destX, destY := e.mesh.Coord(route.DestRouter)

	xHops := abs(destX - myX)
	yHops := abs(destY - myY)

	// Arrival at the destination router is short-circuited by
	// ComputeOutport before any algorithm runs.
	if xHops == 0 && yHops == 0 {
		panic("xy routing invoked at the destination router")
	}

	var outDir noc.Direction

	switch {
	case xHops > 0 && destX >= myX:
		e.mustNotUTurn(inDir, noc.Local, noc.West, noc.WirelessIn)
		outDir = noc.East
	case xHops > 0:
		e.mustNotUTurn(inDir, noc.Local, noc.East, noc.WirelessIn)
		outDir = noc.West
	case destY >= myY:
		e.mustNotComeFrom(inDir, noc.North)
		outDir = noc.North
	default:
		e.mustNotComeFrom(inDir, noc.South)
		outDir = noc.South
	}

	return e.outPorts.PortOf(outDir)
}

func (e *Engine) mustNotUTurn(inDir noc.Direction, allowed ...noc.Direction) {
	for _, d := range allowed {
		if inDir == d {
			return
		}
	}

	panic(fmt.Sprintf(
		"router %d: inbound direction %s would U-turn",
		e.routerID, inDir.Name()))
}

func (e *Engine) mustNotComeFrom(inDir, forbidden noc.Direction) {
	if inDir == forbidden {
		panic(fmt.Sprintf(
			"router %d: inbound direction %s would U-turn",
			e.routerID, inDir.Name()))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
