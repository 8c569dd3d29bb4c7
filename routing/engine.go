package routing

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/winoc/noc"
)

// Algorithm selects how an Engine computes outports.
type Algorithm int

const (
	// AlgorithmTable resolves every packet through the static weighted
	// routing table.
	AlgorithmTable Algorithm = iota

	// AlgorithmXY routes packets in dimension order on the mesh.
	AlgorithmXY

	// AlgorithmHybrid routes packets over the wireless shortcut when
	// it beats the wired hop count, and in dimension order otherwise.
	AlgorithmHybrid
)

// A Decider computes the output port of a packet at one router.
type Decider interface {
	// ComputeOutport returns the output port index for the packet and
	// the wireless exit hub the packet should leave the medium at, or
	// -1 when no wireless shortcut is used.
	ComputeOutport(
		route noc.RouteInfo,
		inport int,
		inDir noc.Direction,
	) (outport, shortcutHub int)
}

// Engine is the routing decision engine of one router. Its tables and
// maps are populated during topology construction and are read-only
// while the simulation runs.
type Engine struct {
	routerID  int
	mesh      noc.Mesh
	algorithm Algorithm
	hubs      HubAdjacency

	table        Table
	inPorts      PortDirectionMap
	outPorts     PortDirectionMap
	wirelessOut  map[int]int
	orderedVNets map[int]bool
	rng          *rand.Rand
}

// AddRoute registers the routing table entry of the next output port,
// one destination set per virtual network.
func (e *Engine) AddRoute(entry []noc.NetDest) {
	e.table.AddRoute(entry)
}

// AddWeight registers the link weight of the next output port.
func (e *Engine) AddWeight(weight int) {
	e.table.AddWeight(weight)
}

// AddInDirection binds an input port index to its direction.
func (e *Engine) AddInDirection(dir noc.Direction, idx int) {
	e.inPorts.Add(dir, idx)
}

// AddOutDirection binds an output port index to its direction.
func (e *Engine) AddOutDirection(dir noc.Direction, idx int) {
	e.outPorts.Add(dir, idx)
}

// AddWirelessOutPort binds the egress port that transmits toward a
// hub over the broadcast medium.
func (e *Engine) AddWirelessOutPort(hub, idx int) {
	if _, bound := e.wirelessOut[hub]; bound {
		panic(fmt.Sprintf(
			"router %d already has a wireless egress toward hub %d",
			e.routerID, hub))
	}

	e.wirelessOut[hub] = idx
}

// InDirectionOf returns the direction of an input port.
func (e *Engine) InDirectionOf(idx int) noc.Direction {
	return e.inPorts.DirectionOf(idx)
}

// ComputeOutport decides which output port the packet takes next.
//
// A packet addressed to this router resolves through the routing
// table, as several terminals may attach here and only the table
// knows which local port serves the destination set. Any other packet
// is dispatched to the configured algorithm.
func (e *Engine) ComputeOutport(
	route noc.RouteInfo,
	inport int,
	inDir noc.Direction,
) (outport, shortcutHub int) {
	shortcutHub = -1

	if route.DestRouter == e.routerID {
		outport = e.lookupTable(route)
		return outport, shortcutHub
	}

	switch e.algorithm {
	case AlgorithmXY:
		outport = e.computeXY(route, inDir)
	case AlgorithmHybrid:
		outport, shortcutHub = e.computeHybrid(route, inDir)
	default:
		outport = e.lookupTable(route)
	}

	return outport, shortcutHub
}

func (e *Engine) lookupTable(route noc.RouteInfo) int {
	return e.table.Lookup(
		route.VNet,
		route.DestMask,
		e.orderedVNets[route.VNet],
		e.rng,
	)
}

func (e *Engine) wirelessPortOf(hub int) int {
	idx, found := e.wirelessOut[hub]
	if !found {
		panic(fmt.Sprintf(
			"router %d has no wireless egress toward hub %d",
			e.routerID, hub))
	}

	return idx
}

// EngineBuilder can build routing engines.
type EngineBuilder struct {
	routerID     int
	mesh         noc.Mesh
	algorithm    Algorithm
	hubs         HubAdjacency
	orderedVNets []int
	rng          *rand.Rand
}

// MakeEngineBuilder creates an EngineBuilder with default parameters.
func MakeEngineBuilder() EngineBuilder {
	return EngineBuilder{routerID: -1}
}

// WithRouterID sets the ID of the router the engine decides for.
func (b EngineBuilder) WithRouterID(id int) EngineBuilder {
	b.routerID = id
	return b
}

// WithMesh sets the mesh geometry.
func (b EngineBuilder) WithMesh(mesh noc.Mesh) EngineBuilder {
	b.mesh = mesh
	return b
}

// WithAlgorithm sets the routing algorithm.
func (b EngineBuilder) WithAlgorithm(a Algorithm) EngineBuilder {
	b.algorithm = a
	return b
}

// WithHubAdjacency sets the wireless hub adjacency.
func (b EngineBuilder) WithHubAdjacency(hubs HubAdjacency) EngineBuilder {
	b.hubs = hubs
	return b
}

// WithOrderedVNets marks the virtual networks that require in-order
// delivery.
func (b EngineBuilder) WithOrderedVNets(vnets ...int) EngineBuilder {
	b.orderedVNets = vnets
	return b
}

// WithRand sets the random source used for unordered tie-breaking.
// Simulations that must be reproducible seed this source.
func (b EngineBuilder) WithRand(rng *rand.Rand) EngineBuilder {
	b.rng = rng
	return b
}

// Build creates the engine.
func (b EngineBuilder) Build() *Engine {
	b.routerIDMustBeGiven()
	b.meshMustBeGiven()

	e := &Engine{
		routerID:     b.routerID,
		mesh:         b.mesh,
		algorithm:    b.algorithm,
		hubs:         b.hubs,
		wirelessOut:  make(map[int]int),
		orderedVNets: make(map[int]bool),
		rng:          b.rng,
	}

	for _, v := range b.orderedVNets {
		e.orderedVNets[v] = true
	}

	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(1))
	}

	return e
}

func (b EngineBuilder) routerIDMustBeGiven() {
	if b.routerID < 0 {
		panic("routing engine requires a router ID")
	}
}

func (b EngineBuilder) meshMustBeGiven() {
	if b.mesh.NumRows <= 0 || b.mesh.NumCols <= 0 {
		panic("routing engine requires a mesh with positive dimensions")
	}
}
