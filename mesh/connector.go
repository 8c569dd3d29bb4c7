// Package mesh builds wireless-augmented mesh networks. The Connector
// creates the routers, the wired links, the broadcast medium, and
// populates every router's routing table, weight table, direction
// maps, and hub adjacency before the simulation starts. Once
// EstablishNetwork returns, all routing state is immutable.
package mesh

import (
	"fmt"
	"math/rand"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/winoc/arbitration"
	"github.com/sarchlab/winoc/noc"
	"github.com/sarchlab/winoc/router"
	"github.com/sarchlab/winoc/routing"
	"github.com/sarchlab/winoc/wireless"
	"github.com/sarchlab/winoc/wiring"
)

// Link weights follow the dimension-order convention: horizontal
// links are cheaper than vertical ones, so table routing resolves
// X-first and stays free of cycles.
const (
	localLinkWeight      = 1
	xLinkWeight          = 1
	yLinkWeight          = 2
	unroutableLinkWeight = 1 << 20
)

// A Terminal is an endpoint attached to a router.
type Terminal struct {
	// ID is the terminal's bit in destination masks.
	ID int

	// RouterID is the router the terminal attaches to.
	RouterID int

	// RouterPort is the router-side port of the terminal link. Flits
	// injected by the terminal are addressed here.
	RouterPort sim.RemotePort
}

type terminalInfo struct {
	routerID  int
	agentPort sim.Port
}

// Connector builds a mesh network.
type Connector struct {
	engine       sim.Engine
	freq         sim.Freq
	mesh         noc.Mesh
	algorithm    routing.Algorithm
	hubConns     map[int][]int
	rng          *rand.Rand
	wiredLatency int
	numVNets     int
	orderedVNets []int
	bufCapacity  int

	name      string
	terminals []terminalInfo

	routers       []*router.Comp
	engines       []*routing.Engine
	medium        *wireless.Comp
	localPorts    [][]sim.Port
	wiredPorts    []map[noc.Direction]sim.Port
	wirelessPorts []map[int]sim.Port
}

// NewConnector creates a Connector with default parameters.
func NewConnector() *Connector {
	return &Connector{
		freq:         1 * sim.GHz,
		wiredLatency: 1,
		numVNets:     2,
		orderedVNets: []int{0},
		bufCapacity:  4,
	}
}

// WithEngine sets the event engine the network components use.
func (c *Connector) WithEngine(engine sim.Engine) *Connector {
	c.engine = engine
	return c
}

// WithFreq sets the frequency of the network components.
func (c *Connector) WithFreq(freq sim.Freq) *Connector {
	c.freq = freq
	return c
}

// WithSize sets the number of rows and columns of the mesh.
func (c *Connector) WithSize(numRows, numCols int) *Connector {
	c.mesh = noc.Mesh{NumRows: numRows, NumCols: numCols}
	return c
}

// WithAlgorithm sets the routing algorithm of every router.
func (c *Connector) WithAlgorithm(a routing.Algorithm) *Connector {
	c.algorithm = a
	return c
}

// WithHubs sets the wireless hub adjacency, mapping each hub router
// to the hubs it can transmit to.
func (c *Connector) WithHubs(conns map[int][]int) *Connector {
	c.hubConns = conns
	return c
}

// WithWiredLatency sets the traversal latency of wired links in
// cycles.
func (c *Connector) WithWiredLatency(cycles int) *Connector {
	c.wiredLatency = cycles
	return c
}

// WithNumVNets sets the number of virtual networks.
func (c *Connector) WithNumVNets(n int) *Connector {
	c.numVNets = n
	return c
}

// WithOrderedVNets marks the virtual networks that require in-order
// delivery.
func (c *Connector) WithOrderedVNets(vnets ...int) *Connector {
	c.orderedVNets = vnets
	return c
}

// WithRand sets the random source used for unordered tie-breaking.
func (c *Connector) WithRand(rng *rand.Rand) *Connector {
	c.rng = rng
	return c
}

// WithBufCapacity sets the staging buffer capacity of routers and
// ports.
func (c *Connector) WithBufCapacity(capacity int) *Connector {
	c.bufCapacity = capacity
	return c
}

// CreateNetwork names the network to build.
func (c *Connector) CreateNetwork(name string) {
	c.name = name
}

// AddTerminal attaches an endpoint port to a router and returns the
// terminal ID. Terminals must be added before EstablishNetwork.
func (c *Connector) AddTerminal(routerID int, port sim.Port) int {
	c.routerIDMustBeInMesh(routerID)

	id := len(c.terminals)
	c.terminals = append(c.terminals, terminalInfo{
		routerID:  routerID,
		agentPort: port,
	})

	return id
}

// EstablishNetwork builds the routers, links, and the wireless
// medium, and populates all routing state.
func (c *Connector) EstablishNetwork() {
	c.mustBeBuildable()

	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(1))
	}

	hubs := routing.MakeHubAdjacency(c.hubConns)
	for _, hub := range hubs.Hubs() {
		c.routerIDMustBeInMesh(hub)
	}

	c.createRouters(hubs)
	c.createPorts(hubs)
	c.createWiredLinks()
	c.createTerminalLinks()
	c.createWirelessMedium(hubs)
}

// Router returns the router with the given ID.
func (c *Connector) Router(id int) *router.Comp {
	return c.routers[id]
}

// RoutingEngine returns the routing engine of the router with the
// given ID.
func (c *Connector) RoutingEngine(id int) *routing.Engine {
	return c.engines[id]
}

// Terminal returns the terminal with the given ID. Only valid after
// EstablishNetwork.
func (c *Connector) Terminal(id int) Terminal {
	info := c.terminals[id]
	local := c.localPortOfTerminal(id)

	return Terminal{
		ID:         id,
		RouterID:   info.routerID,
		RouterPort: local.AsRemote(),
	}
}

// Medium returns the wireless broadcast medium, or nil when no hub is
// configured.
func (c *Connector) Medium() *wireless.Comp {
	return c.medium
}

func (c *Connector) createRouters(hubs routing.HubAdjacency) {
	numRouters := c.mesh.NumRouters()

	c.routers = make([]*router.Comp, numRouters)
	c.engines = make([]*routing.Engine, numRouters)
	c.localPorts = make([][]sim.Port, numRouters)
	c.wiredPorts = make([]map[noc.Direction]sim.Port, numRouters)
	c.wirelessPorts = make([]map[int]sim.Port, numRouters)

	for r := 0; r < numRouters; r++ {
		c.engines[r] = routing.MakeEngineBuilder().
			WithRouterID(r).
			WithMesh(c.mesh).
			WithAlgorithm(c.algorithm).
			WithHubAdjacency(hubs).
			WithOrderedVNets(c.orderedVNets...).
			WithRand(c.rng).
			Build()

		c.routers[r] = router.MakeBuilder().
			WithEngine(c.engine).
			WithFreq(c.freq).
			WithRouterID(r).
			WithRoutingEngine(c.engines[r]).
			WithArbiter(arbitration.NewXBarArbiter()).
			WithBufCapacity(c.bufCapacity).
			Build(c.routerName(r))

		c.wiredPorts[r] = make(map[noc.Direction]sim.Port)
		c.wirelessPorts[r] = make(map[int]sim.Port)
	}
}

// createPorts equips every router with its ports in a fixed order:
// local ports first, then the wired directions, then the wireless
// ports of hubs. The routing engine's table columns, weights, and
// direction bindings are registered in the same order, so port
// indices and table columns always agree.
func (c *Connector) createPorts(hubs routing.HubAdjacency) {
	for r := range c.routers {
		c.createLocalPorts(r)
		c.createWiredPorts(r)

		if hubs.IsHub(r) {
			c.createWirelessPorts(r, hubs)
		}
	}
}

func (c *Connector) createLocalPorts(r int) {
	comp := c.routers[r]
	engine := c.engines[r]

	for t, info := range c.terminals {
		if info.routerID != r {
			continue
		}

		name := fmt.Sprintf("%s.LocalPort[%d]", comp.Name(), t)
		port := sim.NewPort(
			comp.TickingComponent, c.bufCapacity, c.bufCapacity, name)

		idx := comp.AddPort(noc.Local, port, info.agentPort.AsRemote())
		engine.AddInDirection(noc.Local, idx)
		engine.AddOutDirection(noc.Local, idx)
		engine.AddWeight(localLinkWeight)
		engine.AddRoute(c.replicatePerVNet(noc.NetDestOf(t)))

		c.localPorts[r] = append(c.localPorts[r], port)
	}
}

func (c *Connector) createWiredPorts(r int) {
	comp := c.routers[r]
	engine := c.engines[r]

	for _, dir := range []noc.Direction{
		noc.East, noc.West, noc.North, noc.South,
	} {
		if !c.hasNeighbor(r, dir) {
			continue
		}

		name := fmt.Sprintf("%s.%s", comp.Name(), dir.Name())
		port := sim.NewPort(
			comp.TickingComponent, c.bufCapacity, c.bufCapacity, name)

		neighbor := c.neighborOf(r, dir)
		remote := sim.RemotePort(fmt.Sprintf(
			"%s.%s", c.routerName(neighbor), opposite(dir).Name()))

		idx := comp.AddPort(dir, port, remote)
		engine.AddInDirection(dir, idx)
		engine.AddOutDirection(dir, idx)
		engine.AddWeight(wiredLinkWeight(dir))
		engine.AddRoute(c.replicatePerVNet(c.reachableThrough(r, dir)))

		c.wiredPorts[r][dir] = port
	}
}

func (c *Connector) createWirelessPorts(r int, hubs routing.HubAdjacency) {
	comp := c.routers[r]
	engine := c.engines[r]

	inName := fmt.Sprintf("%s.WirelessIn", comp.Name())
	inPort := sim.NewPort(
		comp.TickingComponent, c.bufCapacity, c.bufCapacity, inName)

	// The ingress port never sends, so it has no meaningful remote.
	idx := comp.AddPort(noc.WirelessIn, inPort, "")
	engine.AddInDirection(noc.WirelessIn, idx)
	engine.AddWeight(unroutableLinkWeight)
	engine.AddRoute(c.replicatePerVNet(noc.NetDest{}))

	c.wirelessPorts[r][r] = inPort

	for _, hub := range hubs.NeighborsOf(r) {
		name := fmt.Sprintf("%s.WirelessOut[%d]", comp.Name(), hub)
		port := sim.NewPort(
			comp.TickingComponent, c.bufCapacity, c.bufCapacity, name)

		remote := sim.RemotePort(fmt.Sprintf(
			"%s.WirelessIn", c.routerName(hub)))

		outIdx := comp.AddPort(noc.WirelessOut, port, remote)
		engine.AddWirelessOutPort(hub, outIdx)
		engine.AddWeight(unroutableLinkWeight)
		engine.AddRoute(c.replicatePerVNet(noc.NetDest{}))

		c.wirelessPorts[r][hub] = port
	}
}

func (c *Connector) createWiredLinks() {
	for r := range c.routers {
		if c.hasNeighbor(r, noc.East) {
			c.linkPorts(
				c.wiredPorts[r][noc.East],
				c.wiredPorts[c.neighborOf(r, noc.East)][noc.West],
				fmt.Sprintf("%s.XLink[%d]", c.name, r),
			)
		}

		if c.hasNeighbor(r, noc.North) {
			c.linkPorts(
				c.wiredPorts[r][noc.North],
				c.wiredPorts[c.neighborOf(r, noc.North)][noc.South],
				fmt.Sprintf("%s.YLink[%d]", c.name, r),
			)
		}
	}
}

func (c *Connector) createTerminalLinks() {
	for t, info := range c.terminals {
		c.linkPorts(
			info.agentPort,
			c.localPortOfTerminal(t),
			fmt.Sprintf("%s.TerminalLink[%d]", c.name, t),
		)
	}
}

func (c *Connector) createWirelessMedium(hubs routing.HubAdjacency) {
	if len(hubs.Hubs()) == 0 {
		return
	}

	c.medium = wireless.MakeBuilder().
		WithEngine(c.engine).
		WithFreq(c.freq).
		Build(fmt.Sprintf("%s.Medium", c.name))

	for _, hub := range hubs.Hubs() {
		c.medium.PlugIn(c.wirelessPorts[hub][hub])

		for _, neighbor := range hubs.NeighborsOf(hub) {
			c.medium.PlugIn(c.wirelessPorts[hub][neighbor])
		}
	}
}

func (c *Connector) linkPorts(a, b sim.Port, name string) {
	link := wiring.MakeBuilder().
		WithEngine(c.engine).
		WithFreq(c.freq).
		WithLatency(c.wiredLatency).
		Build(name)

	link.PlugIn(a)
	link.PlugIn(b)
}

// reachableThrough returns the terminals whose dimension-order route
// from router r leaves through the given direction: horizontal ports
// cover every terminal in the columns beyond, vertical ports cover
// the terminals in the same column.
func (c *Connector) reachableThrough(r int, dir noc.Direction) noc.NetDest {
	myX, myY := c.mesh.Coord(r)

	dest := noc.NetDest{}
	for t, info := range c.terminals {
		tX, tY := c.mesh.Coord(info.routerID)

		reachable := false
		switch dir {
		case noc.East:
			reachable = tX > myX
		case noc.West:
			reachable = tX < myX
		case noc.North:
			reachable = tX == myX && tY > myY
		case noc.South:
			reachable = tX == myX && tY < myY
		}

		if reachable {
			dest.Add(t)
		}
	}

	return dest
}

func (c *Connector) replicatePerVNet(dest noc.NetDest) []noc.NetDest {
	entry := make([]noc.NetDest, c.numVNets)
	for v := range entry {
		entry[v] = dest
	}

	return entry
}

func (c *Connector) hasNeighbor(r int, dir noc.Direction) bool {
	x, y := c.mesh.Coord(r)

	switch dir {
	case noc.East:
		return x < c.mesh.NumCols-1
	case noc.West:
		return x > 0
	case noc.North:
		return y < c.mesh.NumRows-1
	case noc.South:
		return y > 0
	default:
		return false
	}
}

func (c *Connector) neighborOf(r int, dir noc.Direction) int {
	switch dir {
	case noc.East:
		return r + 1
	case noc.West:
		return r - 1
	case noc.North:
		return r + c.mesh.NumCols
	case noc.South:
		return r - c.mesh.NumCols
	default:
		panic("no neighbor in direction " + dir.Name())
	}
}

func (c *Connector) localPortOfTerminal(t int) sim.Port {
	routerID := c.terminals[t].routerID

	count := 0
	for other := 0; other < t; other++ {
		if c.terminals[other].routerID == routerID {
			count++
		}
	}

	return c.localPorts[routerID][count]
}

func (c *Connector) routerName(r int) string {
	return fmt.Sprintf("%s.Router[%d]", c.name, r)
}

func opposite(dir noc.Direction) noc.Direction {
	switch dir {
	case noc.East:
		return noc.West
	case noc.West:
		return noc.East
	case noc.North:
		return noc.South
	case noc.South:
		return noc.North
	default:
		panic("direction has no opposite")
	}
}

func wiredLinkWeight(dir noc.Direction) int {
	if dir == noc.East || dir == noc.West {
		return xLinkWeight
	}

	return yLinkWeight
}

func (c *Connector) mustBeBuildable() {
	if c.engine == nil {
		panic("mesh connector requires an engine")
	}

	if c.name == "" {
		panic("mesh connector requires CreateNetwork to be called")
	}

	if c.mesh.NumRows <= 0 || c.mesh.NumCols <= 0 {
		panic("mesh connector requires a positive mesh size")
	}
}

func (c *Connector) routerIDMustBeInMesh(id int) {
	if id < 0 || id >= c.mesh.NumRouters() {
		panic(fmt.Sprintf("router %d is not in the mesh", id))
	}
}
