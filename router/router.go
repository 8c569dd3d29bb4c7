// Package router provides the router component of the winoc network.
// A router stages arriving flits, asks its routing engine for an
// output port once per flit, arbitrates among the input ports, and
// sends flits on toward the next hop.
package router

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/winoc/arbitration"
	"github.com/sarchlab/winoc/noc"
	"github.com/sarchlab/winoc/routing"
)

// A portComplex is the infrastructure related to one port of the
// router.
type portComplex struct {
	// localPort is the port equipped on the router.
	localPort sim.Port

	// remotePort is the port on the other side of the link, where
	// flits leaving through localPort are headed.
	remotePort sim.RemotePort

	// direction is the inbound direction flits arriving at this port
	// carry into the routing engine.
	direction noc.Direction

	// Flits arriving at the local port wait here for a routing
	// decision.
	routeBuffer sim.Buffer

	// Flits with a decision wait here for the crossbar.
	forwardBuffer sim.Buffer

	// Flits wait here to be sent to the next hop.
	sendOutBuffer sim.Buffer

	// numInputChannel is the number of flits that can stream in from
	// the port per cycle.
	numInputChannel int

	// numOutputChannel is the number of flits that can stream out to
	// the port per cycle.
	numOutputChannel int
}

// Comp is the router component. The routing decision itself is made
// by the routing engine; the component only moves flits between its
// buffers.
type Comp struct {
	*sim.TickingComponent

	routerID int
	decider  routing.Decider
	arbiter  arbitration.Arbiter

	ports       []portComplex
	bufCapacity int
}

// RouterID returns the ID of the router in the mesh.
func (c *Comp) RouterID() int {
	return c.routerID
}

// AddPort equips the router with a port. The port index follows the
// order of the AddPort calls and must match the indices registered
// with the routing engine.
func (c *Comp) AddPort(
	dir noc.Direction,
	local sim.Port,
	remote sim.RemotePort,
) int {
	index := len(c.ports)

	pc := portComplex{
		localPort:  local,
		remotePort: remote,
		direction:  dir,
		routeBuffer: sim.NewBuffer(
			fmt.Sprintf("%s.RouteBuf[%d]", c.Name(), index), c.bufCapacity),
		forwardBuffer: sim.NewBuffer(
			fmt.Sprintf("%s.ForwardBuf[%d]", c.Name(), index), c.bufCapacity),
		sendOutBuffer: sim.NewBuffer(
			fmt.Sprintf("%s.SendOutBuf[%d]", c.Name(), index), c.bufCapacity),
		numInputChannel:  1,
		numOutputChannel: 1,
	}

	c.ports = append(c.ports, pc)
	c.arbiter.AddBuffer(pc.forwardBuffer)

	return index
}

// PortAt returns the port at the given index.
func (c *Comp) PortAt(index int) sim.Port {
	return c.ports[index].localPort
}

// Tick updates the router's state.
func (c *Comp) Tick() bool {
	madeProgress := false

	madeProgress = c.sendOut() || madeProgress
	madeProgress = c.forward() || madeProgress
	madeProgress = c.route() || madeProgress
	madeProgress = c.startProcessing() || madeProgress

	return madeProgress
}

func (c *Comp) startProcessing() (madeProgress bool) {
	for i := range c.ports {
		pc := &c.ports[i]

		for ch := 0; ch < pc.numInputChannel; ch++ {
			item := pc.localPort.PeekIncoming()
			if item == nil {
				break
			}

			if !pc.routeBuffer.CanPush() {
				break
			}

			pc.routeBuffer.Push(item.(*noc.Flit))
			pc.localPort.RetrieveIncoming()
			madeProgress = true
		}
	}

	return madeProgress
}

func (c *Comp) route() (madeProgress bool) {
	for i := range c.ports {
		pc := &c.ports[i]

		for ch := 0; ch < pc.numInputChannel; ch++ {
			item := pc.routeBuffer.Peek()
			if item == nil {
				break
			}

			if !pc.forwardBuffer.CanPush() {
				break
			}

			flit := item.(*noc.Flit)
			c.assignFlitOutputBuf(flit, i, pc.direction)
			pc.routeBuffer.Pop()
			pc.forwardBuffer.Push(flit)
			madeProgress = true
		}
	}

	return madeProgress
}

func (c *Comp) assignFlitOutputBuf(
	flit *noc.Flit,
	inport int,
	inDir noc.Direction,
) {
	outport, shortcutHub := c.decider.ComputeOutport(
		flit.Route, inport, inDir)

	flit.ShortcutHub = shortcutHub
	flit.OutputBuf = c.ports[outport].sendOutBuffer
}

func (c *Comp) forward() (madeProgress bool) {
	inputBuffers := c.arbiter.Arbitrate()

	for _, buf := range inputBuffers {
		for {
			item := buf.Peek()
			if item == nil {
				break
			}

			flit := item.(*noc.Flit)
			if !flit.OutputBuf.CanPush() {
				break
			}

			flit.OutputBuf.Push(flit)
			buf.Pop()
			madeProgress = true
		}
	}

	return madeProgress
}

func (c *Comp) sendOut() (madeProgress bool) {
	for i := range c.ports {
		pc := &c.ports[i]

		for ch := 0; ch < pc.numOutputChannel; ch++ {
			item := pc.sendOutBuffer.Peek()
			if item == nil {
				break
			}

			flit := item.(*noc.Flit)
			flit.Meta().Src = pc.localPort.AsRemote()
			flit.Meta().Dst = pc.remotePort

			if pc.localPort.Send(flit) != nil {
				break
			}

			pc.sendOutBuffer.Pop()
			madeProgress = true
		}
	}

	return madeProgress
}

// Builder can build routers.
type Builder struct {
	engine      sim.Engine
	freq        sim.Freq
	routerID    int
	decider     routing.Decider
	arbiter     arbitration.Arbiter
	bufCapacity int
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		routerID:    -1,
		bufCapacity: 4,
	}
}

// WithEngine sets the event engine the router uses.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency the router works at.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithRouterID sets the router's ID in the mesh.
func (b Builder) WithRouterID(id int) Builder {
	b.routerID = id
	return b
}

// WithRoutingEngine sets the decision engine the router consults.
func (b Builder) WithRoutingEngine(d routing.Decider) Builder {
	b.decider = d
	return b
}

// WithArbiter sets the arbiter the router uses.
func (b Builder) WithArbiter(a arbitration.Arbiter) Builder {
	b.arbiter = a
	return b
}

// WithBufCapacity sets the capacity of each staging buffer.
func (b Builder) WithBufCapacity(capacity int) Builder {
	b.bufCapacity = capacity
	return b
}

// Build creates a new router.
func (b Builder) Build(name string) *Comp {
	b.freqMustNotBeZero()
	b.routerIDMustBeGiven()
	b.routingEngineMustBeGiven()
	b.arbiterMustBeGiven()

	c := &Comp{
		routerID:    b.routerID,
		decider:     b.decider,
		arbiter:     b.arbiter,
		bufCapacity: b.bufCapacity,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}

func (b Builder) freqMustNotBeZero() {
	if b.freq == 0 {
		panic("router frequency cannot be 0")
	}
}

func (b Builder) routerIDMustBeGiven() {
	if b.routerID < 0 {
		panic("router requires an ID")
	}
}

func (b Builder) routingEngineMustBeGiven() {
	if b.decider == nil {
		panic("router requires a routing engine to operate")
	}
}

func (b Builder) arbiterMustBeGiven() {
	if b.arbiter == nil {
		panic("router requires an arbiter to operate")
	}
}
