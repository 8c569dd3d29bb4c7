// Package wiring connects two ports with a wired mesh link.
package wiring

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
)

type transfer struct {
	msg       sim.Msg
	arrivesAt sim.VTimeInSec
}

// Comp is a point-to-point wired link. It forwards messages between
// the two plugged ports with a fixed latency in cycles.
type Comp struct {
	*sim.TickingComponent

	latency  int
	ports    []sim.Port
	byRemote map[sim.RemotePort]sim.Port
	inFlight []transfer
}

// PlugIn marks the port as connected to this link.
func (c *Comp) PlugIn(port sim.Port) {
	c.Lock()
	defer c.Unlock()

	if len(c.ports) >= 2 {
		panic("a wired link connects exactly two ports")
	}

	c.ports = append(c.ports, port)
	c.byRemote[port.AsRemote()] = port
	port.SetConnection(c)
}

// Unplug removes the port from this link.
func (c *Comp) Unplug(_ sim.Port) {
	panic("not implemented")
}

// NotifyAvailable is called by a port to notify that the link can
// deliver to the port again.
func (c *Comp) NotifyAvailable(_ sim.Port) {
	c.TickLater()
}

// NotifySend is called by a port to notify that a message is waiting
// to travel over the link.
func (c *Comp) NotifySend() {
	c.TickLater()
}

// Tick moves messages over the link.
func (c *Comp) Tick() bool {
	madeProgress := c.deliver()
	madeProgress = c.pickUp() || madeProgress

	// Messages still traveling keep the link ticking until they are
	// due.
	return madeProgress || len(c.inFlight) > 0
}

func (c *Comp) deliver() bool {
	madeProgress := false
	now := c.Engine.CurrentTime()

	for len(c.inFlight) > 0 {
		head := c.inFlight[0]
		if head.arrivesAt > now {
			break
		}

		dst, found := c.byRemote[head.msg.Meta().Dst]
		if !found {
			panic(fmt.Sprintf(
				"msg destined to %s, which is not on link %s",
				head.msg.Meta().Dst, c.Name()))
		}

		if dst.Deliver(head.msg) != nil {
			break
		}

		c.inFlight = c.inFlight[1:]
		madeProgress = true
	}

	return madeProgress
}

func (c *Comp) pickUp() bool {
	madeProgress := false
	now := c.Engine.CurrentTime()

	for _, port := range c.ports {
		msg := port.PeekOutgoing()
		if msg == nil {
			continue
		}

		port.RetrieveOutgoing()
		c.inFlight = append(c.inFlight, transfer{
			msg:       msg,
			arrivesAt: c.Freq.NCyclesLater(c.latency, now),
		})
		madeProgress = true
	}

	return madeProgress
}

// Builder can build wired links.
type Builder struct {
	engine  sim.Engine
	freq    sim.Freq
	latency int
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{latency: 1}
}

// WithEngine sets the event engine the link uses.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency the link works at.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithLatency sets the link traversal latency in cycles.
func (b Builder) WithLatency(cycles int) Builder {
	b.latency = cycles
	return b
}

// Build creates a new link.
func (b Builder) Build(name string) *Comp {
	b.engineMustBeGiven()
	b.freqMustNotBeZero()

	c := &Comp{
		latency:  b.latency,
		byRemote: make(map[sim.RemotePort]sim.Port),
	}
	c.TickingComponent =
		sim.NewSecondaryTickingComponent(name, b.engine, b.freq, c)

	return c
}

func (b Builder) engineMustBeGiven() {
	if b.engine == nil {
		panic("wired link requires an engine")
	}
}

func (b Builder) freqMustNotBeZero() {
	if b.freq == 0 {
		panic("wired link frequency cannot be 0")
	}
}
