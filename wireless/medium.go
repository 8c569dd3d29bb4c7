// Package wireless models the shared broadcast medium that connects
// the hub routers. The medium carries one transmission per cycle, and
// the right to transmit is granted by a token that rotates over the
// hubs round-robin, so hubs never collide on the air.
package wireless

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
)

// Comp is the broadcast medium. All hub wireless ports plug into the
// same Comp. Each cycle, only the port holding the token may transmit
// the flit at the head of its outgoing buffer; everyone else waits.
// Selecting a wireless egress therefore never implies immediate
// transmission.
type Comp struct {
	*sim.TickingComponent

	ports    []sim.Port
	byRemote map[sim.RemotePort]sim.Port
	token    int
}

// PlugIn adds a port to the broadcast domain.
func (c *Comp) PlugIn(port sim.Port) {
	c.Lock()
	defer c.Unlock()

	c.ports = append(c.ports, port)
	c.byRemote[port.AsRemote()] = port
	port.SetConnection(c)
}

// Unplug removes a port from the broadcast domain.
func (c *Comp) Unplug(_ sim.Port) {
	panic("not implemented")
}

// NotifyAvailable is called by a port to notify that the medium can
// deliver to the port again.
func (c *Comp) NotifyAvailable(_ sim.Port) {
	c.TickLater()
}

// NotifySend is called by a port to notify that a transmission is
// pending.
func (c *Comp) NotifySend() {
	c.TickLater()
}

// TokenHolder returns the port currently holding the token.
func (c *Comp) TokenHolder() sim.Port {
	return c.ports[c.token]
}

// Tick performs at most one transmission and passes the token on.
func (c *Comp) Tick() bool {
	if len(c.ports) == 0 {
		return false
	}

	holder := c.ports[c.token]
	transmitted := c.transmit(holder)

	if !c.anyPending() {
		return transmitted
	}

	// Someone is still waiting for the air. Passing the token is
	// progress even if the holder had nothing to say, or was blocked
	// at the receiver.
	c.token = (c.token + 1) % len(c.ports)

	return true
}

func (c *Comp) transmit(holder sim.Port) bool {
	msg := holder.PeekOutgoing()
	if msg == nil {
		return false
	}

	dst, found := c.byRemote[msg.Meta().Dst]
	if !found {
		panic(fmt.Sprintf(
			"msg destined to %s, which is not on the wireless medium %s",
			msg.Meta().Dst, c.Name()))
	}

	if dst.Deliver(msg) != nil {
		return false
	}

	holder.RetrieveOutgoing()

	return true
}

func (c *Comp) anyPending() bool {
	for _, port := range c.ports {
		if port.PeekOutgoing() != nil {
			return true
		}
	}

	return false
}

// Builder can build wireless mediums.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
}

// MakeBuilder creates a Builder with default parameters.
func MakeBuilder() Builder {
	return Builder{}
}

// WithEngine sets the event engine the medium uses.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the medium, which decides the token
// rotation rate.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// Build creates a new medium.
func (b Builder) Build(name string) *Comp {
	b.engineMustBeGiven()
	b.freqMustNotBeZero()

	c := &Comp{
		byRemote: make(map[sim.RemotePort]sim.Port),
	}
	c.TickingComponent =
		sim.NewSecondaryTickingComponent(name, b.engine, b.freq, c)

	return c
}

func (b Builder) engineMustBeGiven() {
	if b.engine == nil {
		panic("wireless medium requires an engine")
	}
}

func (b Builder) freqMustNotBeZero() {
	if b.freq == 0 {
		panic("wireless medium frequency cannot be 0")
	}
}
