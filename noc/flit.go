package noc

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
)

// RouteInfo carries the routing decision inputs of one packet. It is
// created when the packet is injected and discarded when the packet
// arrives.
type RouteInfo struct {
	// DestRouter is the ID of the router the destination terminal
	// attaches to.
	DestRouter int

	// DestMask is the set of terminals the packet may be delivered to.
	DestMask NetDest

	// VNet is the virtual network the packet travels on.
	VNet int
}

// Flit is the smallest transferring unit on the network.
type Flit struct {
	sim.MsgMeta

	SeqID        int
	NumFlitInMsg int
	Route        RouteInfo

	// ShortcutHub is the wireless exit hub selected by an upstream
	// router, or -1 when the flit travels on wires only. Each router
	// rewrites it with its own decision.
	ShortcutHub int

	Msg       sim.Msg
	OutputBuf sim.Buffer // The buffer to route to within a router
}

// Meta returns the meta data associated with the Flit.
func (f *Flit) Meta() *sim.MsgMeta {
	return &f.MsgMeta
}

// Clone returns a cloned Flit with a different ID.
func (f *Flit) Clone() sim.Msg {
	cloneMsg := *f
	cloneMsg.ID = flitID(cloneMsg.SeqID)

	return &cloneMsg
}

// FlitBuilder can build flits.
type FlitBuilder struct {
	src, dst            sim.RemotePort
	route               RouteInfo
	msg                 sim.Msg
	seqID, numFlitInMsg int
	trafficBytes        int
}

// WithSrc sets the source port of the flit to build.
func (b FlitBuilder) WithSrc(src sim.RemotePort) FlitBuilder {
	b.src = src
	return b
}

// WithDst sets the destination port of the flit to build.
func (b FlitBuilder) WithDst(dst sim.RemotePort) FlitBuilder {
	b.dst = dst
	return b
}

// WithRoute sets the route information of the flit to build.
func (b FlitBuilder) WithRoute(route RouteInfo) FlitBuilder {
	b.route = route
	return b
}

// WithSeqID sets the sequence ID of the flit to build.
func (b FlitBuilder) WithSeqID(i int) FlitBuilder {
	b.seqID = i
	return b
}

// WithNumFlitInMsg sets the number of flits in the message that the
// flit to build belongs to.
func (b FlitBuilder) WithNumFlitInMsg(n int) FlitBuilder {
	b.numFlitInMsg = n
	return b
}

// WithMsg sets the message that the flit to build carries.
func (b FlitBuilder) WithMsg(msg sim.Msg) FlitBuilder {
	b.msg = msg
	return b
}

// WithTrafficBytes sets the number of bytes the flit occupies on a
// link.
func (b FlitBuilder) WithTrafficBytes(n int) FlitBuilder {
	b.trafficBytes = n
	return b
}

// Build creates a new flit.
func (b FlitBuilder) Build() *Flit {
	f := &Flit{}
	f.ID = flitID(b.seqID)
	f.Src = b.src
	f.Dst = b.dst
	f.TrafficBytes = b.trafficBytes
	f.Route = b.route
	f.ShortcutHub = -1
	f.Msg = b.msg
	f.SeqID = b.seqID
	f.NumFlitInMsg = b.numFlitInMsg

	return f
}

func flitID(seqID int) string {
	return fmt.Sprintf("flit-%d-%s",
		seqID, sim.GetIDGenerator().Generate())
}
