// Package traffic provides endpoint agents and a delivery checker for
// exercising winoc networks.
package traffic

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/winoc/noc"
)

// Agent is a terminal endpoint. It injects the flits queued on it and
// reports every flit it receives to the Test.
type Agent struct {
	*sim.TickingComponent

	test *Test

	// Port is the agent's network-facing port.
	Port sim.Port

	// FlitsToSend holds the flits waiting to be injected, in order.
	FlitsToSend []*noc.Flit

	sendBytes uint64
	recvBytes uint64
}

// NewAgent creates a new agent with one network-facing port.
func NewAgent(
	engine sim.Engine,
	freq sim.Freq,
	name string,
	test *Test,
) *Agent {
	a := &Agent{test: test}
	a.TickingComponent = sim.NewTickingComponent(name, engine, freq, a)
	a.Port = sim.NewPort(a, 1, 1, name+".Port")

	return a
}

// Tick tries to inject and receive flits.
func (a *Agent) Tick() bool {
	madeProgress := a.send()
	madeProgress = a.recv() || madeProgress

	return madeProgress
}

func (a *Agent) send() bool {
	if len(a.FlitsToSend) == 0 {
		return false
	}

	flit := a.FlitsToSend[0]
	if a.Port.Send(flit) != nil {
		return false
	}

	a.FlitsToSend = a.FlitsToSend[1:]
	a.sendBytes += uint64(flit.TrafficBytes)

	return true
}

func (a *Agent) recv() bool {
	item := a.Port.PeekIncoming()
	if item == nil {
		return false
	}

	flit := item.(*noc.Flit)
	a.recvBytes += uint64(flit.TrafficBytes)
	a.test.receiveFlit(flit, a.Port)
	a.Port.RetrieveIncoming()

	return true
}
