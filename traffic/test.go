package traffic

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/winoc/mesh"
	"github.com/sarchlab/winoc/noc"
)

const flitBytes = 64

type agentEntry struct {
	agent    *Agent
	terminal mesh.Terminal
}

// Test generates random traffic between registered agents and checks
// that every flit arrives exactly once, at the right terminal.
type Test struct {
	sync.Mutex

	agents       []agentEntry
	portToEntry  map[sim.RemotePort]agentEntry
	numVNets     int
	rng          *rand.Rand
	receivedIDs  map[string]bool
	inFlightIDs  map[string]agentEntry
	numGenerated uint64
}

// NewTest creates a new Test.
func NewTest() *Test {
	return &Test{
		portToEntry: make(map[sim.RemotePort]agentEntry),
		receivedIDs: make(map[string]bool),
		inFlightIDs: make(map[string]agentEntry),
		numVNets:    2,
		rng:         rand.New(rand.NewSource(1)),
	}
}

// WithNumVNets sets the number of virtual networks traffic spreads
// over.
func (t *Test) WithNumVNets(n int) *Test {
	t.numVNets = n
	return t
}

// WithRand sets the random source that picks sources, destinations,
// and virtual networks.
func (t *Test) WithRand(rng *rand.Rand) *Test {
	t.rng = rng
	return t
}

// RegisterAgent adds an agent and the terminal it is attached to.
func (t *Test) RegisterAgent(agent *Agent, terminal mesh.Terminal) {
	entry := agentEntry{agent: agent, terminal: terminal}
	t.agents = append(t.agents, entry)
	t.portToEntry[agent.Port.AsRemote()] = entry
}

// GenerateFlits queues n flits between random pairs of agents.
func (t *Test) GenerateFlits(n uint64) {
	if len(t.agents) < 2 {
		panic("traffic requires at least two agents")
	}

	for i := uint64(0); i < n; i++ {
		srcIdx := t.rng.Intn(len(t.agents))
		dstIdx := t.rng.Intn(len(t.agents))
		for dstIdx == srcIdx {
			dstIdx = t.rng.Intn(len(t.agents))
		}

		src := t.agents[srcIdx]
		dst := t.agents[dstIdx]

		flit := noc.FlitBuilder{}.
			WithSrc(src.agent.Port.AsRemote()).
			WithDst(src.terminal.RouterPort).
			WithRoute(noc.RouteInfo{
				DestRouter: dst.terminal.RouterID,
				DestMask:   noc.NetDestOf(dst.terminal.ID),
				VNet:       t.rng.Intn(t.numVNets),
			}).
			WithSeqID(int(i)).
			WithNumFlitInMsg(1).
			WithTrafficBytes(flitBytes).
			Build()

		t.inFlightIDs[flit.ID] = dst
		t.numGenerated++

		src.agent.FlitsToSend = append(src.agent.FlitsToSend, flit)
	}

	for _, entry := range t.agents {
		if len(entry.agent.FlitsToSend) > 0 {
			entry.agent.TickLater()
		}
	}
}

func (t *Test) receiveFlit(flit *noc.Flit, at sim.Port) {
	t.Lock()
	defer t.Unlock()

	t.flitMustBeInFlight(flit)
	t.flitMustArriveAtItsDestination(flit, at)

	t.receivedIDs[flit.ID] = true
	delete(t.inFlightIDs, flit.ID)
}

func (t *Test) flitMustBeInFlight(flit *noc.Flit) {
	if t.receivedIDs[flit.ID] {
		panic(fmt.Sprintf("flit %s is received twice", flit.ID))
	}

	if _, found := t.inFlightIDs[flit.ID]; !found {
		panic(fmt.Sprintf("flit %s was never sent", flit.ID))
	}
}

func (t *Test) flitMustArriveAtItsDestination(flit *noc.Flit, at sim.Port) {
	expected := t.inFlightIDs[flit.ID]
	if expected.agent.Port != at {
		panic(fmt.Sprintf("flit %s arrived at the wrong terminal",
			flit.ID))
	}

	if !flit.Route.DestMask.Contains(expected.terminal.ID) {
		panic(fmt.Sprintf("flit %s mask does not cover terminal %d",
			flit.ID, expected.terminal.ID))
	}
}

// MustHaveReceivedAllFlits panics if any generated flit has not
// arrived.
func (t *Test) MustHaveReceivedAllFlits() {
	if len(t.inFlightIDs) > 0 {
		panic(fmt.Sprintf("%d of %d flits were not delivered",
			len(t.inFlightIDs), t.numGenerated))
	}
}

// ReportBandwidthAchieved returns the aggregate delivered bandwidth
// in bytes per second of simulated time.
func (t *Test) ReportBandwidthAchieved(now sim.VTimeInSec) float64 {
	totalBytes := uint64(0)
	for _, entry := range t.agents {
		totalBytes += entry.agent.recvBytes
	}

	return float64(totalBytes) / float64(now)
}
