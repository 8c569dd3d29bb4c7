package wireless

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"
)

type hubStub struct {
	*sim.ComponentBase
}

func newHubStub(name string) *hubStub {
	return &hubStub{ComponentBase: sim.NewComponentBase(name)}
}

func (h *hubStub) Handle(_ sim.Event) error  { return nil }
func (h *hubStub) NotifyRecv(_ sim.Port)     {}
func (h *hubStub) NotifyPortFree(_ sim.Port) {}

type sampleMsg struct {
	sim.MsgMeta
}

func (m *sampleMsg) Meta() *sim.MsgMeta {
	return &m.MsgMeta
}

func (m *sampleMsg) Clone() sim.Msg {
	cloneMsg := *m
	cloneMsg.ID = sim.GetIDGenerator().Generate()

	return &cloneMsg
}

func msgBetween(src, dst sim.Port) sim.Msg {
	msg := &sampleMsg{}
	msg.ID = sim.GetIDGenerator().Generate()
	msg.Src = src.AsRemote()
	msg.Dst = dst.AsRemote()

	return msg
}

var _ = Describe("Medium", func() {
	var (
		medium *Comp
		ports  []sim.Port
	)

	BeforeEach(func() {
		engine := sim.NewSerialEngine()
		medium = MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			Build("Medium")

		ports = nil
		for i := 0; i < 3; i++ {
			hub := newHubStub(fmt.Sprintf("Hub%d", i))
			port := sim.NewPort(hub, 4, 4, hub.Name()+".WirelessIn")
			medium.PlugIn(port)
			ports = append(ports, port)
		}
	})

	It("should deliver a transmission from the token holder", func() {
		msg := msgBetween(ports[0], ports[1])
		Expect(ports[0].Send(msg)).To(BeNil())

		madeProgress := medium.Tick()

		Expect(madeProgress).To(BeTrue())
		Expect(ports[1].PeekIncoming()).To(BeIdenticalTo(msg))
	})

	It("should transmit at most once per cycle", func() {
		Expect(ports[0].Send(msgBetween(ports[0], ports[1]))).To(BeNil())
		Expect(ports[0].Send(msgBetween(ports[0], ports[2]))).To(BeNil())

		medium.Tick()

		Expect(ports[1].PeekIncoming()).NotTo(BeNil())
		Expect(ports[2].PeekIncoming()).To(BeNil())
	})

	It("should pass the token by a waiting transmitter", func() {
		Expect(ports[2].Send(msgBetween(ports[2], ports[0]))).To(BeNil())

		Expect(medium.Tick()).To(BeTrue())
		Expect(medium.TokenHolder()).To(BeIdenticalTo(ports[1]))
		Expect(ports[0].PeekIncoming()).To(BeNil())

		Expect(medium.Tick()).To(BeTrue())
		Expect(medium.TokenHolder()).To(BeIdenticalTo(ports[2]))

		Expect(medium.Tick()).To(BeTrue())
		Expect(ports[0].PeekIncoming()).NotTo(BeNil())
	})

	It("should keep the token when the air is idle", func() {
		Expect(medium.Tick()).To(BeFalse())
		Expect(medium.TokenHolder()).To(BeIdenticalTo(ports[0]))
	})
})
