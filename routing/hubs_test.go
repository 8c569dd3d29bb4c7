package routing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/winoc/noc"
)

var _ = Describe("HubAdjacency", func() {
	It("should sort hubs and neighbors deterministically", func() {
		hubs := MakeHubAdjacency(map[int][]int{
			50: {21, 18},
			18: {50, 21},
			21: {18, 50},
		})

		Expect(hubs.Hubs()).To(Equal([]int{18, 21, 50}))
		Expect(hubs.NeighborsOf(50)).To(Equal([]int{18, 21}))
	})

	It("should tell hubs from regular routers", func() {
		hubs := MakeHubAdjacency(fullyConnected(18, 21))

		Expect(hubs.IsHub(18)).To(BeTrue())
		Expect(hubs.IsHub(19)).To(BeFalse())
	})

	It("should reject a hub that transmits to itself", func() {
		Expect(func() {
			MakeHubAdjacency(map[int][]int{18: {18}})
		}).To(Panic())
	})

	It("should reject a neighbor that is not a hub", func() {
		Expect(func() {
			MakeHubAdjacency(map[int][]int{18: {21}})
		}).To(Panic())
	})
})

var _ = Describe("PortDirectionMap", func() {
	It("should map directions to ports and back", func() {
		m := PortDirectionMap{}
		m.Add(noc.East, 0)
		m.Add(noc.North, 1)

		Expect(m.PortOf(noc.East)).To(Equal(0))
		Expect(m.DirectionOf(1)).To(Equal(noc.North))
	})

	It("should keep the first binding of the local direction", func() {
		m := PortDirectionMap{}
		m.Add(noc.Local, 0)
		m.Add(noc.Local, 1)

		Expect(m.PortOf(noc.Local)).To(Equal(0))
		Expect(m.DirectionOf(1)).To(Equal(noc.Local))
	})

	It("should reject duplicate bindings of a mesh direction", func() {
		m := PortDirectionMap{}
		m.Add(noc.East, 0)

		Expect(func() {
			m.Add(noc.East, 1)
		}).To(Panic())
	})

	It("should panic when a direction has no port", func() {
		m := PortDirectionMap{}

		Expect(func() {
			m.PortOf(noc.South)
		}).To(Panic())
	})
})
