package routing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/winoc/noc"
)

// bestPathHops returns the hop count of the best path that uses at
// most one wireless hop, computed by brute force over all hub pairs.
func bestPathHops(
	mesh noc.Mesh,
	hubs HubAdjacency,
	src, dst int,
) int {
	best := mesh.Hops(src, dst)

	for _, h1 := range hubs.Hubs() {
		for _, h2 := range hubs.NeighborsOf(h1) {
			hops := mesh.Hops(src, h1) + 1 + mesh.Hops(h2, dst)
			if hops < best {
				best = hops
			}
		}
	}

	return best
}

var _ = Describe("Hybrid Routing", func() {
	var (
		mesh    noc.Mesh
		hubs    HubAdjacency
		engines []*Engine
	)

	BeforeEach(func() {
		mesh = noc.Mesh{NumRows: 8, NumCols: 8}
		hubs = MakeHubAdjacency(fullyConnected(18, 21, 45, 50))
		engines = buildMeshEngines(
			mesh, AlgorithmHybrid, fullyConnected(18, 21, 45, 50))
	})

	It("should enter the medium at the hub nearest the source", func() {
		hops := walk(engines, mesh, 0, 63)

		Expect(hops).To(HaveLen(9))
		Expect(hops[0].direction).To(Equal(noc.East))
		Expect(hops[0].shortcutHub).To(Equal(45))
	})

	It("should transmit at the entry hub and exit at the hinted hub", func() {
		hops := walk(engines, mesh, 0, 63)

		Expect(hops[4].router).To(Equal(18))
		Expect(hops[4].direction).To(Equal(noc.WirelessOut))
		Expect(hops[4].shortcutHub).To(Equal(45))
		Expect(hops[5].router).To(Equal(45))
	})

	It("should take a minimal path between every pair", func() {
		for src := 0; src < mesh.NumRouters(); src++ {
			for dst := 0; dst < mesh.NumRouters(); dst++ {
				if dst == src {
					continue
				}

				hops := walk(engines, mesh, src, dst)

				Expect(hops).To(
					HaveLen(bestPathHops(mesh, hubs, src, dst)))
			}
		}
	})

	It("should stay wired when the shortcut only ties", func() {
		smallMesh := noc.Mesh{NumRows: 4, NumCols: 4}
		smallEngines := buildMeshEngines(
			smallMesh, AlgorithmHybrid, fullyConnected(0, 3))

		hops := walk(smallEngines, smallMesh, 1, 3)

		Expect(hops).To(HaveLen(2))
		Expect(hops[0].direction).To(Equal(noc.East))
		Expect(hops[0].shortcutHub).To(Equal(-1))
		Expect(hops[1].direction).To(Equal(noc.East))
	})

	It("should fall back to pure XY without hubs", func() {
		bareEngines := buildMeshEngines(mesh, AlgorithmHybrid, nil)

		hops := walk(bareEngines, mesh, 0, 63)

		Expect(hops).To(HaveLen(14))
		for _, h := range hops {
			Expect(h.shortcutHub).To(Equal(-1))
		}
	})
})
