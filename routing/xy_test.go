package routing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/winoc/noc"
)

var _ = Describe("XY Routing", func() {
	var (
		mesh    noc.Mesh
		engines []*Engine
	)

	BeforeEach(func() {
		mesh = noc.Mesh{NumRows: 8, NumCols: 8}
		engines = buildMeshEngines(mesh, AlgorithmXY, nil)
	})

	It("should route corner to corner in dimension order", func() {
		hops := walk(engines, mesh, 0, 63)

		Expect(hops).To(HaveLen(14))
		for i := 0; i < 7; i++ {
			Expect(hops[i].direction).To(Equal(noc.East))
		}
		for i := 7; i < 14; i++ {
			Expect(hops[i].direction).To(Equal(noc.North))
		}
		for _, h := range hops {
			Expect(h.shortcutHub).To(Equal(-1))
		}
	})

	It("should finish the X dimension before turning", func() {
		hops := walk(engines, mesh, 0, 9)

		Expect(hops).To(HaveLen(2))
		Expect(hops[0].direction).To(Equal(noc.East))
		Expect(hops[1].direction).To(Equal(noc.North))
	})

	It("should take a minimal path between every pair", func() {
		for src := 0; src < mesh.NumRouters(); src++ {
			for dst := 0; dst < mesh.NumRouters(); dst++ {
				if dst == src {
					continue
				}

				hops := walk(engines, mesh, src, dst)

				Expect(hops).To(HaveLen(mesh.Hops(src, dst)))
			}
		}
	})

	It("should reject a packet that would U-turn eastward", func() {
		route := noc.RouteInfo{DestRouter: 3}

		Expect(func() {
			engines[1].computeXY(route, noc.East)
		}).To(Panic())
	})

	It("should reject a packet that would U-turn northward", func() {
		route := noc.RouteInfo{DestRouter: 16}

		Expect(func() {
			engines[0].computeXY(route, noc.North)
		}).To(Panic())
	})

	It("should reject routing at the destination router", func() {
		route := noc.RouteInfo{DestRouter: 5}

		Expect(func() {
			engines[5].computeXY(route, noc.Local)
		}).To(Panic())
	})
})
