package routing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/winoc/noc"
)

var _ = Describe("Engine", func() {
	var (
		mesh   noc.Mesh
		engine *Engine
	)

	BeforeEach(func() {
		mesh = noc.Mesh{NumRows: 4, NumCols: 4}
		engine = MakeEngineBuilder().
			WithRouterID(5).
			WithMesh(mesh).
			WithAlgorithm(AlgorithmXY).
			Build()

		engine.AddRoute([]noc.NetDest{noc.NetDestOf(5)})
		engine.AddWeight(1)
		engine.AddInDirection(noc.Local, 0)
		engine.AddOutDirection(noc.Local, 0)
		engine.AddInDirection(noc.East, 1)
		engine.AddOutDirection(noc.East, 1)
		engine.AddRoute([]noc.NetDest{noc.NetDestOf(6)})
		engine.AddWeight(1)
	})

	It("should resolve arrived packets through the table", func() {
		route := noc.RouteInfo{
			DestRouter: 5,
			DestMask:   noc.NetDestOf(5),
		}

		outport, hub := engine.ComputeOutport(route, 1, noc.East)

		Expect(outport).To(Equal(0))
		Expect(hub).To(Equal(-1))
	})

	It("should dispatch in-transit packets to the algorithm", func() {
		route := noc.RouteInfo{DestRouter: 6}

		outport, hub := engine.ComputeOutport(route, 0, noc.Local)

		Expect(outport).To(Equal(1))
		Expect(hub).To(Equal(-1))
	})

	It("should fall back to the table for unknown algorithms", func() {
		tableEngine := MakeEngineBuilder().
			WithRouterID(5).
			WithMesh(mesh).
			WithAlgorithm(Algorithm(99)).
			Build()
		tableEngine.AddRoute([]noc.NetDest{noc.NetDestOf(6)})
		tableEngine.AddWeight(1)

		route := noc.RouteInfo{
			DestRouter: 6,
			DestMask:   noc.NetDestOf(6),
		}

		outport, hub := tableEngine.ComputeOutport(route, 0, noc.Local)

		Expect(outport).To(Equal(0))
		Expect(hub).To(Equal(-1))
	})

	It("should report the direction of input ports", func() {
		Expect(engine.InDirectionOf(1)).To(Equal(noc.East))
	})

	It("should reject duplicate wireless egress bindings", func() {
		engine.AddWirelessOutPort(10, 2)

		Expect(func() {
			engine.AddWirelessOutPort(10, 3)
		}).To(Panic())
	})
})

var _ = Describe("EngineBuilder", func() {
	It("should require a router ID", func() {
		Expect(func() {
			MakeEngineBuilder().
				WithMesh(noc.Mesh{NumRows: 4, NumCols: 4}).
				Build()
		}).To(Panic())
	})

	It("should require a mesh", func() {
		Expect(func() {
			MakeEngineBuilder().WithRouterID(0).Build()
		}).To(Panic())
	})
})
