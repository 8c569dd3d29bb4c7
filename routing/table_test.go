package routing

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/winoc/noc"
)

var _ = Describe("Table", func() {
	var (
		table *Table
		rng   *rand.Rand
	)

	BeforeEach(func() {
		table = &Table{}
		rng = rand.New(rand.NewSource(1))
	})

	It("should return a port whose destinations cover the packet", func() {
		table.AddRoute([]noc.NetDest{noc.NetDestOf(0, 1)})
		table.AddWeight(1)
		table.AddRoute([]noc.NetDest{noc.NetDestOf(2, 3)})
		table.AddWeight(1)

		port := table.Lookup(0, noc.NetDestOf(3), false, rng)

		Expect(port).To(Equal(1))
	})

	It("should prefer the port with the lowest weight", func() {
		table.AddRoute([]noc.NetDest{noc.NetDestOf(7)})
		table.AddWeight(2)
		table.AddRoute([]noc.NetDest{noc.NetDestOf(7)})
		table.AddWeight(1)

		port := table.Lookup(0, noc.NetDestOf(7), false, rng)

		Expect(port).To(Equal(1))
	})

	It("should always pick the first candidate on an ordered vnet", func() {
		table.AddRoute([]noc.NetDest{noc.NetDestOf(7)})
		table.AddWeight(1)
		table.AddRoute([]noc.NetDest{noc.NetDestOf(7)})
		table.AddWeight(1)

		for i := 0; i < 100; i++ {
			port := table.Lookup(0, noc.NetDestOf(7), true, rng)
			Expect(port).To(Equal(0))
		}
	})

	It("should spread ties roughly evenly on an unordered vnet", func() {
		table.AddRoute([]noc.NetDest{noc.NetDestOf(7)})
		table.AddWeight(1)
		table.AddRoute([]noc.NetDest{noc.NetDestOf(7)})
		table.AddWeight(1)

		counts := make(map[int]int)
		for i := 0; i < 1000; i++ {
			counts[table.Lookup(0, noc.NetDestOf(7), false, rng)]++
		}

		Expect(counts).To(HaveLen(2))
		Expect(counts[0]).To(BeNumerically(">", 400))
		Expect(counts[1]).To(BeNumerically(">", 400))
	})

	It("should index rows by virtual network", func() {
		table.AddRoute([]noc.NetDest{
			noc.NetDestOf(0),
			noc.NetDestOf(1),
		})
		table.AddWeight(1)

		Expect(table.Lookup(0, noc.NetDestOf(0), true, rng)).To(Equal(0))
		Expect(table.Lookup(1, noc.NetDestOf(1), true, rng)).To(Equal(0))
	})

	It("should panic when no route exists", func() {
		table.AddRoute([]noc.NetDest{noc.NetDestOf(0)})
		table.AddWeight(1)

		Expect(func() {
			table.Lookup(0, noc.NetDestOf(42), true, rng)
		}).To(Panic())
	})
})
