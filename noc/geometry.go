package noc

import "fmt"

// Mesh describes the rectangular geometry of the network. Router IDs
// are assigned row-major, so router id sits at column id%NumCols and
// row id/NumCols.
type Mesh struct {
	NumRows, NumCols int
}

// NumRouters returns the number of routers in the mesh.
func (m Mesh) NumRouters() int {
	return m.NumRows * m.NumCols
}

// Coord decodes a router ID into its column and row.
func (m Mesh) Coord(id int) (x, y int) {
	m.idMustBeInMesh(id)

	return id % m.NumCols, id / m.NumCols
}

// Hops returns the Manhattan distance between two routers.
func (m Mesh) Hops(a, b int) int {
	aX, aY := m.Coord(a)
	bX, bY := m.Coord(b)

	return abs(bX-aX) + abs(bY-aY)
}

// StepToward returns the direction of the first wired hop from one
// router toward another. Horizontal movement takes precedence over
// vertical movement. The order in which the cases are checked must
// not change, as it decides tie-breaking and therefore simulation
// traces.
func (m Mesh) StepToward(from, to int) Direction {
	fromX, fromY := m.Coord(from)
	toX, toY := m.Coord(to)

	switch {
	case toX > fromX:
		return East
	case toX < fromX:
		return West
	case toY > fromY:
		return North
	case toY < fromY:
		return South
	default:
		panic("no step between a router and itself")
	}
}

func (m Mesh) idMustBeInMesh(id int) {
	if id < 0 || id >= m.NumRouters() {
		panic(fmt.Sprintf("router %d is not in a %dx%d mesh",
			id, m.NumRows, m.NumCols))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
