package routing

import (
	"fmt"

	"github.com/sarchlab/winoc/noc"
)

// PortDirectionMap maps between symbolic directions and port indices
// on one router. Bindings are established once, at construction time.
//
// The direction-to-index side must be unambiguous, since it resolves
// routing decisions into ports. The one exception is the Local
// direction: a router may host several terminals, all attached in the
// Local direction, and an arriving packet picks among them through the
// routing table rather than through this map. Only the first Local
// binding is kept on the direction-to-index side.
type PortDirectionMap struct {
	dirToIdx map[noc.Direction]int
	idxToDir map[int]noc.Direction
}

// Add binds a direction to a port index.
func (m *PortDirectionMap) Add(dir noc.Direction, idx int) {
	if m.dirToIdx == nil {
		m.dirToIdx = make(map[noc.Direction]int)
		m.idxToDir = make(map[int]noc.Direction)
	}

	if _, bound := m.idxToDir[idx]; bound {
		panic(fmt.Sprintf("port %d is already bound to a direction", idx))
	}
	m.idxToDir[idx] = dir

	if _, bound := m.dirToIdx[dir]; bound {
		if dir != noc.Local {
			panic(fmt.Sprintf(
				"direction %s is already bound to a port", dir.Name()))
		}

		return
	}
	m.dirToIdx[dir] = idx
}

// PortOf resolves a direction to its port index. An unresolvable
// direction means the geometry assumes a link this router does not
// have.
func (m *PortDirectionMap) PortOf(dir noc.Direction) int {
	idx, found := m.dirToIdx[dir]
	if !found {
		panic(fmt.Sprintf(
			"direction %s does not resolve to a port", dir.Name()))
	}

	return idx
}

// DirectionOf returns the direction bound to a port index.
func (m *PortDirectionMap) DirectionOf(idx int) noc.Direction {
	dir, found := m.idxToDir[idx]
	if !found {
		panic(fmt.Sprintf("port %d is not bound to a direction", idx))
	}

	return dir
}
