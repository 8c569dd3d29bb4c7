// Package noc defines the data types shared by the winoc network
// components, including port directions, destination sets, mesh
// geometry, and the flit format.
package noc

// Direction identifies a port of a router by its role in the mesh.
type Direction int

const (
	// Local connects a router to one of its terminals.
	Local Direction = iota

	// East, West, North, and South are the wired mesh directions. East
	// and North point toward increasing column and row indices.
	East
	West
	North
	South

	// WirelessIn is the ingress side of the broadcast medium on a hub
	// router.
	WirelessIn

	// WirelessOut is the egress side of the broadcast medium. A hub
	// router has one egress port per hub it can reach, looked up by hub
	// ID rather than by direction.
	WirelessOut
)

// Name returns the name of the direction.
func (d Direction) Name() string {
	switch d {
	case Local:
		return "Local"
	case East:
		return "East"
	case West:
		return "West"
	case North:
		return "North"
	case South:
		return "South"
	case WirelessIn:
		return "Wireless_In"
	case WirelessOut:
		return "Wireless_Out"
	default:
		panic("invalid direction")
	}
}
