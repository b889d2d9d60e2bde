package state

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// NodeId is an opaque identity for a router in the simulated topology.
type NodeId string

// Cost is a nonnegative link or path cost. INF marks an unreachable
// destination and must never appear as a configured link cost.
type Cost uint32

const (
	INF = ^Cost(0)
	// INFM is the maximum cost that still counts as reachable.
	INFM = INF - 1
)

// AddCost adds two costs, saturating at INFM so that a sum of finite
// costs can never collide with INF.
func AddCost(a, b Cost) Cost {
	if a == INF || b == INF {
		return INF
	}
	return Cost(min(uint64(INFM), uint64(a)+uint64(b)))
}

// Vector is a distance vector: destination to the best known cost from
// the owning router. An absent destination has cost infinity.
type Vector map[NodeId]Cost

func (v Vector) Clone() Vector {
	return maps.Clone(v)
}

// LinkTable maps a router's direct neighbours to the cost of the link
// towards them. It is fixed for the duration of a simulation.
type LinkTable map[NodeId]Cost

// ForwardingTable maps a destination to the neighbour used as the next
// hop towards it. A destination with no entry is unreachable so far.
type ForwardingTable map[NodeId]NodeId

func (f ForwardingTable) String() string {
	dsts := slices.Sorted(maps.Keys(f))
	sb := strings.Builder{}
	for i, dst := range dsts {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s via %s", dst, f[dst]))
	}
	return sb.String()
}
