package core

import (
	"log/slog"

	"github.com/routelab/routesim/state"
)

// Engine is the per-router algorithm driven by the scheduler. Both
// hooks are invoked by the simulator: InitializeAlgorithm exactly once
// before any ticking, RunOneTick once per tick thereafter.
type Engine interface {
	InitializeAlgorithm()
	RunOneTick()
}

// VectorReceiver accepts a neighbour's full distance vector.
type VectorReceiver interface {
	ProcessAdvertisement(adv state.Vector, from state.NodeId)
}

// LinkStateReceiver accepts a flooded link state advertisement on
// behalf of its originator.
type LinkStateReceiver interface {
	ReceiveLSA(origin state.NodeId, lsa state.LinkTable)
}

// Node is the router substrate: identity, fixed link costs, handles to
// direct neighbours, the forwarding table the engine fills in, and the
// shared logical clock. Links and Neighbours are read-only to engines;
// FwdTable is owned by the engine and mutated only under its lock.
type Node struct {
	Id         state.NodeId
	Links      state.LinkTable
	Neighbours []*Node
	FwdTable   state.ForwardingTable
	Clock      *state.Clock
	Log        *slog.Logger
	Tracer     *Tracer
	Engine     Engine
}
