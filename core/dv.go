package core

import (
	"sync"

	"github.com/routelab/routesim/state"
)

// DVEngine runs Bellman-Ford style distance vector routing. The engine
// keeps the best known cost to every destination, re-advertises the
// whole vector to its neighbours whenever it changed since the last
// send, and relaxes its own vector against every advertisement it
// receives. Distances only ever decrease, so relaxation converges to
// the same fixed point regardless of delivery order.
type DVEngine struct {
	node *Node

	mu      sync.Mutex
	vec     state.Vector
	changed bool
	sends   uint64
}

func NewDVEngine(n *Node) *DVEngine {
	return &DVEngine{
		node: n,
		vec:  make(state.Vector),
		// advertise on the very first tick
		changed: true,
	}
}

func (d *DVEngine) InitializeAlgorithm() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for neigh, cost := range d.node.Links {
		d.vec[neigh] = cost
		d.node.FwdTable[neigh] = neigh
	}
	d.vec[d.node.Id] = 0
	d.node.FwdTable[d.node.Id] = d.node.Id
	d.changed = true
}

func (d *DVEngine) RunOneTick() {
	d.mu.Lock()
	var adv state.Vector
	if d.changed {
		adv = d.vec.Clone()
		d.sends++
	}
	d.changed = false
	d.mu.Unlock()
	if adv == nil {
		return
	}
	// the lock is not held across delivery, so two routers
	// advertising to each other in the same tick cannot deadlock
	for _, neigh := range d.node.Neighbours {
		if rx, ok := neigh.Engine.(VectorReceiver); ok {
			rx.ProcessAdvertisement(adv, d.node.Id)
		}
	}
}

// ProcessAdvertisement relaxes the local vector against a neighbour's
// full vector. Destinations the neighbour is silent about are left
// untouched; there is no withdrawal. The change flag accumulates
// across advertisements until the next send, so a later no-op
// advertisement cannot mask an earlier improvement within the same
// tick.
func (d *DVEngine) ProcessAdvertisement(adv state.Vector, from state.NodeId) {
	link, ok := d.node.Links[from]
	if !ok {
		d.node.Log.Warn("advertisement from unknown neighbour", "from", from)
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for dst, cost := range adv {
		candidate := state.AddCost(link, cost)
		cur, known := d.vec[dst]
		if known && candidate >= cur {
			continue
		}
		d.vec[dst] = candidate
		d.node.FwdTable[dst] = from
		d.changed = true
		d.node.Tracer.RouteImproved(d.node.Id, dst, from, candidate)
	}
}

// Vector returns a snapshot of the current distance vector.
func (d *DVEngine) Vector() state.Vector {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.vec.Clone()
}

// Changed reports whether the vector mutated since the last send.
func (d *DVEngine) Changed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.changed
}

// Sends returns how many ticks this engine advertised on.
func (d *DVEngine) Sends() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sends
}
