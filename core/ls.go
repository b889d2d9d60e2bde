package core

import (
	"fmt"
	"sync"

	"github.com/routelab/routesim/state"
)

// LSEngine runs link state routing. During a bounded broadcast window
// it floods every link state advertisement it holds to all neighbours,
// at most once per originator. Once the clock reaches the window's end
// it runs a single shortest path computation over the collected
// topology and derives the forwarding table from the predecessor tree.
type LSEngine struct {
	node     *Node
	interval uint64

	mu                sync.Mutex
	lsaDict           map[state.NodeId]state.LinkTable
	broadcasted       map[state.NodeId]bool
	broadcastComplete bool
	routesComputed    bool
	floods            uint64
	computations      uint64
}

func NewLSEngine(n *Node, interval uint64) *LSEngine {
	return &LSEngine{
		node:        n,
		interval:    interval,
		lsaDict:     make(map[state.NodeId]state.LinkTable),
		broadcasted: map[state.NodeId]bool{n.Id: false},
	}
}

func (l *LSEngine) InitializeAlgorithm() {
	l.mu.Lock()
	defer l.mu.Unlock()
	// our own link table is the first known LSA
	l.lsaDict = map[state.NodeId]state.LinkTable{l.node.Id: l.node.Links}
	l.node.FwdTable[l.node.Id] = l.node.Id
}

func (l *LSEngine) RunOneTick() {
	tick := l.node.Clock.ReadTick()
	if tick >= l.interval {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.routesComputed {
			return
		}
		l.broadcastComplete = true
		l.computeRoutes()
		l.routesComputed = true
		return
	}

	// Flooding window. Collect and mark pending LSAs under the lock,
	// deliver without it. An LSA learned mid-flood is picked up again
	// here on a later tick, before the window closes.
	type flood struct {
		origin state.NodeId
		lsa    state.LinkTable
	}
	var pending []flood
	l.mu.Lock()
	for origin, lsa := range l.lsaDict {
		if !l.broadcasted[origin] {
			pending = append(pending, flood{origin, lsa})
			l.broadcasted[origin] = true
			l.floods++
		}
	}
	l.mu.Unlock()
	for _, f := range pending {
		for _, neigh := range l.node.Neighbours {
			if rx, ok := neigh.Engine.(LinkStateReceiver); ok {
				rx.ReceiveLSA(f.origin, f.lsa)
			}
		}
	}
}

// ReceiveLSA records an originator's link table. The overwrite is
// unconditional: the content for a given originator never changes, so
// re-receiving the same LSA is harmless.
func (l *LSEngine) ReceiveLSA(origin state.NodeId, lsa state.LinkTable) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lsaDict[origin] = lsa
}

// computeRoutes must be called with l.mu held.
func (l *LSEngine) computeRoutes() {
	l.computations++
	res := shortestPaths(l.lsaDict, l.node.Id)
	routes := 0
	for dst, dist := range res.dist {
		if dst == l.node.Id || dist == state.INF {
			// unreachable destinations get no entry, not a sentinel
			continue
		}
		nh, err := nextHop(l.node.Id, dst, res.prev)
		if err != nil {
			// only reached for destinations proven finite by the
			// computation above, so this is a bookkeeping bug
			panic(fmt.Errorf("next hop for %s: %w", dst, err))
		}
		l.node.FwdTable[dst] = nh
		routes++
	}
	l.node.Tracer.RoutesComputed(l.node.Id, routes)
}

// LSAs returns a snapshot of the originators this engine has heard of.
func (l *LSEngine) LSAs() map[state.NodeId]state.LinkTable {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[state.NodeId]state.LinkTable, len(l.lsaDict))
	for origin, lsa := range l.lsaDict {
		out[origin] = lsa
	}
	return out
}

// Floods returns how many distinct LSAs this engine has flooded.
func (l *LSEngine) Floods() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.floods
}

// Computations returns how many times the shortest path computation ran.
func (l *LSEngine) Computations() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.computations
}
