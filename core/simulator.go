package core

import (
	"fmt"
	"log/slog"
	"maps"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/routelab/routesim/state"
)

// Simulator owns the routers of one run and drives them in discrete
// time: every tick it invokes RunOneTick on each router, then advances
// the shared clock. Router order within a tick is shuffled on purpose;
// engines must converge regardless of it.
type Simulator struct {
	cfg    *state.SimCfg
	clock  *state.Clock
	log    *slog.Logger
	tracer *Tracer
	nodes  map[state.NodeId]*Node
	order  []state.NodeId
}

func NewSimulator(cfg *state.SimCfg, log *slog.Logger) (*Simulator, error) {
	if err := state.SimConfigValidator(cfg); err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:    cfg,
		clock:  &state.Clock{},
		log:    log,
		tracer: NewTracer(log),
		nodes:  make(map[state.NodeId]*Node, len(cfg.Nodes)),
		order:  slices.Clone(cfg.Nodes),
	}

	tables := cfg.LinkTables()
	for _, id := range cfg.Nodes {
		s.nodes[id] = &Node{
			Id:       id,
			Links:    tables[id],
			FwdTable: make(state.ForwardingTable),
			Clock:    s.clock,
			Log:      log.With("node", id),
			Tracer:   s.tracer,
		}
	}
	for _, n := range s.nodes {
		for neigh := range n.Links {
			n.Neighbours = append(n.Neighbours, s.nodes[neigh])
		}
	}
	for _, id := range cfg.Nodes {
		n := s.nodes[id]
		switch cfg.Protocol {
		case state.ProtocolDV:
			n.Engine = NewDVEngine(n)
		case state.ProtocolLS:
			n.Engine = NewLSEngine(n, cfg.Interval())
		default:
			return nil, fmt.Errorf("unknown protocol %q", cfg.Protocol)
		}
		n.Engine.InitializeAlgorithm()
	}
	return s, nil
}

// Tick runs every router once and advances the clock.
func (s *Simulator) Tick() {
	rand.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})
	if s.cfg.Parallel {
		var wg sync.WaitGroup
		for _, id := range s.order {
			wg.Add(1)
			go func(n *Node) {
				defer wg.Done()
				n.Engine.RunOneTick()
			}(s.nodes[id])
		}
		wg.Wait()
	} else {
		for _, id := range s.order {
			s.nodes[id].Engine.RunOneTick()
		}
	}
	s.clock.Advance()
	s.tracer.Flush()
}

// Run ticks the network for the configured budget.
func (s *Simulator) Run() {
	ticks := s.cfg.RunTicks()
	for range ticks {
		s.Tick()
	}
	s.log.Debug("run complete", "ticks", ticks)
}

func (s *Simulator) Clock() *state.Clock {
	return s.clock
}

func (s *Simulator) Node(id state.NodeId) *Node {
	return s.nodes[id]
}

// ForwardingTables snapshots every router's forwarding table.
func (s *Simulator) ForwardingTables() map[state.NodeId]state.ForwardingTable {
	out := make(map[state.NodeId]state.ForwardingTable, len(s.nodes))
	for id, n := range s.nodes {
		out[id] = maps.Clone(n.FwdTable)
	}
	return out
}
