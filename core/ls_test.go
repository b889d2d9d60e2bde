package core

import (
	"testing"

	"github.com/routelab/routesim/mock"
	"github.com/routelab/routesim/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lsCfg(cfg *state.SimCfg) *state.SimCfg {
	cfg.BroadcastInterval = 5
	return cfg
}

func TestLSInitialize(t *testing.T) {
	n := testNode("s", state.LinkTable{"a": 1, "b": 5})
	l := NewLSEngine(n, 5)
	n.Engine = l
	l.InitializeAlgorithm()

	assert.Equal(t, map[state.NodeId]state.LinkTable{"s": {"a": 1, "b": 5}}, l.LSAs())
	assert.Equal(t, state.NodeId("s"), n.FwdTable["s"])
}

func TestLSFloodCompleteness(t *testing.T) {
	cfg := lsCfg(mock.MockCfg(state.ProtocolLS))
	sim, err := NewSimulator(cfg, discardLogger())
	require.NoError(t, err)
	sim.Run()

	for _, id := range cfg.Nodes {
		lsas := sim.Node(id).Engine.(*LSEngine).LSAs()
		assert.Len(t, lsas, len(cfg.Nodes), "%s is missing LSAs", id)
		for _, origin := range cfg.Nodes {
			assert.Contains(t, lsas, origin, "%s never learned %s's LSA", id, origin)
		}
	}
}

func TestLSSingleComputation(t *testing.T) {
	cfg := lsCfg(mock.MockCfg(state.ProtocolLS))
	cfg.Ticks = cfg.Interval() + 5 // several qualifying ticks past the window
	sim, err := NewSimulator(cfg, discardLogger())
	require.NoError(t, err)
	sim.Run()

	for _, id := range cfg.Nodes {
		assert.Equal(t, uint64(1), sim.Node(id).Engine.(*LSEngine).Computations())
	}
}

func TestLSTriangle(t *testing.T) {
	cfg := lsCfg(mock.Triangle(state.ProtocolLS))
	sim, err := NewSimulator(cfg, discardLogger())
	require.NoError(t, err)
	sim.Run()

	s := sim.Node("s")
	assert.Equal(t, state.NodeId("a"), s.FwdTable["b"])

	tables := sim.ForwardingTables()
	assert.Equal(t, state.Cost(2), PathCost(&cfg.TopologyCfg, tables, "s", "b"))
	rep := Validate(&cfg.TopologyCfg, tables)
	assert.Empty(t, rep.Problems)
}

func TestLSDisconnectedDestinationOmitted(t *testing.T) {
	cfg := lsCfg(mock.Split(state.ProtocolLS))
	sim, err := NewSimulator(cfg, discardLogger())
	require.NoError(t, err)
	sim.Run()

	for _, id := range []state.NodeId{"s", "a", "b"} {
		assert.NotContains(t, sim.Node(id).FwdTable, state.NodeId("z"))
	}
	// an isolated island still converges on an empty view
	rep := Validate(&cfg.TopologyCfg, sim.ForwardingTables())
	assert.Empty(t, rep.Problems)
}

func TestLSIdempotentRedelivery(t *testing.T) {
	cfg := lsCfg(mock.Triangle(state.ProtocolLS))
	sim, err := NewSimulator(cfg, discardLogger())
	require.NoError(t, err)
	sim.Tick()
	sim.Tick()

	l := sim.Node("s").Engine.(*LSEngine)
	lsas := l.LSAs()
	floods := l.Floods()
	require.Contains(t, lsas, state.NodeId("a"))

	// replaying a known LSA changes nothing and triggers no re-flood
	l.ReceiveLSA("a", lsas["a"])
	sim.Tick()
	assert.Equal(t, lsas, l.LSAs())
	assert.Equal(t, floods, l.Floods())
}

func TestLSNoopAfterComputation(t *testing.T) {
	cfg := lsCfg(mock.Triangle(state.ProtocolLS))
	sim, err := NewSimulator(cfg, discardLogger())
	require.NoError(t, err)
	sim.Run()

	l := sim.Node("s").Engine.(*LSEngine)
	before := sim.Node("s").FwdTable.String()
	sim.Tick()
	sim.Tick()
	assert.Equal(t, before, sim.Node("s").FwdTable.String())
	assert.Equal(t, uint64(1), l.Computations())
}
