package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/routelab/routesim/mock"
	"github.com/routelab/routesim/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func runMock(t *testing.T, protocol state.Protocol, parallel bool) (*state.SimCfg, map[state.NodeId]state.ForwardingTable) {
	t.Helper()
	cfg := mock.MockCfg(protocol)
	cfg.BroadcastInterval = 5
	cfg.Parallel = parallel
	if protocol == state.ProtocolDV {
		cfg.Ticks = 10
	}
	sim, err := NewSimulator(cfg, discardLogger())
	require.NoError(t, err)
	sim.Run()
	return cfg, sim.ForwardingTables()
}

// costMatrix walks the forwarding tables for every pair of nodes.
func costMatrix(cfg *state.SimCfg, tables map[state.NodeId]state.ForwardingTable) map[state.NodeId]map[state.NodeId]state.Cost {
	out := make(map[state.NodeId]map[state.NodeId]state.Cost)
	for _, src := range cfg.Nodes {
		out[src] = make(map[state.NodeId]state.Cost)
		for _, dst := range cfg.Nodes {
			out[src][dst] = PathCost(&cfg.TopologyCfg, tables, src, dst)
		}
	}
	return out
}

// Next hops may differ between the protocols under equal cost ties,
// but the path costs they converge on must agree.
func TestDVLSAgreementOnPathCosts(t *testing.T) {
	dvCfg, dvTables := runMock(t, state.ProtocolDV, false)
	lsCfg, lsTables := runMock(t, state.ProtocolLS, false)

	dvCosts := costMatrix(dvCfg, dvTables)
	lsCosts := costMatrix(lsCfg, lsTables)
	if diff := cmp.Diff(dvCosts, lsCosts); diff != "" {
		t.Errorf("path cost mismatch between dv and ls (-dv +ls):\n%s", diff)
	}

	// and both must match ground truth
	truth := AllPairsDistances(&dvCfg.TopologyCfg)
	if diff := cmp.Diff(truth, dvCosts); diff != "" {
		t.Errorf("dv path costs diverge from ground truth:\n%s", diff)
	}
}

func TestParallelTicking(t *testing.T) {
	defer goleak.VerifyNone(t)

	for _, protocol := range []state.Protocol{state.ProtocolDV, state.ProtocolLS} {
		cfg, tables := runMock(t, protocol, true)
		rep := Validate(&cfg.TopologyCfg, tables)
		assert.Empty(t, rep.Problems, "%s did not converge under parallel ticking", protocol)
	}
}

func TestSimulatorRejectsInvalidConfig(t *testing.T) {
	cfg := mock.Triangle("ospf")
	_, err := NewSimulator(cfg, discardLogger())
	assert.ErrorContains(t, err, "unknown protocol")
}

func TestValidateDetectsBadTables(t *testing.T) {
	cfg, tables := runMock(t, state.ProtocolDV, false)
	require.Empty(t, Validate(&cfg.TopologyCfg, tables).Problems)

	// bob reaching eve directly over the cost 10 link is not shortest
	tables["bob"]["eve"] = "eve"
	rep := Validate(&cfg.TopologyCfg, tables)
	assert.NotEmpty(t, rep.Problems)
	assert.False(t, rep.Converged())
}

func TestAllPairsDistances(t *testing.T) {
	cfg := mock.MockCfg(state.ProtocolDV)
	truth := AllPairsDistances(&cfg.TopologyCfg)
	assert.Equal(t, state.Cost(0), truth["bob"]["bob"])
	assert.Equal(t, state.Cost(1), truth["bob"]["jeb"])
	assert.Equal(t, state.Cost(2), truth["bob"]["eve"]) // via kat, not the direct 10
	assert.Equal(t, state.Cost(2), truth["bob"]["ada"])
	assert.Equal(t, state.Cost(2), truth["jeb"]["eve"]) // jeb-kat-eve
	assert.Equal(t, state.Cost(2), truth["jeb"]["ada"]) // jeb-kat-ada
}

func TestPathCostDeadEnd(t *testing.T) {
	cfg := mock.Triangle(state.ProtocolDV)
	tables := map[state.NodeId]state.ForwardingTable{
		"s": {"b": "a"},
		"a": {},
		"b": {},
	}
	assert.Equal(t, state.INF, PathCost(&cfg.TopologyCfg, tables, "s", "b"))
}
