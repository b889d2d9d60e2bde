package mock

import (
	"github.com/routelab/routesim/state"
)

// MockCfg returns a five node weighted mesh used across tests. The
// direct bob-eve link is deliberately worse than the path through kat.
func MockCfg(protocol state.Protocol) *state.SimCfg {
	names := []state.NodeId{
		"bob",
		"jeb",
		"kat",
		"eve",
		"ada",
	}
	weights := []state.Triple[state.NodeId, state.NodeId, state.Cost]{
		{V1: "bob", V2: "jeb", V3: 1},
		{V1: "bob", V2: "kat", V3: 1},
		{V1: "bob", V2: "eve", V3: 10},
		{V1: "jeb", V2: "kat", V3: 1},
		{V1: "kat", V2: "ada", V3: 1},
		{V1: "kat", V2: "eve", V3: 1},
		{V1: "eve", V2: "ada", V3: 2},
	}
	cfg := &state.SimCfg{
		Protocol: protocol,
		TopologyCfg: state.TopologyCfg{
			Nodes: names,
		},
	}
	for _, w := range weights {
		cfg.Links = append(cfg.Links, state.LinkCfg{A: w.V1, B: w.V2, Cost: w.V3})
	}
	return cfg
}

// Triangle returns the three node scenario where the direct s-b link
// (cost 5) loses to the two hop path through a (cost 2).
func Triangle(protocol state.Protocol) *state.SimCfg {
	return &state.SimCfg{
		Protocol: protocol,
		TopologyCfg: state.TopologyCfg{
			Nodes: []state.NodeId{"s", "a", "b"},
			Links: []state.LinkCfg{
				{A: "s", B: "a", Cost: 1},
				{A: "a", B: "b", Cost: 1},
				{A: "s", B: "b", Cost: 5},
			},
		},
	}
}

// Split returns a topology with an island: z has no links at all.
func Split(protocol state.Protocol) *state.SimCfg {
	cfg := Triangle(protocol)
	cfg.Nodes = append(cfg.Nodes, "z")
	return cfg
}
