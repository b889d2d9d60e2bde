package state

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// LinkCfg is a single undirected, weighted link between two routers.
// The cost is stored symmetrically at both endpoints.
type LinkCfg struct {
	A    NodeId `yaml:"a"`
	B    NodeId `yaml:"b"`
	Cost Cost   `yaml:"cost"`
}

// TopologyCfg describes the static simulated network.
type TopologyCfg struct {
	Nodes []NodeId
	Links []LinkCfg
}

// Protocol selects which routing engine the routers run.
type Protocol string

const (
	ProtocolDV Protocol = "dv"
	ProtocolLS Protocol = "ls"
)

// SimCfg is the full configuration of one simulation run.
type SimCfg struct {
	Protocol Protocol
	// Ticks is the number of ticks to run. 0 picks a default large
	// enough for the configured protocol to converge.
	Ticks uint64 `yaml:",omitempty"`
	// BroadcastInterval overrides state.BroadcastInterval for link
	// state runs.
	BroadcastInterval uint64 `yaml:"broadcast_interval,omitempty"`
	// Parallel ticks all routers concurrently within each tick.
	Parallel bool   `yaml:",omitempty"`
	LogPath  string `yaml:"log_path,omitempty"`

	TopologyCfg `yaml:",inline"`
}

// LinkTables expands the undirected link list into one LinkTable per
// node. Every configured node gets a table, even if it has no links.
func (c *TopologyCfg) LinkTables() map[NodeId]LinkTable {
	tables := make(map[NodeId]LinkTable, len(c.Nodes))
	for _, n := range c.Nodes {
		tables[n] = make(LinkTable)
	}
	for _, l := range c.Links {
		tables[l.A][l.B] = l.Cost
		tables[l.B][l.A] = l.Cost
	}
	return tables
}

// Interval returns the effective broadcast window for this run.
func (c *SimCfg) Interval() uint64 {
	if c.BroadcastInterval != 0 {
		return c.BroadcastInterval
	}
	return BroadcastInterval
}

// RunTicks returns the effective tick budget for this run.
func (c *SimCfg) RunTicks() uint64 {
	if c.Ticks != 0 {
		return c.Ticks
	}
	if c.Protocol == ProtocolLS {
		// one extra tick past the window so the computation fires
		return c.Interval() + 1
	}
	// DV relaxes by at least one hop per tick
	return uint64(len(c.Nodes)) + 1
}

func LoadSimCfg(path string) (*SimCfg, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseSimCfg(file)
}

func ParseSimCfg(data []byte) (*SimCfg, error) {
	var cfg SimCfg
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := SimConfigValidator(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
