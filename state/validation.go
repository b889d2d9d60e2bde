package state

import (
	"fmt"
	"regexp"
	"slices"
)

var namePattern, _ = regexp.Compile("^[0-9a-z._-]+$")

func NameValidator(s string) error {
	if !namePattern.MatchString(s) {
		return fmt.Errorf("%s is not a valid name, must match pattern %s", s, namePattern.String())
	}
	if len(s) > 100 {
		return fmt.Errorf("len(\"%s\") = %d > 100 is too long", s, len(s))
	}
	return nil
}

func TopologyValidator(cfg *TopologyCfg) error {
	for _, node := range cfg.Nodes {
		if err := NameValidator(string(node)); err != nil {
			return err
		}
	}
	if len(cfg.Nodes) != len(slices.Compact(slices.Sorted(slices.Values(cfg.Nodes)))) {
		return fmt.Errorf("duplicate node id in topology")
	}
	seen := make([]Pair[NodeId, NodeId], 0, len(cfg.Links))
	for _, link := range cfg.Links {
		if link.A == link.B {
			return fmt.Errorf("self link found: %s", link.A)
		}
		edge := Pair[NodeId, NodeId]{min(link.A, link.B), max(link.A, link.B)}
		if slices.Contains(seen, edge) {
			return fmt.Errorf("duplicate link found: %s, %s", link.A, link.B)
		}
		seen = append(seen, edge)
		for _, end := range []NodeId{link.A, link.B} {
			if !slices.Contains(cfg.Nodes, end) {
				return fmt.Errorf("link endpoint %s is not a configured node", end)
			}
		}
		if link.Cost >= INFM {
			return fmt.Errorf("link %s, %s has cost %d, too large to be finite", link.A, link.B, link.Cost)
		}
	}
	return nil
}

func SimConfigValidator(cfg *SimCfg) error {
	if err := TopologyValidator(&cfg.TopologyCfg); err != nil {
		return err
	}
	switch cfg.Protocol {
	case ProtocolDV, ProtocolLS:
	default:
		return fmt.Errorf("unknown protocol %q, expected %q or %q", cfg.Protocol, ProtocolDV, ProtocolLS)
	}
	if cfg.Protocol == ProtocolLS && cfg.Ticks != 0 && cfg.Ticks <= cfg.Interval() {
		return fmt.Errorf("ticks = %d never reaches the broadcast interval %d, routes would not be computed", cfg.Ticks, cfg.Interval())
	}
	return nil
}
