package core

import (
	"fmt"

	"github.com/routelab/routesim/state"
)

// Ground truth driver: all-pairs shortest path costs over the
// configured topology, used to judge whether a run converged.

// AllPairsDistances computes true shortest path costs between every
// pair of configured nodes with Floyd-Warshall.
func AllPairsDistances(cfg *state.TopologyCfg) map[state.NodeId]map[state.NodeId]state.Cost {
	dist := make(map[state.NodeId]map[state.NodeId]state.Cost, len(cfg.Nodes))
	for _, a := range cfg.Nodes {
		dist[a] = make(map[state.NodeId]state.Cost, len(cfg.Nodes))
		for _, b := range cfg.Nodes {
			dist[a][b] = state.INF
		}
		dist[a][a] = 0
	}
	for _, l := range cfg.Links {
		if l.Cost < dist[l.A][l.B] {
			dist[l.A][l.B] = l.Cost
			dist[l.B][l.A] = l.Cost
		}
	}
	for _, k := range cfg.Nodes {
		for _, i := range cfg.Nodes {
			for _, j := range cfg.Nodes {
				through := state.AddCost(dist[i][k], dist[k][j])
				if through < dist[i][j] {
					dist[i][j] = through
				}
			}
		}
	}
	return dist
}

// Report is the outcome of checking forwarding tables against ground
// truth.
type Report struct {
	Problems []string
}

func (r *Report) Converged() bool {
	return len(r.Problems) == 0
}

func (r *Report) problemf(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// Validate checks every router's forwarding table: each reachable
// destination has exactly one next hop, the next hop is a direct
// neighbour lying on some shortest path, and following the tables hop
// by hop reaches the destination in the shortest path's edge count.
func Validate(cfg *state.TopologyCfg, tables map[state.NodeId]state.ForwardingTable) Report {
	rep := Report{}
	truth := AllPairsDistances(cfg)
	links := cfg.LinkTables()

	for _, node := range cfg.Nodes {
		table, ok := tables[node]
		if !ok {
			rep.problemf("%s: no forwarding table", node)
			continue
		}
		if nh, ok := table[node]; !ok || nh != node {
			rep.problemf("%s: table entry for self is %q, want self", node, nh)
		}
		for _, dst := range cfg.Nodes {
			if dst == node {
				continue
			}
			want := truth[node][dst]
			nh, ok := table[dst]
			if want == state.INF {
				if ok {
					rep.problemf("%s: has next hop %s for unreachable %s", node, nh, dst)
				}
				continue
			}
			if !ok {
				rep.problemf("%s: no next hop for reachable %s", node, dst)
				continue
			}
			link, isNeigh := links[node][nh]
			if !isNeigh {
				rep.problemf("%s: next hop %s for %s is not a neighbour", node, nh, dst)
				continue
			}
			if got := state.AddCost(link, truth[nh][dst]); got != want {
				rep.problemf("%s: path to %s via %s costs %d, want %d", node, dst, nh, got, want)
			}
		}
	}

	// follow the tables hop by hop; a correct set of tables cannot
	// cycle, and a shortest path over positive costs has at most
	// len(nodes)-1 edges
	for _, node := range cfg.Nodes {
		for _, dst := range cfg.Nodes {
			if dst == node || truth[node][dst] == state.INF {
				continue
			}
			cur := node
			for hops := 0; cur != dst; hops++ {
				if hops >= len(cfg.Nodes) {
					rep.problemf("%s: forwarding to %s cycles", node, dst)
					break
				}
				next, ok := tables[cur][dst]
				if !ok {
					break // already reported above
				}
				cur = next
			}
		}
	}
	return rep
}

// PathCost follows forwarding tables from src to dst and sums the link
// costs along the way. Returns INF if the walk dead-ends or cycles.
func PathCost(cfg *state.TopologyCfg, tables map[state.NodeId]state.ForwardingTable, src, dst state.NodeId) state.Cost {
	links := cfg.LinkTables()
	total := state.Cost(0)
	cur := src
	for hops := 0; cur != dst; hops++ {
		if hops >= len(cfg.Nodes) {
			return state.INF
		}
		next, ok := tables[cur][dst]
		if !ok {
			return state.INF
		}
		link, isNeigh := links[cur][next]
		if !isNeigh {
			return state.INF
		}
		total = state.AddCost(total, link)
		cur = next
	}
	return total
}
