package core

import (
	"container/heap"
	"fmt"

	"github.com/routelab/routesim/state"
)

// shortest path over the graph implied by a collection of LSAs, with a
// priority queue. Link costs are nonnegative.

type spResult struct {
	dist map[state.NodeId]state.Cost
	prev map[state.NodeId]state.NodeId
}

// shortestPaths runs Dijkstra's algorithm from src over the nodes that
// have an LSA present. Neighbours mentioned in some LSA but without an
// LSA of their own are not relaxed; they stay absent from the result.
// Ties in the minimum selection are broken arbitrarily.
func shortestPaths(lsas map[state.NodeId]state.LinkTable, src state.NodeId) spResult {
	dist := make(map[state.NodeId]state.Cost, len(lsas))
	prev := make(map[state.NodeId]state.NodeId)
	scanned := make(map[state.NodeId]struct{}, len(lsas))

	q := newCostQueue()
	for node := range lsas {
		d := state.INF
		if node == src {
			d = 0
		}
		dist[node] = d
		q.push(&costItem{node: node, dist: d})
	}
	heap.Init(q)

	for q.Len() > 0 {
		u := heap.Pop(q).(*costItem)
		if u.dist == state.INF {
			break // everything left is unreachable
		}
		scanned[u.node] = struct{}{}
		for v, cost := range lsas[u.node] {
			if _, ok := scanned[v]; ok {
				continue
			}
			if _, held := dist[v]; !held {
				continue // no LSA held for v
			}
			alt := state.AddCost(u.dist, cost)
			if alt < dist[v] {
				dist[v] = alt
				prev[v] = u.node
				q.update(v, alt)
			}
		}
	}
	return spResult{dist: dist, prev: prev}
}

// nextHop walks the predecessor chain from dst back to self and
// returns the adjacent node on that chain. The walk is iterative with
// a visited guard: a cycle in prev indicates a shortest path
// bookkeeping bug, not legitimate data.
func nextHop(self, dst state.NodeId, prev map[state.NodeId]state.NodeId) (state.NodeId, error) {
	if dst == self {
		return "", fmt.Errorf("next hop requested for self")
	}
	visited := map[state.NodeId]struct{}{dst: {}}
	cur := dst
	for {
		p, ok := prev[cur]
		if !ok {
			return "", fmt.Errorf("no predecessor for %s", cur)
		}
		if p == self {
			return cur, nil
		}
		if _, seen := visited[p]; seen {
			return "", fmt.Errorf("cycle in predecessor chain at %s", p)
		}
		visited[p] = struct{}{}
		cur = p
	}
}

type costItem struct {
	node  state.NodeId
	dist  state.Cost
	index int
}

type costQueue struct {
	m     map[state.NodeId]*costItem
	items []*costItem
}

func newCostQueue() *costQueue {
	return &costQueue{m: make(map[state.NodeId]*costItem)}
}

func (q *costQueue) Len() int { return len(q.items) }

func (q *costQueue) Less(i, j int) bool {
	return q.items[i].dist < q.items[j].dist
}

func (q *costQueue) Swap(i, j int) {
	q.items[i], q.items[j] = q.items[j], q.items[i]
	q.items[i].index, q.items[j].index = i, j
}

func (q *costQueue) Push(x any) {
	item := x.(*costItem)
	if _, ok := q.m[item.node]; ok {
		return
	}
	item.index = q.Len()
	q.m[item.node] = item
	q.items = append(q.items, item)
}

func (q *costQueue) Pop() any {
	item := q.items[q.Len()-1]
	delete(q.m, item.node)
	q.items = q.items[:q.Len()-1]
	return item
}

func (q *costQueue) push(item *costItem) {
	q.Push(item)
}

func (q *costQueue) update(node state.NodeId, dist state.Cost) {
	item, ok := q.m[node]
	if !ok {
		return
	}
	item.dist = dist
	heap.Fix(q, item.index)
}
