package graph

import (
	"container/heap"

	"github.com/plm/bridge-routing-engine/rterr"
)

// ShortestPath computes the minimum-travel-time path from start to end using
// Dijkstra over travel_time with a min-priority queue (§4.1). Ties are
// broken by the lexicographic order of (to, from) — both in edge expansion
// order (sortEdges, at construction) and in the heap itself — to guarantee
// determinism.
//
// Returns rterr.ErrNodeNotFound if either endpoint is absent, or
// (nil, rterr.ErrNoPathExists) if end is unreachable from start.
func (g *Graph) ShortestPath(start, end NodeID) (*RoutePath, error) {
	if !g.Contains(start) {
		return nil, rterr.NodeNotFound(string(start))
	}
	if !g.Contains(end) {
		return nil, rterr.NodeNotFound(string(end))
	}
	if start == end {
		return nil, rterr.InvalidPath("start and end must differ")
	}

	dist, prevEdge, reachable := g.dijkstraFrom(start, nil, nil)
	if !reachable[end] {
		return nil, rterr.NoPathExists(string(start), string(end))
	}
	_ = dist

	return reconstructPath(start, end, prevEdge)
}

// ShortestPathExcluding is ShortestPath restricted to skip every edge in
// blockedEdges and every node in blockedNodes — the primitive Yen's
// K-shortest-paths algorithm needs for its spur search (package enumpath).
// blockedEdges and blockedNodes may be nil.
func (g *Graph) ShortestPathExcluding(start, end NodeID, blockedEdges map[[2]NodeID]struct{}, blockedNodes map[NodeID]struct{}) (*RoutePath, error) {
	if !g.Contains(start) {
		return nil, rterr.NodeNotFound(string(start))
	}
	if !g.Contains(end) {
		return nil, rterr.NodeNotFound(string(end))
	}
	if blockedNodes != nil {
		if _, blocked := blockedNodes[start]; blocked {
			return nil, rterr.NoPathExists(string(start), string(end))
		}
	}

	_, prevEdge, reachable := g.dijkstraFrom(start, blockedEdges, blockedNodes)
	if !reachable[end] {
		return nil, rterr.NoPathExists(string(start), string(end))
	}
	return reconstructPath(start, end, prevEdge)
}

// dijkstraFrom runs Dijkstra from src, skipping any edge whose (from,to)
// appears in blockedEdges and never expanding out of any node in
// blockedNodes (used by the Yen K-shortest spur search in package enumpath).
// It returns the distance map, the chosen predecessor edge per node, and a
// reachability set.
func (g *Graph) dijkstraFrom(src NodeID, blockedEdges map[[2]NodeID]struct{}, blockedNodes map[NodeID]struct{}) (map[NodeID]float64, map[NodeID]*Edge, map[NodeID]bool) {
	dist := make(map[NodeID]float64)
	prevEdge := make(map[NodeID]*Edge)
	visited := make(map[NodeID]bool)
	reachable := make(map[NodeID]bool)

	pq := make(nodePQ, 0, len(g.nodes))
	heap.Init(&pq)
	dist[src] = 0
	reachable[src] = true
	heap.Push(&pq, &pqItem{node: src, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*pqItem)
		u := item.node
		if visited[u] {
			continue
		}
		visited[u] = true

		if blockedNodes != nil {
			if _, blocked := blockedNodes[u]; blocked {
				continue
			}
		}

		for _, e := range g.outAdj[u] {
			if blockedEdges != nil {
				if _, blocked := blockedEdges[[2]NodeID{e.From, e.To}]; blocked {
					continue
				}
			}
			if blockedNodes != nil {
				if _, blocked := blockedNodes[e.To]; blocked {
					continue
				}
			}
			nd := dist[u] + e.TravelTimeSeconds
			if cur, ok := dist[e.To]; !ok || nd < cur || (nd == cur && lessTieBreak(e, prevEdge[e.To])) {
				dist[e.To] = nd
				prevEdge[e.To] = e
				reachable[e.To] = true
				heap.Push(&pq, &pqItem{node: e.To, dist: nd})
			}
		}
	}

	return dist, prevEdge, reachable
}

// lessTieBreak decides whether candidate edge e should replace the current
// predecessor edge cur when their resulting distances are exactly equal,
// breaking ties by the lexicographic order of (to, from).
func lessTieBreak(e, cur *Edge) bool {
	if cur == nil {
		return true
	}
	if e.To != cur.To {
		return e.To < cur.To
	}
	return e.From < cur.From
}

func reconstructPath(start, end NodeID, prevEdge map[NodeID]*Edge) (*RoutePath, error) {
	var edges []*Edge
	cur := end
	for cur != start {
		e, ok := prevEdge[cur]
		if !ok {
			return nil, rterr.NoPathExists(string(start), string(end))
		}
		edges = append([]*Edge{e}, edges...)
		cur = e.From
	}
	nodes := make([]NodeID, 0, len(edges)+1)
	nodes = append(nodes, start)
	for _, e := range edges {
		nodes = append(nodes, e.To)
	}
	return NewRoutePath(nodes, edges)
}

// pqItem is a (node, distance) pair stored in the Dijkstra priority queue.
type pqItem struct {
	node NodeID
	dist float64
}

// nodePQ is a min-heap of *pqItem ordered by dist ascending, with
// lexicographic (node) as a secondary key for fully deterministic pop order
// among equal distances.
type nodePQ []*pqItem

func (pq nodePQ) Len() int { return len(pq) }
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].node < pq[j].node
}
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*pqItem)) }

func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
