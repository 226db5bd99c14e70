package enumpath

import (
	"container/heap"

	"github.com/plm/bridge-routing-engine/graph"
)

// yenEnumerate implements Yen's K-shortest-paths algorithm: the true
// shortest path first, then cfg.KShortestPaths-1 further deviations found by
// spur-node construction. The root-path/spur-path split and the candidate
// min-heap follow the classic formulation; the Dijkstra spur search itself
// is delegated to graph.Graph.ShortestPathExcluding so both enumerators
// share one correctness-critical implementation.
func yenEnumerate(g *graph.Graph, start, end graph.NodeID, cfg PathEnumConfig) ([]*graph.RoutePath, error) {
	shortest, err := g.ShortestPathExcluding(start, end, nil, nil)
	if err != nil {
		return nil, err
	}

	a := []*graph.RoutePath{shortest}
	b := &candidateHeap{}
	heap.Init(b)
	seen := map[string]bool{shortest.IdentityKey(): true}

	k := cfg.KShortestPaths
	if cfg.MaxPaths < k {
		k = cfg.MaxPaths
	}

	for len(a) < k {
		prev := a[len(a)-1]

		for i := 0; i < len(prev.Nodes)-1; i++ {
			spurNode := prev.Nodes[i]
			rootNodes := prev.Nodes[:i+1]
			rootEdges := prev.Edges[:i]

			blockedEdges := make(map[[2]graph.NodeID]struct{})
			for _, p := range a {
				if sharesPrefix(p.Nodes, rootNodes) && len(p.Nodes) > i+1 {
					blockedEdges[[2]graph.NodeID{p.Nodes[i], p.Nodes[i+1]}] = struct{}{}
				}
			}
			blockedNodes := make(map[graph.NodeID]struct{})
			for j := 0; j < i; j++ {
				blockedNodes[rootNodes[j]] = struct{}{}
			}

			spurPath, err := g.ShortestPathExcluding(spurNode, end, blockedEdges, blockedNodes)
			if err != nil {
				continue
			}

			totalNodes := make([]graph.NodeID, 0, len(rootNodes)+len(spurPath.Nodes)-1)
			totalNodes = append(totalNodes, rootNodes...)
			totalNodes = append(totalNodes, spurPath.Nodes[1:]...)
			totalEdges := make([]*graph.Edge, 0, len(rootEdges)+len(spurPath.Edges))
			totalEdges = append(totalEdges, rootEdges...)
			totalEdges = append(totalEdges, spurPath.Edges...)

			candidate, err := graph.NewRoutePath(totalNodes, totalEdges)
			if err != nil {
				continue
			}
			key := candidate.IdentityKey()
			if seen[key] || heapHas(b, key) {
				continue
			}
			heap.Push(b, candidate)
		}

		if b.Len() == 0 {
			break
		}
		best := heap.Pop(b).(*graph.RoutePath)
		seen[best.IdentityKey()] = true
		a = append(a, best)
	}

	if len(a) > cfg.MaxPaths {
		a = a[:cfg.MaxPaths]
	}
	return a, nil
}

func sharesPrefix(path, prefix []graph.NodeID) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i := range prefix {
		if path[i] != prefix[i] {
			return false
		}
	}
	return true
}

func heapHas(h *candidateHeap, key string) bool {
	for _, p := range *h {
		if p.IdentityKey() == key {
			return true
		}
	}
	return false
}

// candidateHeap is a min-heap of candidate routes ordered by total travel
// time, ties broken by node-sequence lexicographic order for determinism.
type candidateHeap []*graph.RoutePath

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(i, j int) bool {
	if h[i].TotalTravelTime != h[j].TotalTravelTime {
		return h[i].TotalTravelTime < h[j].TotalTravelTime
	}
	return h[i].IdentityKey() < h[j].IdentityKey()
}
func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x interface{}) { *h = append(*h, x.(*graph.RoutePath)) }

func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
