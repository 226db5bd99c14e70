package enumpath

import (
	"sort"

	"github.com/plm/bridge-routing-engine/graph"
)

// dfsEnumerate exhaustively walks every simple path (or, when
// cfg.AllowCycles, every path up to cfg.MaxDepth edges) from start to end,
// collecting at most cfg.MaxPaths routes ordered by total travel time
// ascending, ties broken by node-sequence lexicographic order. Intended for
// small graphs, per the Auto heuristic in config.go.
func dfsEnumerate(g *graph.Graph, start, end graph.NodeID, cfg PathEnumConfig) ([]*graph.RoutePath, error) {
	var results []*graph.RoutePath

	visited := make(map[graph.NodeID]bool)
	var nodes []graph.NodeID
	var edges []*graph.Edge

	var walk func(cur graph.NodeID, travelTime float64)
	walk = func(cur graph.NodeID, travelTime float64) {
		if len(edges) > cfg.MaxDepth {
			return
		}
		if cfg.MaxTravelTime > 0 && travelTime > cfg.MaxTravelTime {
			return
		}
		if cur == end && len(edges) > 0 {
			pathNodes := make([]graph.NodeID, len(nodes))
			copy(pathNodes, nodes)
			pathEdges := make([]*graph.Edge, len(edges))
			copy(pathEdges, edges)
			rp, err := graph.NewRoutePath(pathNodes, pathEdges)
			if err == nil {
				results = append(results, rp)
			}
			return
		}

		for _, e := range g.OutgoingEdges(cur) {
			if !cfg.AllowCycles && visited[e.To] {
				continue
			}
			visited[e.To] = true
			nodes = append(nodes, e.To)
			edges = append(edges, e)

			walk(e.To, travelTime+e.TravelTimeSeconds)

			nodes = nodes[:len(nodes)-1]
			edges = edges[:len(edges)-1]
			visited[e.To] = false
		}
	}

	visited[start] = true
	nodes = append(nodes, start)
	walk(start, 0)

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].TotalTravelTime != results[j].TotalTravelTime {
			return results[i].TotalTravelTime < results[j].TotalTravelTime
		}
		return results[i].IdentityKey() < results[j].IdentityKey()
	})

	if len(results) > cfg.MaxPaths {
		results = results[:cfg.MaxPaths]
	}
	return results, nil
}
