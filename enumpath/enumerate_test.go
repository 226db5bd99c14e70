package enumpath

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/plm/bridge-routing-engine/graph"
	"github.com/plm/bridge-routing-engine/policy"
)

func buildDiamond(t *testing.T) *graph.Graph {
	t.Helper()
	nodes := []graph.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}
	edges := []graph.Edge{
		{From: "A", To: "B", TravelTimeSeconds: 10, DistanceMeters: 100},
		{From: "B", To: "D", TravelTimeSeconds: 10, DistanceMeters: 100},
		{From: "A", To: "C", TravelTimeSeconds: 6, DistanceMeters: 60},
		{From: "C", To: "D", TravelTimeSeconds: 6, DistanceMeters: 60, IsBridge: true, BridgeID: "br1"},
	}
	pol := policy.NewStatic([]string{"br1"}, nil)
	g, _, err := graph.Build(nodes, edges, pol)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func TestEnumeratePathsDFSOrdersByTravelTime(t *testing.T) {
	g := buildDiamond(t)
	cfg := DefaultPathEnumConfig()
	cfg.Mode = DFS

	routes, err := EnumeratePaths(g, "A", "D", cfg, nil)
	if err != nil {
		t.Fatalf("EnumeratePaths failed: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("expected 2 routes in the diamond graph, got %d", len(routes))
	}
	if routes[0].TotalTravelTime > routes[1].TotalTravelTime {
		t.Error("expected routes ordered by ascending total travel time")
	}
}

func TestEnumeratePathsYenFindsShortestFirst(t *testing.T) {
	g := buildDiamond(t)
	cfg := DefaultPathEnumConfig()
	cfg.Mode = YenKShortest
	cfg.KShortestPaths = 2

	routes, err := EnumeratePaths(g, "A", "D", cfg, nil)
	if err != nil {
		t.Fatalf("EnumeratePaths failed: %v", err)
	}
	if len(routes) == 0 {
		t.Fatal("expected at least one route")
	}
	if routes[0].TotalTravelTime != 12 {
		t.Errorf("expected the true shortest path (12s) first, got %v", routes[0].TotalTravelTime)
	}
}

func TestEnumeratePathsRejectsSameStartEnd(t *testing.T) {
	g := buildDiamond(t)
	_, err := EnumeratePaths(g, "A", "A", DefaultPathEnumConfig(), nil)
	if err == nil {
		t.Fatal("expected error when start == end")
	}
}

func TestEnumeratePathsUsesCache(t *testing.T) {
	g := buildDiamond(t)
	cfg := DefaultPathEnumConfig()
	cache := NewCache()

	routes1, err := EnumeratePaths(g, "A", "D", cfg, cache)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one memoized entry, got %d", cache.Len())
	}

	routes2, err := EnumeratePaths(g, "A", "D", cfg, cache)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	if len(routes1) != len(routes2) {
		t.Fatalf("cached result diverged from original: %d vs %d", len(routes1), len(routes2))
	}
}

func buildRandomGraph(n int) *graph.Graph {
	rng := rand.New(rand.NewSource(42))
	nodes := make([]graph.Node, n)
	for i := range nodes {
		nodes[i] = graph.Node{ID: graph.NodeID(fmt.Sprintf("node_%d", i))}
	}
	var edges []graph.Edge
	seen := make(map[[2]int]bool)
	for i := 0; i < n-1; i++ {
		// Always connect to i+1 so the chain stays reachable end to end.
		edges = append(edges, graph.Edge{
			From:              graph.NodeID(fmt.Sprintf("node_%d", i)),
			To:                graph.NodeID(fmt.Sprintf("node_%d", i+1)),
			TravelTimeSeconds: 1 + rng.Float64()*10,
			DistanceMeters:    10 + rng.Float64()*100,
		})
		seen[[2]int{i, i + 1}] = true

		count := 2 + rng.Intn(3)
		for j := 0; j < count && i+2 < n; j++ {
			target := i + 2 + rng.Intn(min(4, n-i-2))
			if seen[[2]int{i, target}] {
				continue
			}
			seen[[2]int{i, target}] = true
			edges = append(edges, graph.Edge{
				From:              graph.NodeID(fmt.Sprintf("node_%d", i)),
				To:                graph.NodeID(fmt.Sprintf("node_%d", target)),
				TravelTimeSeconds: 1 + rng.Float64()*10,
				DistanceMeters:    10 + rng.Float64()*100,
			})
		}
	}
	g, _, err := graph.Build(nodes, edges, nil)
	if err != nil {
		panic(err)
	}
	return g
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func BenchmarkYenEnumerate50Nodes(b *testing.B) {
	g := buildRandomGraph(50)
	cfg := DefaultPathEnumConfig()
	cfg.Mode = YenKShortest
	cfg.KShortestPaths = 3
	cfg.MaxPaths = 3

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := EnumeratePaths(g, "node_0", "node_49", cfg, nil)
		if err != nil {
			b.Fatalf("EnumeratePaths failed: %v", err)
		}
	}
}
