package graph

import (
	"testing"

	"github.com/plm/bridge-routing-engine/policy"
)

func testPolicy() policy.BridgeIDPolicy {
	return policy.NewStatic([]string{"br1", "br2"}, nil)
}

func buildSquare(t *testing.T) *Graph {
	t.Helper()
	nodes := []Node{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}
	edges := []Edge{
		{From: "A", To: "B", TravelTimeSeconds: 10, DistanceMeters: 100},
		{From: "B", To: "C", TravelTimeSeconds: 10, DistanceMeters: 100, IsBridge: true, BridgeID: "br1"},
		{From: "A", To: "D", TravelTimeSeconds: 5, DistanceMeters: 50},
		{From: "D", To: "C", TravelTimeSeconds: 5, DistanceMeters: 50},
	}
	g, res, err := Build(nodes, edges, testPolicy())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !res.IsValid {
		t.Fatalf("expected valid graph, got errors: %v", res.Errors)
	}
	return g
}

func TestBuildRejectsDanglingEdge(t *testing.T) {
	nodes := []Node{{ID: "A"}}
	edges := []Edge{{From: "A", To: "Z", TravelTimeSeconds: 1, DistanceMeters: 1}}
	_, res, err := Build(nodes, edges, testPolicy())
	if err == nil {
		t.Fatal("expected error for dangling edge")
	}
	if res.IsValid {
		t.Fatal("expected IsValid=false")
	}
}

func TestBuildRejectsUnacceptedBridge(t *testing.T) {
	nodes := []Node{{ID: "A"}, {ID: "B"}}
	edges := []Edge{{From: "A", To: "B", TravelTimeSeconds: 1, DistanceMeters: 1, IsBridge: true, BridgeID: "unknown"}}
	_, _, err := Build(nodes, edges, testPolicy())
	if err == nil {
		t.Fatal("expected error for unaccepted bridge id")
	}
}

func TestBuildRejectsDuplicateEdge(t *testing.T) {
	nodes := []Node{{ID: "A"}, {ID: "B"}}
	edges := []Edge{
		{From: "A", To: "B", TravelTimeSeconds: 1, DistanceMeters: 1},
		{From: "A", To: "B", TravelTimeSeconds: 2, DistanceMeters: 2},
	}
	_, _, err := Build(nodes, edges, testPolicy())
	if err == nil {
		t.Fatal("expected error for duplicate ordered edge")
	}
}

func TestShortestPathPicksCheaperRoute(t *testing.T) {
	g := buildSquare(t)
	rp, err := g.ShortestPath("A", "C")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if rp.TotalTravelTime != 10 {
		t.Errorf("expected total travel time 10 (via D), got %v", rp.TotalTravelTime)
	}
	if rp.Nodes[1] != "D" {
		t.Errorf("expected path to route through D, got %v", rp.Nodes)
	}
}

func TestShortestPathNoRoute(t *testing.T) {
	nodes := []Node{{ID: "A"}, {ID: "B"}}
	edges := []Edge{}
	g, _, err := Build(nodes, edges, testPolicy())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	_, err = g.ShortestPath("A", "B")
	if err == nil {
		t.Fatal("expected no-path error")
	}
}

func TestSignatureStableUnderEdgeOrder(t *testing.T) {
	nodes := []Node{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	edges1 := []Edge{
		{From: "A", To: "B", TravelTimeSeconds: 1, DistanceMeters: 1},
		{From: "B", To: "C", TravelTimeSeconds: 1, DistanceMeters: 1},
	}
	edges2 := []Edge{edges1[1], edges1[0]}

	g1, _, _ := Build(nodes, edges1, testPolicy())
	g2, _, _ := Build(nodes, edges2, testPolicy())

	if g1.Signature() != g2.Signature() {
		t.Error("expected identical signature regardless of input edge order")
	}
}

func TestRoutePathValidateContiguity(t *testing.T) {
	e1 := &Edge{From: "A", To: "B", TravelTimeSeconds: 1, DistanceMeters: 1}
	_, err := NewRoutePath([]NodeID{"A", "C"}, []*Edge{e1})
	if err == nil {
		t.Fatal("expected contiguity error")
	}
}
