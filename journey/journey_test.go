package journey

import (
	"context"
	"testing"
	"time"

	"github.com/plm/bridge-routing-engine/enumpath"
	"github.com/plm/bridge-routing-engine/feature"
	"github.com/plm/bridge-routing-engine/featurecache"
	"github.com/plm/bridge-routing-engine/graph"
	"github.com/plm/bridge-routing-engine/policy"
	"github.com/plm/bridge-routing-engine/predictor"
	"github.com/plm/bridge-routing-engine/rtconfig"
	"github.com/plm/bridge-routing-engine/scorer"
)

type constantPredictor struct{ prob float64 }

func (p *constantPredictor) Predict(ctx context.Context, bridgeID string, f [feature.VectorLen]float64) (predictor.PredictionResult, error) {
	return predictor.PredictionResult{BridgeID: bridgeID, Probability: p.prob, Supported: true}, nil
}

func (p *constantPredictor) PredictBatch(ctx context.Context, bridgeIDs []string, fs [][feature.VectorLen]float64) (predictor.BatchPredictionResult, error) {
	results := make([]predictor.PredictionResult, len(bridgeIDs))
	for i, id := range bridgeIDs {
		results[i] = predictor.PredictionResult{BridgeID: id, Probability: p.prob, Supported: true}
	}
	return predictor.BatchPredictionResult{Results: results}, nil
}

func (p *constantPredictor) DefaultProbability() float64   { return 0.5 }
func (p *constantPredictor) Supports(concurrent bool) bool { return true }
func (p *constantPredictor) MaxBatchSize() int              { return 16 }

func TestAnalyzeJourneyEndToEnd(t *testing.T) {
	nodes := []graph.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}
	edges := []graph.Edge{
		{From: "A", To: "B", TravelTimeSeconds: 10, DistanceMeters: 100},
		{From: "B", To: "D", TravelTimeSeconds: 10, DistanceMeters: 100, IsBridge: true, BridgeID: "br1"},
		{From: "A", To: "C", TravelTimeSeconds: 6, DistanceMeters: 60},
		{From: "C", To: "D", TravelTimeSeconds: 6, DistanceMeters: 60},
	}
	pol := policy.NewStatic([]string{"br1"}, nil)
	g, _, err := graph.Build(nodes, edges, pol)
	if err != nil {
		t.Fatalf("graph.Build failed: %v", err)
	}

	sc, err := scorer.NewScorer(rtconfig.DefaultConfig(), &constantPredictor{prob: 0.9}, featurecache.New(100), pol, nil)
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}

	analysis, err := AnalyzeJourney(
		context.Background(), g, sc, enumpath.NewCache(),
		"A", "D", time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
		enumpath.DefaultPathEnumConfig(),
	)
	if err != nil {
		t.Fatalf("AnalyzeJourney failed: %v", err)
	}

	if analysis.TotalPathsAnalyzed != 2 {
		t.Errorf("expected 2 paths analyzed, got %d", analysis.TotalPathsAnalyzed)
	}
	if analysis.NetworkProbability <= 0 || analysis.NetworkProbability > 1 {
		t.Errorf("NetworkProbability out of range: %v", analysis.NetworkProbability)
	}
	if analysis.BestPathProbability != 1.0 {
		// route via C->D has no bridges, so its probability is exactly 1.
		t.Errorf("expected best path probability 1.0 (bridge-free route), got %v", analysis.BestPathProbability)
	}
	if analysis.CorrelationID.String() == "" {
		t.Error("expected a non-empty correlation id")
	}
}
