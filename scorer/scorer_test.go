package scorer

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/plm/bridge-routing-engine/feature"
	"github.com/plm/bridge-routing-engine/featurecache"
	"github.com/plm/bridge-routing-engine/graph"
	"github.com/plm/bridge-routing-engine/policy"
	"github.com/plm/bridge-routing-engine/predictor"
	"github.com/plm/bridge-routing-engine/rtconfig"
)

// fixedPredictor returns a constant probability for every bridge, useful for
// asserting the aggregation formula independent of prediction logic.
type fixedPredictor struct {
	prob      float64
	supported map[string]bool
}

func (f *fixedPredictor) Predict(ctx context.Context, bridgeID string, features [feature.VectorLen]float64) (predictor.PredictionResult, error) {
	supported := f.supported == nil || f.supported[bridgeID]
	return predictor.PredictionResult{BridgeID: bridgeID, Probability: f.prob, Supported: supported}, nil
}

func (f *fixedPredictor) PredictBatch(ctx context.Context, bridgeIDs []string, features [][feature.VectorLen]float64) (predictor.BatchPredictionResult, error) {
	results := make([]predictor.PredictionResult, len(bridgeIDs))
	for i, id := range bridgeIDs {
		r, _ := f.Predict(ctx, id, features[i])
		results[i] = r
	}
	return predictor.BatchPredictionResult{Results: results}, nil
}

func (f *fixedPredictor) DefaultProbability() float64 { return 0.5 }
func (f *fixedPredictor) Supports(concurrent bool) bool { return true }
func (f *fixedPredictor) MaxBatchSize() int             { return 32 }

func buildBridgeRoute(t *testing.T) *graph.RoutePath {
	t.Helper()
	e1 := &graph.Edge{From: "A", To: "B", TravelTimeSeconds: 60, DistanceMeters: 600, IsBridge: true, BridgeID: "br1"}
	e2 := &graph.Edge{From: "B", To: "C", TravelTimeSeconds: 60, DistanceMeters: 600, IsBridge: true, BridgeID: "br2"}
	rp, err := graph.NewRoutePath([]graph.NodeID{"A", "B", "C"}, []*graph.Edge{e1, e2})
	if err != nil {
		t.Fatalf("NewRoutePath failed: %v", err)
	}
	return rp
}

func TestScorePathAggregatesLogDomain(t *testing.T) {
	pred := &fixedPredictor{prob: 0.9}
	pol := policy.NewStatic([]string{"br1", "br2"}, nil)
	cfg := rtconfig.DefaultConfig()

	sc, err := NewScorer(cfg, pred, featurecache.New(10), pol, nil)
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}

	route := buildBridgeRoute(t)
	score, err := sc.ScorePath(context.Background(), route, time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ScorePath failed: %v", err)
	}

	wantLog := 2 * math.Log(0.9)
	if math.Abs(score.LogProbability-wantLog) > 1e-9 {
		t.Errorf("LogProbability = %v, want %v", score.LogProbability, wantLog)
	}
	wantLinear := math.Exp(wantLog)
	if math.Abs(score.LinearProbability-wantLinear) > 1e-9 {
		t.Errorf("LinearProbability = %v, want %v", score.LinearProbability, wantLinear)
	}
}

func TestScorePathUsesDefaultForPolicyRejectedBridge(t *testing.T) {
	pred := &fixedPredictor{prob: 0.9}
	pol := policy.NewStatic([]string{"br1"}, nil) // br2 not accepted
	cfg := rtconfig.DefaultConfig()

	sc, err := NewScorer(cfg, pred, nil, pol, nil)
	if err != nil {
		t.Fatalf("NewScorer failed: %v", err)
	}

	route := buildBridgeRoute(t)
	score, err := sc.ScorePath(context.Background(), route, time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ScorePath failed: %v", err)
	}

	var br2 *BridgeProbability
	for i := range score.BridgeProbabilities {
		if score.BridgeProbabilities[i].BridgeID == "br2" {
			br2 = &score.BridgeProbabilities[i]
		}
	}
	if br2 == nil {
		t.Fatal("expected a BridgeProbability entry for br2")
	}
	if !br2.PolicyRejected {
		t.Error("expected br2 to be marked policy-rejected")
	}
	if br2.Probability != pred.DefaultProbability() {
		t.Errorf("expected default probability for rejected bridge, got %v", br2.Probability)
	}
}

func TestScorePathsEmptyInputIsError(t *testing.T) {
	pred := &fixedPredictor{prob: 0.9}
	cfg := rtconfig.DefaultConfig()
	sc, _ := NewScorer(cfg, pred, nil, nil, nil)

	_, err := sc.ScorePaths(context.Background(), nil, time.Now())
	if err == nil {
		t.Fatal("expected error for empty path set")
	}
}

func TestNetworkProbabilityIndependentFailure(t *testing.T) {
	scores := []*PathScore{
		{LinearProbability: 0.5},
		{LinearProbability: 0.5},
	}
	got := NetworkProbability(scores)
	want := 1 - (1-0.5)*(1-0.5)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("NetworkProbability = %v, want %v", got, want)
	}
}

func TestBestPathProbability(t *testing.T) {
	scores := []*PathScore{
		{LinearProbability: 0.3},
		nil,
		{LinearProbability: 0.8},
	}
	best, ok := BestPathProbability(scores)
	if !ok || best != 0.8 {
		t.Errorf("BestPathProbability = (%v, %v), want (0.8, true)", best, ok)
	}
}
