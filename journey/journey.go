// Package journey implements analyze_journey (§4.4.5): enumerate the
// candidate routes between two nodes, score every one, and aggregate the
// results into a single JourneyAnalysis.
package journey

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/plm/bridge-routing-engine/enumpath"
	"github.com/plm/bridge-routing-engine/graph"
	"github.com/plm/bridge-routing-engine/scorer"
)

// JourneyAnalysis is the result of one analyze_journey call (§3).
type JourneyAnalysis struct {
	Start         graph.NodeID
	End           graph.NodeID
	DepartureTime time.Time

	PathScores []*scorer.PathScore

	// NetworkProbability is the independent-failure-event aggregate across
	// every scored route (§4.4.4).
	NetworkProbability float64

	// BestPathProbability is the highest single route's LinearProbability.
	BestPathProbability float64

	TotalPathsAnalyzed int

	// CorrelationID stamps this analysis for tracing a single
	// analyze_journey call through logs and metrics.
	CorrelationID uuid.UUID
}

// AnalyzeJourney enumerates up to cfg.MaxPaths routes from start to end,
// scores each, and aggregates the result set.
func AnalyzeJourney(
	ctx context.Context,
	g *graph.Graph,
	sc *scorer.Scorer,
	enumCache *enumpath.Cache,
	start, end graph.NodeID,
	departureTime time.Time,
	enumCfg enumpath.PathEnumConfig,
) (*JourneyAnalysis, error) {
	routes, err := enumpath.EnumeratePaths(g, start, end, enumCfg, enumCache)
	if err != nil {
		return nil, err
	}

	scores, err := sc.ScorePaths(ctx, routes, departureTime)
	if err != nil {
		return nil, err
	}

	best, _ := scorer.BestPathProbability(scores)

	return &JourneyAnalysis{
		Start:               start,
		End:                 end,
		DepartureTime:       departureTime,
		PathScores:          scores,
		NetworkProbability:  scorer.NetworkProbability(scores),
		BestPathProbability: best,
		TotalPathsAnalyzed:  len(routes),
		CorrelationID:       uuid.New(),
	}, nil
}
