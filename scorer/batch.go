package scorer

import (
	"context"
	"errors"
	"time"

	"github.com/plm/bridge-routing-engine/graph"
	"github.com/plm/bridge-routing-engine/rterr"
)

// isPerRouteRecoverable reports whether err is one of the per-route failure
// modes §4.4's batch contract allows the batch to absorb and continue past
// (ErrPredictionFailed, ErrFeatureGenerationFailed, ErrInvalidPath). Any
// other error is fatal to the whole batch and must propagate immediately.
func isPerRouteRecoverable(err error) bool {
	return errors.Is(err, rterr.ErrPredictionFailed) ||
		errors.Is(err, rterr.ErrFeatureGenerationFailed) ||
		errors.Is(err, rterr.ErrInvalidPath)
}

// ScorePaths scores every route in routes, in order. A per-route recoverable
// failure (ErrPredictionFailed, ErrFeatureGenerationFailed, ErrInvalidPath)
// is recorded as a nil entry at its position and scoring continues; any
// other error propagates immediately and aborts the batch. If every route
// fails, ScorePaths returns an error rather than a slice of nils.
func (s *Scorer) ScorePaths(ctx context.Context, routes []*graph.RoutePath, departureTime time.Time) ([]*PathScore, error) {
	if len(routes) == 0 {
		return nil, rterr.EmptyPathSet("score_paths called with no routes")
	}

	out := make([]*PathScore, len(routes))
	succeeded := 0
	for i, r := range routes {
		score, err := s.ScorePath(ctx, r, departureTime)
		if err != nil {
			if !isPerRouteRecoverable(err) {
				return nil, err
			}
			s.log.Warnf("scoring route %d failed: %v", i, err)
			continue
		}
		out[i] = score
		succeeded++
	}

	if succeeded == 0 {
		return nil, rterr.PredictionFailed("score_paths: no route succeeded", nil)
	}
	return out, nil
}
