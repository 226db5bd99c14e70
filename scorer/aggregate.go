package scorer

import "math"

// Aggregate recomputes a path's log/linear probability from a slice of
// per-bridge probabilities, independent of ScorePath — useful for callers
// that already have BridgeProbability values (e.g. from a cached PathScore)
// and want to re-derive the aggregate after editing one entry.
func Aggregate(probs []BridgeProbability) (logProbability, linearProbability float64) {
	for _, p := range probs {
		logProbability += math.Log(p.Probability)
	}
	linearProbability = math.Exp(logProbability)
	return logProbability, linearProbability
}

// NetworkProbability computes the §4.4.4 independent-failure-event
// aggregation across an entire path set: the probability that at least one
// of the scored routes is fully open, treating each route's availability as
// an independent event.
//
//	P_network = 1 - product(1 - p_i) over every non-nil PathScore.
//
// The product is accumulated in the log domain (sum of ln(1-p_i), then a
// single exp) rather than multiplying the failure probabilities directly, to
// avoid catastrophic cancellation when many p_i are small.
func NetworkProbability(scores []*PathScore) float64 {
	logProduct := 0.0
	for _, s := range scores {
		if s == nil {
			continue
		}
		failure := 1 - s.LinearProbability
		if failure <= 0 {
			return 1
		}
		logProduct += math.Log(failure)
	}
	return 1 - math.Exp(logProduct)
}

// BestPathProbability returns the highest LinearProbability among scores,
// and true if at least one non-nil score was present.
func BestPathProbability(scores []*PathScore) (float64, bool) {
	best := 0.0
	found := false
	for _, s := range scores {
		if s == nil {
			continue
		}
		if !found || s.LinearProbability > best {
			best = s.LinearProbability
			found = true
		}
	}
	return best, found
}
