// Package scorer implements the path scoring and aggregation algorithm of
// §4.4: per-bridge probability lookup (via the feature cache and a
// predictor), log-domain aggregation into one path probability, and
// network-level aggregation across an entire path set.
package scorer

import (
	"time"

	"github.com/plm/bridge-routing-engine/graph"
)

// BridgeProbability is one bridge crossing's contribution to a PathScore.
type BridgeProbability struct {
	BridgeID string

	// Probability is the open probability used in aggregation: either the
	// predictor's output, or the predictor's DefaultProbability when the
	// predictor has no model for this bridge or the bridge was rejected by
	// policy.
	Probability float64

	// Supported is false if the predictor reported no model for this
	// bridge; Probability is then the predictor's DefaultProbability.
	Supported bool

	// PolicyRejected is true if the embedding application's BridgeIDPolicy
	// did not accept this bridge ID; Probability is then the predictor's
	// DefaultProbability regardless of what the predictor would have said (the
	// predictor is never called for a policy-rejected bridge).
	PolicyRejected bool
}

// PathScore is the scored outcome of one RoutePath (§3).
type PathScore struct {
	Route *graph.RoutePath

	BridgeProbabilities []BridgeProbability

	// LogProbability is sum(ln(p_i)) over every bridge crossing's
	// probability, computed in the log domain to avoid underflow on long
	// routes with many low-probability bridges (§4.4.3).
	LogProbability float64

	// LinearProbability is exp(LogProbability), clamped to
	// Config.Scoring.ClampBounds.
	LinearProbability float64

	DepartureTime time.Time
}
