// Package predictor defines the pluggable bridge-probability predictor
// contract of §4.5/§6: the core never implements prediction itself, only the
// interface an embedding application supplies, plus the input-validation and
// batch/single adaptation helpers every implementation can share.
package predictor

import (
	"context"
	"math"
	"strconv"

	"github.com/plm/bridge-routing-engine/feature"
	"github.com/plm/bridge-routing-engine/rterr"
)

// PredictionResult is one bridge's predicted open probability.
type PredictionResult struct {
	BridgeID    string
	Probability float64
	// Supported is false when the predictor has no model for BridgeID; the
	// caller falls back to Predictor.DefaultProbability rather than treating
	// this as an error (§4.5).
	Supported bool
}

// BatchPredictionResult is the outcome of one PredictBatch call.
type BatchPredictionResult struct {
	Results []PredictionResult
	// Err is set when the batch call failed outright (e.g. the predictor is
	// unreachable), alongside the error PredictBatch returns. The scorer does
	// not fall back to DefaultProbability in that case: it fails the route
	// with ErrPredictionFailed.
	Err error
}

// Predictor is the contract an embedding application implements to supply
// real bridge-open probabilities (§4.5). The core calls Predict/PredictBatch
// only through this interface.
type Predictor interface {
	// Predict returns bridgeID's open probability given its feature vector.
	Predict(ctx context.Context, bridgeID string, features [feature.VectorLen]float64) (PredictionResult, error)

	// PredictBatch scores many bridges in one call when the predictor
	// supports it (MaxBatchSize > 0); §5 permits concurrent calls only when
	// Supports reports this predictor is safe for parallel use.
	PredictBatch(ctx context.Context, bridgeIDs []string, features [][feature.VectorLen]float64) (BatchPredictionResult, error)

	// DefaultProbability is the fallback used for unsupported or
	// policy-rejected bridges (§4.4.3).
	DefaultProbability() float64

	// Supports reports whether this predictor instance may be called
	// concurrently from multiple goroutines.
	Supports(concurrent bool) bool

	// MaxBatchSize is the largest bridge count accepted by one PredictBatch
	// call; 0 means PredictBatch is not supported and callers must fall back
	// to per-bridge Predict calls.
	MaxBatchSize() int
}

// ValidateBridgeID rejects an empty bridge ID before it reaches a predictor
// implementation.
func ValidateBridgeID(bridgeID string) error {
	if bridgeID == "" {
		return rterr.FeatureGenerationFailed("bridge id is empty")
	}
	return nil
}

// ValidateFeatures rejects a feature vector containing NaN or Inf, which
// would otherwise propagate silently into log-domain aggregation (§4.4.3).
func ValidateFeatures(features [feature.VectorLen]float64) error {
	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return rterr.FeatureGenerationFailed("feature vector contains a non-finite value at index " + strconv.Itoa(i))
		}
	}
	return nil
}

// ValidateBatchSize rejects a batch request larger than maxBatchSize.
func ValidateBatchSize(n, maxBatchSize int) error {
	if maxBatchSize > 0 && n > maxBatchSize {
		return rterr.PredictionFailed("batch size exceeds predictor max batch size", nil)
	}
	return nil
}

