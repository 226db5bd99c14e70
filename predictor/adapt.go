package predictor

import (
	"context"

	"github.com/plm/bridge-routing-engine/feature"
)

// SinglePredictor is implemented by a predictor that only scores one bridge
// at a time. AdaptSingle wraps it into a full Predictor with a sequential
// PredictBatch built from repeated Predict calls.
type SinglePredictor interface {
	Predict(ctx context.Context, bridgeID string, features [feature.VectorLen]float64) (PredictionResult, error)
	DefaultProbability() float64
}

// singleAdapter implements Predictor by calling an underlying SinglePredictor
// once per bridge; it never reports batch support.
type singleAdapter struct {
	inner SinglePredictor
}

// AdaptSingle lifts a SinglePredictor into a Predictor. PredictBatch on the
// result degrades to sequential Predict calls and MaxBatchSize reports 0,
// so callers that check MaxBatchSize before batching fall back correctly.
func AdaptSingle(inner SinglePredictor) Predictor {
	return &singleAdapter{inner: inner}
}

func (a *singleAdapter) Predict(ctx context.Context, bridgeID string, features [feature.VectorLen]float64) (PredictionResult, error) {
	return a.inner.Predict(ctx, bridgeID, features)
}

func (a *singleAdapter) PredictBatch(ctx context.Context, bridgeIDs []string, features [][feature.VectorLen]float64) (BatchPredictionResult, error) {
	results := make([]PredictionResult, 0, len(bridgeIDs))
	for i, id := range bridgeIDs {
		r, err := a.inner.Predict(ctx, id, features[i])
		if err != nil {
			return BatchPredictionResult{Err: err}, err
		}
		results = append(results, r)
	}
	return BatchPredictionResult{Results: results}, nil
}

func (a *singleAdapter) DefaultProbability() float64 { return a.inner.DefaultProbability() }

// singleAdapter never asserts concurrency safety for the caller; the
// embedding application can wrap a genuinely concurrency-safe
// SinglePredictor to report true if it knows it is, but the default
// conservative answer is false.
func (a *singleAdapter) Supports(concurrent bool) bool { return !concurrent }

func (a *singleAdapter) MaxBatchSize() int { return 0 }

// BatchPredictor is implemented by a predictor whose native call shape is
// already a batch; AdaptBatch derives a single-bridge Predict from it.
type BatchPredictor interface {
	PredictBatch(ctx context.Context, bridgeIDs []string, features [][feature.VectorLen]float64) (BatchPredictionResult, error)
	DefaultProbability() float64
	MaxBatchSize() int
}

type batchAdapter struct {
	inner BatchPredictor
}

// AdaptBatch lifts a BatchPredictor into a Predictor, deriving Predict from a
// single-element PredictBatch call.
func AdaptBatch(inner BatchPredictor) Predictor {
	return &batchAdapter{inner: inner}
}

func (a *batchAdapter) Predict(ctx context.Context, bridgeID string, features [feature.VectorLen]float64) (PredictionResult, error) {
	res, err := a.inner.PredictBatch(ctx, []string{bridgeID}, [][feature.VectorLen]float64{features})
	if err != nil {
		return PredictionResult{}, err
	}
	if len(res.Results) != 1 {
		return PredictionResult{}, res.Err
	}
	return res.Results[0], nil
}

func (a *batchAdapter) PredictBatch(ctx context.Context, bridgeIDs []string, features [][feature.VectorLen]float64) (BatchPredictionResult, error) {
	return a.inner.PredictBatch(ctx, bridgeIDs, features)
}

func (a *batchAdapter) DefaultProbability() float64 { return a.inner.DefaultProbability() }

func (a *batchAdapter) Supports(concurrent bool) bool { return true }

func (a *batchAdapter) MaxBatchSize() int { return a.inner.MaxBatchSize() }
