package scorer

import (
	"context"
	"math"
	"time"

	"github.com/plm/bridge-routing-engine/eta"
	"github.com/plm/bridge-routing-engine/feature"
	"github.com/plm/bridge-routing-engine/featurecache"
	"github.com/plm/bridge-routing-engine/graph"
	"github.com/plm/bridge-routing-engine/internal/rtclock"
	"github.com/plm/bridge-routing-engine/internal/rtlog"
	"github.com/plm/bridge-routing-engine/policy"
	"github.com/plm/bridge-routing-engine/predictor"
	"github.com/plm/bridge-routing-engine/rtconfig"
	"github.com/plm/bridge-routing-engine/rterr"
)

// Scorer holds the configuration and collaborators needed to score routes:
// a predictor, the bounded feature cache, the embedding application's
// bridge-ID policy, and an injectable clock (§4.4, §6).
type Scorer struct {
	cfg    rtconfig.Config
	pred   predictor.Predictor
	cache  *featurecache.Cache
	policy policy.BridgeIDPolicy
	clock  rtclock.Clock
	log    *rtlog.Logger
}

// NewScorer validates cfg and constructs a Scorer. cache may be nil to
// disable feature memoization outright (distinct from
// cfg.Performance.EnableCaching=false, which still allocates a cache but
// never consults it — passing nil skips the allocation entirely).
func NewScorer(cfg rtconfig.Config, pred predictor.Predictor, cache *featurecache.Cache, bridgePolicy policy.BridgeIDPolicy, clock rtclock.Clock) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if pred == nil {
		return nil, rterr.InvalidConfiguration("scorer requires a non-nil predictor")
	}
	if clock == nil {
		clock = rtclock.System{}
	}
	return &Scorer{
		cfg:    cfg,
		pred:   pred,
		cache:  cache,
		policy: bridgePolicy,
		clock:  clock,
		log:    rtlog.New(cfg.Performance.LogVerbosity.RtlogVerbosity()),
	}, nil
}

// ScorePath scores one route departing at departureTime (§4.4.3): it walks
// the route's bridge ETAs, looks up or builds each bridge's feature vector,
// asks the predictor for an open probability (falling back to the
// predictor's DefaultProbability for policy-rejected or unsupported bridges), and
// aggregates the result in the log domain.
func (s *Scorer) ScorePath(ctx context.Context, route *graph.RoutePath, departureTime time.Time) (*PathScore, error) {
	if err := route.Validate(); err != nil {
		return nil, err
	}

	bridgeETAs, err := eta.EstimateBridgeETAsWithIDs(route, departureTime)
	if err != nil {
		return nil, err
	}

	if len(bridgeETAs) == 0 {
		// No bridges on this route: probability of success is 1.
		return &PathScore{
			Route:             route,
			LogProbability:    0,
			LinearProbability: 1,
			DepartureTime:     departureTime,
		}, nil
	}

	bridgeIDs := make([]string, 0, len(bridgeETAs))
	vectors := make([][feature.VectorLen]float64, 0, len(bridgeETAs))
	accepted := make([]bool, 0, len(bridgeETAs))

	for _, be := range bridgeETAs {
		isAccepted := s.policy == nil || s.policy.IsAcceptedBridgeID(be.BridgeID, true)
		accepted = append(accepted, isAccepted)
		if !isAccepted {
			s.log.Warnf("bridge %q rejected by policy, using default probability", be.BridgeID)
			bridgeIDs = append(bridgeIDs, be.BridgeID)
			vectors = append(vectors, [feature.VectorLen]float64{})
			continue
		}
		bridgeIDs = append(bridgeIDs, be.BridgeID)
		vectors = append(vectors, s.featuresFor(be, route))
	}

	probs := make([]BridgeProbability, len(bridgeETAs))
	logProb := 0.0

	toPredict := make([]string, 0, len(bridgeIDs))
	toPredictVecs := make([][feature.VectorLen]float64, 0, len(bridgeIDs))
	toPredictIdx := make([]int, 0, len(bridgeIDs))
	for i, isAccepted := range accepted {
		if isAccepted {
			toPredict = append(toPredict, bridgeIDs[i])
			toPredictVecs = append(toPredictVecs, vectors[i])
			toPredictIdx = append(toPredictIdx, i)
		}
	}

	var results map[int]predictor.PredictionResult
	if len(toPredict) > 0 {
		results, err = s.predictMany(ctx, toPredict, toPredictVecs, toPredictIdx)
		if err != nil {
			return nil, err
		}
	}

	for i := range bridgeETAs {
		p := BridgeProbability{BridgeID: bridgeIDs[i], PolicyRejected: !accepted[i]}
		if !accepted[i] {
			p.Probability = s.pred.DefaultProbability()
		} else if res, ok := results[i]; ok && res.Supported {
			p.Probability = res.Probability
			p.Supported = true
		} else {
			p.Probability = s.pred.DefaultProbability()
		}

		p.Probability = clamp(p.Probability, s.cfg.Scoring.MinProbability, s.cfg.Scoring.MaxProbability)
		probs[i] = p

		if p.Probability <= 0 {
			return nil, rterr.NumericalError("bridge probability is zero or negative, log aggregation would diverge")
		}
		logProb += math.Log(p.Probability)
	}

	linear := math.Exp(logProb)
	if math.IsNaN(linear) || math.IsInf(linear, 0) {
		return nil, rterr.NumericalError("aggregated probability is not finite")
	}
	linear = clamp(linear, s.cfg.Scoring.ClampBounds[0], s.cfg.Scoring.ClampBounds[1])

	return &PathScore{
		Route:               route,
		BridgeProbabilities: probs,
		LogProbability:      logProb,
		LinearProbability:   linear,
		DepartureTime:       departureTime,
	}, nil
}

// featuresFor builds (consulting the feature cache first) the feature vector
// for one bridge crossing.
func (s *Scorer) featuresFor(be eta.BridgeETA, route *graph.RoutePath) [feature.VectorLen]float64 {
	bucket := feature.TimeBucket(be.ETA.ArrivalTime.Hour(), be.ETA.ArrivalTime.Minute())

	if s.cache != nil && s.cfg.Performance.EnableCaching {
		key := featurecache.Key{BridgeID: be.BridgeID, TimeBucket: bucket}
		if vec, ok := s.cache.Get(key); ok {
			return vec
		}
		vec := s.buildVector(be, route)
		s.cache.Put(key, vec)
		return vec
	}
	return s.buildVector(be, route)
}

func (s *Scorer) buildVector(be eta.BridgeETA, route *graph.RoutePath) [feature.VectorLen]float64 {
	var edgeTime, edgeDist float64
	for _, e := range route.Edges {
		if e.IsBridge && e.BridgeID == be.BridgeID {
			edgeTime = e.TravelTimeSeconds
			edgeDist = e.DistanceMeters
			break
		}
	}
	ctx := feature.RouteContext{
		EdgeTravelTimeSeconds: edgeTime,
		EdgeDistanceMeters:    edgeDist,
		RouteTotalTravelTime:  route.TotalTravelTime,
	}
	return feature.Vector(be.BridgeID, be.ETA.ArrivalTime, s.cfg.GlobalSeed, ctx)
}

// predictMany calls the predictor once per bridge, or in batch calls of at
// most cfg.Prediction.BatchSize (and the predictor's MaxBatchSize) bridges
// each when the predictor supports it and batching is enabled (§4.4.3, §5). The
// returned map is keyed by the bridge's index in the caller's bridgeETAs
// slice (idx), not its index within this call's input slices.
func (s *Scorer) predictMany(ctx context.Context, bridgeIDs []string, vectors [][feature.VectorLen]float64, idx []int) (map[int]predictor.PredictionResult, error) {
	out := make(map[int]predictor.PredictionResult, len(bridgeIDs))

	useBatch := s.cfg.Prediction.UseBatchPrediction && s.pred.MaxBatchSize() > 0
	if useBatch {
		batchSize := s.cfg.Prediction.BatchSize
		if maxB := s.pred.MaxBatchSize(); maxB > 0 && maxB < batchSize {
			batchSize = maxB
		}
		for start := 0; start < len(bridgeIDs); start += batchSize {
			end := start + batchSize
			if end > len(bridgeIDs) {
				end = len(bridgeIDs)
			}
			res, err := s.pred.PredictBatch(ctx, bridgeIDs[start:end], vectors[start:end])
			if err != nil {
				return nil, rterr.PredictionFailed("batch predict failed", err)
			}
			if len(res.Results) != end-start {
				return nil, rterr.PredictionFailed("batch predict returned a mismatched result count", nil)
			}
			for i, r := range res.Results {
				out[idx[start+i]] = r
			}
		}
		return out, nil
	}

	for i, id := range bridgeIDs {
		r, err := s.pred.Predict(ctx, id, vectors[i])
		if err != nil {
			return nil, rterr.PredictionFailed("predict failed for bridge "+id, err)
		}
		out[idx[i]] = r
	}
	return out, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
