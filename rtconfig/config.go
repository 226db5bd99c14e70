// Package rtconfig defines the tunables of §4.6: scoring bounds, performance
// budgets, and prediction defaults. Configuration is a plain struct built
// from DefaultConfig and validated once, at scorer construction, by
// Validate — never re-validated scattered through the call path.
package rtconfig

import (
	"time"

	"github.com/plm/bridge-routing-engine/internal/rtlog"
	"github.com/plm/bridge-routing-engine/rterr"
)

// LogVerbosity mirrors rtlog.Verbosity as a config-facing type so callers of
// this package don't need to import internal/rtlog directly.
type LogVerbosity int

const (
	LogSilent   LogVerbosity = LogVerbosity(rtlog.Silent)
	LogWarnings LogVerbosity = LogVerbosity(rtlog.Warnings)
	LogVerbose  LogVerbosity = LogVerbosity(rtlog.Verbose)
)

// Scoring holds the §4.6 "Scoring" knobs.
type Scoring struct {
	// MinProbability and MaxProbability bound every predicted or
	// policy-rejected open probability before it enters aggregation.
	MinProbability float64
	MaxProbability float64

	// LogThreshold is informational only: scores whose log_probability
	// falls below it may be flagged by callers for review. It has no effect
	// on aggregation.
	LogThreshold float64

	// UseLogDomain must be true for this core; aggregation is always
	// performed in the log domain (§4.4.3). The field exists so
	// Validate() can reject a caller who explicitly disables it rather
	// than silently ignoring the request.
	UseLogDomain bool

	// ClampBounds are the output bounds applied to the final linear
	// probability of a PathScore (distinct from MinProbability/MaxProbability,
	// which bound per-bridge inputs to aggregation).
	ClampBounds [2]float64
}

// Performance holds the §4.6 "Performance" knobs.
type Performance struct {
	// MaxEnumerationTime and MaxScoringTime are soft budgets surfaced via
	// metrics; §5 states they are advisory telemetry, never an enforced
	// hard deadline.
	MaxEnumerationTime time.Duration
	MaxScoringTime     time.Duration

	EnableCaching bool
	LogVerbosity  LogVerbosity
}

// Prediction holds the §4.6 "Prediction" knobs.
type Prediction struct {
	DefaultBridgeProbability float64
	UseBatchPrediction       bool
	BatchSize                int

	// PriorAlpha and PriorBeta parameterize the Beta-smoothing formula used
	// by a historical-data-provider-backed predictor (§6):
	// (open_count + alpha) / (total_count + alpha + beta).
	PriorAlpha float64
	PriorBeta  float64
}

// Config is the full set of tunables consumed by the scorer and enumerator.
type Config struct {
	Scoring     Scoring
	Performance Performance
	Prediction  Prediction

	// GlobalSeed salts feature-vector generation (§4.4.1) and the lane
	// hashing of Scorer.ScorePathsConcurrent; it never affects enumeration
	// ordering.
	GlobalSeed uint64
}

// DefaultConfig returns conservative production defaults: probabilities
// unclamped in practice ([0,1]), log-domain aggregation on, batch prediction
// on, caching on, warnings-level logging.
func DefaultConfig() Config {
	return Config{
		Scoring: Scoring{
			MinProbability: 0.0,
			MaxProbability: 1.0,
			LogThreshold:   -20.0,
			UseLogDomain:   true,
			ClampBounds:    [2]float64{0.0, 1.0},
		},
		Performance: Performance{
			MaxEnumerationTime: 2 * time.Second,
			MaxScoringTime:     2 * time.Second,
			EnableCaching:      true,
			LogVerbosity:       LogWarnings,
		},
		Prediction: Prediction{
			DefaultBridgeProbability: 0.5,
			UseBatchPrediction:       true,
			BatchSize:                32,
			PriorAlpha:               1.0,
			PriorBeta:                1.0,
		},
		GlobalSeed: 0,
	}
}

// Validate enforces every constraint named in §4.6, failing with
// ErrInvalidConfiguration (wrapped via rterr.InvalidConfiguration) on the
// first violation found.
func (c Config) Validate() error {
	s := c.Scoring
	if s.MinProbability < 0 || s.MinProbability > 1 {
		return rterr.InvalidConfiguration("scoring.min_probability must be in [0,1]")
	}
	if s.MaxProbability < 0 || s.MaxProbability > 1 {
		return rterr.InvalidConfiguration("scoring.max_probability must be in [0,1]")
	}
	if s.MinProbability > s.MaxProbability {
		return rterr.InvalidConfiguration("scoring.min_probability must be <= scoring.max_probability")
	}
	if !s.UseLogDomain {
		return rterr.InvalidConfiguration("scoring.use_log_domain must be true for this core")
	}
	if s.ClampBounds[0] > s.ClampBounds[1] {
		return rterr.InvalidConfiguration("scoring.clamp_bounds lower must be <= upper")
	}

	p := c.Prediction
	if p.DefaultBridgeProbability < 0 || p.DefaultBridgeProbability > 1 {
		return rterr.InvalidConfiguration("prediction.default_bridge_probability must be in [0,1]")
	}
	if p.BatchSize <= 0 {
		return rterr.InvalidConfiguration("prediction.batch_size must be positive")
	}
	if p.PriorAlpha <= 0 || p.PriorBeta <= 0 {
		return rterr.InvalidConfiguration("prediction.prior_alpha and prior_beta must be positive")
	}

	perf := c.Performance
	if perf.MaxEnumerationTime < 0 || perf.MaxScoringTime < 0 {
		return rterr.InvalidConfiguration("performance time budgets must be non-negative")
	}

	return nil
}

// RtlogVerbosity converts the config-facing LogVerbosity into the internal
// rtlog.Verbosity used to construct a Logger.
func (v LogVerbosity) RtlogVerbosity() rtlog.Verbosity { return rtlog.Verbosity(v) }
