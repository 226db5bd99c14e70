package predictor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/plm/bridge-routing-engine/feature"
	"github.com/plm/bridge-routing-engine/internal/rtclock"
)

// State is one of the three circuit breaker states.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrCircuitOpen is returned by Allow while the circuit is open.
var ErrCircuitOpen = errors.New("predictor: circuit breaker is open")

// CircuitBreakerConfig holds the threshold and timeout tunables of the
// breaker: no sliding-window key, no persisted TTL, nothing Redis-specific.
type CircuitBreakerConfig struct {
	Name             string
	FailureThreshold int64
	SuccessThreshold int64
	Timeout          time.Duration
}

// DefaultCircuitBreakerConfig returns conservative production defaults.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		FailureThreshold: 5,
		SuccessThreshold: 3,
		Timeout:          30 * time.Second,
	}
}

// CircuitBreaker guards a Predictor's Predict/PredictBatch calls in-process.
// It owns no persisted or external state — the Closed→Open→HalfOpen state
// machine lives entirely in one mutex-protected struct for the lifetime of
// one process.
type CircuitBreaker struct {
	cfg   CircuitBreakerConfig
	clock rtclock.Clock

	mu              sync.Mutex
	state           State
	failures        int64
	successes       int64
	lastStateChange time.Time
}

// NewCircuitBreaker builds a CircuitBreaker starting in StateClosed.
func NewCircuitBreaker(cfg CircuitBreakerConfig, clock rtclock.Clock) *CircuitBreaker {
	if clock == nil {
		clock = rtclock.System{}
	}
	return &CircuitBreaker{
		cfg:             cfg,
		clock:           clock,
		state:           StateClosed,
		lastStateChange: clock.Now(),
	}
}

// State reports the breaker's current state, transitioning Open to HalfOpen
// if the timeout has elapsed.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.maybeHalfOpenLocked()
	return cb.state
}

func (cb *CircuitBreaker) maybeHalfOpenLocked() {
	if cb.state == StateOpen && cb.clock.Now().Sub(cb.lastStateChange) >= cb.cfg.Timeout {
		cb.state = StateHalfOpen
		cb.successes = 0
		cb.lastStateChange = cb.clock.Now()
	}
}

// Allow reports whether a call may proceed, returning ErrCircuitOpen if not.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.maybeHalfOpenLocked()
	if cb.state == StateOpen {
		return ErrCircuitOpen
	}
	return nil
}

// RecordSuccess registers a successful call, closing the circuit once enough
// half-open successes accumulate.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.maybeHalfOpenLocked()
	if cb.state != StateHalfOpen {
		return
	}
	cb.successes++
	if cb.successes >= cb.cfg.SuccessThreshold {
		cb.state = StateClosed
		cb.failures = 0
		cb.successes = 0
		cb.lastStateChange = cb.clock.Now()
	}
}

// RecordFailure registers a failed call, opening the circuit once the
// failure threshold is reached (or immediately, if already half-open).
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.maybeHalfOpenLocked()

	cb.failures++
	switch cb.state {
	case StateHalfOpen:
		cb.state = StateOpen
		cb.successes = 0
		cb.lastStateChange = cb.clock.Now()
	case StateClosed:
		if cb.failures >= cb.cfg.FailureThreshold {
			cb.state = StateOpen
			cb.lastStateChange = cb.clock.Now()
		}
	}
}

// Reset forces the circuit back to closed, clearing all counters.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = StateClosed
	cb.failures = 0
	cb.successes = 0
	cb.lastStateChange = cb.clock.Now()
}

// Guarded wraps a Predictor so every Predict/PredictBatch call first checks
// the breaker and records the outcome.
type Guarded struct {
	inner   Predictor
	breaker *CircuitBreaker
}

// NewGuarded wraps inner with breaker.
func NewGuarded(inner Predictor, breaker *CircuitBreaker) *Guarded {
	return &Guarded{inner: inner, breaker: breaker}
}

func (g *Guarded) Predict(ctx context.Context, bridgeID string, features [feature.VectorLen]float64) (PredictionResult, error) {
	if err := g.breaker.Allow(); err != nil {
		return PredictionResult{}, err
	}
	res, err := g.inner.Predict(ctx, bridgeID, features)
	if err != nil {
		g.breaker.RecordFailure()
		return PredictionResult{}, err
	}
	g.breaker.RecordSuccess()
	return res, nil
}

func (g *Guarded) PredictBatch(ctx context.Context, bridgeIDs []string, features [][feature.VectorLen]float64) (BatchPredictionResult, error) {
	if err := g.breaker.Allow(); err != nil {
		return BatchPredictionResult{Err: err}, err
	}
	res, err := g.inner.PredictBatch(ctx, bridgeIDs, features)
	if err != nil {
		g.breaker.RecordFailure()
		return res, err
	}
	g.breaker.RecordSuccess()
	return res, nil
}

func (g *Guarded) DefaultProbability() float64 { return g.inner.DefaultProbability() }

func (g *Guarded) Supports(concurrent bool) bool { return g.inner.Supports(concurrent) }

func (g *Guarded) MaxBatchSize() int { return g.inner.MaxBatchSize() }
