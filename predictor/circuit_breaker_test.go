package predictor

import (
	"testing"
	"time"

	"github.com/plm/bridge-routing-engine/internal/rtclock"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cfg := CircuitBreakerConfig{Name: "test", FailureThreshold: 3, SuccessThreshold: 2, Timeout: time.Second}
	cb := NewCircuitBreaker(cfg, rtclock.Fixed{At: time.Unix(0, 0)})

	for i := 0; i < 2; i++ {
		cb.RecordFailure()
	}
	if cb.State() != StateClosed {
		t.Fatal("expected circuit to remain closed below threshold")
	}

	cb.RecordFailure()
	if cb.State() != StateOpen {
		t.Fatal("expected circuit to open at threshold")
	}
	if err := cb.Allow(); err != ErrCircuitOpen {
		t.Fatalf("expected Allow to return ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreakerHalfOpenAfterTimeout(t *testing.T) {
	clock := &fixedClock{t: time.Unix(0, 0)}
	cfg := CircuitBreakerConfig{Name: "test", FailureThreshold: 1, SuccessThreshold: 1, Timeout: 10 * time.Second}
	cb := NewCircuitBreaker(cfg, clock)

	cb.RecordFailure()
	if cb.State() != StateOpen {
		t.Fatal("expected circuit to open")
	}

	clock.t = clock.t.Add(11 * time.Second)
	if cb.State() != StateHalfOpen {
		t.Fatal("expected circuit to transition to half-open after timeout")
	}

	cb.RecordSuccess()
	if cb.State() != StateClosed {
		t.Fatal("expected circuit to close after enough half-open successes")
	}
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	clock := &fixedClock{t: time.Unix(0, 0)}
	cfg := CircuitBreakerConfig{Name: "test", FailureThreshold: 1, SuccessThreshold: 2, Timeout: time.Second}
	cb := NewCircuitBreaker(cfg, clock)

	cb.RecordFailure()
	clock.t = clock.t.Add(2 * time.Second)
	if cb.State() != StateHalfOpen {
		t.Fatal("expected half-open state")
	}

	cb.RecordFailure()
	if cb.State() != StateOpen {
		t.Fatal("expected any half-open failure to reopen the circuit")
	}
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }
