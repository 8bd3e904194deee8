package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute})

	if err := b.Allow(); err != nil {
		t.Fatalf("closed breaker should allow: %v", err)
	}
	b.RecordFailure()
	b.RecordFailure()

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})
	now := time.Now()
	b.now = func() time.Time { return now }

	b.RecordFailure()
	if b.State() != CircuitOpen {
		t.Fatalf("expected open, got %s", b.State())
	}

	now = now.Add(2 * time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("half-open probe should be admitted: %v", err)
	}
	b.RecordSuccess()
	if b.State() != CircuitClosed {
		t.Fatalf("expected closed after successful probe, got %s", b.State())
	}
}

func TestSingleFlightShares(t *testing.T) {
	t.Parallel()

	var g SingleFlight
	calls := 0
	v, err, _ := g.Do("k", func() (any, error) {
		calls++
		return 42, nil
	})
	if err != nil || v.(int) != 42 || calls != 1 {
		t.Fatalf("unexpected result v=%v err=%v calls=%d", v, err, calls)
	}
}
