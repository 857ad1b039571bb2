package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_Execute(t *testing.T) {
	b := NewCircuitBreaker(2, time.Minute, 1)
	storeDown := errors.New("store down")

	if err := b.Execute(func() error { return context.Canceled }); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error to pass through, got %v", err)
	}
	for range 2 {
		if err := b.Execute(func() error { return storeDown }); !errors.Is(err, storeDown) {
			t.Fatalf("expected store error, got %v", err)
		}
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after two failures, got %s", state)
	}

	called := false
	err := b.Execute(func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected fail fast without calling fn: err=%v called=%v", err, called)
	}
}

func TestCircuitBreaker_NilAllowsEverything(t *testing.T) {
	var b *CircuitBreaker
	if b = NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: false}); b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}
	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("nil breaker should allow: %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("unexpected nil breaker state: %s", state)
	}
}

func TestCircuitBreaker_ReportsTransitions(t *testing.T) {
	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	var seen []string
	b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Second,
		HalfOpenProbes:   1,
		OnStateChange: func(from, to CircuitState) {
			seen = append(seen, string(from)+">"+string(to))
		},
	})
	b.now = func() time.Time { return now }

	b.RecordFailure()
	b.RecordFailure()
	now = now.Add(2 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe to pass: %v", err)
	}
	b.RecordSuccess()

	want := []string{"closed>open", "open>half_open", "half_open>closed"}
	if len(seen) != len(want) {
		t.Fatalf("unexpected transitions: %v", seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("unexpected transitions: %v", seen)
		}
	}
}
