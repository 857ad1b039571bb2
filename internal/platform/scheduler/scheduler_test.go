package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/court-sense/internal/platform/logging"
)

func TestTicker_ScheduleAndCancel(t *testing.T) {
	var calls atomic.Int64
	fired := make(chan struct{}, 1)

	h := NewTicker(logging.NewNop()).Schedule(func() {
		calls.Add(1)
		select {
		case fired <- struct{}{}:
		default:
		}
	}, time.Millisecond)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatalf("callback never fired")
	}

	h.Cancel()
	h.Cancel()

	// Allow an in-flight tick to finish before sampling.
	time.Sleep(20 * time.Millisecond)
	after := calls.Load()
	time.Sleep(20 * time.Millisecond)
	if got := calls.Load(); got != after {
		t.Fatalf("callback fired after cancel: before=%d after=%d", after, got)
	}
}

func TestTicker_RecoversPanickingCallback(t *testing.T) {
	var calls atomic.Int64
	done := make(chan struct{})

	h := NewTicker(logging.NewNop()).Schedule(func() {
		if calls.Add(1) == 2 {
			close(done)
		}
		panic("boom")
	}, time.Millisecond)
	defer h.Cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("ticker stopped after panic")
	}
}

func TestManual_FireAndCancel(t *testing.T) {
	m := NewManual()
	var a, b int

	ha := m.Schedule(func() { a++ }, 10*time.Millisecond)
	m.Schedule(func() { b++ }, 10*time.Millisecond)

	m.Fire()
	if a != 1 || b != 1 {
		t.Fatalf("unexpected calls after first fire: a=%d b=%d", a, b)
	}
	if got := m.Active(); got != 2 {
		t.Fatalf("unexpected active tasks: got=%d want=2", got)
	}

	ha.Cancel()
	ha.Cancel()
	m.Fire()
	if a != 1 || b != 2 {
		t.Fatalf("unexpected calls after cancel: a=%d b=%d", a, b)
	}
	if got := m.Active(); got != 1 {
		t.Fatalf("unexpected active tasks: got=%d want=1", got)
	}
}
