package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// StateChangeFunc observes breaker transitions. It runs outside the breaker lock.
type StateChangeFunc func(from, to CircuitState)

// CircuitBreaker fails fast after repeated storage failures. A nil breaker allows everything.
type CircuitBreaker struct {
	mu sync.Mutex

	threshold int
	cooldown  time.Duration
	probes    int
	onChange  StateChangeFunc
	now       func() time.Time

	state    CircuitState
	failures int
	openedAt time.Time
	// inFlight and passed only count while half-open.
	inFlight int
	passed   int
}

func NewCircuitBreaker(failureThreshold int, openTimeout time.Duration, halfOpenProbes int) *CircuitBreaker {
	return &CircuitBreaker{
		threshold: max(failureThreshold, 1),
		cooldown:  cmpOr(openTimeout, 15*time.Second),
		probes:    max(halfOpenProbes, 1),
		now:       time.Now,
		state:     CircuitStateClosed,
	}
}

// OnStateChange registers fn for every transition and returns the breaker.
func (b *CircuitBreaker) OnStateChange(fn StateChangeFunc) *CircuitBreaker {
	if b != nil {
		b.mu.Lock()
		b.onChange = fn
		b.mu.Unlock()
	}
	return b
}

func (b *CircuitBreaker) Allow() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	from := b.state
	err := b.admit()
	notify := b.pending(from)
	b.mu.Unlock()

	notify()
	return err
}

func (b *CircuitBreaker) RecordSuccess() {
	if b == nil {
		return
	}
	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		b.release()
		b.passed++
		if b.passed >= b.probes && b.inFlight == 0 {
			b.moveTo(CircuitStateClosed)
		}
	}
	notify := b.pending(from)
	b.mu.Unlock()

	notify()
}

func (b *CircuitBreaker) RecordFailure() {
	if b == nil {
		return
	}
	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.threshold {
			b.moveTo(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		b.release()
		b.moveTo(CircuitStateOpen)
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
	notify := b.pending(from)
	b.mu.Unlock()

	notify()
}

// State reports half-open once the cooldown has passed, even before a probe arrives.
func (b *CircuitBreaker) State() CircuitState {
	if b == nil {
		return CircuitStateClosed
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.cooledDown() {
		return CircuitStateHalfOpen
	}
	return b.state
}

// Execute runs fn when the breaker allows it and records the outcome. Cancelled or
// expired contexts are not counted as dependency failures.
func (b *CircuitBreaker) Execute(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn()
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		b.RecordSuccess()
	} else {
		b.RecordFailure()
	}
	return err
}

func (b *CircuitBreaker) admit() error {
	if b.state == CircuitStateOpen {
		if !b.cooledDown() {
			return ErrCircuitOpen
		}
		b.moveTo(CircuitStateHalfOpen)
	}
	if b.state == CircuitStateHalfOpen {
		if b.inFlight >= b.probes {
			return ErrCircuitOpen
		}
		b.inFlight++
	}
	return nil
}

func (b *CircuitBreaker) cooledDown() bool {
	return b.now().Sub(b.openedAt) >= b.cooldown
}

func (b *CircuitBreaker) release() {
	if b.inFlight > 0 {
		b.inFlight--
	}
}

func (b *CircuitBreaker) moveTo(state CircuitState) {
	b.state = state
	b.inFlight = 0
	b.passed = 0
	switch state {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}

// pending captures the observer call for a transition made under the lock.
func (b *CircuitBreaker) pending(from CircuitState) func() {
	to, fn := b.state, b.onChange
	if fn == nil || from == to {
		return func() {}
	}
	return func() { fn(from, to) }
}

func cmpOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
