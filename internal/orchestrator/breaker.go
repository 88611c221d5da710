package orchestrator

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/metrics"
)

// circuitBreaker implements a two-state breaker: CLOSED and OPEN, with no
// half-open probe. Once the cooldown elapses the next request closes the
// breaker unconditionally, regardless of how that request turns out. This
// exact policy is intentional; see DESIGN.md before changing it.
type circuitBreaker struct {
	mu        sync.Mutex
	threshold int
	cooldown  time.Duration
	clock     clockwork.Clock

	open            bool
	failureCount    int
	lastFailureTime time.Time
	nextAttemptTime time.Time
}

// breakerState is a point-in-time copy of the breaker's observable state.
type breakerState struct {
	IsOpen          bool
	FailureCount    int
	LastFailureTime time.Time
	NextAttemptTime time.Time
}

func newCircuitBreaker(threshold int, cooldown time.Duration, clock clockwork.Clock) *circuitBreaker {
	return &circuitBreaker{
		threshold: threshold,
		cooldown:  cooldown,
		clock:     clock,
	}
}

// allow reports whether a request may proceed. An open breaker whose cooldown
// has elapsed closes here, before the request runs.
func (b *circuitBreaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return true
	}
	if b.clock.Now().After(b.nextAttemptTime) {
		b.open = false
		b.failureCount = 0
		metrics.CircuitBreakerState.Set(0)
		return true
	}

	metrics.CircuitBreakerRejections.Inc()
	return false
}

// recordFailure counts one engine failure and reports whether it tripped the
// breaker open.
func (b *circuitBreaker) recordFailure() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	b.failureCount++
	b.lastFailureTime = now

	if !b.open && b.failureCount >= b.threshold {
		b.open = true
		b.nextAttemptTime = now.Add(b.cooldown)
		metrics.CircuitBreakerState.Set(1)
		metrics.CircuitBreakerTrips.Inc()
		return true
	}
	return false
}

// recordSuccess resets the consecutive-failure count. The threshold counts
// consecutive failures, not failures over a window.
func (b *circuitBreaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		b.failureCount = 0
	}
}

func (b *circuitBreaker) snapshot() breakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return breakerState{
		IsOpen:          b.open,
		FailureCount:    b.failureCount,
		LastFailureTime: b.lastFailureTime,
		NextAttemptTime: b.nextAttemptTime,
	}
}
