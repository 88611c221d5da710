package orchestrator

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker_StartsClosed(t *testing.T) {
	clock := clockwork.NewFakeClock()
	breaker := newCircuitBreaker(5, time.Minute, clock)

	assert.True(t, breaker.allow())
	assert.False(t, breaker.snapshot().IsOpen)
}

func TestCircuitBreaker_TripsAtThreshold(t *testing.T) {
	clock := clockwork.NewFakeClock()
	breaker := newCircuitBreaker(5, time.Minute, clock)

	for i := 0; i < 4; i++ {
		assert.False(t, breaker.recordFailure())
		assert.True(t, breaker.allow(), "breaker must stay closed below the threshold")
	}

	assert.True(t, breaker.recordFailure(), "fifth failure must trip the breaker")
	assert.False(t, breaker.allow())
	assert.True(t, breaker.snapshot().IsOpen)
}

func TestCircuitBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	clock := clockwork.NewFakeClock()
	breaker := newCircuitBreaker(5, time.Minute, clock)

	for i := 0; i < 4; i++ {
		breaker.recordFailure()
	}
	breaker.recordSuccess()
	for i := 0; i < 4; i++ {
		assert.False(t, breaker.recordFailure())
	}

	// Only 4 consecutive failures since the success, so still closed.
	assert.True(t, breaker.allow())
}

func TestCircuitBreaker_RejectsWhileOpen(t *testing.T) {
	clock := clockwork.NewFakeClock()
	breaker := newCircuitBreaker(5, time.Minute, clock)

	for i := 0; i < 5; i++ {
		breaker.recordFailure()
	}

	clock.Advance(59 * time.Second)
	assert.False(t, breaker.allow(), "still inside the cooldown")
}

func TestCircuitBreaker_ClosesUnconditionallyAfterCooldown(t *testing.T) {
	clock := clockwork.NewFakeClock()
	breaker := newCircuitBreaker(5, time.Minute, clock)

	for i := 0; i < 5; i++ {
		breaker.recordFailure()
	}
	assert.False(t, breaker.allow())

	clock.Advance(61 * time.Second)

	// The next request closes the breaker regardless of its own outcome.
	assert.True(t, breaker.allow())
	state := breaker.snapshot()
	assert.False(t, state.IsOpen)
	assert.Zero(t, state.FailureCount)
}

func TestCircuitBreaker_ReopensAfterFreshFailureRun(t *testing.T) {
	clock := clockwork.NewFakeClock()
	breaker := newCircuitBreaker(5, time.Minute, clock)

	for i := 0; i < 5; i++ {
		breaker.recordFailure()
	}
	clock.Advance(61 * time.Second)
	assert.True(t, breaker.allow())

	// It takes a full fresh run of failures to trip again.
	for i := 0; i < 4; i++ {
		assert.False(t, breaker.recordFailure())
	}
	assert.True(t, breaker.recordFailure())
	assert.False(t, breaker.allow())
}

func TestCircuitBreaker_SnapshotRecordsTimes(t *testing.T) {
	clock := clockwork.NewFakeClock()
	breaker := newCircuitBreaker(2, time.Minute, clock)

	breaker.recordFailure()
	breaker.recordFailure()

	state := breaker.snapshot()
	assert.True(t, state.IsOpen)
	assert.Equal(t, clock.Now(), state.LastFailureTime)
	assert.Equal(t, clock.Now().Add(time.Minute), state.NextAttemptTime)
}
