package domain

import "errors"

var (
	// ErrNilRequest marks a programmer error: analyze called without a request.
	ErrNilRequest = errors.New("analysis request is nil")
	// ErrTextTooLong marks input rejected before reaching the engine.
	ErrTextTooLong = errors.New("text exceeds maximum length")
	// ErrNoPredictors marks an ensemble invocation without any predictions.
	ErrNoPredictors = errors.New("ensemble requires at least one prediction")
	// ErrCircuitOpen is returned while the breaker rejects requests.
	ErrCircuitOpen = errors.New("analysis temporarily unavailable: circuit open")
	// ErrAnalysisTimeout is returned when the engine loses the timeout race.
	ErrAnalysisTimeout = errors.New("analysis timed out")
)
