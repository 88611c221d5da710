package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis Metrics
var (
	// AnalysisRequestsTotal tracks analysis requests by outcome
	AnalysisRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_requests_total",
			Help: "Total analysis requests by outcome (success/error/cache_hit/rejected)",
		},
		[]string{"outcome"},
	)

	// AnalysisDuration tracks engine processing latency in seconds (non-cached calls)
	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Scoring engine processing duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5, 30},
		},
	)

	// AnalysisLabelsTotal tracks emitted sentiment labels
	AnalysisLabelsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_labels_total",
			Help: "Total emitted sentiment labels (positive/negative/neutral)",
		},
		[]string{"label"},
	)

	// BatchItemsPerRequest tracks batch fan-out sizes
	BatchItemsPerRequest = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_batch_items",
			Help:    "Number of items per batch analysis request",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		},
	)
)

// Predictor Metrics
var (
	// ExternalPredictorCalls tracks external predictor calls by result
	ExternalPredictorCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "external_predictor_calls_total",
			Help: "Total external predictor calls by result (success/error)",
		},
		[]string{"result"},
	)

	// SarcasmOverridesTotal tracks ensemble sarcasm overrides applied
	SarcasmOverridesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ensemble_sarcasm_overrides_total",
			Help: "Total ensemble results flipped negative by the sarcasm override",
		},
	)

	// ClassifierVocabularySize tracks the trained vocabulary size
	ClassifierVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "classifier_vocabulary_size",
			Help: "Number of distinct tokens in the statistical classifier vocabulary",
		},
	)
)

// Cache Metrics
var (
	// CacheHits tracks result cache hits
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_hits_total",
			Help: "Total result cache hits",
		},
	)

	// CacheMisses tracks result cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "result_cache_misses_total",
			Help: "Total result cache misses",
		},
	)

	// CacheEvictions tracks entries removed by TTL sweep or capacity pressure
	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_cache_evictions_total",
			Help: "Total result cache evictions by reason (expired/capacity)",
		},
		[]string{"reason"},
	)

	// CacheSize tracks current number of cached results
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "result_cache_entries",
			Help: "Current number of entries in the result cache",
		},
	)
)

// Circuit Breaker Metrics
var (
	// CircuitBreakerState tracks current breaker state (0=closed, 1=open)
	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=open)",
		},
	)

	// CircuitBreakerTrips tracks closed-to-open transitions
	CircuitBreakerTrips = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "circuit_breaker_trips_total",
			Help: "Total circuit breaker transitions from closed to open",
		},
	)

	// CircuitBreakerRejections tracks requests rejected while open
	CircuitBreakerRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "circuit_breaker_rejections_total",
			Help: "Total requests rejected while the circuit breaker was open",
		},
	)
)

// HTTP Request Metrics
// Note: http_errors_total{type} is provided by the internal/errors package.
