// Package orchestrator wraps the scoring engine with the serving-side
// resilience concerns: result caching, a circuit breaker, request timeouts,
// batch fan-out, and request metrics. One Orchestrator owns all of that state
// for the lifetime of the service instance.
package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
	apperrors "github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/errors"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/metrics"
)

// Engine is the scoring engine contract the orchestrator wraps.
type Engine interface {
	Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error)
	Train(examples []domain.TrainingExample) error
}

// Options configures an Orchestrator. The zero value gets production
// defaults from withDefaults.
type Options struct {
	CacheTTL         time.Duration
	CacheCapacity    int
	SweepInterval    time.Duration
	AnalysisTimeout  time.Duration
	BreakerThreshold int
	BreakerCooldown  time.Duration
	Clock            clockwork.Clock
}

func (o *Options) withDefaults() {
	if o.CacheTTL <= 0 {
		o.CacheTTL = time.Hour
	}
	if o.CacheCapacity <= 0 {
		o.CacheCapacity = 10_000
	}
	if o.SweepInterval <= 0 {
		o.SweepInterval = 5 * time.Minute
	}
	if o.AnalysisTimeout <= 0 {
		o.AnalysisTimeout = 30 * time.Second
	}
	if o.BreakerThreshold <= 0 {
		o.BreakerThreshold = 5
	}
	if o.BreakerCooldown <= 0 {
		o.BreakerCooldown = 60 * time.Second
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
}

// Metrics are the orchestrator's running counters. Reset zeroes them without
// touching cache or breaker state.
type Metrics struct {
	TotalRequests         uint64        `json:"totalRequests"`
	CacheHits             uint64        `json:"cacheHits"`
	CacheMisses           uint64        `json:"cacheMisses"`
	ErrorCount            uint64        `json:"errorCount"`
	CircuitBreakerTrips   uint64        `json:"circuitBreakerTrips"`
	TotalProcessingTime   time.Duration `json:"totalProcessingTime"`
	AverageProcessingTime time.Duration `json:"averageProcessingTime"`
}

// MetricsReport augments the counters with derived cache figures.
type MetricsReport struct {
	Metrics
	CacheSize    int     `json:"cacheSize"`
	CacheHitRate float64 `json:"cacheHitRate"`
}

// BatchItem is one slot of a batch response. Err isolates a per-item failure;
// the other slots are unaffected.
type BatchItem struct {
	Result *domain.AnalysisResult
	Err    error
}

// Orchestrator serializes access to one cache and one breaker. Construct it
// once per service instance and pass it by reference; it must not be copied.
type Orchestrator struct {
	engine  Engine
	cache   *resultCache
	breaker *circuitBreaker
	timeout time.Duration
	clock   clockwork.Clock

	mu         sync.Mutex
	counters   Metrics
	successes  uint64
	stopSweep  func()
	disposeOne sync.Once
}

// New builds an orchestrator and starts its background cache sweep. Call
// Dispose to stop the sweep and release the cache.
func New(engine Engine, opts Options) *Orchestrator {
	opts.withDefaults()

	cache := newResultCache(opts.CacheTTL, opts.CacheCapacity, opts.Clock)
	return &Orchestrator{
		engine:    engine,
		cache:     cache,
		breaker:   newCircuitBreaker(opts.BreakerThreshold, opts.BreakerCooldown, opts.Clock),
		timeout:   opts.AnalysisTimeout,
		clock:     opts.Clock,
		stopSweep: cache.StartSweep(opts.SweepInterval),
	}
}

type analyzeOutcome struct {
	result *domain.AnalysisResult
	err    error
}

// Analyze runs one orchestrated analysis: validation, breaker check, cache
// lookup, then the engine raced against the timeout. The breaker is consulted
// before the cache, so an open breaker rejects even cached keys.
func (o *Orchestrator) Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	if req == nil {
		return nil, domain.ErrNilRequest
	}

	o.count(func(m *Metrics) { m.TotalRequests++ })

	norm := req.Normalized()
	if len(norm.Text) > domain.MaxTextLength {
		metrics.AnalysisRequestsTotal.WithLabelValues("rejected").Inc()
		return nil, apperrors.ValidationError("text exceeds maximum length", domain.ErrTextTooLong).
			WithContext("length", len(norm.Text)).
			WithContext("max", domain.MaxTextLength)
	}

	if !o.breaker.allow() {
		metrics.AnalysisRequestsTotal.WithLabelValues("rejected").Inc()
		return nil, apperrors.UnavailableError("analysis temporarily unavailable", domain.ErrCircuitOpen)
	}

	key := fingerprint(norm)
	if cached, ok := o.cache.Get(key); ok {
		o.count(func(m *Metrics) { m.CacheHits++ })
		metrics.CacheHits.Inc()
		metrics.AnalysisRequestsTotal.WithLabelValues("cache_hit").Inc()
		return cached, nil
	}
	o.count(func(m *Metrics) { m.CacheMisses++ })
	metrics.CacheMisses.Inc()

	// Race the engine against a fixed timer. The engine call is not
	// cancelled on timeout; a late result is discarded via the buffered
	// channel.
	start := o.clock.Now()
	outcome := make(chan analyzeOutcome, 1)
	go func() {
		result, err := o.engine.Analyze(ctx, &norm)
		outcome <- analyzeOutcome{result: result, err: err}
	}()

	timer := o.clock.NewTimer(o.timeout)
	defer timer.Stop()

	select {
	case out := <-outcome:
		if out.err != nil {
			o.recordFailure()
			metrics.AnalysisRequestsTotal.WithLabelValues("error").Inc()
			return nil, apperrors.InternalError("analysis failed", out.err)
		}

		elapsed := o.clock.Now().Sub(start)
		o.breaker.recordSuccess()
		o.cache.Set(key, out.result, len(norm.Text))
		o.recordSuccess(elapsed)
		metrics.AnalysisDuration.Observe(elapsed.Seconds())
		metrics.AnalysisRequestsTotal.WithLabelValues("success").Inc()
		return out.result, nil

	case <-timer.Chan():
		o.recordFailure()
		metrics.AnalysisRequestsTotal.WithLabelValues("error").Inc()
		slog.WarnContext(ctx, "Analysis timed out, late result will be discarded",
			"timeout", o.timeout)
		return nil, apperrors.TimeoutError("analysis timed out", domain.ErrAnalysisTimeout).
			WithContext("timeout", o.timeout.String())
	}
}

// AnalyzeBatch fans one orchestrated call out per item, concurrently, with no
// concurrency ceiling; bounding it is the caller's job. Results come back in
// input order and failures stay in their own slot.
func (o *Orchestrator) AnalyzeBatch(ctx context.Context, reqs []domain.AnalysisRequest) []BatchItem {
	metrics.BatchItemsPerRequest.Observe(float64(len(reqs)))

	items := make([]BatchItem, len(reqs))
	var wg sync.WaitGroup
	wg.Add(len(reqs))
	for i := range reqs {
		go func(i int) {
			defer wg.Done()
			result, err := o.Analyze(ctx, &reqs[i])
			if err != nil {
				result = failedItemResult(reqs[i].Normalized().Language)
			}
			items[i] = BatchItem{Result: result, Err: err}
		}(i)
	}
	wg.Wait()
	return items
}

// Train synchronously replaces the classifier state and drops all cached
// results, since they were produced by the previous model.
func (o *Orchestrator) Train(examples []domain.TrainingExample) error {
	if err := o.engine.Train(examples); err != nil {
		return apperrors.ValidationError("training data rejected", err)
	}
	o.cache.Clear()
	return nil
}

// GetMetrics returns a copy of the running counters plus derived cache
// figures.
func (o *Orchestrator) GetMetrics() MetricsReport {
	o.mu.Lock()
	counters := o.counters
	o.mu.Unlock()

	lookups := counters.CacheHits + counters.CacheMisses
	rate := 0.0
	if lookups > 0 {
		rate = float64(counters.CacheHits) / float64(lookups)
	}

	return MetricsReport{
		Metrics:      counters,
		CacheSize:    o.cache.Size(),
		CacheHitRate: rate,
	}
}

// ResetMetrics zeroes the counters. Cache contents and breaker state are
// untouched.
func (o *Orchestrator) ResetMetrics() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.counters = Metrics{}
	o.successes = 0
}

// BreakerState exposes the breaker's observable state for diagnostics.
func (o *Orchestrator) BreakerState() (isOpen bool, failureCount int) {
	state := o.breaker.snapshot()
	return state.IsOpen, state.FailureCount
}

// Dispose stops the background sweep and releases the cache. Safe to call
// more than once; no sweep fires after the first call returns.
func (o *Orchestrator) Dispose() {
	o.disposeOne.Do(func() {
		o.stopSweep()
		o.cache.Clear()
	})
}

func (o *Orchestrator) count(update func(*Metrics)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	update(&o.counters)
}

// recordSuccess folds one non-cached successful call into the running
// average. Cached hits and failures never contribute.
func (o *Orchestrator) recordSuccess(elapsed time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.successes++
	o.counters.TotalProcessingTime += elapsed
	o.counters.AverageProcessingTime = o.counters.TotalProcessingTime / time.Duration(o.successes)
}

func (o *Orchestrator) recordFailure() {
	o.count(func(m *Metrics) { m.ErrorCount++ })
	if o.breaker.recordFailure() {
		o.count(func(m *Metrics) { m.CircuitBreakerTrips++ })
		slog.Warn("Circuit breaker tripped open",
			"cooldown", o.breaker.cooldown)
	}
}

// failedItemResult fills a batch slot whose item failed, so consumers can
// iterate results uniformly. The error travels alongside in the same slot.
func failedItemResult(language string) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Sentiment: domain.Sentiment{Label: domain.LabelNeutral},
		Keywords:  []string{},
		Language:  language,
		Version:   domain.VersionHybrid,
	}
}
