package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/config"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/orchestrator"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/sentiment"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/training"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	engine := sentiment.NewEngine(sentiment.NewLexiconScorer(), sentiment.NewClassifier(), nil)
	require.NoError(t, engine.Train(training.Seed()))

	orch := orchestrator.New(engine, orchestrator.Options{Clock: clockwork.NewRealClock()})
	t.Cleanup(orch.Dispose)

	cfg := &config.Config{
		Port:               "8080",
		RateLimitPerSecond: 1000,
		RateLimitBurst:     1000,
	}
	return NewServer(cfg, orch)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func TestHandleAnalyze_PositiveText(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/analyze",
		`{"text": "I love this product! It's amazing!"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var result domain.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, domain.LabelPositive, result.Sentiment.Label)
	assert.Greater(t, result.Sentiment.Confidence, 0.6)
	assert.Equal(t, domain.VersionHybrid, result.Version)
}

func TestHandleAnalyze_MissingText(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/analyze", `{"text": "   "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "text is required")
}

func TestHandleAnalyze_OversizeText(t *testing.T) {
	srv := newTestServer(t)

	body := fmt.Sprintf(`{"text": %q}`, strings.Repeat("a", domain.MaxTextLength+1))
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/analyze", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyze_MalformedBody(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/analyze", `{"text": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAnalyze_SetsCorrelationHeader(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/analyze", `{"text": "hello"}`)

	assert.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}

func TestHandleAnalyze_HonorsCallerCorrelationID(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sentiment/analyze",
		strings.NewReader(`{"text": "hello"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Correlation-ID", "deadbeef")
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, "deadbeef", rec.Header().Get("X-Correlation-ID"))
}

func TestHandleBatch_ReturnsResultsInOrder(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/batch", `{
		"items": [
			{"text": "I love this product! It's amazing!"},
			{"text": "This is the worst purchase I've ever made"},
			{"text": "The package arrived today."}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp batchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Count)
	require.Len(t, resp.Results, 3)
	assert.Equal(t, domain.LabelPositive, resp.Results[0].Result.Sentiment.Label)
	assert.Equal(t, domain.LabelNegative, resp.Results[1].Result.Sentiment.Label)
	assert.Equal(t, domain.LabelNeutral, resp.Results[2].Result.Sentiment.Label)
	for _, item := range resp.Results {
		assert.NotEmpty(t, item.ID)
		assert.Empty(t, item.Error)
	}
}

func TestHandleBatch_EmptyRejected(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/batch", `{"items": []}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBatch_TooManyItemsRejected(t *testing.T) {
	srv := newTestServer(t)

	items := make([]string, maxBatchItems+1)
	for i := range items {
		items[i] = fmt.Sprintf(`{"text": "item %d"}`, i)
	}
	body := fmt.Sprintf(`{"items": [%s]}`, strings.Join(items, ","))
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/batch", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTrain_RetrainsClassifier(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/train", `{
		"examples": [
			{"text": "splendid marvelous day", "label": "positive"},
			{"text": "dreadful gloomy day", "label": "negative"},
			{"text": "a day", "label": "neutral"}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"trained":3`)
}

func TestHandleTrain_RejectsUnknownLabel(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/train",
		`{"examples": [{"text": "odd", "label": "mixed"}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleOrchestratorMetrics_ReportsCounters(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/analyze", `{"text": "count me"}`)
	doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/analyze", `{"text": "count me"}`)

	rec := doJSON(t, srv, http.MethodGet, "/api/v1/sentiment/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var report orchestrator.MetricsReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, uint64(2), report.TotalRequests)
	assert.Equal(t, uint64(1), report.CacheHits)
}

func TestHandleResetMetrics_ZeroesCounters(t *testing.T) {
	srv := newTestServer(t)

	doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/analyze", `{"text": "count me"}`)
	rec := doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/metrics/reset", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/v1/sentiment/metrics", "")
	var report orchestrator.MetricsReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Zero(t, report.TotalRequests)
}

func TestHandleHealth_ReportsOK(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestPrometheusMetricsEndpoint_Exposed(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, srv, http.MethodPost, "/api/v1/sentiment/analyze", `{"text": "warm up the counters"}`)

	rec := doJSON(t, srv, http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "analysis_requests_total")
}
