package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
)

type stubPredictor struct {
	prediction domain.ModelPrediction
	err        error
}

func (s *stubPredictor) Predict(context.Context, string, string) (domain.ModelPrediction, error) {
	return s.prediction, s.err
}

func newTestEngine(t *testing.T, external domain.Predictor) *Engine {
	t.Helper()
	engine := NewEngine(NewLexiconScorer(), NewClassifier(), external)
	require.NoError(t, engine.Train(classifierCorpus()))
	return engine
}

func TestEngine_NilRequestRejected(t *testing.T) {
	engine := newTestEngine(t, nil)

	_, err := engine.Analyze(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrNilRequest)
}

func TestEngine_EmptyTextIsFailSoft(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Analyze(context.Background(), &domain.AnalysisRequest{Text: "   "})

	require.NoError(t, err)
	assert.Equal(t, domain.LabelNeutral, result.Sentiment.Label)
	assert.Less(t, result.Sentiment.Confidence, 0.5)
	assert.Equal(t, domain.DefaultLanguage, result.Language)
}

func TestEngine_PositiveText(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Analyze(context.Background(), &domain.AnalysisRequest{
		Text: "I love this product! It's amazing!",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.LabelPositive, result.Sentiment.Label)
	assert.Greater(t, result.Sentiment.Confidence, 0.6)
	assert.Equal(t, domain.VersionHybrid, result.Version)
	assert.InDelta(t, result.Sentiment.Magnitude, result.Sentiment.Score, 1e-9)
	assert.Greater(t, result.Sentiment.Emotions.Joy, 0.0)
}

func TestEngine_NegativeText(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Analyze(context.Background(), &domain.AnalysisRequest{
		Text: "This is the worst purchase I've ever made",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.LabelNegative, result.Sentiment.Label)
	assert.Less(t, result.Sentiment.Score, 0.0)
	assert.Greater(t, result.Sentiment.Magnitude, 0.0)
}

func TestEngine_NeutralText(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Analyze(context.Background(), &domain.AnalysisRequest{
		Text: "The package arrived today.",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.LabelNeutral, result.Sentiment.Label)
}

func TestEngine_SarcasticTextForcedNegative(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Analyze(context.Background(), &domain.AnalysisRequest{
		Text: "Oh great, another bug in the app. Just perfect!",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.LabelNegative, result.Sentiment.Label)
	assert.Greater(t, result.Signals.SarcasmScore, 0.0)
}

func TestEngine_SarcasmCanBeDisabled(t *testing.T) {
	engine := newTestEngine(t, nil)
	disabled := false

	result, err := engine.Analyze(context.Background(), &domain.AnalysisRequest{
		Text:             "Oh great, another bug in the app. Just perfect!",
		SarcasmDetection: &disabled,
	})

	require.NoError(t, err)
	// "great" and "perfect" outweigh "bug" once the override is off.
	assert.Equal(t, domain.LabelPositive, result.Sentiment.Label)
}

func TestEngine_ExternalPredictorJoinsEnsemble(t *testing.T) {
	external := &stubPredictor{prediction: domain.ModelPrediction{
		Label: domain.LabelPositive, Score: 0.9, Confidence: 0.95,
		Method: domain.MethodExternal,
	}}
	engine := newTestEngine(t, external)

	result, err := engine.Analyze(context.Background(), &domain.AnalysisRequest{
		Text: "I love this product! It's amazing!",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.VersionHybridLLM, result.Version)
	assert.Equal(t, domain.LabelPositive, result.Sentiment.Label)
}

func TestEngine_ExternalFailureFallsBackToLocal(t *testing.T) {
	external := &stubPredictor{err: errors.New("rate limited")}
	engine := newTestEngine(t, external)

	result, err := engine.Analyze(context.Background(), &domain.AnalysisRequest{
		Text: "I love this product! It's amazing!",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.VersionHybrid, result.Version)
	assert.Equal(t, domain.LabelPositive, result.Sentiment.Label)
}

func TestEngine_DetectsLanguageWhenUnspecified(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Analyze(context.Background(), &domain.AnalysisRequest{
		Text: "pero este producto es muy bueno y me encanta",
	})

	require.NoError(t, err)
	assert.Equal(t, "es", result.Language)
}

func TestEngine_RespectsRequestedLanguage(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Analyze(context.Background(), &domain.AnalysisRequest{
		Text:     "me encanta este producto excelente",
		Language: "es",
	})

	require.NoError(t, err)
	assert.Equal(t, "es", result.Language)
	assert.Equal(t, domain.LabelPositive, result.Sentiment.Label)
}

func TestEngine_SignalsExposed(t *testing.T) {
	engine := newTestEngine(t, nil)

	result, err := engine.Analyze(context.Background(), &domain.AnalysisRequest{
		Text: "this is not good but very fast",
	})

	require.NoError(t, err)
	assert.Greater(t, result.Signals.TokenCount, 0)
	assert.Equal(t, 1, result.Signals.NegationFlips)
	assert.Greater(t, result.Signals.IntensifierBoost, 0.0)
}

func TestEngine_Deterministic(t *testing.T) {
	engine := newTestEngine(t, nil)
	req := &domain.AnalysisRequest{Text: "I love this product! It's amazing!"}

	first, err := engine.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := engine.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
