package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
)

func lexPred(label domain.Label, score, confidence float64) domain.WeightedPrediction {
	return domain.WeightedPrediction{
		Prediction: domain.ModelPrediction{
			Label: label, Score: score, Confidence: confidence,
			Method: domain.MethodLexicon,
		},
		Weight: 0.5,
	}
}

func statPred(label domain.Label, score, confidence float64) domain.WeightedPrediction {
	return domain.WeightedPrediction{
		Prediction: domain.ModelPrediction{
			Label: label, Score: score, Confidence: confidence,
			Method: domain.MethodStatistical,
		},
		Weight: 0.5,
	}
}

func TestCombiner_EmptyPredictionsRejected(t *testing.T) {
	combiner := NewCombiner()

	_, err := combiner.Combine("some text", "en", nil, true)

	assert.ErrorIs(t, err, domain.ErrNoPredictors)
}

func TestCombiner_AgreeingPredictorsKeepLabel(t *testing.T) {
	combiner := NewCombiner()
	preds := []domain.WeightedPrediction{
		lexPred(domain.LabelPositive, 0.6, 0.8),
		statPred(domain.LabelPositive, 0.4, 0.7),
	}

	result, err := combiner.Combine("a perfectly ordinary sentence about things", "en", preds, true)

	require.NoError(t, err)
	assert.Equal(t, domain.LabelPositive, result.Label)
	assert.Greater(t, result.Score, 0.15)
	assert.False(t, result.SarcasmOverride)
}

func TestCombiner_SarcasmOverrideFlipsPositive(t *testing.T) {
	combiner := NewCombiner()
	preds := []domain.WeightedPrediction{
		lexPred(domain.LabelPositive, 0.5, 0.9),
		statPred(domain.LabelPositive, 0.5, 0.8),
	}

	// Two sarcasm patterns fire for this sentence, exceeding the indicator
	// threshold, and the predictors lean positive.
	result, err := combiner.Combine("Oh great, another bug in the app. Just perfect!", "en", preds, true)

	require.NoError(t, err)
	assert.True(t, result.SarcasmOverride)
	assert.Equal(t, domain.LabelNegative, result.Label)
	assert.Less(t, result.Score, 0.0)
	assert.Equal(t, sarcasmThreshold, result.Threshold)
	assert.NotEmpty(t, result.Explanation)
}

func TestCombiner_SarcasmOverrideKeepsConfidence(t *testing.T) {
	combiner := NewCombiner()
	preds := []domain.WeightedPrediction{
		lexPred(domain.LabelPositive, 0.5, 0.9),
		statPred(domain.LabelPositive, 0.5, 0.9),
	}

	result, err := combiner.Combine("Oh great, another bug in the app. Just perfect!", "en", preds, true)

	require.NoError(t, err)
	// The override flips the label without dampening confidence.
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
}

func TestCombiner_SarcasmDisabledSkipsOverride(t *testing.T) {
	combiner := NewCombiner()
	preds := []domain.WeightedPrediction{
		lexPred(domain.LabelPositive, 0.5, 0.9),
		statPred(domain.LabelPositive, 0.5, 0.8),
	}

	result, err := combiner.Combine("Oh great, another bug in the app. Just perfect!", "en", preds, false)

	require.NoError(t, err)
	assert.False(t, result.SarcasmOverride)
	assert.Equal(t, domain.LabelPositive, result.Label)
	assert.Equal(t, baseThreshold, result.Threshold)
}

func TestCombiner_SarcasmWithoutPositiveSignalNoOverride(t *testing.T) {
	combiner := NewCombiner()
	preds := []domain.WeightedPrediction{
		lexPred(domain.LabelNegative, -0.4, 0.8),
		statPred(domain.LabelNegative, -0.3, 0.7),
	}

	result, err := combiner.Combine("Oh great, another bug in the app. Just perfect!", "en", preds, true)

	require.NoError(t, err)
	// Already negative with no positive evidence: nothing to override.
	assert.False(t, result.SarcasmOverride)
	assert.Equal(t, domain.LabelNegative, result.Label)
}

func TestCombiner_ShortTextShiftsWeightToLexicon(t *testing.T) {
	combiner := NewCombiner()
	// Predictors disagree: lexicon positive, statistical negative. With equal
	// base weights the scores cancel; the short-text shift must tip the
	// result toward the lexicon.
	preds := []domain.WeightedPrediction{
		lexPred(domain.LabelPositive, 0.8, 0.8),
		statPred(domain.LabelNegative, -0.8, 0.8),
	}

	result, err := combiner.Combine("nice work", "en", preds, true)

	require.NoError(t, err)
	assert.Greater(t, result.Score, 0.0)
}

func TestCombiner_EmojiShiftsWeightToLexicon(t *testing.T) {
	combiner := NewCombiner()
	preds := []domain.WeightedPrediction{
		lexPred(domain.LabelPositive, 0.8, 0.8),
		statPred(domain.LabelNegative, -0.8, 0.8),
	}

	neutralText := "the quarterly report was filed on time yesterday afternoon"
	emojiText := "the quarterly report was filed on time yesterday afternoon 🎉"

	base, err := combiner.Combine(neutralText, "en", preds, true)
	require.NoError(t, err)
	withEmoji, err := combiner.Combine(emojiText, "en", preds, true)
	require.NoError(t, err)

	assert.Greater(t, withEmoji.Score, base.Score)
}

func TestCombiner_SinglePredictorPassesThrough(t *testing.T) {
	combiner := NewCombiner()
	preds := []domain.WeightedPrediction{
		lexPred(domain.LabelNegative, -0.6, 0.85),
	}

	result, err := combiner.Combine("a lone predictor result", "en", preds, true)

	require.NoError(t, err)
	assert.Equal(t, domain.LabelNegative, result.Label)
	assert.InDelta(t, -0.6, result.Score, 1e-9)
	assert.InDelta(t, 0.85, result.Confidence, 1e-9)
}

func TestCombiner_ZeroScoreFallsBackToLabelMapping(t *testing.T) {
	combiner := NewCombiner()
	preds := []domain.WeightedPrediction{
		{
			Prediction: domain.ModelPrediction{
				Label: domain.LabelPositive, Confidence: 0.8,
				Method: domain.MethodExternal,
			},
			Weight: 1,
		},
	}

	result, err := combiner.Combine("label only, no native score", "en", preds, true)

	require.NoError(t, err)
	assert.Equal(t, domain.LabelPositive, result.Label)
	assert.InDelta(t, labelScorePositive, result.Score, 1e-9)
}

func TestCombiner_NearThresholdStaysNeutral(t *testing.T) {
	combiner := NewCombiner()
	preds := []domain.WeightedPrediction{
		lexPred(domain.LabelNeutral, 0.1, 0.5),
		statPred(domain.LabelNeutral, 0.1, 0.5),
	}

	result, err := combiner.Combine("the quarterly report was filed on time yesterday", "en", preds, true)

	require.NoError(t, err)
	assert.Equal(t, domain.LabelNeutral, result.Label)
}

func TestCombiner_WeightsRenormalizedAfterClamping(t *testing.T) {
	combiner := NewCombiner()
	// Heavily skewed base weights plus shifts must still yield a bounded
	// combined score.
	preds := []domain.WeightedPrediction{
		{Prediction: domain.ModelPrediction{Label: domain.LabelPositive, Score: 1, Confidence: 1, Method: domain.MethodLexicon}, Weight: 10},
		{Prediction: domain.ModelPrediction{Label: domain.LabelNegative, Score: -1, Confidence: 1, Method: domain.MethodStatistical}, Weight: 0.001},
	}

	result, err := combiner.Combine("short 😊", "en", preds, true)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Score, -1.0)
	assert.LessOrEqual(t, result.Score, 1.0)
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}
