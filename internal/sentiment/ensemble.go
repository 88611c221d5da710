package sentiment

import (
	"fmt"
	"math"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/metrics"
)

// Contextual reweighting parameters. Adjustments shift base weight between
// predictors before combining; adjusted weights are clamped and renormalized.
const (
	sarcasmWeightShift    = 0.25
	shortTextWeightShift  = 0.15
	longTextWeightShift   = 0.20
	emotionalWeightShift  = 0.10
	emojiWeightShift      = 0.15
	minPredictorWeight    = 0.1
	maxPredictorWeight    = 0.9
	shortTextLimit        = 50
	longTextLimit         = 200
	complexTextThreshold  = 0.8
	emotionalWordsLimit   = 2
	sarcasmIndicatorLimit = 1

	baseThreshold    = 0.15
	sarcasmThreshold = 0.18

	// Score assumed for a label when a predictor reports no native score.
	labelScorePositive = 0.7
	labelScoreNegative = -0.7
)

// EnsembleResult is the calibrated combination of all predictor outputs.
type EnsembleResult struct {
	Label           domain.Label
	Score           float64
	Confidence      float64
	Threshold       float64
	Features        domain.ContextualFeatures
	SarcasmOverride bool
	Explanation     []string
}

// Combiner merges weighted predictions into one calibrated result. It is
// generic over (prediction, weight) pairs and does not know which concrete
// predictors produced them beyond their reported method names.
type Combiner struct{}

// NewCombiner creates an ensemble combiner.
func NewCombiner() *Combiner {
	return &Combiner{}
}

// Combine runs the full ensemble pipeline: feature extraction, weight
// normalization, contextual reweighting, weighted combination, thresholding,
// and the sarcasm override. An empty prediction list is an invalid input.
// A single prediction still passes through the whole pipeline.
func (c *Combiner) Combine(text, language string, preds []domain.WeightedPrediction, sarcasmEnabled bool) (*EnsembleResult, error) {
	if len(preds) == 0 {
		return nil, domain.ErrNoPredictors
	}

	features := ExtractFeatures(text, language)
	sarcastic := sarcasmEnabled && features.SarcasmIndicators > sarcasmIndicatorLimit

	weights := normalizeWeights(preds)
	scores := make([]float64, len(preds))
	for i, p := range preds {
		scores[i] = nativeScore(p.Prediction)
	}

	result := &EnsembleResult{Features: features}
	c.reweight(weights, preds, features, sarcastic, result)

	clampWeights(weights)
	renormalize(weights)

	weightedScore := 0.0
	weightedConfidence := 0.0
	for i := range preds {
		weightedScore += weights[i] * scores[i]
		weightedConfidence += weights[i] * preds[i].Prediction.Confidence
	}

	threshold := baseThreshold
	if sarcastic {
		threshold = sarcasmThreshold
	}
	result.Threshold = threshold

	label := domain.LabelNeutral
	switch {
	case weightedScore > threshold:
		label = domain.LabelPositive
	case weightedScore < -threshold:
		label = domain.LabelNegative
	}

	// Sarcasm override: takes precedence over the ensemble score. The
	// confidence deliberately stays the weighted average from the combination
	// step, even when it now disagrees with the flipped label.
	if sarcastic && (anyPositive(preds) || weightedScore > 0.05) {
		label = domain.LabelNegative
		weightedScore = -math.Abs(weightedScore)
		result.SarcasmOverride = true
		result.Explanation = append(result.Explanation,
			fmt.Sprintf("sarcasm override: %d indicators forced a negative label", features.SarcasmIndicators))
		metrics.SarcasmOverridesTotal.Inc()
	}

	result.Label = label
	result.Score = clamp(weightedScore, -1, 1)
	result.Confidence = clamp(weightedConfidence, 0, 1)

	return result, nil
}

// reweight applies the contextual adjustments to the normalized base weights
// in place, recording an explanation for every rule that fired.
func (c *Combiner) reweight(weights []float64, preds []domain.WeightedPrediction, features domain.ContextualFeatures, sarcastic bool, result *EnsembleResult) {
	lexIdx := indexOfMethod(preds, domain.MethodLexicon)
	statIdx := indexOfMethod(preds, domain.MethodStatistical)
	havePair := lexIdx >= 0 && statIdx >= 0

	if sarcastic && havePair {
		transfer(weights, statIdx, lexIdx, sarcasmWeightShift)
		result.Explanation = append(result.Explanation,
			"sarcasm indicators shifted weight toward the lexicon predictor")
	}

	if features.TextLength > 0 && features.TextLength < shortTextLimit && havePair {
		transfer(weights, statIdx, lexIdx, shortTextWeightShift)
		result.Explanation = append(result.Explanation,
			"short text favored the lexicon predictor")
	}

	if features.TextLength > longTextLimit && features.Complexity > complexTextThreshold && havePair {
		transfer(weights, lexIdx, statIdx, longTextWeightShift)
		result.Explanation = append(result.Explanation,
			"long complex text favored the statistical predictor")
	}

	if features.EmotionalWords > emotionalWordsLimit && len(preds) > 1 {
		best := 0
		for i := range preds {
			if preds[i].Prediction.Confidence > preds[best].Prediction.Confidence {
				best = i
			}
		}
		share := emotionalWeightShift / float64(len(preds)-1)
		for i := range weights {
			if i == best {
				continue
			}
			transfer(weights, i, best, share)
		}
		result.Explanation = append(result.Explanation,
			fmt.Sprintf("emotional language favored the most confident predictor (%s)", preds[best].Prediction.Method))
	}

	if features.HasEmojis && havePair {
		transfer(weights, statIdx, lexIdx, emojiWeightShift)
		result.Explanation = append(result.Explanation,
			"emoji presence favored the lexicon predictor")
	}
}

// nativeScore uses the predictor's own score when it reports one; otherwise
// the label is mapped to a fixed score.
func nativeScore(p domain.ModelPrediction) float64 {
	if p.Score != 0 {
		return p.Score
	}
	switch p.Label {
	case domain.LabelPositive:
		return labelScorePositive
	case domain.LabelNegative:
		return labelScoreNegative
	default:
		return 0
	}
}

func normalizeWeights(preds []domain.WeightedPrediction) []float64 {
	weights := make([]float64, len(preds))
	sum := 0.0
	for i, p := range preds {
		weights[i] = p.Weight
		sum += p.Weight
	}
	if sum <= 0 {
		for i := range weights {
			weights[i] = 1 / float64(len(weights))
		}
		return weights
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}

func transfer(weights []float64, from, to int, amount float64) {
	weights[from] -= amount
	weights[to] += amount
}

func clampWeights(weights []float64) {
	if len(weights) < 2 {
		weights[0] = 1
		return
	}
	for i := range weights {
		weights[i] = clamp(weights[i], minPredictorWeight, maxPredictorWeight)
	}
}

func renormalize(weights []float64) {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum == 0 {
		return
	}
	for i := range weights {
		weights[i] /= sum
	}
}

func indexOfMethod(preds []domain.WeightedPrediction, method string) int {
	for i, p := range preds {
		if p.Prediction.Method == method {
			return i
		}
	}
	return -1
}

func anyPositive(preds []domain.WeightedPrediction) bool {
	for _, p := range preds {
		if p.Prediction.Label == domain.LabelPositive {
			return true
		}
	}
	return false
}
