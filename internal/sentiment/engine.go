package sentiment

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/metrics"
)

// Base ensemble weights. The external predictor, when it participates,
// carries half of the total weight.
const (
	baseWeightTwoWay   = 0.5
	baseWeightLocalLLM = 0.25
	baseWeightExternal = 0.5
)

// Low confidence reported for text the engine cannot analyze (empty after
// trimming). The engine stays fail-soft and never errors for such input.
const emptyTextConfidence = 0.2

// Engine composes the lexicon scorer, the statistical classifier, and the
// optional external predictor into a single Analyze call. The two local
// predictors always run concurrently; the external predictor is launched
// alongside them and never blocks them.
type Engine struct {
	lexicon    *LexiconScorer
	classifier *Classifier
	external   domain.Predictor
	combiner   *Combiner
}

// NewEngine builds a scoring engine. external may be nil to disable the
// language-model predictor.
func NewEngine(lexicon *LexiconScorer, classifier *Classifier, external domain.Predictor) *Engine {
	return &Engine{
		lexicon:    lexicon,
		classifier: classifier,
		external:   external,
		combiner:   NewCombiner(),
	}
}

// Train rebuilds the statistical classifier from the ordered example list,
// replacing all prior state.
func (e *Engine) Train(examples []domain.TrainingExample) error {
	if err := e.classifier.Train(examples); err != nil {
		return err
	}
	metrics.ClassifierVocabularySize.Set(float64(e.classifier.VocabularySize()))
	return nil
}

// Snapshot exposes the classifier state for persistence.
func (e *Engine) Snapshot() ClassifierState {
	return e.classifier.Snapshot()
}

// Restore replaces the classifier state from a snapshot.
func (e *Engine) Restore(state ClassifierState) error {
	return e.classifier.Restore(state)
}

type externalOutcome struct {
	prediction domain.ModelPrediction
	err        error
}

// Analyze classifies one request. It is fail-soft: empty or unanalyzable text
// yields a neutral low-confidence result, and an external predictor failure
// only removes that predictor from the ensemble. The only error returned for
// non-nil requests is none.
func (e *Engine) Analyze(ctx context.Context, req *domain.AnalysisRequest) (*domain.AnalysisResult, error) {
	if req == nil {
		return nil, domain.ErrNilRequest
	}

	norm := req.Normalized()
	if norm.Text == "" {
		return neutralResult(norm.Language), nil
	}

	var externalCh chan externalOutcome
	if e.external != nil {
		externalCh = make(chan externalOutcome, 1)
		go func() {
			pred, err := e.external.Predict(ctx, norm.Text, norm.Language)
			externalCh <- externalOutcome{prediction: pred, err: err}
		}()
	}

	var (
		lexAnalysis LexiconAnalysis
		statPred    domain.ModelPrediction
		wg          sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		lexAnalysis = e.lexicon.Analyze(norm.Text, norm.Language)
	}()
	go func() {
		defer wg.Done()
		statPred, _ = e.classifier.Predict(ctx, norm.Text, norm.Language)
	}()
	wg.Wait()

	version := domain.VersionHybrid
	preds := []domain.WeightedPrediction{
		{Prediction: lexAnalysis.Prediction, Weight: baseWeightTwoWay},
		{Prediction: statPred, Weight: baseWeightTwoWay},
	}

	if externalCh != nil {
		outcome := <-externalCh
		if outcome.err != nil {
			slog.WarnContext(ctx, "External predictor unavailable, falling back to local predictors",
				"error", outcome.err)
		} else {
			preds[0].Weight = baseWeightLocalLLM
			preds[1].Weight = baseWeightLocalLLM
			preds = append(preds, domain.WeightedPrediction{
				Prediction: outcome.prediction,
				Weight:     baseWeightExternal,
			})
			version = domain.VersionHybridLLM
		}
	}

	combined, err := e.combiner.Combine(norm.Text, norm.Language, preds, norm.SarcasmEnabled())
	if err != nil {
		return nil, err
	}

	language := norm.Language
	if req.Language == "" && lexAnalysis.DetectedLanguage != "" {
		language = lexAnalysis.DetectedLanguage
	}

	metrics.AnalysisLabelsTotal.WithLabelValues(string(combined.Label)).Inc()

	return &domain.AnalysisResult{
		Sentiment: domain.Sentiment{
			Label:      combined.Label,
			Score:      combined.Score,
			Magnitude:  math.Abs(combined.Score),
			Confidence: combined.Confidence,
			Emotions:   deriveEmotions(combined.Score, combined.Confidence, combined.Features),
		},
		Keywords: lexAnalysis.Keywords,
		Language: language,
		Signals: domain.Signals{
			TokenCount:       lexAnalysis.TokenCount,
			NegationFlips:    lexAnalysis.NegationFlips,
			IntensifierBoost: lexAnalysis.IntensifierBoost,
			SarcasmScore:     combined.Features.SarcasmScore,
		},
		Version: version,
	}, nil
}

// deriveEmotions maps the final score and confidence to emotion sub-scores
// through fixed thresholds. Deterministic by construction.
func deriveEmotions(score, confidence float64, features domain.ContextualFeatures) domain.EmotionScores {
	var emotions domain.EmotionScores

	switch {
	case score > 0.5:
		emotions.Joy = confidence
	case score > 0.15:
		emotions.Joy = confidence * 0.5
	}
	if score > 0.3 && features.HasExclamation {
		emotions.Surprise = confidence * 0.6
	}

	switch {
	case score < -0.5:
		emotions.Sadness = confidence
	case score < -0.15:
		emotions.Sadness = confidence * 0.5
	}
	if score < -0.4 && features.HasExclamation {
		emotions.Anger = confidence * 0.8
	}
	if score < -0.6 {
		emotions.Fear = confidence * 0.6
	}
	if score < -0.5 && features.EmotionalWords > 0 {
		emotions.Disgust = confidence * 0.5
	}

	return emotions
}

func neutralResult(language string) *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Sentiment: domain.Sentiment{
			Label:      domain.LabelNeutral,
			Confidence: emptyTextConfidence,
		},
		Keywords: []string{},
		Language: language,
		Version:  domain.VersionHybrid,
	}
}
