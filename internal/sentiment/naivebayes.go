package sentiment

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/bbalet/stopwords"
	"gonum.org/v1/gonum/floats"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
)

// classOrder fixes iteration order so predictions are deterministic.
var classOrder = []domain.Label{domain.LabelPositive, domain.LabelNegative, domain.LabelNeutral}

const defaultSmoothing = 1.0

// Classifier is a Naive Bayes bag-of-words predictor with Laplace smoothing.
// Train replaces all state; Snapshot/Restore round-trip it losslessly.
// Safe for concurrent use.
type Classifier struct {
	mu          sync.RWMutex
	vocabulary  map[string]struct{}
	tokenCounts map[domain.Label]map[string]int
	classTokens map[domain.Label]int
	docCounts   map[domain.Label]int
	totalDocs   int
	smoothing   float64
}

// ClassifierState is the serializable form of a trained classifier.
type ClassifierState struct {
	Vocabulary  []string                        `json:"vocabulary"`
	TokenCounts map[domain.Label]map[string]int `json:"tokenCounts"`
	DocCounts   map[domain.Label]int            `json:"docCounts"`
	TotalDocs   int                             `json:"totalDocs"`
	Smoothing   float64                         `json:"smoothing"`
}

// NewClassifier creates an untrained classifier. Until Train is called every
// prediction is the uniform neutral fallback.
func NewClassifier() *Classifier {
	c := &Classifier{smoothing: defaultSmoothing}
	c.reset()
	return c
}

func (c *Classifier) reset() {
	c.vocabulary = make(map[string]struct{})
	c.tokenCounts = make(map[domain.Label]map[string]int, len(classOrder))
	c.classTokens = make(map[domain.Label]int, len(classOrder))
	c.docCounts = make(map[domain.Label]int, len(classOrder))
	for _, label := range classOrder {
		c.tokenCounts[label] = make(map[string]int)
	}
	c.totalDocs = 0
}

// Train discards all prior state and rebuilds counts from the ordered
// example list.
func (c *Classifier) Train(examples []domain.TrainingExample) error {
	for i, ex := range examples {
		if !validLabel(ex.Label) {
			return fmt.Errorf("training example %d has unknown label %q", i, ex.Label)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset()
	for _, ex := range examples {
		tokens := classifierTokens(ex.Text, domain.DefaultLanguage)
		for _, tok := range tokens {
			c.vocabulary[tok] = struct{}{}
			c.tokenCounts[ex.Label][tok]++
			c.classTokens[ex.Label]++
		}
		c.docCounts[ex.Label]++
		c.totalDocs++
	}
	return nil
}

// Predict implements domain.Predictor. Empty or untrained input yields the
// uniform neutral prediction.
func (c *Classifier) Predict(_ context.Context, text, language string) (domain.ModelPrediction, error) {
	tokens := classifierTokens(text, normalizeLanguage(language))

	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(tokens) == 0 || c.totalDocs == 0 {
		return uniformPrediction(), nil
	}

	logScores := make([]float64, len(classOrder))
	vocabSize := float64(len(c.vocabulary))
	numClasses := float64(len(classOrder))

	for i, label := range classOrder {
		prior := (float64(c.docCounts[label]) + c.smoothing) /
			(float64(c.totalDocs) + c.smoothing*numClasses)
		logScore := math.Log(prior)

		denom := float64(c.classTokens[label]) + c.smoothing*vocabSize
		for _, tok := range tokens {
			likelihood := (float64(c.tokenCounts[label][tok]) + c.smoothing) / denom
			logScore += math.Log(likelihood)
		}
		logScores[i] = logScore
	}

	// Convert log-scores to probabilities: subtract the max, exponentiate,
	// and normalize by the sum.
	maxLog := floats.Max(logScores)
	probs := make([]float64, len(logScores))
	for i, ls := range logScores {
		probs[i] = math.Exp(ls - maxLog)
	}
	floats.Scale(1/floats.Sum(probs), probs)

	bestIdx := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[bestIdx] {
			bestIdx = i
		}
	}

	return domain.ModelPrediction{
		Label:      classOrder[bestIdx],
		Confidence: probs[bestIdx],
		Score:      probs[0] - probs[1], // P(positive) - P(negative)
		Method:     domain.MethodStatistical,
	}, nil
}

// Snapshot captures the current state with a sorted vocabulary for stable
// serialization.
func (c *Classifier) Snapshot() ClassifierState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	vocab := make([]string, 0, len(c.vocabulary))
	for tok := range c.vocabulary {
		vocab = append(vocab, tok)
	}
	sort.Strings(vocab)

	tokenCounts := make(map[domain.Label]map[string]int, len(classOrder))
	docCounts := make(map[domain.Label]int, len(classOrder))
	for _, label := range classOrder {
		counts := make(map[string]int, len(c.tokenCounts[label]))
		for tok, n := range c.tokenCounts[label] {
			counts[tok] = n
		}
		tokenCounts[label] = counts
		docCounts[label] = c.docCounts[label]
	}

	return ClassifierState{
		Vocabulary:  vocab,
		TokenCounts: tokenCounts,
		DocCounts:   docCounts,
		TotalDocs:   c.totalDocs,
		Smoothing:   c.smoothing,
	}
}

// Restore replaces the classifier state with a previously captured snapshot.
// Predictions after Restore are identical to those before Snapshot.
func (c *Classifier) Restore(state ClassifierState) error {
	for label := range state.TokenCounts {
		if !validLabel(label) {
			return fmt.Errorf("snapshot contains unknown label %q", label)
		}
	}
	for label := range state.DocCounts {
		if !validLabel(label) {
			return fmt.Errorf("snapshot contains unknown label %q", label)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.reset()
	if state.Smoothing > 0 {
		c.smoothing = state.Smoothing
	}
	for _, tok := range state.Vocabulary {
		c.vocabulary[tok] = struct{}{}
	}
	for label, counts := range state.TokenCounts {
		for tok, n := range counts {
			c.tokenCounts[label][tok] = n
			c.classTokens[label] += n
			c.vocabulary[tok] = struct{}{}
		}
	}
	for label, n := range state.DocCounts {
		c.docCounts[label] = n
	}
	c.totalDocs = state.TotalDocs
	return nil
}

// VocabularySize returns the number of distinct trained tokens.
func (c *Classifier) VocabularySize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.vocabulary)
}

func uniformPrediction() domain.ModelPrediction {
	return domain.ModelPrediction{
		Label:      domain.LabelNeutral,
		Confidence: 1.0 / 3.0,
		Score:      0,
		Method:     domain.MethodStatistical,
	}
}

// classifierTokens lowercases, strips punctuation, splits on whitespace, and
// drops stop-words for the given language.
func classifierTokens(text, lang string) []string {
	cleaned := stopwords.CleanString(strings.ToLower(text), lang, false)
	return strings.Fields(cleaned)
}

func validLabel(label domain.Label) bool {
	switch label {
	case domain.LabelPositive, domain.LabelNegative, domain.LabelNeutral:
		return true
	}
	return false
}
