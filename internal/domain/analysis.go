package domain

import "strings"

// Label is a discrete sentiment class.
type Label string

const (
	LabelPositive Label = "positive"
	LabelNegative Label = "negative"
	LabelNeutral  Label = "neutral"
)

// DefaultLanguage is assumed when a request does not specify one.
const DefaultLanguage = "en"

// MaxTextLength is the hard input bound enforced before analysis.
const MaxTextLength = 10_000

// AnalysisRequest describes a single piece of text to classify.
type AnalysisRequest struct {
	Text                 string `json:"text"`
	Language             string `json:"language,omitempty"`
	SarcasmDetection     *bool  `json:"sarcasmDetectionEnabled,omitempty"`
	ContextWindowEnabled *bool  `json:"contextWindowEnabled,omitempty"`
	MaxTokens            int    `json:"maxTokens,omitempty"`
}

// Normalized returns a copy with defaults applied: trimmed text, lowercase
// language falling back to "en", and sarcasm detection enabled unless the
// caller switched it off. Cache fingerprints are derived from this form.
func (r AnalysisRequest) Normalized() AnalysisRequest {
	out := r
	out.Text = strings.TrimSpace(r.Text)
	out.Language = strings.ToLower(strings.TrimSpace(r.Language))
	if out.Language == "" {
		out.Language = DefaultLanguage
	}
	return out
}

// SarcasmEnabled reports whether sarcasm detection applies to this request.
// It defaults to true.
func (r AnalysisRequest) SarcasmEnabled() bool {
	return r.SarcasmDetection == nil || *r.SarcasmDetection
}

// ContextualFeatures captures text-level context used for ensemble reweighting.
// Extraction is pure and deterministic; empty text yields the zero value with
// the language filled in.
type ContextualFeatures struct {
	TextLength        int     `json:"textLength"`
	HasEmojis         bool    `json:"hasEmojis"`
	HasExclamation    bool    `json:"hasExclamation"`
	HasQuestion       bool    `json:"hasQuestion"`
	EmotionalWords    int     `json:"emotionalWords"`
	SarcasmIndicators int     `json:"sarcasmIndicators"`
	SarcasmScore      float64 `json:"sarcasmScore"`
	Language          string  `json:"language"`
	Complexity        float64 `json:"complexity"`
}

// ModelPrediction is the output of a single predictor.
type ModelPrediction struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
	Score      float64 `json:"score"`
	Method     string  `json:"method"`
}

// EmotionScores breaks the overall sentiment into basic emotions. Each value
// lies in [0,1] and is derived deterministically from score and confidence.
type EmotionScores struct {
	Joy      float64 `json:"joy"`
	Sadness  float64 `json:"sadness"`
	Anger    float64 `json:"anger"`
	Fear     float64 `json:"fear"`
	Surprise float64 `json:"surprise"`
	Disgust  float64 `json:"disgust"`
}

// Sentiment is the calibrated classification of one text.
type Sentiment struct {
	Label      Label         `json:"label"`
	Score      float64       `json:"score"`
	Magnitude  float64       `json:"magnitude"`
	Confidence float64       `json:"confidence"`
	Emotions   EmotionScores `json:"emotions"`
}

// Signals exposes the intermediate evidence behind a result, for audits.
type Signals struct {
	TokenCount       int     `json:"tokenCount"`
	NegationFlips    int     `json:"negationFlips"`
	IntensifierBoost float64 `json:"intensifierBoost"`
	SarcasmScore     float64 `json:"sarcasmScore"`
}

// AnalysisResult is the complete outcome of analyzing one request.
type AnalysisResult struct {
	Sentiment Sentiment `json:"sentiment"`
	Keywords  []string  `json:"keywords"`
	Language  string    `json:"language"`
	Signals   Signals   `json:"signals"`
	Version   string    `json:"version"`
}

// Result versions. The +llm suffix marks results the external predictor
// contributed to.
const (
	VersionHybrid    = "hybrid-v2"
	VersionHybridLLM = "hybrid-v2+llm"
)

// LabelForScore maps a continuous score to a label using the fixed thresholds
// shared by every predictor.
func LabelForScore(score float64) Label {
	switch {
	case score > 0.15:
		return LabelPositive
	case score < -0.15:
		return LabelNegative
	default:
		return LabelNeutral
	}
}
