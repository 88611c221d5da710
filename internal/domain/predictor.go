package domain

import "context"

// Predictor method names reported in ModelPrediction.Method.
const (
	MethodLexicon     = "lexicon"
	MethodStatistical = "naive-bayes"
	MethodExternal    = "llm"
)

// Predictor classifies a single text. Implementations must be safe for
// concurrent use; the scoring engine fans predictions out in parallel.
type Predictor interface {
	Predict(ctx context.Context, text, language string) (ModelPrediction, error)
}

// WeightedPrediction pairs a prediction with its base ensemble weight.
type WeightedPrediction struct {
	Prediction ModelPrediction
	Weight     float64
}

// TrainingExample is one labeled text in an ordered training sequence.
type TrainingExample struct {
	Text  string `json:"text"`
	Label Label  `json:"label"`
}

// Trainable is implemented by predictors whose state is rebuilt from labeled
// examples. Train discards all previous state.
type Trainable interface {
	Train(examples []TrainingExample) error
}
