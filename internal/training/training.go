// Package training supplies labeled examples for the statistical classifier:
// a JSON file loader for operator-provided corpora and a built-in seed corpus
// so the service classifies sensibly before any data is supplied.
package training

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
)

// LoadFile reads an ordered training corpus from a JSON file: an array of
// {"text": ..., "label": ...} objects. Order is preserved.
func LoadFile(path string) ([]domain.TrainingExample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read training data: %w", err)
	}

	var examples []domain.TrainingExample
	if err := json.Unmarshal(data, &examples); err != nil {
		return nil, fmt.Errorf("decode training data %s: %w", path, err)
	}

	for i, ex := range examples {
		if ex.Text == "" {
			return nil, fmt.Errorf("training example %d has empty text", i)
		}
		switch ex.Label {
		case domain.LabelPositive, domain.LabelNegative, domain.LabelNeutral:
		default:
			return nil, fmt.Errorf("training example %d has unknown label %q", i, ex.Label)
		}
	}
	return examples, nil
}

// Seed returns the built-in corpus. It is intentionally small; operators are
// expected to retrain with real data via the training endpoint.
func Seed() []domain.TrainingExample {
	return []domain.TrainingExample{
		{Text: "I love this product it works perfectly and arrived fast", Label: domain.LabelPositive},
		{Text: "amazing quality highly recommend to everyone", Label: domain.LabelPositive},
		{Text: "excellent customer service very happy with my purchase", Label: domain.LabelPositive},
		{Text: "best decision ever the app is smooth and reliable", Label: domain.LabelPositive},
		{Text: "great value wonderful experience will buy again", Label: domain.LabelPositive},
		{Text: "fantastic update everything feels faster now", Label: domain.LabelPositive},
		{Text: "this is the worst purchase I have ever made", Label: domain.LabelNegative},
		{Text: "terrible quality broke after two days total waste of money", Label: domain.LabelNegative},
		{Text: "awful support nobody answers and the app keeps crashing", Label: domain.LabelNegative},
		{Text: "disappointed and frustrated the update made everything slower", Label: domain.LabelNegative},
		{Text: "useless feature full of bugs do not recommend", Label: domain.LabelNegative},
		{Text: "horrible experience asking for a refund", Label: domain.LabelNegative},
		{Text: "the package arrived today", Label: domain.LabelNeutral},
		{Text: "the order contains three items and an invoice", Label: domain.LabelNeutral},
		{Text: "the store opens at nine on weekdays", Label: domain.LabelNeutral},
		{Text: "the update changes the settings menu layout", Label: domain.LabelNeutral},
		{Text: "shipping takes five business days to most regions", Label: domain.LabelNeutral},
		{Text: "the manual describes the installation steps", Label: domain.LabelNeutral},
	}
}
