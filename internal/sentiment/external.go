package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/failsafe-go/failsafe-go/timeout"
	openai "github.com/sashabaranov/go-openai"

	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/domain"
	"github.com/mrlocky97/SentimentalSocialNextJS-sub001/internal/metrics"
)

const (
	externalCallTimeout = 10 * time.Second
	externalMaxRetries  = 2
)

const externalSystemPrompt = `You are a sentiment classifier for short social media posts.
Respond with a single JSON object: {"label": "positive"|"negative"|"neutral", "score": number in [-1,1], "confidence": number in [0,1]}.
No prose, JSON only.`

// chatCompleter is the subset of the OpenAI client used by the predictor.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ExternalPredictor asks a pretrained language model for a classification.
// Retries and a per-call timeout are handled here; the caller treats any
// returned error as "predictor unavailable" and carries on without it.
type ExternalPredictor struct {
	client   chatCompleter
	model    string
	policies []failsafe.Policy[openai.ChatCompletionResponse]
}

// NewExternalPredictor wires an OpenAI-backed predictor.
func NewExternalPredictor(apiKey, model string) *ExternalPredictor {
	return newExternalPredictor(openai.NewClient(apiKey), model)
}

func newExternalPredictor(client chatCompleter, model string) *ExternalPredictor {
	retry := retrypolicy.Builder[openai.ChatCompletionResponse]().
		WithBackoff(500*time.Millisecond, 4*time.Second).
		WithMaxRetries(externalMaxRetries).
		Build()

	return &ExternalPredictor{
		client: client,
		model:  model,
		policies: []failsafe.Policy[openai.ChatCompletionResponse]{
			retry,
			timeout.With[openai.ChatCompletionResponse](externalCallTimeout),
		},
	}
}

type externalVerdict struct {
	Label      string  `json:"label"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// Predict implements domain.Predictor.
func (p *ExternalPredictor) Predict(ctx context.Context, text, _ string) (domain.ModelPrediction, error) {
	resp, err := failsafe.Get(func() (openai.ChatCompletionResponse, error) {
		return p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       p.model,
			Temperature: 0,
			MaxTokens:   64,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: externalSystemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: text},
			},
		})
	}, p.policies...)
	if err != nil {
		metrics.ExternalPredictorCalls.WithLabelValues("error").Inc()
		return domain.ModelPrediction{}, fmt.Errorf("external predictor call: %w", err)
	}

	prediction, err := parseVerdict(resp)
	if err != nil {
		metrics.ExternalPredictorCalls.WithLabelValues("error").Inc()
		slog.WarnContext(ctx, "External predictor returned malformed verdict", "error", err)
		return domain.ModelPrediction{}, err
	}

	metrics.ExternalPredictorCalls.WithLabelValues("success").Inc()
	return prediction, nil
}

func parseVerdict(resp openai.ChatCompletionResponse) (domain.ModelPrediction, error) {
	if len(resp.Choices) == 0 {
		return domain.ModelPrediction{}, fmt.Errorf("external predictor returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	// Some models wrap JSON in code fences despite instructions.
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var verdict externalVerdict
	if err := json.Unmarshal([]byte(content), &verdict); err != nil {
		return domain.ModelPrediction{}, fmt.Errorf("decode external verdict: %w", err)
	}

	label := domain.Label(strings.ToLower(verdict.Label))
	if !validLabel(label) {
		return domain.ModelPrediction{}, fmt.Errorf("external verdict has unknown label %q", verdict.Label)
	}

	return domain.ModelPrediction{
		Label:      label,
		Score:      clamp(verdict.Score, -1, 1),
		Confidence: clamp(verdict.Confidence, 0, 1),
		Method:     domain.MethodExternal,
	}, nil
}
