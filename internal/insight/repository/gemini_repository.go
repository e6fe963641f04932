package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"review-insight/internal/insight/config"
	"review-insight/internal/insight/dto"
	"review-insight/pkg/logger"

	"google.golang.org/genai"
)

// geminiRepository is a SentimentClassifier that prompts the Gemini API for
// a 3-class label and confidence.
type geminiRepository struct {
	cfg         *config.Config
	logger      *logger.Logger
	genAiClient *genai.Client
}

// NewGeminiRepository creates a SentimentClassifier backed by Gemini.
func NewGeminiRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) SentimentClassifier {
	return &geminiRepository{
		cfg:         cfg,
		logger:      log,
		genAiClient: genAiClient,
	}
}

type geminiSentimentResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func buildSentimentPrompt(text string) string {
	return fmt.Sprintf(`Classify the sentiment of the following customer review.
Respond with JSON only, no prose, in this exact shape:
{"label": "positive|negative|neutral", "score": <confidence between 0 and 1>}

Review:
%s`, text)
}

// Classify prompts Gemini and parses the JSON verdict.
func (r *geminiRepository) Classify(ctx context.Context, text string) (*dto.SentimentResult, error) {
	resp, err := r.genAiClient.Models.GenerateContent(
		ctx,
		r.cfg.Gemini.Model,
		genai.Text(buildSentimentPrompt(text)),
		nil,
	)
	if err != nil {
		r.logger.Error("Gemini request failed", logger.ErrorField(err))
		return nil, fmt.Errorf("%w: %v", ErrClassificationUnavailable, err)
	}

	raw := strings.TrimSpace(resp.Text())
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var verdict geminiSentimentResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &verdict); err != nil {
		r.logger.Error("Failed to parse Gemini verdict",
			logger.ErrorField(err),
			logger.StringField("raw", raw),
		)
		return nil, fmt.Errorf("%w: parse verdict: %v", ErrClassificationUnavailable, err)
	}

	score := verdict.Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return &dto.SentimentResult{
		Label: normalizeLabel(verdict.Label),
		Score: score,
	}, nil
}
