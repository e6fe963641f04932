package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"review-insight/internal/insight/config"
	"review-insight/internal/insight/dto"
	"review-insight/pkg/common"
	"review-insight/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// labelIndexMapping remaps the class-index labels emitted by 3-class
// sentiment models (LABEL_0/1/2) onto the canonical names.
var labelIndexMapping = map[string]string{
	"LABEL_0": common.SentimentNegative,
	"LABEL_1": common.SentimentNeutral,
	"LABEL_2": common.SentimentPositive,
}

// huggingFaceRepository is a SentimentClassifier backed by the Hugging Face
// inference API. Identical texts within the memo TTL are served from an
// in-process cache without touching the API.
type huggingFaceRepository struct {
	client         *http.Client
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	memo           *cache.Cache
}

// NewHuggingFaceRepository creates a SentimentClassifier that calls the
// Hugging Face inference API.
func NewHuggingFaceRepository(cfg *config.Config, log *logger.Logger) SentimentClassifier {
	maxPerMinute := cfg.HuggingFace.MaxRequestPerMinute
	if maxPerMinute <= 0 {
		maxPerMinute = 10
	}
	secondsPerRequest := time.Minute / time.Duration(maxPerMinute)
	return &huggingFaceRepository{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		memo:           cache.New(5*time.Minute, 10*time.Minute),
	}
}

type huggingFaceRequest struct {
	Inputs string `json:"inputs"`
}

type huggingFaceScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classify sends text to the inference API and returns the top-scoring class
// normalized to the canonical labels.
func (r *huggingFaceRepository) Classify(ctx context.Context, text string) (*dto.SentimentResult, error) {
	if cached, ok := r.memo.Get(text); ok {
		result := cached.(dto.SentimentResult)
		return &result, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassificationUnavailable, err)
	}

	payload, err := json.Marshal(huggingFaceRequest{Inputs: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	apiURL := fmt.Sprintf("%s/models/%s", strings.TrimRight(r.cfg.HuggingFace.BaseURL, "/"), r.cfg.HuggingFace.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.HuggingFace.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.HuggingFace.APIKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to inference API", logger.ErrorField(err))
		return nil, fmt.Errorf("%w: %v", ErrClassificationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from inference API",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(body)),
		)
		return nil, fmt.Errorf("%w: status %d", ErrClassificationUnavailable, resp.StatusCode)
	}

	// The API returns one score list per input: [[{label, score}, ...]].
	var scores [][]huggingFaceScore
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrClassificationUnavailable, err)
	}
	if len(scores) == 0 || len(scores[0]) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrClassificationUnavailable)
	}

	top := scores[0][0]
	for _, s := range scores[0][1:] {
		if s.Score > top.Score {
			top = s
		}
	}

	result := dto.SentimentResult{
		Label: normalizeLabel(top.Label),
		Score: top.Score,
	}
	r.memo.Set(text, result, cache.DefaultExpiration)

	return &result, nil
}

// normalizeLabel converts backend label forms (LABEL_2, "POSITIVE") into the
// canonical lowercase names.
func normalizeLabel(label string) string {
	if mapped, ok := labelIndexMapping[label]; ok {
		return mapped
	}
	return strings.ToLower(strings.TrimSpace(label))
}
