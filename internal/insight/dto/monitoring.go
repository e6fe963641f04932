package dto

import (
	"encoding/json"
	"time"
)

// SystemLogResponse is one monitoring log entry.
type SystemLogResponse struct {
	EventType string          `json:"event_type"`
	Message   string          `json:"message"`
	Details   json.RawMessage `json:"details,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// AccuracySample re-classifies one stored review so operators can spot-check
// model drift against the label recorded at submission time.
type AccuracySample struct {
	ReviewID           uint   `json:"review_id"`
	Text               string `json:"text"`
	PredictedSentiment string `json:"predicted_sentiment"`
	OriginalSentiment  string `json:"original_sentiment"`
}

// ModelFeedbackRequest submits a corrective sentiment label for a review.
type ModelFeedbackRequest struct {
	ReviewID         uint   `json:"review_id"`
	CorrectSentiment string `json:"correct_sentiment"`
}

// ServerStats reports host resource usage for the monitoring dashboard.
type ServerStats struct {
	CPUUsagePercent    float64 `json:"cpu_usage_percent"`
	MemoryUsagePercent float64 `json:"memory_usage_percent"`
	DiskUsagePercent   float64 `json:"disk_usage_percent"`
	ReviewsStored      int64   `json:"reviews_stored"`
}

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}
