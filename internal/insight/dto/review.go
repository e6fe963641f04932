package dto

import (
	"time"
)

// SubmitReviewRequest is the DTO for submitting a single review.
type SubmitReviewRequest struct {
	UserID uint   `json:"user_id"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// ReviewResponse is a read-only view of a stored review together with its
// derived, on-demand analysis. Derived fields never flow back into storage.
type ReviewResponse struct {
	ID             uint              `json:"id"`
	UserID         uint              `json:"user_id"`
	Text           string            `json:"text"`
	Rating         int               `json:"rating"`
	Source         string            `json:"source"`
	SentimentLabel string            `json:"sentiment_label"`
	SentimentScore float64           `json:"sentiment_score"`
	Aspects        []AspectSentiment `json:"aspects"`
	PipelineSteps  []PipelineStep    `json:"pipeline_steps"`
	CreatedAt      time.Time         `json:"created_at"`
}

// CSVImportResult summarizes a batch CSV ingestion.
type CSVImportResult struct {
	Imported int     `json:"imported"`
	Skipped  int     `json:"skipped"`
	Duration float64 `json:"duration_seconds"`
}

// DashboardOverview carries the per-user counters shown on the dashboard.
type DashboardOverview struct {
	ReviewsSubmitted int `json:"reviews_submitted"`
	PositiveCount    int `json:"positive_count"`
	NegativeCount    int `json:"negative_count"`
	NeutralCount     int `json:"neutral_count"`
}

// UserActivity is one row of the most-active-users ranking.
type UserActivity struct {
	UserID      uint  `json:"user_id"`
	ReviewCount int64 `json:"review_count"`
}
