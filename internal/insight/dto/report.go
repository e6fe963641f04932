package dto

import (
	"time"
)

// SentimentDistribution is one sentiment bucket of a report with its share
// of the total.
type SentimentDistribution struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// ReviewReport is the per-user report rendered as CSV by the report handler.
type ReviewReport struct {
	UserID          uint                    `json:"user_id"`
	TotalReviews    int                     `json:"total_reviews"`
	TimeRangeStart  string                  `json:"time_range_start"`
	TimeRangeEnd    string                  `json:"time_range_end"`
	Distribution    []SentimentDistribution `json:"distribution"`
	AspectSummary   []AspectSummaryRow      `json:"aspect_summary"`
	PositiveAspects []AspectSummaryRow      `json:"positive_aspects"`
	NegativeAspects []AspectSummaryRow      `json:"negative_aspects"`
}

// SystemReport is the corpus-wide report for administrators.
type SystemReport struct {
	GeneratedAt     time.Time          `json:"generated_at"`
	TotalReviews    int64              `json:"total_reviews"`
	ReviewsToday    int64              `json:"reviews_today"`
	ReviewsWeek     int64              `json:"reviews_week"`
	ReviewsMonth    int64              `json:"reviews_month"`
	MostActiveUsers []UserActivity     `json:"most_active_users"`
	CommonAspects   []AspectSummaryRow `json:"common_aspects"`
}
