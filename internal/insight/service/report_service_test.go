package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"review-insight/internal/entity"
	"review-insight/internal/insight/dto"
	"review-insight/internal/insight/repository"
	"review-insight/pkg/common"
	"review-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture(t *testing.T, classifier repository.SentimentClassifier, reviewRepo *fakeReviewRepo) ReportService {
	t.Helper()

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	analyzer := NewAnalyzerService(&fakeAspectRepo{names: []string{"battery"}}, classifier, nil, log, 2, time.Hour)
	return NewReportService(reviewRepo, analyzer, log)
}

func TestUserReport(t *testing.T) {
	classifier := &fakeClassifier{classify: func(text string) (*dto.SentimentResult, error) {
		if strings.Contains(text, "love") {
			return &dto.SentimentResult{Label: common.SentimentPositive, Score: 0.9}, nil
		}
		return &dto.SentimentResult{Label: common.SentimentNegative, Score: 0.7}, nil
	}}
	reviewRepo := &fakeReviewRepo{reviews: []entity.Review{
		{ID: 1, UserID: 2, Text: "I love the battery", SentimentLabel: common.SentimentPositive,
			CreatedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)},
		{ID: 2, UserID: 2, Text: "love the battery too", SentimentLabel: common.SentimentPositive,
			CreatedAt: time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)},
		{ID: 3, UserID: 2, Text: "battery already broken", SentimentLabel: common.SentimentNegative,
			CreatedAt: time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)},
	}}
	svc := newReportFixture(t, classifier, reviewRepo)

	report, err := svc.UserReport(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, uint(2), report.UserID)
	assert.Equal(t, 3, report.TotalReviews)
	assert.Equal(t, "2024-03-01", report.TimeRangeStart)
	assert.Equal(t, "2024-03-05", report.TimeRangeEnd)

	require.Len(t, report.Distribution, 3)
	assert.Equal(t, "Positive", report.Distribution[0].Label)
	assert.Equal(t, 2, report.Distribution[0].Count)
	assert.InDelta(t, 66.67, report.Distribution[0].Percent, 0.01)
	assert.Equal(t, "Negative", report.Distribution[1].Label)
	assert.Equal(t, 1, report.Distribution[1].Count)
	assert.Equal(t, "Neutral", report.Distribution[2].Label)
	assert.Equal(t, 0, report.Distribution[2].Count)

	require.Len(t, report.AspectSummary, 1)
	assert.Equal(t, "battery", report.AspectSummary[0].Aspect)
	assert.Equal(t, 2, report.AspectSummary[0].Positive)
	assert.Equal(t, 1, report.AspectSummary[0].Negative)
	require.Len(t, report.PositiveAspects, 1)
	assert.Empty(t, report.NegativeAspects)
}

func TestUserReport_TopAspectListsTruncated(t *testing.T) {
	log, err := logger.New("error", "console")
	require.NoError(t, err)

	aspectRepo := &fakeAspectRepo{names: []string{
		"battery", "camera", "screen", "price", "shipping", "design", "sound",
	}}
	reviewRepo := &fakeReviewRepo{reviews: []entity.Review{{
		ID: 1, UserID: 5, SentimentLabel: common.SentimentPositive,
		Text:      "battery camera screen price shipping design sound all excellent",
		CreatedAt: time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC),
	}}}
	analyzer := NewAnalyzerService(aspectRepo, positiveClassifier(), nil, log, 2, time.Hour)
	svc := NewReportService(reviewRepo, analyzer, log)

	report, err := svc.UserReport(context.Background(), 5)
	require.NoError(t, err)

	// seven aspects dominate positive, but the report lists only the top 5
	assert.Len(t, report.AspectSummary, 7)
	assert.Len(t, report.PositiveAspects, 5)
	assert.Empty(t, report.NegativeAspects)
}

func TestUserReport_NoReviews(t *testing.T) {
	svc := newReportFixture(t, positiveClassifier(), &fakeReviewRepo{})

	_, err := svc.UserReport(context.Background(), 42)

	assert.ErrorIs(t, err, ErrNoReviews)
}

func TestSystemReport(t *testing.T) {
	now := time.Now()
	reviewRepo := &fakeReviewRepo{reviews: []entity.Review{
		{ID: 1, UserID: 1, Text: "battery holds a charge", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 2, UserID: 1, Text: "battery still fine", CreatedAt: now.AddDate(0, 0, -3)},
		{ID: 3, UserID: 2, Text: "battery is weak", CreatedAt: now.AddDate(0, 0, -20)},
	}}
	svc := newReportFixture(t, positiveClassifier(), reviewRepo)

	report, err := svc.SystemReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.TotalReviews)
	assert.Equal(t, int64(1), report.ReviewsToday)
	assert.Equal(t, int64(2), report.ReviewsWeek)
	assert.Equal(t, int64(3), report.ReviewsMonth)
	require.Len(t, report.CommonAspects, 1)
	assert.Equal(t, "battery", report.CommonAspects[0].Aspect)
	assert.Equal(t, 3, report.CommonAspects[0].TotalMentions())
}

func TestSystemReport_Empty(t *testing.T) {
	svc := newReportFixture(t, positiveClassifier(), &fakeReviewRepo{})

	_, err := svc.SystemReport(context.Background())

	assert.ErrorIs(t, err, ErrNoReviews)
}
