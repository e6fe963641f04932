package service

import (
	"context"
	"errors"
	"time"

	"review-insight/internal/insight/dto"
	"review-insight/internal/insight/repository"
	"review-insight/pkg/common"
	"review-insight/pkg/logger"
	"review-insight/pkg/utils"
)

// ErrNoReviews is returned when a report is requested for an empty review
// collection. Callers render an explicit empty state instead of an empty
// report.
var ErrNoReviews = errors.New("no reviews to report on")

// ReportService assembles the user and system reports consumed by the CSV
// renderers.
type ReportService interface {
	UserReport(ctx context.Context, userID uint) (*dto.ReviewReport, error)
	SystemReport(ctx context.Context) (*dto.SystemReport, error)
}

// NewReportService creates a new report service.
func NewReportService(
	reviewRepo repository.ReviewRepository,
	analyzer AnalyzerService,
	log *logger.Logger,
) ReportService {
	return &reportService{
		reviewRepo: reviewRepo,
		analyzer:   analyzer,
		logger:     log,
	}
}

type reportService struct {
	reviewRepo repository.ReviewRepository
	analyzer   AnalyzerService
	logger     *logger.Logger
}

// UserReport builds the per-user sentiment and aspect report.
func (s *reportService) UserReport(ctx context.Context, userID uint) (*dto.ReviewReport, error) {
	reviews, err := s.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, ErrNoReviews
	}

	// Reviews arrive newest first.
	report := &dto.ReviewReport{
		UserID:         userID,
		TotalReviews:   len(reviews),
		TimeRangeStart: utils.DayOf(reviews[len(reviews)-1].CreatedAt),
		TimeRangeEnd:   utils.DayOf(reviews[0].CreatedAt),
	}

	distribution := map[string]int{
		common.SentimentPositive: 0,
		common.SentimentNegative: 0,
		common.SentimentNeutral:  0,
	}
	for i := range reviews {
		distribution[coerceLabel(reviews[i].SentimentLabel)]++
	}
	for _, label := range []string{common.SentimentPositive, common.SentimentNegative, common.SentimentNeutral} {
		count := distribution[label]
		report.Distribution = append(report.Distribution, dto.SentimentDistribution{
			Label:   common.Capitalize(label),
			Count:   count,
			Percent: float64(count) / float64(len(reviews)) * 100,
		})
	}

	summary, err := s.analyzer.AspectSummary(ctx, reviews)
	if err != nil {
		return nil, err
	}
	report.AspectSummary = summary
	var positiveRows, negativeRows []dto.AspectSummaryRow
	for _, row := range summary {
		switch row.Label {
		case common.Capitalize(common.SentimentPositive):
			positiveRows = append(positiveRows, row)
		case common.Capitalize(common.SentimentNegative):
			negativeRows = append(negativeRows, row)
		}
	}
	report.PositiveAspects = TopPositiveAspects(positiveRows)
	report.NegativeAspects = TopNegativeAspects(negativeRows)

	return report, nil
}

// SystemReport builds the corpus-wide administrator report.
func (s *reportService) SystemReport(ctx context.Context) (*dto.SystemReport, error) {
	total, err := s.reviewRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, ErrNoReviews
	}

	now := time.Now()
	report := &dto.SystemReport{
		GeneratedAt:  now,
		TotalReviews: total,
	}
	if report.ReviewsToday, err = s.reviewRepo.CountSince(ctx, now.AddDate(0, 0, -1)); err != nil {
		return nil, err
	}
	if report.ReviewsWeek, err = s.reviewRepo.CountSince(ctx, now.AddDate(0, 0, -7)); err != nil {
		return nil, err
	}
	if report.ReviewsMonth, err = s.reviewRepo.CountSince(ctx, now.AddDate(0, 0, -30)); err != nil {
		return nil, err
	}
	if report.MostActiveUsers, err = s.reviewRepo.MostActiveUsers(ctx, 10); err != nil {
		return nil, err
	}

	reviews, err := s.reviewRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := s.analyzer.AspectSummary(ctx, reviews)
	if err != nil {
		return nil, err
	}
	report.CommonAspects = CommonAspects(summary, 10)

	return report, nil
}
