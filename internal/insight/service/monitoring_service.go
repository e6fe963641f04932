package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"review-insight/internal/entity"
	"review-insight/internal/insight/dto"
	"review-insight/internal/insight/repository"
	"review-insight/pkg/common"
	"review-insight/pkg/logger"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// ErrInvalidSentiment is returned when a feedback submission carries a label
// outside the canonical three.
var ErrInvalidSentiment = errors.New("invalid sentiment label")

// recentLogLimit caps the monitoring log listing.
const recentLogLimit = 50

// MonitoringService backs the system-monitoring dashboard: recent events,
// model accuracy spot checks, corrective feedback, and host stats.
type MonitoringService interface {
	RecentLogs(ctx context.Context) ([]dto.SystemLogResponse, error)
	AccuracySample(ctx context.Context) (*dto.AccuracySample, error)
	SubmitFeedback(ctx context.Context, req *dto.ModelFeedbackRequest) error
	ServerStats(ctx context.Context) (*dto.ServerStats, error)
	LogDailyStats(ctx context.Context) error
}

// NewMonitoringService creates a new monitoring service.
func NewMonitoringService(
	reviewRepo repository.ReviewRepository,
	systemLogRepo repository.SystemLogRepository,
	feedbackRepo repository.ModelFeedbackRepository,
	classifier repository.SentimentClassifier,
	log *logger.Logger,
) MonitoringService {
	return &monitoringService{
		reviewRepo:    reviewRepo,
		systemLogRepo: systemLogRepo,
		feedbackRepo:  feedbackRepo,
		classifier:    classifier,
		logger:        log,
	}
}

type monitoringService struct {
	reviewRepo    repository.ReviewRepository
	systemLogRepo repository.SystemLogRepository
	feedbackRepo  repository.ModelFeedbackRepository
	classifier    repository.SentimentClassifier
	logger        *logger.Logger
}

func (s *monitoringService) RecentLogs(ctx context.Context) ([]dto.SystemLogResponse, error) {
	logs, err := s.systemLogRepo.FindRecent(ctx, recentLogLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SystemLogResponse, 0, len(logs))
	for _, l := range logs {
		responses = append(responses, dto.SystemLogResponse{
			EventType: l.EventType,
			Message:   l.Message,
			Details:   json.RawMessage(l.Details),
			Timestamp: l.CreatedAt,
		})
	}
	return responses, nil
}

// AccuracySample re-classifies one random stored review so the predicted
// label can be compared with the label recorded at submission time.
func (s *monitoringService) AccuracySample(ctx context.Context) (*dto.AccuracySample, error) {
	review, err := s.reviewRepo.FindRandom(ctx)
	if err != nil {
		return nil, err
	}

	predicted, err := s.classifier.Classify(ctx, review.Text)
	if err != nil {
		return nil, err
	}

	return &dto.AccuracySample{
		ReviewID:           review.ID,
		Text:               review.Text,
		PredictedSentiment: coerceLabel(predicted.Label),
		OriginalSentiment:  review.SentimentLabel,
	}, nil
}

func (s *monitoringService) SubmitFeedback(ctx context.Context, req *dto.ModelFeedbackRequest) error {
	label := coerceLabelStrict(req.CorrectSentiment)
	if label == "" {
		return ErrInvalidSentiment
	}

	if _, err := s.reviewRepo.FindByID(ctx, req.ReviewID); err != nil {
		return err
	}

	return s.feedbackRepo.Create(ctx, &entity.ModelFeedback{
		ReviewID:         req.ReviewID,
		CorrectSentiment: label,
	})
}

func (s *monitoringService) ServerStats(ctx context.Context) (*dto.ServerStats, error) {
	stats := &dto.ServerStats{}

	cpuPercents, err := cpu.PercentWithContext(ctx, time.Second, false)
	if err != nil {
		return nil, fmt.Errorf("failed to read cpu usage: %w", err)
	}
	if len(cpuPercents) > 0 {
		stats.CPUUsagePercent = cpuPercents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory usage: %w", err)
	}
	stats.MemoryUsagePercent = vm.UsedPercent

	du, err := disk.UsageWithContext(ctx, "/")
	if err != nil {
		return nil, fmt.Errorf("failed to read disk usage: %w", err)
	}
	stats.DiskUsagePercent = du.UsedPercent

	if stats.ReviewsStored, err = s.reviewRepo.Count(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}

// LogDailyStats records a review-volume snapshot; the cron scheduler calls
// it once a day.
func (s *monitoringService) LogDailyStats(ctx context.Context) error {
	total, err := s.reviewRepo.Count(ctx)
	if err != nil {
		return err
	}
	today, err := s.reviewRepo.CountSince(ctx, time.Now().AddDate(0, 0, -1))
	if err != nil {
		return err
	}

	return s.systemLogRepo.Log(ctx, common.EventDailyStats,
		fmt.Sprintf("%d reviews stored, %d in the last 24h", total, today),
		map[string]interface{}{"total_reviews": total, "reviews_today": today},
	)
}

// coerceLabelStrict lowercases label and returns "" when it is not one of
// the canonical three.
func coerceLabelStrict(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if !common.IsCanonicalLabel(label) {
		return ""
	}
	return label
}
