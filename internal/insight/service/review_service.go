package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"review-insight/internal/entity"
	"review-insight/internal/insight/dto"
	"review-insight/internal/insight/repository"
	"review-insight/pkg/common"
	"review-insight/pkg/logger"
	"review-insight/pkg/telegram"
	"review-insight/pkg/textnorm"
)

// ErrEmptyReview is returned when a submission carries no text.
var ErrEmptyReview = errors.New("review text is empty")

// ReviewService handles review ingestion and the per-user dashboard views.
type ReviewService interface {
	Submit(ctx context.Context, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error)
	SubmitCSV(ctx context.Context, userID uint, r io.Reader) (*dto.CSVImportResult, error)
	ListByUser(ctx context.Context, userID uint) ([]dto.ReviewResponse, error)
	Overview(ctx context.Context, userID uint) (*dto.DashboardOverview, error)
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	systemLogRepo repository.SystemLogRepository,
	classifier repository.SentimentClassifier,
	analyzer AnalyzerService,
	normalizer *textnorm.Normalizer,
	notifier telegram.Notifier,
	log *logger.Logger,
) ReviewService {
	return &reviewService{
		reviewRepo:    reviewRepo,
		systemLogRepo: systemLogRepo,
		classifier:    classifier,
		analyzer:      analyzer,
		normalizer:    normalizer,
		notifier:      notifier,
		logger:        log,
	}
}

type reviewService struct {
	reviewRepo    repository.ReviewRepository
	systemLogRepo repository.SystemLogRepository
	classifier    repository.SentimentClassifier
	analyzer      AnalyzerService
	normalizer    *textnorm.Normalizer
	notifier      telegram.Notifier
	logger        *logger.Logger
}

// Submit analyzes and stores a single review. The derived fields are
// computed exactly once here; a classifier outage is fatal for the request.
func (s *reviewService) Submit(ctx context.Context, req *dto.SubmitReviewRequest) (*dto.ReviewResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyReview
	}

	review, err := s.buildReview(ctx, req.UserID, req.Text, req.Rating, common.ReviewSourceManual)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	return s.mapToReviewResponse(ctx, review)
}

// SubmitCSV ingests a batch of reviews from CSV with a "text" column and
// optional "rating" and "source" columns. Rows with blank text or a failed
// classification are skipped; the batch is never aborted mid-file.
func (s *reviewService) SubmitCSV(ctx context.Context, userID uint, r io.Reader) (*dto.CSVImportResult, error) {
	start := time.Now()

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		s.logCSVFailure(ctx, err)
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	textCol, ok := columns["text"]
	if !ok {
		err := errors.New("CSV is missing a text column")
		s.logCSVFailure(ctx, err)
		return nil, err
	}

	var (
		reviews []*entity.Review
		skipped int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.logCSVFailure(ctx, err)
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		text := strings.TrimSpace(field(row, textCol))
		if text == "" {
			continue
		}

		rating := 0
		if i, ok := columns["rating"]; ok {
			rating, _ = strconv.Atoi(strings.TrimSpace(field(row, i)))
		}
		source := common.ReviewSourceCSV
		if i, ok := columns["source"]; ok {
			if v := strings.TrimSpace(field(row, i)); v != "" {
				source = v
			}
		}

		review, err := s.buildReview(ctx, userID, text, rating, source)
		if err != nil {
			skipped++
			s.logger.Warn("Skipping CSV row, classification failed", logger.ErrorField(err))
			continue
		}
		reviews = append(reviews, review)
	}

	if err := s.reviewRepo.CreateBatch(ctx, reviews); err != nil {
		s.logCSVFailure(ctx, err)
		return nil, err
	}

	duration := time.Since(start)
	result := &dto.CSVImportResult{
		Imported: len(reviews),
		Skipped:  skipped,
		Duration: duration.Seconds(),
	}

	if err := s.systemLogRepo.Log(ctx, common.EventProcessingTime,
		fmt.Sprintf("%d reviews from CSV processed in %.2f seconds", result.Imported, result.Duration),
		map[string]interface{}{"imported": result.Imported, "skipped": result.Skipped},
	); err != nil {
		s.logger.Error("Failed to log CSV processing event", logger.ErrorField(err))
	}

	if err := s.notifier.SendMessage(fmt.Sprintf(
		"CSV import finished: %d imported, %d skipped (%.2fs)",
		result.Imported, result.Skipped, result.Duration,
	)); err != nil {
		s.logger.Warn("Failed to send import notification", logger.ErrorField(err))
	}

	return result, nil
}

// ListByUser returns the user's reviews newest first, each with its
// on-demand aspect analysis and pipeline view attached.
func (s *reviewService) ListByUser(ctx context.Context, userID uint) ([]dto.ReviewResponse, error) {
	reviews, err := s.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp, err := s.mapToReviewResponse(ctx, &reviews[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// Overview computes the per-user dashboard counters from stored ratings.
func (s *reviewService) Overview(ctx context.Context, userID uint) (*dto.DashboardOverview, error) {
	reviews, err := s.reviewRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	overview := &dto.DashboardOverview{ReviewsSubmitted: len(reviews)}
	for i := range reviews {
		switch rating := reviews[i].Rating; {
		case rating >= 4:
			overview.PositiveCount++
		case rating == 3:
			overview.NeutralCount++
		case rating >= 1:
			overview.NegativeCount++
		}
	}
	return overview, nil
}

func (s *reviewService) buildReview(ctx context.Context, userID uint, text string, rating int, source string) (*entity.Review, error) {
	norm := s.normalizer.Normalize(text)

	sentiment, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	return &entity.Review{
		UserID:         userID,
		Text:           text,
		Rating:         rating,
		Source:         source,
		SentimentLabel: strings.ToLower(sentiment.Label),
		SentimentScore: sentiment.Score,
		Cleaned:        norm.Cleaned,
		Tokenized:      norm.Tokenized,
		Processed:      norm.Processed,
	}, nil
}

func (s *reviewService) mapToReviewResponse(ctx context.Context, review *entity.Review) (*dto.ReviewResponse, error) {
	aspects, err := s.analyzer.AspectSentiments(ctx, review.Text)
	if err != nil {
		return nil, err
	}

	return &dto.ReviewResponse{
		ID:             review.ID,
		UserID:         review.UserID,
		Text:           review.Text,
		Rating:         review.Rating,
		Source:         review.Source,
		SentimentLabel: review.SentimentLabel,
		SentimentScore: review.SentimentScore,
		Aspects:        aspects,
		PipelineSteps:  s.pipelineSteps(review),
		CreatedAt:      review.CreatedAt,
	}, nil
}

// pipelineSteps renders the stored derived fields as display rows,
// recomputing any that predate the field being persisted.
func (s *reviewService) pipelineSteps(review *entity.Review) []dto.PipelineStep {
	cleaned := review.Cleaned
	if cleaned == "" {
		cleaned = s.normalizer.CleanedString(review.Text)
	}
	tokenized := review.Tokenized
	if tokenized == "" {
		tokenized = strings.Join(strings.Fields(cleaned), " ")
	}
	processed := review.Processed
	if processed == "" {
		processed = strings.TrimSpace(strings.ToLower(cleaned))
	}

	return []dto.PipelineStep{
		{Name: "Original", Text: review.Text},
		{Name: "Cleaned", Text: cleaned},
		{Name: "Tokenized", Text: tokenized},
		{Name: "Processed", Text: processed},
	}
}

func (s *reviewService) logCSVFailure(ctx context.Context, cause error) {
	if err := s.systemLogRepo.Log(ctx, common.EventUploadFailed,
		fmt.Sprintf("CSV upload failed: %v", cause), nil,
	); err != nil {
		s.logger.Error("Failed to log CSV failure event", logger.ErrorField(err))
	}
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
