package service

import (
	"context"
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

type fakeFeedbackRepo struct {
	created []entity.ModelFeedback
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, feedback *entity.ModelFeedback) error {
	f.created = append(f.created, *feedback)
	return nil
}

func (f *fakeFeedbackRepo) FindByReview(ctx context.Context, reviewID uint) ([]entity.ModelFeedback, error) {
	var out []entity.ModelFeedback
	for _, fb := range f.created {
		if fb.ReviewID == reviewID {
			out = append(out, fb)
		}
	}
	return out, nil
}

type monitoringFixture struct {
	svc          MonitoringService
	reviewRepo   *fakeReviewRepo
	logRepo      *fakeSystemLogRepo
	feedbackRepo *fakeFeedbackRepo
}

func newMonitoringFixture(t *testing.T, classifier repository.SentimentClassifier) *monitoringFixture {
	t.Helper()

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	reviewRepo := &fakeReviewRepo{}
	logRepo := &fakeSystemLogRepo{}
	feedbackRepo := &fakeFeedbackRepo{}

	return &monitoringFixture{
		svc:          NewMonitoringService(reviewRepo, logRepo, feedbackRepo, classifier, log),
		reviewRepo:   reviewRepo,
		logRepo:      logRepo,
		feedbackRepo: feedbackRepo,
	}
}

func TestAccuracySample(t *testing.T) {
	f := newMonitoringFixture(t, &fakeClassifier{classify: func(string) (*dto.SentimentResult, error) {
		return &dto.SentimentResult{Label: "NEGATIVE", Score: 0.8}, nil
	}})
	f.reviewRepo.reviews = []entity.Review{{
		ID:             4,
		Text:           "The charger broke after a week.",
		SentimentLabel: common.SentimentNegative,
	}}

	sample, err := f.svc.AccuracySample(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint(4), sample.ReviewID)
	assert.Equal(t, "The charger broke after a week.", sample.Text)
	assert.Equal(t, common.SentimentNegative, sample.PredictedSentiment)
	assert.Equal(t, common.SentimentNegative, sample.OriginalSentiment)
}

func TestAccuracySample_NoReviews(t *testing.T) {
	f := newMonitoringFixture(t, positiveClassifier())

	_, err := f.svc.AccuracySample(context.Background())

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSubmitFeedback(t *testing.T) {
	f := newMonitoringFixture(t, positiveClassifier())
	f.reviewRepo.reviews = []entity.Review{{ID: 1, Text: "ok"}}

	err := f.svc.SubmitFeedback(context.Background(), &dto.ModelFeedbackRequest{
		ReviewID:         1,
		CorrectSentiment: " Negative ",
	})
	require.NoError(t, err)

	require.Len(t, f.feedbackRepo.created, 1)
	assert.Equal(t, uint(1), f.feedbackRepo.created[0].ReviewID)
	assert.Equal(t, common.SentimentNegative, f.feedbackRepo.created[0].CorrectSentiment)
}

func TestSubmitFeedback_InvalidLabel(t *testing.T) {
	f := newMonitoringFixture(t, positiveClassifier())
	f.reviewRepo.reviews = []entity.Review{{ID: 1, Text: "ok"}}

	for _, label := range []string{"", "great", "POSITIVEISH"} {
		err := f.svc.SubmitFeedback(context.Background(), &dto.ModelFeedbackRequest{
			ReviewID:         1,
			CorrectSentiment: label,
		})
		assert.ErrorIs(t, err, ErrInvalidSentiment, label)
	}
	assert.Empty(t, f.feedbackRepo.created)
}

func TestSubmitFeedback_UnknownReview(t *testing.T) {
	f := newMonitoringFixture(t, positiveClassifier())

	err := f.svc.SubmitFeedback(context.Background(), &dto.ModelFeedbackRequest{
		ReviewID:         99,
		CorrectSentiment: common.SentimentPositive,
	})

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Empty(t, f.feedbackRepo.created)
}

func TestLogDailyStats(t *testing.T) {
	f := newMonitoringFixture(t, positiveClassifier())
	f.reviewRepo.reviews = []entity.Review{
		{ID: 1, CreatedAt: time.Now()},
		{ID: 2, CreatedAt: time.Now().AddDate(0, 0, -3)},
	}

	err := f.svc.LogDailyStats(context.Background())
	require.NoError(t, err)

	assert.Contains(t, f.logRepo.events, common.EventDailyStats)
}

func TestCoerceLabelStrict(t *testing.T) {
	assert.Equal(t, common.SentimentPositive, coerceLabelStrict("Positive"))
	assert.Equal(t, common.SentimentNeutral, coerceLabelStrict(" NEUTRAL "))
	assert.Equal(t, "", coerceLabelStrict(""))
	assert.Equal(t, "", coerceLabelStrict("mixed"))
}
