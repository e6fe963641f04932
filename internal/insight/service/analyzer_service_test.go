package service

import (
	"context"
	"errors"
	"strings"
	"sync"
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

type fakeAspectRepo struct {
	mu    sync.Mutex
	names []string
	calls int
}

func (f *fakeAspectRepo) Create(ctx context.Context, name string) (*entity.AspectCategory, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAspectRepo) Rename(ctx context.Context, id uint, name string) (*entity.AspectCategory, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAspectRepo) Delete(ctx context.Context, id uint) error {
	return errors.New("not implemented")
}

func (f *fakeAspectRepo) FindAll(ctx context.Context) ([]entity.AspectCategory, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAspectRepo) CurrentNames(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.names, nil
}

type fakeClassifier struct {
	classify func(text string) (*dto.SentimentResult, error)
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (*dto.SentimentResult, error) {
	return f.classify(text)
}

func newTestAnalyzer(t *testing.T, aspectRepo repository.AspectCategoryRepository, classifier repository.SentimentClassifier) AnalyzerService {
	t.Helper()
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return NewAnalyzerService(aspectRepo, classifier, nil, log, 4, time.Hour)
}

func TestAspectSentiments_PerSentenceScoping(t *testing.T) {
	aspectRepo := &fakeAspectRepo{names: []string{"battery", "screen"}}
	classifier := &fakeClassifier{classify: func(text string) (*dto.SentimentResult, error) {
		if strings.Contains(strings.ToLower(text), "battery") {
			return &dto.SentimentResult{Label: common.SentimentPositive, Score: 0.9}, nil
		}
		return &dto.SentimentResult{Label: common.SentimentNegative, Score: 0.8}, nil
	}}
	svc := newTestAnalyzer(t, aspectRepo, classifier)

	results, err := svc.AspectSentiments(context.Background(), "The battery is great. The screen is awful.")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, dto.AspectSentiment{Aspect: "battery", Label: "Positive", Score: 0.9}, results[0])
	assert.Equal(t, dto.AspectSentiment{Aspect: "screen", Label: "Negative", Score: 0.8}, results[1])
}

func TestAspectSentiments_ClassifierFailurePropagates(t *testing.T) {
	aspectRepo := &fakeAspectRepo{names: []string{"battery"}}
	classifier := &fakeClassifier{classify: func(string) (*dto.SentimentResult, error) {
		return nil, repository.ErrClassificationUnavailable
	}}
	svc := newTestAnalyzer(t, aspectRepo, classifier)

	_, err := svc.AspectSentiments(context.Background(), "The battery died.")

	assert.ErrorIs(t, err, repository.ErrClassificationUnavailable)
}

func TestAspectSentiments_EmptyText(t *testing.T) {
	aspectRepo := &fakeAspectRepo{names: []string{"battery"}}
	classifier := &fakeClassifier{classify: func(string) (*dto.SentimentResult, error) {
		t.Fatal("classifier must not be called without aspects")
		return nil, nil
	}}
	svc := newTestAnalyzer(t, aspectRepo, classifier)

	results, err := svc.AspectSentiments(context.Background(), "")
	require.NoError(t, err)

	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestAspectSummary_CountsMentions(t *testing.T) {
	aspectRepo := &fakeAspectRepo{names: []string{"delivery time"}}
	labels := map[string]string{}
	var reviews []entity.Review
	for i, label := range []string{
		common.SentimentPositive, common.SentimentPositive, common.SentimentPositive,
		common.SentimentPositive, common.SentimentPositive, common.SentimentPositive,
		common.SentimentPositive, common.SentimentNegative, common.SentimentNegative,
		common.SentimentNeutral,
	} {
		text := "review " + strings.Repeat("x", i) + " delivery time"
		labels[text] = label
		reviews = append(reviews, entity.Review{Text: text})
	}
	classifier := &fakeClassifier{classify: func(text string) (*dto.SentimentResult, error) {
		return &dto.SentimentResult{Label: labels[text], Score: 0.5}, nil
	}}
	svc := newTestAnalyzer(t, aspectRepo, classifier)

	rows, err := svc.AspectSummary(context.Background(), reviews)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "delivery time", row.Aspect)
	assert.Equal(t, 7, row.Positive)
	assert.Equal(t, 2, row.Negative)
	assert.Equal(t, 1, row.Neutral)
	assert.Equal(t, 10, row.TotalMentions())
	assert.Equal(t, "Positive", row.Label)
	assert.Equal(t, 0.5, row.Score)
}

func TestAspectSummary_SkipsFailedPairs(t *testing.T) {
	aspectRepo := &fakeAspectRepo{names: []string{"battery"}}
	classifier := &fakeClassifier{classify: func(text string) (*dto.SentimentResult, error) {
		if strings.Contains(text, "broken") {
			return nil, repository.ErrClassificationUnavailable
		}
		return &dto.SentimentResult{Label: common.SentimentPositive, Score: 1}, nil
	}}
	svc := newTestAnalyzer(t, aspectRepo, classifier)

	rows, err := svc.AspectSummary(context.Background(), []entity.Review{
		{Text: "broken battery"},
		{Text: "good battery"},
	})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].TotalMentions())
}

func TestAspectSummary_TieResolvesToPositive(t *testing.T) {
	aspectRepo := &fakeAspectRepo{names: []string{"battery"}}
	classifier := &fakeClassifier{classify: func(text string) (*dto.SentimentResult, error) {
		if strings.Contains(text, "bad") {
			return &dto.SentimentResult{Label: common.SentimentNegative, Score: 0.6}, nil
		}
		return &dto.SentimentResult{Label: common.SentimentPositive, Score: 0.8}, nil
	}}
	svc := newTestAnalyzer(t, aspectRepo, classifier)

	rows, err := svc.AspectSummary(context.Background(), []entity.Review{
		{Text: "good battery"},
		{Text: "bad battery"},
	})
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Positive", rows[0].Label)
	assert.Equal(t, 0.7, rows[0].Score)
}

func TestAspectSummary_EmptyInput(t *testing.T) {
	aspectRepo := &fakeAspectRepo{names: []string{"battery"}}
	classifier := &fakeClassifier{classify: func(string) (*dto.SentimentResult, error) {
		return &dto.SentimentResult{Label: common.SentimentNeutral, Score: 0}, nil
	}}
	svc := newTestAnalyzer(t, aspectRepo, classifier)

	rows, err := svc.AspectSummary(context.Background(), nil)
	require.NoError(t, err)

	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestAspectSummary_ReReadsAspectsPerReview(t *testing.T) {
	aspectRepo := &fakeAspectRepo{names: []string{"battery"}}
	classifier := &fakeClassifier{classify: func(string) (*dto.SentimentResult, error) {
		return &dto.SentimentResult{Label: common.SentimentNeutral, Score: 0.3}, nil
	}}
	svc := newTestAnalyzer(t, aspectRepo, classifier)

	_, err := svc.AspectSummary(context.Background(), []entity.Review{
		{Text: "battery one"},
		{Text: "battery two"},
		{Text: "battery three"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, aspectRepo.calls)
}

func TestSentimentTrends_BucketsByDay(t *testing.T) {
	svc := newTestAnalyzer(t, &fakeAspectRepo{}, &fakeClassifier{})

	day1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	reviews := []entity.Review{
		{CreatedAt: day2, SentimentLabel: common.SentimentPositive},
		{CreatedAt: day1, SentimentLabel: common.SentimentNegative},
		{CreatedAt: day1, SentimentLabel: common.SentimentPositive},
		{CreatedAt: day2, SentimentLabel: ""},          // missing label counts as neutral
		{CreatedAt: day2, SentimentLabel: "Scrambled"}, // unknown label counts as neutral
	}

	series := svc.SentimentTrends(reviews)

	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, series.Dates)
	assert.Equal(t, []int{1, 1}, series.Positive)
	assert.Equal(t, []int{1, 0}, series.Negative)
	assert.Equal(t, []int{0, 2}, series.Neutral)
}

func TestSentimentTrends_EmptyInput(t *testing.T) {
	svc := newTestAnalyzer(t, &fakeAspectRepo{}, &fakeClassifier{})

	series := svc.SentimentTrends(nil)

	assert.NotNil(t, series.Dates)
	assert.Empty(t, series.Dates)
	assert.NotNil(t, series.Positive)
	assert.NotNil(t, series.Negative)
	assert.NotNil(t, series.Neutral)
}

func TestDominantLabel(t *testing.T) {
	assert.Equal(t, common.SentimentPositive, dominantLabel(3, 1, 1))
	assert.Equal(t, common.SentimentNegative, dominantLabel(1, 3, 1))
	assert.Equal(t, common.SentimentNeutral, dominantLabel(1, 1, 3))
	assert.Equal(t, common.SentimentPositive, dominantLabel(2, 2, 2))
	assert.Equal(t, common.SentimentNegative, dominantLabel(1, 2, 2))
	assert.Equal(t, common.SentimentPositive, dominantLabel(0, 0, 0))
}

func TestMeanRounded(t *testing.T) {
	assert.Equal(t, 0.0, meanRounded(nil))
	assert.Equal(t, 0.5, meanRounded([]float64{0.5}))
	assert.Equal(t, 0.33, meanRounded([]float64{0.25, 0.41}))
	// a mean of exactly .xx5 rounds away from zero
	assert.Equal(t, 0.34, meanRounded([]float64{0.25, 0.42}))
	assert.Equal(t, 0.67, meanRounded([]float64{1, 1, 0}))
}

func TestCoerceLabel(t *testing.T) {
	assert.Equal(t, common.SentimentPositive, coerceLabel("Positive"))
	assert.Equal(t, common.SentimentNegative, coerceLabel(" negative "))
	assert.Equal(t, common.SentimentNeutral, coerceLabel(""))
	assert.Equal(t, common.SentimentNeutral, coerceLabel("garbage"))
}

func summaryRowsForRanking() []dto.AspectSummaryRow {
	return []dto.AspectSummaryRow{
		{Aspect: "a", Positive: 1, Negative: 8},
		{Aspect: "b", Positive: 2, Negative: 7},
		{Aspect: "c", Positive: 3, Negative: 6},
		{Aspect: "d", Positive: 4, Negative: 5},
		{Aspect: "e", Positive: 5, Negative: 4},
		{Aspect: "f", Positive: 6, Negative: 3},
		{Aspect: "g", Positive: 7, Negative: 2},
		{Aspect: "h", Positive: 8, Negative: 1},
	}
}

func TestTopPositiveAspects(t *testing.T) {
	rows := summaryRowsForRanking()

	top := TopPositiveAspects(rows)

	require.Len(t, top, 5)
	assert.Equal(t, "h", top[0].Aspect)
	assert.Equal(t, "d", top[4].Aspect)
	// input order is untouched
	assert.Equal(t, "a", rows[0].Aspect)
}

func TestTopNegativeAspects_IndependentOfPositive(t *testing.T) {
	rows := summaryRowsForRanking()

	top := TopNegativeAspects(rows)

	require.Len(t, top, 5)
	assert.Equal(t, "a", top[0].Aspect)
	assert.Equal(t, "e", top[4].Aspect)
}

func TestCommonAspects(t *testing.T) {
	rows := []dto.AspectSummaryRow{
		{Aspect: "a", Positive: 1},
		{Aspect: "b", Positive: 2, Negative: 2, Neutral: 2},
		{Aspect: "c", Neutral: 3},
	}

	ranked := CommonAspects(rows, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "b", ranked[0].Aspect)
	assert.Equal(t, "c", ranked[1].Aspect)
}
