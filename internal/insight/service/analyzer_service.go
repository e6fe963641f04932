package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"review-insight/internal/entity"
	"review-insight/internal/insight/dto"
	"review-insight/internal/insight/repository"
	"review-insight/pkg/common"
	"review-insight/pkg/logger"
	"review-insight/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// topAspectLimit caps the top-positive / top-negative aspect rankings.
const topAspectLimit = 5

// AnalyzerService runs the aspect-sentiment pipeline: aspect extraction,
// per-review and corpus-level aggregation, and trend building.
type AnalyzerService interface {
	ExtractAspects(ctx context.Context, text string) ([]string, error)
	AspectSentiments(ctx context.Context, text string) ([]dto.AspectSentiment, error)
	AspectSummary(ctx context.Context, reviews []entity.Review) ([]dto.AspectSummaryRow, error)
	SentimentTrends(reviews []entity.Review) *dto.TrendSeries
}

// NewAnalyzerService creates the analyzer. redisClient may be nil, in which
// case corpus-level classification results are not shared across requests.
func NewAnalyzerService(
	aspectRepo repository.AspectCategoryRepository,
	classifier repository.SentimentClassifier,
	redisClient *redis.Client,
	log *logger.Logger,
	maxConcurrentReviews int,
	cacheTTL time.Duration,
) AnalyzerService {
	if maxConcurrentReviews <= 0 {
		maxConcurrentReviews = 1
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &analyzerService{
		aspectRepo:  aspectRepo,
		classifier:  classifier,
		redisClient: redisClient,
		logger:      log,
		maxWorkers:  maxConcurrentReviews,
		cacheTTL:    cacheTTL,
	}
}

type analyzerService struct {
	aspectRepo  repository.AspectCategoryRepository
	classifier  repository.SentimentClassifier
	redisClient *redis.Client
	logger      *logger.Logger
	maxWorkers  int
	cacheTTL    time.Duration
}

// ExtractAspects extracts aspects from text against the current curated set.
// The set is re-read on every call so admin edits take effect immediately.
func (s *analyzerService) ExtractAspects(ctx context.Context, text string) ([]string, error) {
	known, err := s.aspectRepo.CurrentNames(ctx)
	if err != nil {
		return nil, err
	}
	return extractAspects(text, known), nil
}

// AspectSentiments computes the per-review aspect list. Each aspect is
// classified from the first sentence that mentions it; aspects that span
// sentence boundaries (noun-chunk fallback) fall back to the whole text.
// A classifier failure is surfaced to the caller, never papered over.
func (s *analyzerService) AspectSentiments(ctx context.Context, text string) ([]dto.AspectSentiment, error) {
	aspects, err := s.ExtractAspects(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(aspects) == 0 {
		return []dto.AspectSentiment{}, nil
	}

	sentences := splitSentences(text)

	results := make([]dto.AspectSentiment, 0, len(aspects))
	for _, aspect := range aspects {
		target := text
		aspectLower := strings.ToLower(aspect)
		for _, sentence := range sentences {
			if strings.Contains(strings.ToLower(sentence), aspectLower) {
				target = sentence
				break
			}
		}

		res, err := s.classify(ctx, target)
		if err != nil {
			return nil, err
		}
		results = append(results, dto.AspectSentiment{
			Aspect: aspect,
			Label:  common.Capitalize(coerceLabel(res.Label)),
			Score:  res.Score,
		})
	}

	return results, nil
}

type aspectAccumulator struct {
	positive int
	negative int
	neutral  int
	scores   []float64
}

func (a *aspectAccumulator) add(label string, score float64) {
	switch label {
	case common.SentimentPositive:
		a.positive++
	case common.SentimentNegative:
		a.negative++
	default:
		a.neutral++
	}
	a.scores = append(a.scores, score)
}

// AspectSummary aggregates aspect sentiment across a review collection. Each
// matched (review, aspect) pair classifies the whole review text, so two
// aspects in one review share that review's label and score at corpus scale.
// Reviews are processed by a bounded worker pool; aggregation is commutative
// over reviews and the shared accumulators are mutex-guarded. A classifier
// failure skips the offending pair and the summary stays partial.
func (s *analyzerService) AspectSummary(ctx context.Context, reviews []entity.Review) ([]dto.AspectSummaryRow, error) {
	counts := make(map[string]*aspectAccumulator)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	sem := make(chan struct{}, s.maxWorkers)

	for i := range reviews {
		review := reviews[i]
		wg.Add(1)
		sem <- struct{}{}
		utils.GoSafe(func() {
			defer wg.Done()
			defer func() { <-sem }()

			known, err := s.aspectRepo.CurrentNames(ctx)
			if err != nil {
				s.logger.Error("Failed to load aspect categories", logger.ErrorField(err))
				return
			}

			for _, aspect := range extractAspects(review.Text, known) {
				res, err := s.classify(ctx, review.Text)
				if err != nil {
					s.logger.Warn("Skipping aspect mention, classifier unavailable",
						logger.StringField("aspect", aspect),
						logger.ErrorField(err),
					)
					continue
				}

				mu.Lock()
				acc, ok := counts[aspect]
				if !ok {
					acc = &aspectAccumulator{}
					counts[aspect] = acc
				}
				acc.add(coerceLabel(res.Label), res.Score)
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	rows := make([]dto.AspectSummaryRow, 0, len(counts))
	for aspect, acc := range counts {
		rows = append(rows, dto.AspectSummaryRow{
			Aspect:   aspect,
			Positive: acc.positive,
			Negative: acc.negative,
			Neutral:  acc.neutral,
			Label:    common.Capitalize(dominantLabel(acc.positive, acc.negative, acc.neutral)),
			Score:    meanRounded(acc.scores),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Aspect < rows[j].Aspect })

	return rows, nil
}

// SentimentTrends buckets reviews by calendar day and sentiment label. Days
// with no reviews are not synthesized; rows are sorted ascending by date and
// the three count slices are index-aligned with Dates.
func (s *analyzerService) SentimentTrends(reviews []entity.Review) *dto.TrendSeries {
	type dayCounts struct {
		positive int
		negative int
		neutral  int
	}

	buckets := make(map[string]*dayCounts)
	for i := range reviews {
		day := utils.DayOf(reviews[i].CreatedAt)
		bucket, ok := buckets[day]
		if !ok {
			bucket = &dayCounts{}
			buckets[day] = bucket
		}
		switch coerceLabel(reviews[i].SentimentLabel) {
		case common.SentimentPositive:
			bucket.positive++
		case common.SentimentNegative:
			bucket.negative++
		default:
			bucket.neutral++
		}
	}

	dates := make([]string, 0, len(buckets))
	for day := range buckets {
		dates = append(dates, day)
	}
	sort.Strings(dates)

	series := &dto.TrendSeries{
		Dates:    dates,
		Positive: make([]int, 0, len(dates)),
		Negative: make([]int, 0, len(dates)),
		Neutral:  make([]int, 0, len(dates)),
	}
	for _, day := range dates {
		bucket := buckets[day]
		series.Positive = append(series.Positive, bucket.positive)
		series.Negative = append(series.Negative, bucket.negative)
		series.Neutral = append(series.Neutral, bucket.neutral)
	}
	return series
}

// classify runs the classifier with a shared Redis cache in front when one is
// configured. Cache errors fall through to a live classification.
func (s *analyzerService) classify(ctx context.Context, text string) (*dto.SentimentResult, error) {
	var key string
	if s.redisClient != nil {
		sum := sha256.Sum256([]byte(text))
		key = common.RedisKeySentimentPrefix + hex.EncodeToString(sum[:])
		if raw, err := s.redisClient.Get(ctx, key).Result(); err == nil {
			var cached dto.SentimentResult
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	res, err := s.classifier.Classify(ctx, text)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if raw, err := json.Marshal(res); err == nil {
			if err := s.redisClient.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Debug("Failed to cache classification result", logger.ErrorField(err))
			}
		}
	}

	return res, nil
}

// coerceLabel lowercases label and maps anything outside the canonical three
// onto neutral.
func coerceLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if !common.IsCanonicalLabel(label) {
		return common.SentimentNeutral
	}
	return label
}

// dominantLabel picks the count-maximal category; ties resolve by the fixed
// precedence positive, then negative, then neutral.
func dominantLabel(positive, negative, neutral int) string {
	label := common.SentimentPositive
	best := positive
	if negative > best {
		label = common.SentimentNegative
		best = negative
	}
	if neutral > best {
		label = common.SentimentNeutral
	}
	return label
}

// meanRounded averages scores rounded to 2 decimal places; empty input
// yields 0.
func meanRounded(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return math.Round(sum/float64(len(scores))*100) / 100
}

// TopPositiveAspects returns the summary rows sorted descending by positive
// count, truncated to the top 5. The input is not modified.
func TopPositiveAspects(rows []dto.AspectSummaryRow) []dto.AspectSummaryRow {
	return topAspects(rows, func(r dto.AspectSummaryRow) int { return r.Positive })
}

// TopNegativeAspects is the independent descending ranking on negative
// counts; an aspect can appear in both top lists.
func TopNegativeAspects(rows []dto.AspectSummaryRow) []dto.AspectSummaryRow {
	return topAspects(rows, func(r dto.AspectSummaryRow) int { return r.Negative })
}

func topAspects(rows []dto.AspectSummaryRow, count func(dto.AspectSummaryRow) int) []dto.AspectSummaryRow {
	sorted := make([]dto.AspectSummaryRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return count(sorted[i]) > count(sorted[j]) })
	if len(sorted) > topAspectLimit {
		sorted = sorted[:topAspectLimit]
	}
	return sorted
}

// CommonAspects ranks rows by total mention count descending, truncated to
// limit.
func CommonAspects(rows []dto.AspectSummaryRow, limit int) []dto.AspectSummaryRow {
	sorted := make([]dto.AspectSummaryRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalMentions() > sorted[j].TotalMentions()
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
