package repository

import (
	"context"
	"math"

	"review-insight/internal/insight/dto"
	"review-insight/pkg/common"

	"github.com/jonreiter/govader"
)

// vaderRepository is a local, lexicon-based SentimentClassifier. It never
// leaves the process, so it is the default for development and the fallback
// when no external model is configured.
type vaderRepository struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderRepository creates a local VADER-backed SentimentClassifier.
func NewVaderRepository() SentimentClassifier {
	return &vaderRepository{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
	}
}

// Classify scores text with VADER. The compound score in [-1,1] maps onto
// the three classes with a +-0.2 neutrality band; confidence is the absolute
// compound value.
func (r *vaderRepository) Classify(_ context.Context, text string) (*dto.SentimentResult, error) {
	compound := r.analyzer.PolarityScores(text).Compound

	var label string
	switch {
	case compound >= 0.2:
		label = common.SentimentPositive
	case compound <= -0.2:
		label = common.SentimentNegative
	default:
		label = common.SentimentNeutral
	}

	score := math.Abs(compound)
	if score > 1 {
		score = 1
	}

	return &dto.SentimentResult{Label: label, Score: score}, nil
}
