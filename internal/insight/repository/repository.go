package repository

import (
	"context"
	"errors"

	"review-insight/internal/insight/dto"
)

// ErrClassificationUnavailable wraps any failure of the external sentiment
// classifier. Callers decide whether it is fatal for the request or skips the
// offending item; nothing in this layer fabricates a label.
var ErrClassificationUnavailable = errors.New("sentiment classifier unavailable")

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAspectExists is returned when creating or renaming an aspect category
// would collide with an existing name.
var ErrAspectExists = errors.New("aspect category already exists")

// SentimentClassifier is the adapter over the external 3-class sentiment
// model. Implementations normalize any backend label form into the canonical
// lowercase names and return a confidence score in [0,1].
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (*dto.SentimentResult, error)
}
