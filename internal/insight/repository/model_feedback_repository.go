package repository

import (
	"context"

	"review-insight/internal/entity"

	"gorm.io/gorm"
)

// ModelFeedbackRepository stores corrective sentiment labels.
type ModelFeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.ModelFeedback) error
	FindByReview(ctx context.Context, reviewID uint) ([]entity.ModelFeedback, error)
}

// NewModelFeedbackRepository creates a new instance of ModelFeedbackRepository.
func NewModelFeedbackRepository(db *gorm.DB) ModelFeedbackRepository {
	return &modelFeedbackRepository{db: db}
}

type modelFeedbackRepository struct {
	db *gorm.DB
}

func (r *modelFeedbackRepository) Create(ctx context.Context, feedback *entity.ModelFeedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *modelFeedbackRepository) FindByReview(ctx context.Context, reviewID uint) ([]entity.ModelFeedback, error) {
	var feedback []entity.ModelFeedback
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("created_at DESC").
		Find(&feedback).Error
	return feedback, err
}
