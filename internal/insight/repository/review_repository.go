package repository

import (
	"context"
	"errors"
	"time"

	"review-insight/internal/entity"
	"review-insight/internal/insight/dto"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for interacting with stored reviews.
// The analysis pipeline only ever reads reviews; writes happen once, at
// submission.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	CreateBatch(ctx context.Context, reviews []*entity.Review) error
	FindByID(ctx context.Context, id uint) (*entity.Review, error)
	FindByUser(ctx context.Context, userID uint) ([]entity.Review, error)
	FindAll(ctx context.Context) ([]entity.Review, error)
	FindRandom(ctx context.Context) (*entity.Review, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
	MostActiveUsers(ctx context.Context, limit int) ([]dto.UserActivity, error)
}

// NewReviewRepository creates a new instance of ReviewRepository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

type reviewRepository struct {
	db *gorm.DB
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) CreateBatch(ctx context.Context, reviews []*entity.Review) error {
	if len(reviews) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(reviews, 100).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*entity.Review, error) {
	var review entity.Review
	err := r.db.WithContext(ctx).First(&review, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// FindByUser returns the user's reviews ordered newest first.
func (r *reviewRepository) FindByUser(ctx context.Context, userID uint) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) FindAll(ctx context.Context) ([]entity.Review, error) {
	var reviews []entity.Review
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

// FindRandom returns one uniformly sampled review for accuracy spot checks.
func (r *reviewRepository) FindRandom(ctx context.Context) (*entity.Review, error) {
	var review entity.Review
	err := r.db.WithContext(ctx).Order("RANDOM()").First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Review{}).Count(&count).Error
	return count, err
}

func (r *reviewRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Review{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *reviewRepository) MostActiveUsers(ctx context.Context, limit int) ([]dto.UserActivity, error) {
	var rows []dto.UserActivity
	err := r.db.WithContext(ctx).Raw(`
	SELECT user_id, COUNT(id) AS review_count
	FROM reviews
	GROUP BY user_id
	ORDER BY review_count DESC
	LIMIT ?`, limit).Scan(&rows).Error
	return rows, err
}
