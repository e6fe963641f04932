package repository

import (
	"context"
	"errors"

	"review-insight/internal/entity"

	"gorm.io/gorm"
)

// AspectCategoryRepository manages the admin-curated aspect set. CurrentNames
// is read on every extraction call so admin edits take effect immediately; no
// caching in front of it.
type AspectCategoryRepository interface {
	Create(ctx context.Context, name string) (*entity.AspectCategory, error)
	Rename(ctx context.Context, id uint, name string) (*entity.AspectCategory, error)
	Delete(ctx context.Context, id uint) error
	FindAll(ctx context.Context) ([]entity.AspectCategory, error)
	CurrentNames(ctx context.Context) ([]string, error)
}

// NewAspectCategoryRepository creates a new instance of AspectCategoryRepository.
func NewAspectCategoryRepository(db *gorm.DB) AspectCategoryRepository {
	return &aspectCategoryRepository{db: db}
}

type aspectCategoryRepository struct {
	db *gorm.DB
}

func (r *aspectCategoryRepository) Create(ctx context.Context, name string) (*entity.AspectCategory, error) {
	var existing entity.AspectCategory
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, ErrAspectExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	aspect := &entity.AspectCategory{Name: name}
	if err := r.db.WithContext(ctx).Create(aspect).Error; err != nil {
		return nil, err
	}
	return aspect, nil
}

func (r *aspectCategoryRepository) Rename(ctx context.Context, id uint, name string) (*entity.AspectCategory, error) {
	var taken entity.AspectCategory
	err := r.db.WithContext(ctx).Where("name = ? AND id <> ?", name, id).First(&taken).Error
	if err == nil {
		return nil, ErrAspectExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var aspect entity.AspectCategory
	if err := r.db.WithContext(ctx).First(&aspect, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	aspect.Name = name
	if err := r.db.WithContext(ctx).Save(&aspect).Error; err != nil {
		return nil, err
	}
	return &aspect, nil
}

func (r *aspectCategoryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entity.AspectCategory{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *aspectCategoryRepository) FindAll(ctx context.Context) ([]entity.AspectCategory, error) {
	var aspects []entity.AspectCategory
	err := r.db.WithContext(ctx).Order("name ASC").Find(&aspects).Error
	return aspects, err
}

// CurrentNames returns the current aspect names as a plain string slice for
// the extraction pipeline.
func (r *aspectCategoryRepository) CurrentNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&entity.AspectCategory{}).
		Pluck("name", &names).Error
	return names, err
}
