package repository

import (
	"context"
	"encoding/json"

	"review-insight/internal/entity"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SystemLogRepository records and lists operational events.
type SystemLogRepository interface {
	Log(ctx context.Context, eventType, message string, details map[string]interface{}) error
	FindRecent(ctx context.Context, limit int) ([]entity.SystemLog, error)
}

// NewSystemLogRepository creates a new instance of SystemLogRepository.
func NewSystemLogRepository(db *gorm.DB) SystemLogRepository {
	return &systemLogRepository{db: db}
}

type systemLogRepository struct {
	db *gorm.DB
}

func (r *systemLogRepository) Log(ctx context.Context, eventType, message string, details map[string]interface{}) error {
	log := &entity.SystemLog{
		EventType: eventType,
		Message:   message,
	}
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			return err
		}
		log.Details = datatypes.JSON(raw)
	}
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *systemLogRepository) FindRecent(ctx context.Context, limit int) ([]entity.SystemLog, error) {
	var logs []entity.SystemLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
