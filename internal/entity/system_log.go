package entity

import (
	"time"

	"gorm.io/datatypes"
)

// SystemLog records operational events (batch processing times, upload
// failures, daily stats snapshots) for the monitoring dashboard.
type SystemLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	EventType string         `gorm:"type:varchar(50);not null" json:"event_type"`
	Message   string         `gorm:"type:varchar(255);not null" json:"message"`
	Details   datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the SystemLog model.
func (SystemLog) TableName() string {
	return "system_logs"
}
