package entity

import (
	"time"
)

// AspectCategory is an administrator-curated canonical aspect name
// ("battery", "delivery time"). The extraction pipeline consults the current
// set on every call and never mutates it.
type AspectCategory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);unique;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the AspectCategory model.
func (AspectCategory) TableName() string {
	return "aspect_categories"
}
