package entity

import (
	"time"
)

// ModelFeedback is a corrective record attached to a review when a human
// disagrees with the stored sentiment label. The review itself stays
// immutable; corrections accumulate alongside it.
type ModelFeedback struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ReviewID         uint      `gorm:"index;not null" json:"review_id"`
	CorrectSentiment string    `gorm:"type:varchar(20);not null" json:"correct_sentiment"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`

	Review Review `gorm:"foreignKey:ReviewID" json:"-"`
}

// TableName specifies the table name for the ModelFeedback model.
func (ModelFeedback) TableName() string {
	return "model_feedback"
}
