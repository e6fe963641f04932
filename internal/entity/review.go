package entity

import (
	"time"
)

// Review represents one submitted product review. The derived fields
// (Cleaned, Tokenized, Processed, SentimentLabel, SentimentScore) are set
// exactly once at creation and never mutated afterwards; aspect-level results
// are computed on demand and never persisted.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Rating    int       `gorm:"default:0" json:"rating"`
	Source    string    `gorm:"type:varchar(50);default:manual" json:"source"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	SentimentLabel string  `gorm:"type:varchar(20)" json:"sentiment_label"`
	SentimentScore float64 `json:"sentiment_score"`

	Cleaned   string `gorm:"type:text" json:"cleaned"`
	Tokenized string `gorm:"type:text" json:"tokenized"`
	Processed string `gorm:"type:text" json:"processed"`
}

// TableName specifies the table name for the Review model.
func (Review) TableName() string {
	return "reviews"
}
