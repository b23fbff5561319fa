package types

import (
	"time"

	"github.com/google/uuid"
)

type Topic struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null;column:name" json:"name"`
	Description  string    `gorm:"column:description" json:"description"`
	DisplayOrder int       `gorm:"not null;default:0;column:display_order" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Topic) TableName() string { return "topic" }

type TopicWithProgress struct {
	Topic
	CompletedLessons    *int     `json:"completed_lessons,omitempty"`
	TotalLessons        *int     `json:"total_lessons,omitempty"`
	CompletedPercentage *float64 `json:"completed_percentage,omitempty"`
}
