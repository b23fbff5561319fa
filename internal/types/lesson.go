package types

import (
	"time"

	"github.com/google/uuid"
)

type Lesson struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string    `gorm:"not null;column:title" json:"title"`
	Description  string    `gorm:"column:description" json:"description"`
	DisplayOrder int       `gorm:"not null;default:0;column:display_order" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true;column:is_active" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (Lesson) TableName() string { return "lesson" }

// LessonWithProgress annotates a lesson with the caller's derived
// completion percentage; nil for unauthenticated callers.
type LessonWithProgress struct {
	Lesson
	IsCompleted          *bool    `json:"is_completed,omitempty"`
	CompletionPercentage *float64 `json:"completion_percentage,omitempty"`
}
