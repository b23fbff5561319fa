package types

import (
	"time"

	"github.com/google/uuid"
)

// LessonProgress stores only the explicit completion action. The
// completion percentage is derived on read from vocab progress, never
// stored here.
type LessonProgress struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_lesson,unique" json:"user_id"`
	User        *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	LessonID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_user_lesson,unique" json:"lesson_id"`
	Lesson      *Lesson    `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"-"`
	IsCompleted bool       `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (LessonProgress) TableName() string { return "lesson_progress" }
