package types

import (
	"time"

	"github.com/google/uuid"
)

type TopicLesson struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TopicID      uuid.UUID `gorm:"type:uuid;not null;index:idx_topic_lesson,unique" json:"topic_id"`
	Topic        *Topic    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"-"`
	LessonID     uuid.UUID `gorm:"type:uuid;not null;index:idx_topic_lesson,unique" json:"lesson_id"`
	Lesson       *Lesson   `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"-"`
	DisplayOrder int       `gorm:"not null;default:0;column:display_order" json:"display_order"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (TopicLesson) TableName() string { return "topic_lesson" }
