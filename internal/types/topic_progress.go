package types

import (
	"time"

	"github.com/google/uuid"
)

// TopicProgress is a denormalized snapshot, recomputed and upserted
// whenever a lesson under the topic changes completion state.
type TopicProgress struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index:idx_user_topic,unique" json:"user_id"`
	User                *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	TopicID             uuid.UUID `gorm:"type:uuid;not null;index:idx_user_topic,unique" json:"topic_id"`
	Topic               *Topic    `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"-"`
	CompletedLessons    int       `gorm:"not null;default:0;column:completed_lessons" json:"completed_lessons"`
	TotalLessons        int       `gorm:"not null;default:0;column:total_lessons" json:"total_lessons"`
	CompletedPercentage float64   `gorm:"not null;default:0;column:completed_percentage" json:"completed_percentage"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null" json:"updated_at"`
}

func (TopicProgress) TableName() string { return "topic_progress" }
