package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Vocabulary struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Word            string         `gorm:"not null;index;column:word" json:"word"`
	Meaning         string         `gorm:"not null;column:meaning" json:"meaning"`
	Pronunciation   string         `gorm:"column:pronunciation" json:"pronunciation"`
	Examples        datatypes.JSON `gorm:"type:jsonb;column:examples" json:"examples"`
	AudioKey        string         `gorm:"column:audio_key" json:"-"`
	AudioURL        string         `gorm:"column:audio_url" json:"audio_url"`
	WordType        string         `gorm:"column:word_type" json:"word_type"`
	DifficultyLevel int            `gorm:"not null;default:1;column:difficulty_level" json:"difficulty_level"`
	CreatedAt       time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null" json:"updated_at"`
}

func (Vocabulary) TableName() string { return "vocabulary" }

// VocabularyWithProgress is the read shape for browsing endpoints. The
// progress fields stay nil for unauthenticated callers.
type VocabularyWithProgress struct {
	Vocabulary
	IsMemorized    *bool      `json:"is_memorized,omitempty"`
	ReviewCount    *int       `json:"review_count,omitempty"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
}
