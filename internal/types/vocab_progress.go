package types

import (
	"time"

	"github.com/google/uuid"
)

// VocabProgress is unique per (user, vocabulary). ReviewCount only ever
// increases; the memorized flag and timestamp are overwritten on every
// review.
type VocabProgress struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID   `gorm:"type:uuid;not null;index:idx_user_vocab,unique" json:"user_id"`
	User           *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	VocabularyID   uuid.UUID   `gorm:"type:uuid;not null;index:idx_user_vocab,unique" json:"vocabulary_id"`
	Vocabulary     *Vocabulary `gorm:"constraint:OnDelete:CASCADE;foreignKey:VocabularyID;references:ID" json:"-"`
	IsMemorized    bool        `gorm:"not null;default:false;column:is_memorized" json:"is_memorized"`
	ReviewCount    int         `gorm:"not null;default:0;column:review_count" json:"review_count"`
	LastReviewedAt *time.Time  `gorm:"column:last_reviewed_at" json:"last_reviewed_at,omitempty"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"not null" json:"updated_at"`
}

func (VocabProgress) TableName() string { return "vocab_progress" }
