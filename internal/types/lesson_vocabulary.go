package types

import (
	"time"

	"github.com/google/uuid"
)

// LessonVocabulary orders vocabulary inside a lesson and may override the
// item's meaning or example for that lesson only.
type LessonVocabulary struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	LessonID        uuid.UUID   `gorm:"type:uuid;not null;index:idx_lesson_vocab,unique" json:"lesson_id"`
	Lesson          *Lesson     `gorm:"constraint:OnDelete:CASCADE;foreignKey:LessonID;references:ID" json:"-"`
	VocabularyID    uuid.UUID   `gorm:"type:uuid;not null;index:idx_lesson_vocab,unique" json:"vocabulary_id"`
	Vocabulary      *Vocabulary `gorm:"constraint:OnDelete:CASCADE;foreignKey:VocabularyID;references:ID" json:"-"`
	DisplayOrder    int         `gorm:"not null;default:0;column:display_order" json:"display_order"`
	MeaningOverride *string     `gorm:"column:meaning_override" json:"meaning_override,omitempty"`
	ExampleOverride *string     `gorm:"column:example_override" json:"example_override,omitempty"`
	CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`
}

func (LessonVocabulary) TableName() string { return "lesson_vocabulary" }

// LessonVocabularyItem is a lesson's view of one vocabulary entry: the
// meaning override is already applied to Meaning, the example override
// rides alongside the item's own examples.
type LessonVocabularyItem struct {
	VocabularyWithProgress
	DisplayOrder    int     `json:"display_order"`
	ExampleOverride *string `json:"example_override,omitempty"`
}
