package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type StudentProfile struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	FullName   string         `gorm:"column:full_name" json:"full_name"`
	BirthDate  *time.Time     `gorm:"column:birth_date" json:"birth_date,omitempty"`
	Address    string         `gorm:"column:address" json:"address"`
	PictureKey string         `gorm:"column:picture_key" json:"picture_key"`
	Bio        string         `gorm:"column:bio" json:"bio"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
}

func (StudentProfile) TableName() string { return "student_profile" }

// IsComplete is derived, never stored: full name, birth date and address
// all present.
func (p *StudentProfile) IsComplete() bool {
	return strings.TrimSpace(p.FullName) != "" &&
		p.BirthDate != nil &&
		strings.TrimSpace(p.Address) != ""
}
