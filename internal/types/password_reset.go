package types

import (
	"time"

	"github.com/google/uuid"
)

// ResetKindOTP is the only kind today. The explicit kind field keeps the
// record unambiguous if a link-token flow is ever added alongside it.
const ResetKindOTP = "otp"

// PasswordReset is the single pending credential-reset record per user.
// A new forgot-password request overwrites any previous one.
type PasswordReset struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
	Kind      string    `gorm:"not null;default:'otp';column:kind" json:"kind"`
	Code      string    `gorm:"not null;index;column:code" json:"-"`
	ExpiresAt time.Time `gorm:"not null;column:expires_at" json:"expires_at"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (PasswordReset) TableName() string { return "password_reset" }

func (pr *PasswordReset) Expired(now time.Time) bool {
	return now.After(pr.ExpiresAt)
}
