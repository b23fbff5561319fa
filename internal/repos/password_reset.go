package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type PasswordResetRepo interface {
	// Upsert replaces any pending reset for the same user: one active
	// record per user, newest wins.
	Upsert(ctx context.Context, tx *gorm.DB, reset *types.PasswordReset) error
	GetActiveByCode(ctx context.Context, tx *gorm.DB, code string, now time.Time) (*types.PasswordReset, error)
	DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, tx *gorm.DB, now time.Time) (int64, error)
}

type passwordResetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPasswordResetRepo(db *gorm.DB, baseLog *logger.Logger) PasswordResetRepo {
	return &passwordResetRepo{db: db, log: baseLog.With("repo", "PasswordResetRepo")}
}

func (r *passwordResetRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *passwordResetRepo) Upsert(ctx context.Context, tx *gorm.DB, reset *types.PasswordReset) error {
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"kind", "code", "expires_at", "created_at",
			}),
		}).
		Create(reset).Error
}

func (r *passwordResetRepo) GetActiveByCode(ctx context.Context, tx *gorm.DB, code string, now time.Time) (*types.PasswordReset, error) {
	var reset types.PasswordReset
	err := r.conn(tx).WithContext(ctx).
		Where("code = ? AND kind = ? AND expires_at > ?", code, types.ResetKindOTP, now).
		First(&reset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reset, nil
}

func (r *passwordResetRepo) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.PasswordReset{}).Error
}

func (r *passwordResetRepo) DeleteExpired(ctx context.Context, tx *gorm.DB, now time.Time) (int64, error) {
	res := r.conn(tx).WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&types.PasswordReset{})
	return res.RowsAffected, res.Error
}
