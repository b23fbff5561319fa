package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type StudentProfileRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.StudentProfile, error)
	Upsert(ctx context.Context, tx *gorm.DB, profile *types.StudentProfile) error
}

type studentProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudentProfileRepo(db *gorm.DB, baseLog *logger.Logger) StudentProfileRepo {
	return &studentProfileRepo{db: db, log: baseLog.With("repo", "StudentProfileRepo")}
}

func (r *studentProfileRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *studentProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.StudentProfile, error) {
	var profile types.StudentProfile
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *studentProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.StudentProfile) error {
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name", "birth_date", "address", "picture_key", "bio", "metadata", "updated_at",
			}),
		}).
		Create(profile).Error
}
