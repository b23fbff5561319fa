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

type LessonProgressRepo interface {
	Get(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID) (*types.LessonProgress, error)
	GetByUserAndLessonIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lessonIDs []uuid.UUID) ([]*types.LessonProgress, error)
	// UpsertCompleted marks a lesson completed via insert-or-update on
	// the (user, lesson) key so concurrent completions collapse to one row.
	UpsertCompleted(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID, now time.Time) error
	CountCompletedIn(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lessonIDs []uuid.UUID) (int64, error)
	CountCompletedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type lessonProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonProgressRepo(db *gorm.DB, baseLog *logger.Logger) LessonProgressRepo {
	return &lessonProgressRepo{db: db, log: baseLog.With("repo", "LessonProgressRepo")}
}

func (r *lessonProgressRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *lessonProgressRepo) Get(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID) (*types.LessonProgress, error) {
	var row types.LessonProgress
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *lessonProgressRepo) GetByUserAndLessonIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lessonIDs []uuid.UUID) ([]*types.LessonProgress, error) {
	var results []*types.LessonProgress
	if len(lessonIDs) == 0 {
		return results, nil
	}
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonProgressRepo) UpsertCompleted(ctx context.Context, tx *gorm.DB, userID, lessonID uuid.UUID, now time.Time) error {
	row := &types.LessonProgress{
		ID:          uuid.New(),
		UserID:      userID,
		LessonID:    lessonID,
		IsCompleted: true,
		CompletedAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_completed", "completed_at", "updated_at",
			}),
		}).
		Create(row).Error
}

func (r *lessonProgressRepo) CountCompletedIn(ctx context.Context, tx *gorm.DB, userID uuid.UUID, lessonIDs []uuid.UUID) (int64, error) {
	if len(lessonIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.LessonProgress{}).
		Where("user_id = ? AND is_completed = ? AND lesson_id IN ?", userID, true, lessonIDs).
		Count(&count).Error
	return count, err
}

func (r *lessonProgressRepo) CountCompletedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.LessonProgress{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *lessonProgressRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.LessonProgress{}).Error
}
