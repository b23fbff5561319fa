package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type LessonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Lesson, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error)
	Update(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	return &lessonRepo{db: db, log: baseLog.With("repo", "LessonRepo")}
}

func (r *lessonRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) error {
	return r.conn(tx).WithContext(ctx).Create(lesson).Error
}

func (r *lessonRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Lesson, error) {
	var lesson types.Lesson
	err := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&lesson).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error) {
	var results []*types.Lesson
	err := r.conn(tx).WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC, created_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error) {
	var results []*types.Lesson
	err := r.conn(tx).WithContext(ctx).
		Order("display_order ASC, created_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonRepo) Update(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) error {
	return r.conn(tx).WithContext(ctx).Save(lesson).Error
}

func (r *lessonRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Where("id = ?", id).Delete(&types.Lesson{}).Error
}

func (r *lessonRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&types.Lesson{}).Count(&count).Error
	return count, err
}
