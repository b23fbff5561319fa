package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type LessonVocabularyRepo interface {
	Attach(ctx context.Context, tx *gorm.DB, link *types.LessonVocabulary) error
	Get(ctx context.Context, tx *gorm.DB, lessonID, vocabularyID uuid.UUID) (*types.LessonVocabulary, error)
	Update(ctx context.Context, tx *gorm.DB, link *types.LessonVocabulary) error
	Detach(ctx context.Context, tx *gorm.DB, lessonID, vocabularyID uuid.UUID) error
	ListByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.LessonVocabulary, error)
	VocabularyIDsByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]uuid.UUID, error)
	CountByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (int64, error)
}

type lessonVocabularyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonVocabularyRepo(db *gorm.DB, baseLog *logger.Logger) LessonVocabularyRepo {
	return &lessonVocabularyRepo{db: db, log: baseLog.With("repo", "LessonVocabularyRepo")}
}

func (r *lessonVocabularyRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *lessonVocabularyRepo) Attach(ctx context.Context, tx *gorm.DB, link *types.LessonVocabulary) error {
	return r.conn(tx).WithContext(ctx).Create(link).Error
}

func (r *lessonVocabularyRepo) Get(ctx context.Context, tx *gorm.DB, lessonID, vocabularyID uuid.UUID) (*types.LessonVocabulary, error) {
	var link types.LessonVocabulary
	err := r.conn(tx).WithContext(ctx).
		Where("lesson_id = ? AND vocabulary_id = ?", lessonID, vocabularyID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *lessonVocabularyRepo) Update(ctx context.Context, tx *gorm.DB, link *types.LessonVocabulary) error {
	return r.conn(tx).WithContext(ctx).Save(link).Error
}

func (r *lessonVocabularyRepo) Detach(ctx context.Context, tx *gorm.DB, lessonID, vocabularyID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("lesson_id = ? AND vocabulary_id = ?", lessonID, vocabularyID).
		Delete(&types.LessonVocabulary{}).Error
}

// ListByLesson preloads the vocabulary rows in lesson display order so
// callers can apply per-lesson overrides.
func (r *lessonVocabularyRepo) ListByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.LessonVocabulary, error) {
	var results []*types.LessonVocabulary
	err := r.conn(tx).WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Preload("Vocabulary").
		Order("display_order ASC, created_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *lessonVocabularyRepo) VocabularyIDsByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(tx).WithContext(ctx).
		Model(&types.LessonVocabulary{}).
		Where("lesson_id = ?", lessonID).
		Pluck("vocabulary_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *lessonVocabularyRepo) CountByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.LessonVocabulary{}).
		Where("lesson_id = ?", lessonID).
		Count(&count).Error
	return count, err
}
